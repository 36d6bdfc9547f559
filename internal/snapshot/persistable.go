package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/richard-senior/venuegoals/internal/logger"
)

// Persistable is a row type whose table is generated from its struct tags:
// `column` names the column, `dbtype` gives its SQL type (fields without one
// are not stored), `primary:"true"` joins the primary key and `index:"true"`
// adds an index
type Persistable interface {
	TableName() string
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// createTable creates the table and indexes for obj if they do not exist
func createTable(ctx context.Context, db execer, obj Persistable) error {
	tableName := obj.TableName()
	createSQL := generateCreateTableSQL(obj, tableName)
	logger.Debug("Creating table with SQL", createSQL)

	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	for _, query := range generateIndexSQL(obj, tableName) {
		logger.Debug("Creating index with SQL", query)
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", tableName, err)
		}
	}
	return nil
}

func columnName(field reflect.StructField) string {
	if name := field.Tag.Get("column"); name != "" {
		return name
	}
	return strings.ToLower(field.Name)
}

// storedFields lists the fields of t that carry a dbtype tag
func storedFields(t reflect.Type) []reflect.StructField {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var fields []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("dbtype") == "" {
			continue
		}
		fields = append(fields, field)
	}
	return fields
}

func generateCreateTableSQL(obj any, tableName string) string {
	var columns, primaryKeys []string
	for _, field := range storedFields(reflect.TypeOf(obj)) {
		name := columnName(field)
		dbType := field.Tag.Get("dbtype")
		if field.Tag.Get("primary") == "true" {
			primaryKeys = append(primaryKeys, name)
		}
		columns = append(columns, fmt.Sprintf("%s %s", name, dbType))
	}
	if len(primaryKeys) > 0 {
		columns = append(columns, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(primaryKeys, ", ")))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(columns, ", "))
}

func generateIndexSQL(obj any, tableName string) []string {
	var indexSQL []string
	for _, field := range storedFields(reflect.TypeOf(obj)) {
		if field.Tag.Get("index") != "true" {
			continue
		}
		name := columnName(field)
		indexSQL = append(indexSQL, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s(%s)", tableName, name, tableName, name))
	}
	return indexSQL
}

// insert adds obj as a new row
func insert(ctx context.Context, db execer, obj Persistable) error {
	tableName := obj.TableName()
	columns, placeholders, values := getInsertData(obj)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if _, err := db.ExecContext(ctx, query, values...); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", tableName, err)
	}
	return nil
}

func getInsertData(obj any) ([]string, []string, []any) {
	v := reflect.Indirect(reflect.ValueOf(obj))
	var columns, placeholders []string
	var values []any
	for _, field := range storedFields(v.Type()) {
		columns = append(columns, columnName(field))
		placeholders = append(placeholders, "?")
		values = append(values, v.FieldByIndex(field.Index).Interface())
	}
	return columns, placeholders, values
}

// getSelectData returns the column names and scan destinations of obj,
// which must be a pointer
func getSelectData(obj any) ([]string, []any) {
	v := reflect.ValueOf(obj).Elem()
	var columns []string
	var destinations []any
	for _, field := range storedFields(v.Type()) {
		columns = append(columns, columnName(field))
		destinations = append(destinations, v.FieldByIndex(field.Index).Addr().Interface())
	}
	return columns, destinations
}

// findAll reads every row of T's table in the given order
func findAll[T Persistable](ctx context.Context, db *sql.DB, orderBy string) ([]T, error) {
	var zero T
	tableName := zero.TableName()
	columns, _ := getSelectData(&zero)
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), tableName)
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	logger.Debug("FindAll SQL", query)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", tableName, err)
	}
	defer rows.Close()

	var results []T
	for rows.Next() {
		var row T
		_, destinations := getSelectData(&row)
		if err := rows.Scan(destinations...); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", tableName, err)
		}
		results = append(results, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows from %s: %w", tableName, err)
	}
	return results, nil
}
