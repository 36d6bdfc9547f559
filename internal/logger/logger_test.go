package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var info, errs bytes.Buffer
	prev := GetLevel()
	SetWriters(&info, &errs)
	t.Cleanup(func() {
		SetLevel(prev)
		_ = SetLogOutput(OutputConsole, "")
	})
	return &info, &errs
}

func TestLevelsRouteToWriters(t *testing.T) {
	info, errs := capture(t)
	SetLevel(INFO)

	Debug("hidden")
	Info("loaded rows:", 12)
	Error("failed:", errors.New("boom"))

	assert.NotContains(t, info.String(), "hidden")
	assert.Contains(t, info.String(), "[INFO] logger_test.go")
	assert.Contains(t, info.String(), "loaded rows: 12")
	assert.Contains(t, errs.String(), "[ERROR]")
	assert.Contains(t, errs.String(), "failed: boom")
}

func TestObjectsAreRenderedAsJSON(t *testing.T) {
	info, _ := capture(t)
	SetLevel(DEBUG)

	Debug("summary", map[string]int{"home": 3})

	assert.Contains(t, info.String(), "[Object of type map[string]int]")
	assert.Contains(t, info.String(), `"home": 3`)
}

func TestFloatsAreFormatted(t *testing.T) {
	info, _ := capture(t)
	SetLevel(INFO)

	Info("p-value", 0.123456789)

	assert.Contains(t, info.String(), "p-value 0.1235")
}

func TestSetLogOutputRejectsUnknownType(t *testing.T) {
	assert.Error(t, SetLogOutput('x', ""))
	assert.Error(t, SetLogOutput(OutputFile, ""))
}

func TestHighlightIsAboveInfo(t *testing.T) {
	info, errs := capture(t)
	SetLevel(HIGHLIGHT)

	Info("routine")
	Highlight("analysis complete")

	assert.NotContains(t, info.String(), "routine")
	assert.Contains(t, info.String(), "[HIGHLIGHT]")
	assert.Contains(t, info.String(), "analysis complete")
	assert.Empty(t, errs.String())
	assert.Equal(t, HIGHLIGHT, GetLevel())
}
