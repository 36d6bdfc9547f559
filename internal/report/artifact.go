package report

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// RenderError reports a chart or report that could not be written
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Artifact describes an image file written by a plot function
type Artifact struct {
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// inspectImage reads back a written image and determines its type and
// pixel dimensions from the file signature
func inspectImage(path string) (Artifact, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, err
	}
	kind, w, h, err := imageType(content)
	if err != nil {
		return Artifact{}, err
	}
	if w <= 0 || h <= 0 {
		return Artifact{}, fmt.Errorf("%s image has no dimensions", kind)
	}
	return Artifact{Path: path, Kind: kind, Width: w, Height: h}, nil
}

func imageType(d []byte) (string, int, int, error) {
	if len(d) < 5 {
		return "", 0, 0, fmt.Errorf("content too short to determine file type")
	}

	// PNG signature: 89 50 4E 47, dimensions at bytes 16-23
	if d[0] == 0x89 && d[1] == 0x50 && d[2] == 0x4E && d[3] == 0x47 {
		if len(d) < 24 {
			return "", 0, 0, fmt.Errorf("truncated png header")
		}
		w := int(d[16])<<24 | int(d[17])<<16 | int(d[18])<<8 | int(d[19])
		h := int(d[20])<<24 | int(d[21])<<16 | int(d[22])<<8 | int(d[23])
		return "png", w, h, nil
	}

	// JPEG signature: FF D8 FF
	if d[0] == 0xFF && d[1] == 0xD8 && d[2] == 0xFF {
		w, h := jpegDimensions(d)
		return "jpg", w, h, nil
	}

	if bytes.Contains(d, []byte("<svg")) {
		w, h := svgDimensions(d)
		return "svg", w, h, nil
	}

	return "", 0, 0, fmt.Errorf("couldn't determine the image type")
}

// jpegDimensions scans for the first SOF0-SOF2 marker
func jpegDimensions(d []byte) (int, int) {
	for i := 0; i+8 < len(d); i++ {
		if d[i] == 0xFF && d[i+1] >= 0xC0 && d[i+1] <= 0xC2 {
			h := int(d[i+5])<<8 | int(d[i+6])
			w := int(d[i+7])<<8 | int(d[i+8])
			if w > 0 && h > 0 {
				return w, h
			}
		}
	}
	return 0, 0
}

var (
	svgWidth  = regexp.MustCompile(`width\s*=\s*["']([0-9.]+)(pt|px)?["']`)
	svgHeight = regexp.MustCompile(`height\s*=\s*["']([0-9.]+)(pt|px)?["']`)
)

// svgDimensions converts the root width/height to 96 dpi pixels
func svgDimensions(d []byte) (int, int) {
	parse := func(re *regexp.Regexp) int {
		m := re.FindSubmatch(d)
		if len(m) < 2 {
			return 0
		}
		v, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			return 0
		}
		if string(m[2]) == "pt" {
			v = v * 96 / 72
		}
		return int(v)
	}
	return parse(svgWidth), parse(svgHeight)
}
