package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySpec is returned when exporting a chart without slices.
var ErrEmptySpec = errors.New("chart has no slices")

// Default export dimensions in pixels.
const (
	DefaultExportWidth  = 800
	DefaultExportHeight = 800
)

// WritePNG renders the spec as a PNG pie chart.
func WritePNG(spec Spec, w io.Writer, width, height int) error {
	if len(spec.Slices) == 0 {
		return ErrEmptySpec
	}
	if width <= 0 {
		width = DefaultExportWidth
	}
	if height <= 0 {
		height = DefaultExportHeight
	}

	values := make([]gochart.Value, 0, len(spec.Slices))
	for _, sl := range spec.Slices {
		values = append(values, gochart.Value{
			Label: sl.Label,
			Value: sl.Percent,
			Style: gochart.Style{
				FillColor:   hexColor(sl.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}

	pie := gochart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}

	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render pie chart: %w", err)
	}
	return nil
}

// ExportPNG writes the spec to a timestamped PNG file in dir and returns its
// path.
func ExportPNG(spec Spec, dir string, now time.Time) (string, error) {
	if len(spec.Slices) == 0 {
		return "", ErrEmptySpec
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("sectors-%s.png", now.Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WritePNG(spec, f, DefaultExportWidth, DefaultExportHeight); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}
	return path, nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
