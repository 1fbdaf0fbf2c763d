package tools

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// OutputName builds the standard artifact name <operation>_<timestamp>.<ext>.
func OutputName(operation, ext string) string {
	return fmt.Sprintf("%s_%d.%s", operation, time.Now().Unix(), ext)
}

// PreservedName keeps the original base name with a new extension. Document
// conversions use this so a report.docx comes back as report.pdf.
func PreservedName(originalName, newExt string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	if base == "" {
		base = "converted"
	}
	return base + "." + newExt
}

// CompressionRatio returns the size reduction as a percentage rounded to one
// decimal place.
func CompressionRatio(originalBytes, newBytes int64) float64 {
	if originalBytes <= 0 {
		return 0
	}
	ratio := float64(originalBytes-newBytes) / float64(originalBytes) * 100
	return math.Round(ratio*10) / 10
}

// Megabytes converts a byte count to MB rounded to two decimals.
func Megabytes(bytes int64) float64 {
	return math.Round(float64(bytes)/(1024*1024)*100) / 100
}
