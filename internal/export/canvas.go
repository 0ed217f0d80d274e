package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// CanvasToPNG decodes a base64 raster image (optionally carrying a data-URL
// prefix) and re-encodes it as PNG regardless of the source format.
func CanvasToPNG(canvasData string) ([]byte, error) {
	if idx := strings.Index(canvasData, ","); idx >= 0 {
		canvasData = canvasData[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(canvasData)
	if err != nil {
		return nil, fmt.Errorf("failed to export canvas: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to export canvas: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to export canvas: %w", err)
	}
	return buf.Bytes(), nil
}
