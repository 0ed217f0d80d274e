package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Layout constants in points, Letter page with 1-inch side margins.
const (
	pageMargin    = 72
	bottomMargin  = 18
	imageWidthPt  = 450
	titleFontSize = 28
	bodyFontSize  = 12
)

// ToPDF lays out a centered title followed by one flowable per block.
// Headings map to three fixed sizes, graph blocks embed their base64 image
// payload scaled to a fixed display width, and blocks with empty text are
// skipped.
func ToPDF(content Content, title string) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", titleFontSize)
	pdf.SetTextColor(0x8b, 0x5c, 0xf6)
	pdf.MultiCell(0, titleFontSize+6, title, "", "C", false)
	pdf.Ln(14)

	for i, block := range content.Blocks {
		if block.Type == "graph" {
			embedImage(pdf, i, block.Content)
			continue
		}

		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}
		text = cleanHTML(text)

		pdf.SetTextColor(0x1a, 0x1a, 0x24)
		switch block.Type {
		case "h1":
			pdf.SetFont("Helvetica", "B", 24)
			pdf.MultiCell(0, 30, text, "", "L", false)
			pdf.Ln(12)
		case "h2":
			pdf.SetFont("Helvetica", "B", 18)
			pdf.MultiCell(0, 23, text, "", "L", false)
			pdf.Ln(10)
		case "h3":
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 18, text, "", "L", false)
			pdf.Ln(8)
		default:
			pdf.SetFont("Helvetica", "", bodyFontSize)
			pdf.MultiCell(0, 15, text, "", "L", false)
			pdf.Ln(7)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF export failed: %w", err)
	}
	return buf.Bytes(), nil
}

// embedImage decodes a graph block's base64 payload (with or without a
// data-URL prefix) and places it scaled to imageWidthPt wide, preserving
// aspect ratio. Blocks that fail to decode are silently omitted.
func embedImage(pdf *fpdf.Fpdf, index int, payload string) {
	if payload == "" {
		return
	}
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil || cfg.Width == 0 {
		return
	}

	width := float64(imageWidthPt)
	height := width * float64(cfg.Height) / float64(cfg.Width)

	name := fmt.Sprintf("block-image-%d", index)
	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(format)}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(raw))
	pdf.ImageOptions(name, pageMargin, 0, width, height, true, opts, 0, "")
	pdf.Ln(14)
}
