// Package export renders a block-list document model into PDF, Markdown,
// HTML, or PNG output.
package export

import (
	"regexp"
	"strings"
)

// Block is one unit of document content. Text carries the cleaned-up textual
// payload used by the PDF and Markdown exporters; Content carries the raw
// editor payload used by the HTML exporter and image blocks.
type Block struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content string `json:"content"`
}

// Content is the document model passed in export requests.
type Content struct {
	Blocks []Block `json:"blocks"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// cleanHTML strips HTML tags and unescapes exactly the four entities the
// editor produces. Other entities pass through untouched; that minimal set is
// the contract, not an oversight.
func cleanHTML(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&amp;", "&")
	return strings.TrimSpace(text)
}

// ToMarkdown renders blocks as Markdown. Headings h1-h3 map to #/##/###,
// every other type emits a bare line; blocks with empty text are skipped and
// each emitted block is followed by a blank line.
func ToMarkdown(content Content) string {
	var b strings.Builder
	for _, block := range content.Blocks {
		text := strings.TrimSpace(block.Text)
		if text == "" {
			continue
		}
		text = cleanHTML(text)

		switch block.Type {
		case "h1":
			b.WriteString("# " + text + "\n")
		case "h2":
			b.WriteString("## " + text + "\n")
		case "h3":
			b.WriteString("### " + text + "\n")
		default:
			b.WriteString(text + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ToHTML renders blocks into a fixed HTML shell. Unlike the PDF and Markdown
// exporters this uses the block's raw Content field without any cleaning or
// escaping, so inline markup survives the export verbatim.
func ToHTML(content Content, title string) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>` + title + `</title>
    <style>
        body {
            font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            max-width: 800px;
            margin: 0 auto;
            padding: 40px 20px;
            background: #f9fafb;
            color: #1a1a24;
            line-height: 1.6;
        }
        h1 {
            color: #8b5cf6;
            font-size: 2.5rem;
            margin-bottom: 1rem;
        }
        h2 {
            color: #1a1a24;
            font-size: 2rem;
            margin-top: 2rem;
            margin-bottom: 0.75rem;
        }
        h3 {
            color: #1a1a24;
            font-size: 1.5rem;
            margin-top: 1.5rem;
            margin-bottom: 0.5rem;
        }
        p {
            margin-bottom: 1rem;
        }
        ul, ol {
            margin-bottom: 1rem;
            padding-left: 2rem;
        }
    </style>
</head>
<body>
    <h1>` + title + `</h1>
`)

	for _, block := range content.Blocks {
		if strings.TrimSpace(block.Content) == "" {
			continue
		}
		switch block.Type {
		case "h1":
			b.WriteString("    <h1>" + block.Content + "</h1>\n")
		case "h2":
			b.WriteString("    <h2>" + block.Content + "</h2>\n")
		case "h3":
			b.WriteString("    <h3>" + block.Content + "</h3>\n")
		default:
			b.WriteString("    <p>" + block.Content + "</p>\n")
		}
	}

	b.WriteString("</body>\n</html>")
	return b.String()
}
