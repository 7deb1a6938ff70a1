package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoText            = errors.New("file contains no extractable text")
)

// Result is the extractor output: plain text for the model, plus an optional
// HTML preview for formats that have a renderable representation.
type Result struct {
	Text        string
	PreviewHTML string
}

// SupportedExt reports whether the declared extension is accepted.
// The allow-list is txt, md, pdf, docx; everything else is rejected up front.
func SupportedExt(ext string) bool {
	switch normalize(ext) {
	case "txt", "md", "pdf", "docx":
		return true
	}
	return false
}

// Extract produces plain text (and preview where available) from file bytes
// and the declared extension. One entry point per format keeps call sites
// free of per-format branching.
func Extract(data []byte, ext string) (Result, error) {
	var res Result
	var err error

	switch normalize(ext) {
	case "txt":
		res.Text = string(data)
	case "md":
		res.Text = string(data)
		res.PreviewHTML = string(markdown.ToHTML(data, nil, nil))
	case "pdf":
		res.Text, err = extractPDFText(bytes.NewReader(data), int64(len(data)))
	case "docx":
		res.Text, err = extractDocxText(bytes.NewReader(data), int64(len(data)))
	default:
		return Result{}, fmt.Errorf("%w: .%s", ErrUnsupportedFormat, normalize(ext))
	}
	if err != nil {
		return Result{}, err
	}

	if strings.TrimSpace(res.Text) == "" {
		return Result{}, ErrNoText
	}
	return res, nil
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

func extractPDFText(reader io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
