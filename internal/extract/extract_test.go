package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedExt(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{"txt", true},
		{".txt", true},
		{"PDF", true},
		{".docx", true},
		{"md", true},
		{"doc", false},
		{"rtf", false},
		{"html", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, SupportedExt(tt.ext))
		})
	}
}

func TestExtractPlainText(t *testing.T) {
	res, err := Extract([]byte("Experienced backend engineer."), "txt")
	require.NoError(t, err)
	assert.Equal(t, "Experienced backend engineer.", res.Text)
	assert.Empty(t, res.PreviewHTML)
}

func TestExtractMarkdownHasPreview(t *testing.T) {
	res, err := Extract([]byte("# Resume\n\nBackend engineer with **Go**."), "md")
	require.NoError(t, err)
	assert.Contains(t, res.Text, "# Resume")
	assert.Contains(t, res.PreviewHTML, "<h1")
	assert.Contains(t, res.PreviewHTML, "<strong>Go</strong>")
}

func TestExtractUnsupportedFormat(t *testing.T) {
	_, err := Extract([]byte("data"), "exe")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractWhitespaceOnly(t *testing.T) {
	_, err := Extract([]byte("   \n\t  "), "txt")
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractCorruptPDF(t *testing.T) {
	_, err := Extract([]byte("not a real pdf"), "pdf")
	assert.Error(t, err)
}
