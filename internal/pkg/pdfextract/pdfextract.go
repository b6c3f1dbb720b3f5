package pdfextract

import (
	"bytes"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractText reads the entire content of r and extracts plain text from the
// PDF, concatenating pages in document order. Pages with no extractable text
// contribute nothing and are not an error.
func ExtractText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return ExtractTextFromBytes(b)
}

// ExtractTextFromBytes extracts plain text from PDF bytes.
func ExtractTextFromBytes(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= pdfReader.NumPage(); i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that cannot be decoded yields no text; the rest of the
			// document is still usable.
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
