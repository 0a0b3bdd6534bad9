package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalPDF builds a valid PDF with the given number of empty A4 pages.
func minimalPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		writeObj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func TestCountPDFPages(t *testing.T) {
	for _, n := range []int{1, 3} {
		t.Run(fmt.Sprintf("%d pages", n), func(t *testing.T) {
			count, err := CountPDFPages(minimalPDF(n))
			require.NoError(t, err)
			assert.Equal(t, n, count)
		})
	}
}

func TestCountPDFPages_Empty(t *testing.T) {
	_, err := CountPDFPages(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty document")
}

func TestCountPDFPages_NotAPDF(t *testing.T) {
	_, err := CountPDFPages([]byte("plain text, not a PDF"))
	require.Error(t, err)

	var validationErr *Error
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, err.Error(), "failed to count PDF pages")
}
