package validation

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from reading or installing a config file in the user's home.
	model.ConfigPath = "disable"
}

// CountPDFPages counts the pages of an in-memory PDF.
func CountPDFPages(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, &Error{Message: "cannot count pages of an empty document"}
	}

	count, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, &Error{Message: "failed to count PDF pages", Cause: err}
	}
	return count, nil
}
