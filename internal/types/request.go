// Package types provides type definitions for document generation requests.
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/document-generator/internal/schemas"
)

// DocumentType selects the prompt template and page budget.
type DocumentType string

// Supported document types.
const (
	DocumentCV  DocumentType = "cv"
	DocumentSOP DocumentType = "sop"
	DocumentLOR DocumentType = "lor"
)

// ErrUnknownDocumentType is returned for any doc_type outside cv, sop and lor.
var ErrUnknownDocumentType = errors.New("unknown document type")

// missingValue is substituted for absent or null fields.
const missingValue = "N/A"

// DocumentTypes returns the supported document types.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentCV, DocumentSOP, DocumentLOR}
}

// ParseDocumentType converts s into a DocumentType.
func ParseDocumentType(s string) (DocumentType, error) {
	for _, dt := range DocumentTypes() {
		if string(dt) == s {
			return dt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDocumentType, s)
}

// PageBudget returns the maximum page count the document is expected to fit
// in. Zero means unbounded.
func (d DocumentType) PageBudget() int {
	switch d {
	case DocumentCV:
		return 2
	case DocumentLOR:
		return 1
	default:
		return 0
	}
}

// Label returns a human-readable document name.
func (d DocumentType) Label() string {
	switch d {
	case DocumentCV:
		return "CV"
	case DocumentSOP:
		return "Statement of Purpose"
	case DocumentLOR:
		return "Letter of Recommendation"
	default:
		return string(d)
	}
}

// Request is one document generation request.
type Request struct {
	DocType DocumentType `json:"doc_type" validate:"required"`
	Data    Fields       `json:"data"`
}

// Education is one entry of the cv "educations" field.
type Education struct {
	Degree         string
	GPA            string
	CompletionDate string
}

// Fields is the caller-supplied field map. Values are whatever JSON decoding
// produced: strings, float64, bool, []any, map[string]any or nil.
type Fields map[string]any

// Get returns the value for key formatted for embedding in a prompt.
func (f Fields) Get(key string) string {
	v, ok := f[key]
	if !ok {
		return missingValue
	}
	return formatValue(v)
}

// Educations decodes the "educations" list. Entries that are not objects are
// skipped; missing keys become N/A.
func (f Fields) Educations() []Education {
	list, ok := f["educations"].([]any)
	if !ok {
		return nil
	}

	var out []Education
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		fields := Fields(entry)
		out = append(out, Education{
			Degree:         fields.Get("degree"),
			GPA:            fields.Get("gpa"),
			CompletionDate: fields.Get("completion_date"),
		})
	}
	return out
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return missingValue
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}

var validate = validator.New()

// DecodeRequest reads a request payload, checks it against the request schema
// and validates the document type.
func DecodeRequest(r io.Reader) (*Request, error) {
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read request: %w", err)
	}
	return parseRequest(payload)
}

func parseRequest(payload []byte) (*Request, error) {
	if err := schemas.ValidateRequest(payload); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request JSON: %w", err)
	}

	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	docType, err := ParseDocumentType(string(req.DocType))
	if err != nil {
		return nil, err
	}
	req.DocType = docType

	if req.Data == nil {
		req.Data = Fields{}
	}
	return &req, nil
}
