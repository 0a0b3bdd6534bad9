package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/document-generator/internal/markers"
	"github.com/jonathan/document-generator/internal/types"
)

// documentsFile holds one template per document type, keyed by doc_type.
const documentsFile = "documents.json"

// noEducation is the cv education line used when no entries are supplied.
var noEducation = markers.BulletItem("(No education details provided)")

var cvHeadings = []string{
	"SUMMARY", "PROFESSIONAL EXPERIENCE", "PROJECTS", "SKILLS", "EDUCATION", "ADDITIONAL INFORMATION",
}

var sopHeadings = []string{
	"Introduction", "Why This Country", "Why This University", "Why This Course", "Future Plan",
}

// documentFields lists the request fields each template embeds. Only these
// keys are read from the request so caller data cannot shadow marker keys.
var documentFields = map[types.DocumentType][]string{
	types.DocumentCV: {
		"full_name", "email", "gpa", "phone", "goal", "experiences", "projects",
		"skills", "languages", "certificates", "awards",
	},
	types.DocumentSOP: {
		"full_name", "program", "educations", "gpa", "skills", "experience",
		"country", "university", "goal",
	},
	types.DocumentLOR: {
		"full_name", "Course_Taught", "Duration_cousre", "program", "gpa", "skills",
		"recommender_name", "recommender_title", "recommender_institution", "recommender_email",
	},
}

// Build returns the model instruction for docType filled with fields. It is
// deterministic and fails only for an unknown document type.
func Build(docType types.DocumentType, fields types.Fields) (string, error) {
	keys, ok := documentFields[docType]
	if !ok {
		return "", fmt.Errorf("cannot build prompt: %w: %q", types.ErrUnknownDocumentType, docType)
	}

	template, err := Get(documentsFile, string(docType))
	if err != nil {
		return "", fmt.Errorf("cannot build prompt for %s: %w", docType, err)
	}

	data := markers.Vocabulary()
	for _, key := range keys {
		data[key] = fields.Get(key)
	}
	data["PageBudget"] = strconv.Itoa(docType.PageBudget())

	switch docType {
	case types.DocumentCV:
		data["Headings"] = joinHeadings(cvHeadings)
		data["EntryExample"] = markers.EntryHeading("Company/Project")
		data["EducationLines"] = EducationLines(fields.Educations())
	case types.DocumentSOP:
		data["Headings"] = joinHeadings(sopHeadings)
	}

	return Format(template, data), nil
}

// EducationLines renders one bullet line per education entry.
func EducationLines(educations []types.Education) string {
	if len(educations) == 0 {
		return noEducation
	}

	lines := make([]string, 0, len(educations))
	for _, edu := range educations {
		lines = append(lines, markers.BulletItem(fmt.Sprintf("%s | GPA: %s | Completion: %s", edu.Degree, edu.GPA, edu.CompletionDate)))
	}
	return strings.Join(lines, "\n")
}

func joinHeadings(headings []string) string {
	out := make([]string, len(headings))
	for i, h := range headings {
		out[i] = markers.Emphasize(h)
	}
	return strings.Join(out, ", ")
}
