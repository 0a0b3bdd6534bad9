package validation

import "github.com/jonathan/document-generator/internal/types"

// CheckPageBudget counts the pages of pdf and compares them with the budget of
// docType. It returns the page count and a *BudgetViolation when the document
// is too long. Document types without a budget never violate.
func CheckPageBudget(docType types.DocumentType, pdf []byte) (int, error) {
	pages, err := CountPDFPages(pdf)
	if err != nil {
		return 0, err
	}
	return pages, compareBudget(docType, pages)
}

func compareBudget(docType types.DocumentType, pages int) error {
	budget := docType.PageBudget()
	if budget > 0 && pages > budget {
		return &BudgetViolation{DocType: string(docType), Pages: pages, Budget: budget}
	}
	return nil
}
