package validation

import (
	"errors"
	"testing"

	"github.com/jonathan/document-generator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareBudget(t *testing.T) {
	tests := []struct {
		name    string
		docType types.DocumentType
		pages   int
		wantErr bool
	}{
		{"cv within budget", types.DocumentCV, 2, false},
		{"cv over budget", types.DocumentCV, 3, true},
		{"lor within budget", types.DocumentLOR, 1, false},
		{"lor over budget", types.DocumentLOR, 2, true},
		{"sop unbounded", types.DocumentSOP, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compareBudget(tt.docType, tt.pages)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var violation *BudgetViolation
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, tt.pages, violation.Pages)
			assert.Equal(t, tt.docType.PageBudget(), violation.Budget)
		})
	}
}

func TestCheckPageBudget(t *testing.T) {
	pages, err := CheckPageBudget(types.DocumentLOR, minimalPDF(2))
	assert.Equal(t, 2, pages)

	var violation *BudgetViolation
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "lor rendered to 2 pages, budget is 1", err.Error())

	pages, err = CheckPageBudget(types.DocumentCV, minimalPDF(2))
	assert.NoError(t, err)
	assert.Equal(t, 2, pages)
}

func TestCheckPageBudget_Unreadable(t *testing.T) {
	_, err := CheckPageBudget(types.DocumentCV, []byte("junk"))
	assert.Error(t, err)
}
