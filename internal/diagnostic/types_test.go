package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning(CodeFilterFallback, "filter rejected 1000 candidates", "string", "Order.Items[].SKU")
	d.AddInfo(CodeCycleDetected, "cut", "store.Order", "Order.Next.Next")
	d.AddError(CodeAssignmentIgnored, "boom", "", "")
	d.AddError(CodeUnusedSelector, "member(Nmae)", "", "")

	assert.True(t, d.HasErrors())
	assert.False(t, d.IsValid())
	assert.Len(t, d.All(), 4)
	assert.Len(t, d.ByCode(CodeFilterFallback), 1)

	err := d.Error()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)

	var other Diagnostics
	other.AddInfo(CodeMaxDepthExceeded, "cut", "", "")
	d.Merge(other)
	assert.Len(t, d.Infos, 2)
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        CodeUnusedSelector,
		Message:     "never matched",
		Signature:   "store.Item",
		Path:        "Order.Items[]",
		Suggestions: []string{"SKU"},
	}

	assert.Equal(t, "[store.Item] Order.Items[]: [unused-selector] never matched (did you mean SKU?)", d.String())
	assert.Equal(t, "plain", Diagnostic{Message: "plain"}.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
