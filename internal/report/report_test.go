package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := &Report{Sets: 2, Versions: 3, Documents: 1}
	r.Add(
		Issue{Severity: SeverityWarning, Rule: RuleEmptyCategory, ContentSet: "docs", Version: "current", Sidebar: "docs", Location: "docs > Empty", Message: "category has no items"},
		Issue{Severity: SeverityError, Rule: RuleBrokenLink, Location: "navbar.items[1]", Message: "no page at /missing"},
		Issue{Severity: SeverityError, Rule: RuleDanglingReference, ContentSet: "community", Version: "current", Sidebar: "community", DocID: "gone", Message: "DanglingReference(\"gone\")"},
	)
	return r
}

func TestReport_CountsAndSort(t *testing.T) {
	r := sampleReport()
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Equal(t, 2, r.ErrorCount())
	assert.Equal(t, 1, r.WarningCount())

	r.Sort()
	assert.Equal(t, "", r.Issues[0].ContentSet)
	assert.Equal(t, "community", r.Issues[1].ContentSet)
	assert.Equal(t, "docs", r.Issues[2].ContentSet)
	assert.Len(t, r.Errors(), 2)
}

func TestReport_Merge(t *testing.T) {
	r := &Report{Sets: 1}
	r.Merge(sampleReport())
	r.Merge(nil)
	assert.Equal(t, 3, r.Sets)
	assert.Len(t, r.Issues, 3)
}

func TestTextFormatter(t *testing.T) {
	r := sampleReport()
	r.Sort()
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("text", false).Format(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "site\n  ✗ navbar.items[1] [broken-link] no page at /missing")
	assert.Contains(t, out, "community@current\n")
	assert.Contains(t, out, "⚠ docs > Empty [empty-category]")
	assert.Contains(t, out, "Checked 2 content sets, 3 versions, 1 document")
	assert.Contains(t, out, "2 errors (fails the build)")
	assert.Contains(t, out, "Navigation has errors.")
	assert.NotContains(t, out, "\x1b[")
}

func TestTextFormatter_CleanReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter(true).Format(&buf, &Report{Sets: 1, Versions: 1, Documents: 4}))
	assert.Contains(t, buf.String(), "Navigation is valid.")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter("json", false).Format(&buf, sampleReport()))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, 2, out.ErrorCount)
	assert.Equal(t, 1, out.WarningCount)
	require.Len(t, out.Issues, 3)
	assert.Equal(t, "warning", out.Issues[0].Severity)
	assert.Equal(t, "gone", out.Issues[2].DocID)
}
