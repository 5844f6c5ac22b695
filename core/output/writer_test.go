package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"data/silat_rules_and_regulations_version_7.pdf", "silat_rules_and_regulations_version_7_report"},
		{"Rules v7.pdf", "Rules_v7_report"},
		{"/tmp/a.b.pdf", "a_b_report"},
		{"noext", "noext_report"},
		{"", "document_report"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReportName(tt.source), tt.source)
	}
}

func TestWriter_WriteReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "nested")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WriteReport("data/rules.pdf", []byte("# report"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rules_report.md"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# report", string(got))
}
