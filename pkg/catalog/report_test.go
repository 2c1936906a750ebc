package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goffice/multitenancy/pkg/catalog"
)

func TestReport_String(t *testing.T) {
	t.Parallel()

	r := catalog.Report{Message: "[ERROR 1] something failed"}
	assert.Equal(t, "[ERROR 1] something failed", r.String())
}

func TestDigest(t *testing.T) {
	t.Parallel()

	t.Run("full rendering", func(t *testing.T) {
		t.Parallel()

		reports := []catalog.Report{
			{Seq: 1, Message: "[ERROR 1] first failure", Detail: "first detail"},
			{Seq: 2, Message: "[ERROR 2] second failure", Detail: "second detail"},
		}

		body := catalog.Digest("*** header ***", "run-42", 3, 1, reports)

		assert.True(t, strings.HasPrefix(body, "*** header ***\n\n"))
		assert.Contains(t, body, "RUN ID: run-42")
		assert.Contains(t, body, "ERROR COUNT: 2")
		assert.Contains(t, body, "configured=3 -> loaded=1")

		// Each block is framed by separator lines as long as its message.
		sep := strings.Repeat("=", len("[ERROR 1] first failure"))
		assert.Contains(t, body, sep+"\n[ERROR 1] first failure\n"+sep+"\nfirst detail")
		assert.Contains(t, body, "[ERROR 2] second failure")

		// Blocks are separated by two blank lines.
		require.Contains(t, body, "first detail\n\n\n")
	})

	t.Run("no mismatch line when counts agree", func(t *testing.T) {
		t.Parallel()

		body := catalog.Digest("h", "run-1", 2, 2, []catalog.Report{
			{Seq: 1, Message: "[ERROR 1] boom", Detail: "d"},
		})
		assert.NotContains(t, body, "configured=")
		assert.Contains(t, body, "There were errors during datasource initialization!")
	})
}
