package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-engine/core/output"
	"rating-engine/internal/errors"
)

// run executes the root command with args after resetting every flag,
// since cobra keeps flag values between executions.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "--revenue", "50000", "--state", "CA", "--business", "retail")
	require.NoError(t, err)
	assert.Contains(t, out, "$125.00")
	assert.Regexp(t, `Q-\d{5}`, out)
}

func TestQuoteCommandJSON(t *testing.T) {
	out, err := run(t, "quote", "-r", "150000", "-s", "oh", "-b", "CONSULTING", "--format", "json")
	require.NoError(t, err)

	var doc output.QuoteDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 199.5, doc.Premium)
	assert.Equal(t, 1.9, doc.Breakdown.BaseRate)
	assert.Equal(t, 0.7, doc.Breakdown.BusinessMultiplier)
}

func TestQuoteCommandValidation(t *testing.T) {
	_, err := run(t, "quote", "--state", "CA", "--business", "retail")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMissingField))
	assert.Contains(t, err.Error(), "Revenue is required")

	_, err = run(t, "quote", "--revenue=-1", "--state", "CA", "--business", "retail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Revenue must be a positive number")

	_, err = run(t, "quote", "--revenue", "1000", "--business", "retail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "State is required")
}

func TestQuoteCommandWithRatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("states:\n  CA: 3.0\n  DEFAULT: 2.0\nbusinesses:\n  DEFAULT: 1.0\n"), 0644))

	out, err := run(t, "--rates", path, "quote", "-r", "100000", "-s", "CA", "-b", "retail", "-f", "json")
	require.NoError(t, err)

	var doc output.QuoteDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 300.0, doc.Premium)
}

func TestRatesCommand(t *testing.T) {
	out, err := run(t, "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "RATE PER $1000")
	assert.Contains(t, out, "manufacturing")

	out, err = run(t, "rates", "--format", "json")
	require.NoError(t, err)
	var doc output.TableDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 2.2, doc.States["IL"])
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "rates", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rating-engine version "+Version+"\n", out)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	out, err = run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"addr": ":8080"`)
}
