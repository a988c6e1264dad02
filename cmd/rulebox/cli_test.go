package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRules(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Package-level flag vars persist across Execute() calls on the shared
	// rootCmd, so reset them to defaults before every invocation to keep
	// tests order-independent.
	cfgFile = ""
	rulesPath = ""
	classifyOutput = "text"
	batchInputPath = ""
	metricsAddr = ""
	validateOutput = "human"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_ClassifyTextOutput(t *testing.T) {
	path := writeRules(t, `[{"label":"greeting","rule":{"or_patterns":[{"pattern":"\\bhello\\b","flags":["i"]}]}}]`)

	out, err := runCLI(t, "classify", "--rules", path, "Hello there")
	require.NoError(t, err)
	assert.Equal(t, "greeting\n", out)
}

func TestCLI_ClassifyJSONOutput(t *testing.T) {
	path := writeRules(t, `[{"label":"greeting","rule":{"or_patterns":[{"pattern":"\\bhello\\b","flags":["i"]}]}}]`)

	out, err := runCLI(t, "classify", "--rules", path, "--output", "json", "nothing matches")
	require.NoError(t, err)

	var labels []string
	require.NoError(t, json.Unmarshal([]byte(out), &labels))
	assert.Empty(t, labels)
}

func TestCLI_ClassifyMissingRules(t *testing.T) {
	_, err := runCLI(t, "classify", "anything")
	assert.Error(t, err)
}

func TestCLI_BatchClassifiesEachLine(t *testing.T) {
	rulesPath := writeRules(t, `[{"label":"g","rule":{"or_patterns":[{"pattern":"\\bhello\\b","flags":["i"]}]}}]`)

	inputPath := filepath.Join(t.TempDir(), "inputs.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("Hello\nworld\nhello again\n"), 0o600))

	out, err := runCLI(t, "batch", "--rules", rulesPath, "--input", inputPath)
	require.NoError(t, err)

	var results [][]string
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, []string{"g"}, results[0])
	assert.Empty(t, results[1])
	assert.Equal(t, []string{"g"}, results[2])
}

func TestCLI_BatchMetricsAddrStartupFailureReturnsError(t *testing.T) {
	rulesPath := writeRules(t, `[{"label":"g","rule":{"or_patterns":[{"pattern":"\\bhello\\b","flags":["i"]}]}}]`)

	inputPath := filepath.Join(t.TempDir(), "inputs.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("hello\n"), 0o600))

	_, err := runCLI(t, "batch", "--rules", rulesPath, "--input", inputPath, "--metrics-addr", "not-a-valid-addr")
	require.Error(t, err)
}

func TestCLI_ValidateValidCatalog(t *testing.T) {
	path := writeRules(t, `[{"label":"g","rule":{"or_patterns":[{"pattern":"hi"}]}}]`)

	out, err := runCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestCLI_ValidateInvalidCatalog(t *testing.T) {
	path := writeRules(t, `[{"label":"broken","rule":{"or_patterns":[{"pattern":"["}]}}]`)

	out, err := runCLI(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")

	var coded interface{ ExitCode() int }
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, 1, coded.ExitCode())
}

func TestCLI_ValidateMissingFile(t *testing.T) {
	out, err := runCLI(t, "validate", "/does/not/exist.json")
	require.Error(t, err)
	assert.Contains(t, out, "INVALID")

	var coded interface{ ExitCode() int }
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, 2, coded.ExitCode())
}
