package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyInitAndLint(t *testing.T) {
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.yaml")

	initOut := &bytes.Buffer{}
	policyCmd := newPolicyCmd()
	policyCmd.SetArgs([]string{"init", policyPath})
	policyCmd.SetOut(initOut)
	policyCmd.SetErr(&bytes.Buffer{})
	require.NoError(t, policyCmd.Execute())
	assert.Contains(t, initOut.String(), "Example policy written to")

	lintOut := &bytes.Buffer{}
	policyCmd = newPolicyCmd()
	policyCmd.SetArgs([]string{"lint", policyPath})
	policyCmd.SetOut(lintOut)
	policyCmd.SetErr(&bytes.Buffer{})
	require.NoError(t, policyCmd.Execute())
	assert.Contains(t, lintOut.String(), "Policy OK")
}

func TestPolicyLint_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	policyPath := writeFile(t, dir, "bad.yaml", "patterns:\n  - regex: \"[unclosed\"\n")

	policyCmd := newPolicyCmd()
	policyCmd.SetArgs([]string{"lint", policyPath})
	policyCmd.SetOut(&bytes.Buffer{})
	policyCmd.SetErr(&bytes.Buffer{})

	err := policyCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}
