package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--fixtures", "../../fixtures/demo.yaml"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestDashboardCommand(t *testing.T) {
	out, err := runCLI(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Active partners")
	assert.Contains(t, out, "Urgent focus")
	assert.Contains(t, out, "Settlement failures")
}

func TestPartnersCommand(t *testing.T) {
	out, err := runCLI(t, "partners", "--health", "critical")
	require.NoError(t, err)
	assert.Contains(t, out, "Initech")
	assert.NotContains(t, out, "Globex")

	_, err = runCLI(t, "partners", "--sort", "tier")
	assert.Error(t, err)
}

func TestPartnerCommand(t *testing.T) {
	out, err := runCLI(t, "partner", "partner_initech")
	require.NoError(t, err)
	assert.Contains(t, out, "trend declining")
	assert.Contains(t, out, "Bill Lumbergh")

	_, err = runCLI(t, "partner", "partner_missing")
	assert.Error(t, err)
}

func TestListingCommands(t *testing.T) {
	out, err := runCLI(t, "threads", "--visibility", "action_required")
	require.NoError(t, err)
	assert.Contains(t, out, "Action required (1)")
	assert.Contains(t, out, "Owned (0)")

	out, err = runCLI(t, "interactions", "--type", "indirect")
	require.NoError(t, err)
	assert.Contains(t, out, "Settlement batch failed")
	assert.NotContains(t, out, "volume discount")
}

func TestMissingFixture(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--fixtures", "does-not-exist.yaml", "partners"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	assert.Error(t, cmd.Execute())
}
