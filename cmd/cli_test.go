package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, store string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("BM_STORE_PATH", store)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func newCLIStore(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return t.TempDir()
}

func TestCLIBrandLifecycle(t *testing.T) {
	store := newCLIStore(t)

	stdout, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme Coffee", "--website", "https://acmecoffee.com", "--industry", "coffee")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created brand Acme Coffee (acme-coffee), now active")

	stdout, _, err = executeCLI(t, store, "brand", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* acme-coffee\tAcme Coffee")

	stdout, _, err = executeCLI(t, store, "brand", "show", "acme-coffee")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Acme Coffee (acme-coffee)")
	assert.Contains(t, stdout, "website: https://acmecoffee.com")
	assert.Contains(t, stdout, "industry: coffee")

	_, _, err = executeCLI(t, store, "brand", "update", "acme-coffee", "--industry", "specialty coffee")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, store, "brand", "show", "acme-coffee", "--json")
	require.NoError(t, err)

	var brand domain.Brand
	require.NoError(t, json.Unmarshal([]byte(stdout), &brand))
	assert.Equal(t, "specialty coffee", brand.Business.Industry)
	// The nested merge keeps untouched fields.
	assert.Equal(t, "https://acmecoffee.com", brand.Website)

	_, _, err = executeCLI(t, store, "brand", "delete", "acme-coffee")
	require.NoError(t, err)

	_, _, err = executeCLI(t, store, "brand", "show", "acme-coffee")
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)
}

func TestCLIBrandSearch(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme", "--website", "https://www.acme.com")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "brand", "create", "--name", "Beanery", "--industry", "coffee roasting")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "brand", "search", "roasting")
	require.NoError(t, err)
	assert.Contains(t, stdout, "beanery")
	assert.NotContains(t, stdout, "acme")

	stdout, _, err = executeCLI(t, store, "brand", "search", "--domain", "acme.com")
	require.NoError(t, err)
	assert.Contains(t, stdout, "acme")
	assert.NotContains(t, stdout, "beanery")

	stdout, _, err = executeCLI(t, store, "brand", "search", "nothing-matches-this")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No brands matched.")
}

func TestCLIBrandSwitch(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "First")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "brand", "create", "--name", "Second")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "brand", "switch", "first")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Switched to brand first")

	stdout, _, err = executeCLI(t, store, "brand", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* first\tFirst")

	stdout, _, err = executeCLI(t, store, "brand", "switch", "none")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared active brand")

	stdout, _, err = executeCLI(t, store, "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No active brand.")
}

func TestCLISessionLifecycle(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "session", "begin", "acme", "--goal", "launch prep")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session open for Acme")

	_, _, err = executeCLI(t, store, "task", "start", "draft", "april", "posts")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "task", "done", "keyword", "audit", "--result", "32 phrases")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "blocker", "add", "waiting", "on", "assets")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "note", "tone", "stays", "informal")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "log", "keyword-research", "--target", "landing pages")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, store, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "brand: Acme")
	assert.Contains(t, stdout, "goal: launch prep")
	assert.Contains(t, stdout, "completed: 1, in progress: 1, blockers: 1, notes: 1")

	stdout, _, err = executeCLI(t, store, "session", "end")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session for acme closed")
	assert.Contains(t, stdout, "Handoff saved with 2 next step(s)")

	stdout, _, err = executeCLI(t, store, "handoff", "show", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "done: keyword audit - 32 phrases")
	assert.Contains(t, stdout, "in progress: draft april posts")
	assert.Contains(t, stdout, "1. Continue: draft april posts")
	assert.Contains(t, stdout, "2. Resolve blocker: waiting on assets")
	assert.Contains(t, stdout, "Resuming work on Acme.")

	stdout, _, err = executeCLI(t, store, "history", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 activities")
	assert.Contains(t, stdout, "keyword-research: landing pages")

	// Beginning again surfaces the handoff and leaves it in place.
	stdout, _, err = executeCLI(t, store, "session", "begin", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Resuming work on Acme.")
	assert.Contains(t, stdout, "1. Continue: draft april posts")
}

func TestCLISessionEndWithoutHandoff(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "session", "begin", "acme")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "session", "end", "--no-handoff")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Handoff saved")

	_, _, err = executeCLI(t, store, "handoff", "show", "acme")
	assert.ErrorIs(t, err, domain.ErrHandoffNotFound)
}

func TestCLISessionAbandon(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "session", "begin", "acme")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "session", "abandon")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Abandoned session for acme")

	_, _, err = executeCLI(t, store, "session", "status")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	stdout, _, err = executeCLI(t, store, "history", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No sessions on record.")
}

func TestCLITaskCommandsRequireOpenSession(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "task", "start", "anything")
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestCLIMemoryFlow(t *testing.T) {
	store := newCLIStore(t)

	stdout, _, err := executeCLI(t, store, "memory", "store",
		"--brand", "acme", "--type", "success-pattern", "--category", "content",
		"--content", "short posts outperform", "--metric", "reach=2x")
	require.NoError(t, err)

	id := strings.TrimSpace(strings.TrimPrefix(stdout, "Stored learning "))
	require.NotEmpty(t, id)

	stdout, _, err = executeCLI(t, store, "memory", "list", "--brand", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "short posts outperform")
	assert.Contains(t, stdout, "[acme/success-pattern/medium]")

	_, _, err = executeCLI(t, store, "memory", "confidence", id, "high")
	require.NoError(t, err)

	_, _, err = executeCLI(t, store, "memory", "promote", id)
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, store, "memory", "list", "--brand", "another-brand")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[global/success-pattern/high]")

	_, _, err = executeCLI(t, store, "memory", "delete", id)
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, store, "memory", "list", "--brand", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No learnings matched.")
}

func TestCLIMemoryStoreRejectsBadMetric(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "memory", "store", "--type", "outcome", "--content", "x", "--metric", "not-a-pair")
	assert.Error(t, err)
}

func TestCLIHandoffStepEditing(t *testing.T) {
	store := newCLIStore(t)

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "session", "begin", "acme", "--goal", "launch prep")
	require.NoError(t, err)
	_, _, err = executeCLI(t, store, "session", "end")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, store, "handoff", "step", "add", "review analytics", "--brand", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "now has 2 step(s)")

	stdout, _, err = executeCLI(t, store, "handoff", "step", "remove", "1", "--brand", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "now has 1 step(s)")

	stdout, _, err = executeCLI(t, store, "handoff", "show", "acme")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1. review analytics")
}

func TestCLIContext(t *testing.T) {
	store := newCLIStore(t)

	stdout, _, err := executeCLI(t, store, "context")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No active brand.")

	_, _, err = executeCLI(t, store, "brand", "create", "--name", "Acme", "--industry", "coffee")
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, store, "context")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Active brand: Acme (acme)")
	assert.Contains(t, stdout, "Industry: coffee")
	assert.Contains(t, stdout, "No session open.")
}

func TestCLIStorePathEnvOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	store := t.TempDir()

	_, _, err := executeCLI(t, store, "brand", "create", "--name", "Acme")
	require.NoError(t, err)

	// Records land under the override, not under $HOME/.bm.
	_, err = os.Stat(filepath.Join(store, "brands", "acme.toml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(home, ".bm", "brands"))
	assert.True(t, os.IsNotExist(err))
}
