package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/core"
)

// run executes the CLI against dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func addNote(t *testing.T, dir string, args ...string) core.Note {
	t.Helper()
	out, err := run(t, dir, append([]string{"add", "--json"}, args...)...)
	require.NoError(t, err)

	var n core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &n))
	return n
}

func TestCLI_NoteLifecycle(t *testing.T) {
	dir := t.TempDir()

	a := addNote(t, dir, "--title", "A", "--content", "x")
	b := addNote(t, dir, "--title", "B", "--content", "y", "--color", "#cce5ff", "--tag", "work")
	bid := strconv.FormatInt(b.ID, 10)

	out, err := run(t, dir, "list", "--json")
	require.NoError(t, err)
	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "A", notes[0].Title)
	assert.Equal(t, "B", notes[1].Title)

	_, err = run(t, dir, "delete", strconv.FormatInt(a.ID, 10))
	require.NoError(t, err)

	_, err = run(t, dir, "comment", "add", bid, "nice")
	require.NoError(t, err)
	_, err = run(t, dir, "tag", "add", bid, "urgent", "work")
	require.NoError(t, err)

	out, err = run(t, dir, "show", bid, "--json")
	require.NoError(t, err)
	var shown core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Len(t, shown.Comments, 1)
	assert.Equal(t, "nice", shown.Comments[0].Text)
	assert.Equal(t, []string{"work", "urgent"}, shown.Tags)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Light Blue")
	assert.NotContains(t, out, "White")

	assert.FileExists(t, filepath.Join(dir, "notes.json"))
}

func TestCLI_ListFilters(t *testing.T) {
	dir := t.TempDir()
	addNote(t, dir, "--title", "Sprint", "--content", "plan", "--tag", "work/urgent")
	addNote(t, dir, "--title", "Milk", "--content", "buy milk", "--tag", "home")

	out, err := run(t, dir, "list", "--tag", "work/*")
	require.NoError(t, err)
	assert.Contains(t, out, "Sprint")
	assert.NotContains(t, out, "Milk")

	out, err = run(t, dir, "list", "--search", "MILK")
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.NotContains(t, out, "Sprint")
}

func TestCLI_Edit(t *testing.T) {
	dir := t.TempDir()
	n := addNote(t, dir, "--title", "A", "--content", "x")
	id := strconv.FormatInt(n.ID, 10)

	_, err := run(t, dir, "edit", id, "--title", "A2")
	require.NoError(t, err)

	out, err := run(t, dir, "show", id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# A2\n"))
	assert.Contains(t, out, "x")

	_, err = run(t, dir, "edit", id)
	assert.Error(t, err)
}

func TestCLI_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "add", "--title", "A")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = run(t, dir, "show", "42")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = run(t, dir, "show", "abc")
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = run(t, dir, "delete", "42")
	assert.NoError(t, err, "deleting an unknown id is not an error")
}

func TestCLI_ConfigFile(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "init", "--adapter", "sqlite", "--versioning=false", "--save-config")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "jotter.yaml"))

	addNote(t, dir, "--title", "A", "--content", "x")
	assert.NoFileExists(t, filepath.Join(dir, "notes.json"), "jotter.yaml selects sqlite")
	assert.FileExists(t, filepath.Join(dir, ".jotter", "jotter.db"))

	out, err := run(t, dir, "status")
	require.NoError(t, err)
	var state core.StoreState
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, 1, state.Notes)
	assert.Equal(t, "slot", state.StorageType)
}

func TestCLI_ColorsAndVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "colors")
	require.NoError(t, err)
	assert.Contains(t, out, "#ffffff  White (Default)")
	assert.Equal(t, 6, strings.Count(out, "\n"))

	out, err = run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jotter version")
}

func TestCLI_AddKeepsCommasInTags(t *testing.T) {
	dir := t.TempDir()
	n := addNote(t, dir, "--title", "A", "--content", "x", "--tag", "a,b", "--tag", "c")
	assert.Equal(t, []string{"a,b", "c"}, n.Tags)
}
