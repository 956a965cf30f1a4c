package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Session(t *testing.T) {
	cfg := withTempConfig(t)
	initVault(t, cfg)

	withInput(t, `add -p x "My Site"
list
get -show "my site"
lock
list
init
strength Tr0ub4dor&Zebra
bogus
get
help
exit
`)
	out, err := runCmd(t, shellCmd{}, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Vault unlocked.")
	assert.Contains(t, out, "title: My Site")
	assert.Contains(t, out, "password: x")
	assert.Contains(t, out, "Vault locked.")
	assert.Contains(t, out, "Total: 1")
	assert.Contains(t, out, "init is not available inside the shell")
	assert.Contains(t, out, "Strength: Strong")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Usage: get [-show] <id|title>")
	assert.Contains(t, out, "Leave the shell")
}

func TestShell_EOFAndRelockPrompt(t *testing.T) {
	cfg := withTempConfig(t)
	initVault(t, cfg)
	cfg.MasterPassword = ""

	// пароль при входе, затем lock и повторный ввод пароля для list
	withInput(t, testMaster+"\nlock\nlist\n"+testMaster+"\n")
	out, err := runCmd(t, shellCmd{}, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No entries")
}

func TestSplitArgs(t *testing.T) {
	args, err := splitArgs(`add -u "john doe" "My  Site"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"add", "-u", "john doe", "My  Site"}, args)

	args, err = splitArgs(`get ""`)
	require.NoError(t, err)
	assert.Equal(t, []string{"get", ""}, args)

	_, err = splitArgs(`get "open`)
	assert.ErrorIs(t, err, ErrUsage)
}
