package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, tty bool, answers ...string) {
	t.Helper()
	origRead, origTTY := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTTY })

	isTerminal = func(int) bool { return tty }
	readPassword = func(int) ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func TestPromptPassword(t *testing.T) {
	stubTerminal(t, true, "secret1", "secret1")

	var out bytes.Buffer
	pw, err := promptPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret1", pw)
	assert.Contains(t, out.String(), "Password (again): ")
}

func TestPromptPasswordMismatch(t *testing.T) {
	stubTerminal(t, true, "secret1", "secret2")

	_, err := promptPassword(&bytes.Buffer{})
	assert.EqualError(t, err, "passwords do not match")
}

func TestPromptPasswordNeedsTerminal(t *testing.T) {
	stubTerminal(t, false)

	_, err := promptPassword(&bytes.Buffer{})
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"serve", "route:list", "migrate", "migrate:rollback", "migrate:status", "seed", "db:wait", "user:createsuperuser", "user:delete"} {
		assert.True(t, names[n], n)
	}
}
