package utils

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "explorer"},
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := RevealCommand(tt.goos, "/out")
			assert.Equal(t, tt.want, name)
			assert.Equal(t, []string{"/out"}, args)
		})
	}
}

func TestRevealFolder(t *testing.T) {
	orig := startCommand
	t.Cleanup(func() { startCommand = orig })

	var gotArgs []string
	startCommand = func(name string, args ...string) error {
		gotArgs = args
		return nil
	}

	dir := t.TempDir()
	require.NoError(t, RevealFolder(dir))
	assert.Equal(t, []string{dir}, gotArgs)

	err := RevealFolder(filepath.Join(dir, "output"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist yet")

	startCommand = func(string, ...string) error { return errors.New("no display") }
	require.Error(t, RevealFolder(dir))
}
