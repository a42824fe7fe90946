package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/orbitpanel/orbitsweep/internal/domain/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_UseLine(t *testing.T) {
	assert.Equal(t, "orbitsweep", rootCmd.Use)
}

func TestRootCommand_HasPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	t.Run("manifest flag exists", func(t *testing.T) {
		flag := flags.Lookup("manifest")
		require.NotNil(t, flag)
		assert.Empty(t, flag.DefValue)
	})

	t.Run("verbose flag exists", func(t *testing.T) {
		flag := flags.Lookup("verbose")
		require.NotNil(t, flag)
		assert.Equal(t, "false", flag.DefValue)
	})

	t.Run("log-json flag exists", func(t *testing.T) {
		flag := flags.Lookup("log-json")
		require.NotNil(t, flag)
		assert.Equal(t, "false", flag.DefValue)
	})

	t.Run("yes flag exists", func(t *testing.T) {
		flag := flags.Lookup("yes")
		require.NotNil(t, flag)
		assert.Equal(t, "false", flag.DefValue)
	})
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["uninstall"])
	assert.True(t, names["plan"])
	assert.True(t, names["version"])
}

func TestFormatError_PlainError(t *testing.T) {
	err := errors.New("something broke")
	assert.Equal(t, "something broke", formatError(err))
}

func TestFormatError_UserError(t *testing.T) {
	err := manifest.NewUserError(manifest.ErrCodeManifestParse, "manifest is not valid YAML").
		WithContext("/etc/orbitsweep/manifest.yaml").
		WithSuggestion("Check the indentation around the packages section.")

	msg := formatError(err)
	assert.Contains(t, msg, "manifest is not valid YAML")
	assert.Contains(t, msg, "(at /etc/orbitsweep/manifest.yaml)")
	assert.Contains(t, msg, "Suggestion: Check the indentation")
}

func TestFormatError_VerboseShowsUnderlying(t *testing.T) {
	err := manifest.NewUserError(manifest.ErrCodeManifestParse, "manifest is not valid YAML").
		WithUnderlying(errors.New("yaml: line 4: mapping values are not allowed"))

	verbose = true
	defer func() { verbose = false }()

	msg := formatError(err)
	assert.Contains(t, msg, "Technical details:")
	assert.Contains(t, msg, "line 4")
}

func TestPrintErrorTo(t *testing.T) {
	var buf bytes.Buffer
	printErrorTo(&buf, errors.New("disk on fire"))
	assert.Equal(t, "Error: disk on fire\n", buf.String())
}
