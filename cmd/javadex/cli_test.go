package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"import", "list", "delete", "search", "lint", "export", "check", "show", "serve"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout, _, err := run(t, newMain(t), "--help")
	require.NoError(t, err)

	for _, cmd := range commands {
		assert.Contains(t, stdout, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, stdout, "Usage:", "Help should have Kong-style Usage prefix")
	assert.Contains(t, stdout, "Flags:", "Help should have Kong-style Flags section")
}

func TestCLI_ParsesFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"search", "turbine", "doPerform", "-n", "3", "--package", "org.apache.turbine.modules"})
	require.NoError(t, err)
	assert.Equal(t, 3, cli.Search.Limit)
	assert.Equal(t, "org.apache.turbine.modules", cli.Search.Package)

	_, err = parser.Parse([]string{"export", "turbine", "--format", "yaml"})
	assert.Error(t, err)
}
