package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/javadex"
	main "github.com/fwojciec/javadex/cmd/javadex"
	"github.com/stretchr/testify/require"
)

// turbineIndex is a member-search index excerpt without structural errors.
const turbineIndex = `memberSearchIndex = [` +
	`{"p":"org.apache.turbine.test","c":"BaseTestCase","l":"BaseTestCase()","url":"%3Cinit%3E()"},` +
	`{"p":"org.apache.turbine.test","c":"BaseTestCase","l":"readPropertiesFile(String)","url":"readPropertiesFile(java.lang.String)"},` +
	`{"p":"org.apache.turbine.pipeline","c":"PipelineTest.Worker","l":"invoke(PipelineData)","url":"invoke(org.apache.turbine.pipeline.PipelineData)"},` +
	`{"p":"org.apache.turbine.modules","c":"ActionEvent","l":"actionEventCalls"}` +
	`];updateSearchResults();`

const turbineBase = "https://turbine.apache.org/apidocs/"

func turbineMembers() []*javadex.Member {
	return []*javadex.Member{
		{Package: "org.apache.turbine.test", Class: "BaseTestCase", Label: "BaseTestCase()", URL: "%3Cinit%3E()"},
		{Package: "org.apache.turbine.test", Class: "BaseTestCase", Label: "readPropertiesFile(String)", URL: "readPropertiesFile(java.lang.String)"},
		{Package: "org.apache.turbine.pipeline", Class: "PipelineTest.Worker", Label: "invoke(PipelineData)", URL: "invoke(org.apache.turbine.pipeline.PipelineData)"},
		{Package: "org.apache.turbine.modules", Class: "ActionEvent", Label: "actionEventCalls"},
	}
}

// writeFile writes content to name inside a fresh temp dir and returns the path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// newDeps returns Dependencies with buffered output and default config.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cfg := main.Config{}
	cfg.ApplyDefaults()
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, stdout, stderr
}
