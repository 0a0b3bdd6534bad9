package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jonathan/document-generator/internal/config"
	"github.com/jonathan/document-generator/internal/layout"
	"github.com/jonathan/document-generator/internal/llm"
	"github.com/jonathan/document-generator/internal/rendering"
)

type fakeClient struct {
	text string
	err  error
}

func (f *fakeClient) GenerateContent(context.Context, string) (string, error) { return f.text, f.err }
func (f *fakeClient) GetModel() string                                          { return "fake-model" }
func (f *fakeClient) Close() error                                              { return nil }

type fakeRenderer struct {
	pdf    []byte
	err    error
	blocks []layout.Block
}

func (f *fakeRenderer) Render(_ context.Context, _ string, blocks []layout.Block, _ rendering.Geometry) ([]byte, error) {
	f.blocks = blocks
	return f.pdf, f.err
}

// useFakes swaps the model client and renderer for the duration of the test.
func useFakes(t *testing.T, client *fakeClient, renderer *fakeRenderer) {
	t.Helper()
	origClient, origRenderer := newLLMClient, newRenderer
	newLLMClient = func(context.Context, *config.Config) (llm.Client, error) { return client, nil }
	newRenderer = func(*config.Config) rendering.Renderer { return renderer }
	t.Cleanup(func() {
		newLLMClient, newRenderer = origClient, origRenderer
	})
}

// execute runs the root command in-process with the given stdin.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, stdin, args...)
	return out, err
}

// executeWithStderr is execute that also returns what the command wrote to stderr.
func executeWithStderr(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	for _, key := range []string{"DOCGEN_LLM_API_KEY", "DOCGEN_LLM_MODEL", "DOCGEN_RENDER_PAGE_SIZE", "DOCGEN_LOG_MODE"} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func resetFlags() {
	configPath, verbose = "", false
	generateIn, generateOut = "", ""
	promptIn = ""
	classifyIn, classifyJSON, classifyNoDedupe = "", false, false
	servePort = 0
}
