package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	base := errors.New("boom")

	err := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, "bad flag", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "query failed", base)
	assert.Equal(t, "query failed: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, base)

	// Non-ExitError defaults to failure.
	assert.Equal(t, ExitFailure, GetExitCode(base))

	// Wrapped ExitError is still found by errors.As.
	outer := fmt.Errorf("context: %w", wrapped)
	assert.Equal(t, ExitFailure, GetExitCode(outer))
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success(TablesResult{Tables: []string{"albums", "tracks"}}))
	assert.Equal(t, "albums\ntracks\n", buf.String())
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf, TraceID: "trace-1"}

	require.NoError(t, f.Success(TablesResult{Tables: []string{"albums"}}))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.Empty(t, resp.Error)
}

func TestOutputFormatter_FailureJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf, TraceID: "trace-2"}

	require.NoError(t, f.Failure(errors.New("no such table")))

	var resp Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "no such table", resp.Error)
	assert.Equal(t, "trace-2", resp.TraceID)
}

func TestOutputFormatter_FailureTextGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &out, ErrWriter: &errOut}

	require.NoError(t, f.Failure(errors.New("boom")))
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: boom\n", errOut.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("query: %s", "SELECT 1;")
	assert.Empty(t, out.String(), "diagnostics must not corrupt the JSON stream")
	assert.Equal(t, "query: SELECT 1;\n", errOut.String())

	errOut.Reset()
	f.Verbose = false
	f.VerboseLog("hidden")
	assert.Empty(t, errOut.String())
}
