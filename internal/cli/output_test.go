package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/hireboard/internal/models"
	"github.com/thenoetrevino/hireboard/internal/reconcile"
)

type mockDataWithID struct {
	ID   string
	Name string
}

func (m mockDataWithID) GetID() string {
	return m.ID
}

func newTestFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: &out, ErrOut: &errOut}, &out, &errOut
}

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	require.NoError(t, f.Success(map[string]any{"test": "value"}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "value", result["data"].(map[string]any)["test"])
}

func TestOutputFormatter_Success_Quiet(t *testing.T) {
	f, out, _ := newTestFormatter(false, true)
	require.NoError(t, f.Success(mockDataWithID{ID: "cand-7", Name: "Ada"}))
	assert.Equal(t, "cand-7\n", out.String())

	// Without an id, quiet falls through to the human format
	out.Reset()
	require.NoError(t, f.Success("plain"))
	assert.Equal(t, "plain\n", out.String())
}

func TestOutputFormatter_ErrorWithSuggestion(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "missing", "try list"))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errData["code"])
	assert.Equal(t, "try list", errData["suggestion"])

	f, _, errOut := newTestFormatter(false, false)
	require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "missing", "try list"))
	assert.Contains(t, errOut.String(), "Error: missing")
	assert.Contains(t, errOut.String(), "Suggestion: try list")
}

func TestOutputFormatter_Fail(t *testing.T) {
	f, out, _ := newTestFormatter(true, false)
	failure := reconcile.Classify(reconcile.OpMove,
		models.NewAPIError(models.CodeInvalidTransition, "Cannot move directly from Applied to Offer."))

	err := f.Fail(failure)
	assert.Equal(t, ExitValidation, ExitCodeFor(err))

	var result map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	errData := result["error"].(map[string]any)
	assert.Equal(t, models.CodeInvalidTransition, errData["code"])
	assert.Equal(t, "Cannot move directly from Applied to Offer.", errData["message"])
}
