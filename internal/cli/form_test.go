package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcoot/sessionflow/internal/model"
)

func TestFormViewRendersProgressAndFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	view := NewFormView(NewOutput("text", &stdout, &stderr), "Signing in...")

	view.render(model.Submitting())
	assert.True(t, view.Disabled())

	view.render(model.Failed(model.FailureCredential, "invalid credentials"))
	assert.False(t, view.Disabled())
	assert.Equal(t, model.FailureCredential, view.State().Kind)

	assert.Equal(t, "Signing in...\nError: invalid credentials\n", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestFormViewIsQuietInJSONMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	view := NewFormView(NewOutput("json", &stdout, &stderr), "Signing in...")

	view.render(model.Submitting())
	view.render(model.Idle())

	assert.Empty(t, stderr.String())
	assert.Empty(t, stdout.String())
}
