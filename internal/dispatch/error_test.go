package dispatch

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusPerKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{unsupportedTool("x"), http.StatusBadRequest},
		{invalidFileCount("x", "m"), http.StatusBadRequest},
		{invalidOption("x", "m"), http.StatusBadRequest},
		{processingFailure("x", "m", nil), http.StatusInternalServerError},
		{ArtifactNotFound("gone.pdf"), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.HTTPStatus(), "kind %d", tc.err.Kind)
	}
}

func TestArtifactNotFound(t *testing.T) {
	err := ArtifactNotFound("merged_123.pdf")

	assert.Equal(t, KindArtifactNotFound, err.Kind)
	assert.Equal(t, "File not found", err.Message)
	require.NotNil(t, err.Cause)
	assert.Contains(t, err.Cause.Error(), "merged_123.pdf")
}

func TestAsErrorUnwrapsChains(t *testing.T) {
	inner := invalidOption("tool", "bad value")
	wrapped := fmt.Errorf("request failed: %w", inner)

	de, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindInvalidOption, de.Kind)

	_, ok = AsError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}
