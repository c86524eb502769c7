package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMarker(t *testing.T) {
	assert.Equal(t, "transferred: true", WithMarker(""))
	assert.Equal(t, "Lunch | transferred: true", WithMarker("Lunch"))
}

func TestIsReconciled(t *testing.T) {
	assert.False(t, IsReconciled(""))
	assert.False(t, IsReconciled("Lunch"))
	assert.True(t, IsReconciled("transferred: true"))
	assert.True(t, IsReconciled("Lunch | transferred: true"))
	// Marker anywhere in the note counts; the filter has no way to tell a
	// hand-typed marker apart from one this tool wrote.
	assert.True(t, IsReconciled("note transferred: true trailing"))
}

func TestMarkingIsIdempotentUnderFilter(t *testing.T) {
	first := WithMarker("Lunch")
	assert.Equal(t, "Lunch | transferred: true", first)
	// A second pass never happens: once marked, the note is filtered out.
	assert.True(t, IsReconciled(first))
}
