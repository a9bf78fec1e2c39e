package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyIDDeterministic(t *testing.T) {
	first := PropertyID("org-1", "mls-100")
	second := PropertyID("org-1", "mls-100")
	assert.Equal(t, first, second)

	_, err := uuid.Parse(first)
	require.NoError(t, err)
}

func TestPropertyIDTenantIsolation(t *testing.T) {
	assert.NotEqual(t,
		PropertyID("org-1", "mls-100"),
		PropertyID("org-2", "mls-100"),
		"same feed id under different organizations maps to different rows")
}

func TestPropertyIDSeparatorAmbiguity(t *testing.T) {
	// "a/b"+"c" and "a"+"b/c" must not collide.
	assert.NotEqual(t, PropertyID("a/b", "c"), PropertyID("a", "b/c"))
}
