package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymous_StableAcrossSignIns(t *testing.T) {
	p := NewAnonymous()

	first, err := p.SignIn(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := p.SignIn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnonymous_DistinctPerProvider(t *testing.T) {
	a, err := NewAnonymous().SignIn(context.Background())
	require.NoError(t, err)
	b, err := NewAnonymous().SignIn(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
