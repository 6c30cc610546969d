package sharing

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProducesDistinctTokens(t *testing.T) {
	issued := make(map[string]bool)
	issuer := NewIssuer(func(ctx context.Context, token string) (bool, error) {
		return issued[token], nil
	})

	// Simulates N "enable sharing" calls across distinct notes.
	for i := 0; i < 100; i++ {
		token, err := issuer.Issue(context.Background())
		require.NoError(t, err)
		assert.False(t, issued[token], "token %q issued twice", token)
		assert.True(t, strings.HasPrefix(token, "share-"))
		issued[token] = true
	}
	assert.Len(t, issued, 100)
}

func TestIssueRetriesOnCollision(t *testing.T) {
	calls := 0
	issuer := NewIssuer(func(ctx context.Context, token string) (bool, error) {
		calls++
		// First three candidates collide.
		return calls <= 3, nil
	})

	token, err := issuer.Issue(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 4, calls)
}

func TestIssueFallsBackToUUIDAfterCap(t *testing.T) {
	calls := 0
	issuer := NewIssuer(func(ctx context.Context, token string) (bool, error) {
		calls++
		// Every bounded-retry candidate collides; only the fallback is free.
		return calls <= defaultMaxAttempts, nil
	})

	token, err := issuer.Issue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaultMaxAttempts+1, calls)
	assert.True(t, strings.HasPrefix(token, "share-"))
	// uuid fallback shape: share-xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx
	assert.Len(t, strings.TrimPrefix(token, "share-"), 36)
}

func TestIssueErrExhausted(t *testing.T) {
	issuer := NewIssuer(func(ctx context.Context, token string) (bool, error) {
		return true, nil
	})

	_, err := issuer.Issue(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestIssuePropagatesLookupError(t *testing.T) {
	issuer := NewIssuer(func(ctx context.Context, token string) (bool, error) {
		return false, context.DeadlineExceeded
	})

	_, err := issuer.Issue(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
