package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuePair_RoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("super-secret"), time.Minute, time.Hour)

	pair, err := iss.IssuePair(42)
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	id, err := iss.Parse(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	id, err = iss.Parse(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestParse_WrongType(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("k"), time.Minute, time.Hour)
	pair, err := iss.IssuePair(1)
	require.NoError(t, err)

	_, err = iss.Parse(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = iss.Parse(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParse_Expired(t *testing.T) {
	t.Parallel()

	iss := NewIssuer([]byte("k"), time.Minute, time.Hour)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, err := iss.Issue(1, TokenTypeAccess)
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Parse(tok, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewIssuer([]byte("right"), time.Minute, time.Hour).Issue(1, TokenTypeAccess)
	require.NoError(t, err)

	_, err = NewIssuer([]byte("wrong"), time.Minute, time.Hour).Parse(tok, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer([]byte("k"), time.Minute, time.Hour).Parse("not.a.jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
