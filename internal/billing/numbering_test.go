package billing_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fynix/internal/billing"
	"fynix/internal/domain"
)

func TestAssignNumber_Format(t *testing.T) {
	n, err := billing.AssignNumber(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), "1234")
	require.NoError(t, err)
	assert.Equal(t, "INV-202501-1234", n)
}

func TestAssignNumber_IssueDateChangeKeepsToken(t *testing.T) {
	token, err := billing.NewSessionToken(nil)
	require.NoError(t, err)

	first, err := billing.AssignNumber(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), token)
	require.NoError(t, err)
	second, err := billing.AssignNumber(time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC), token)
	require.NoError(t, err)

	p1, t1, ok := billing.ParseNumber(first)
	require.True(t, ok)
	p2, t2, ok := billing.ParseNumber(second)
	require.True(t, ok)

	assert.Equal(t, "202503", p1)
	assert.Equal(t, "202611", p2)
	assert.Equal(t, token, t1)
	assert.Equal(t, t1, t2)
}

func TestAssignNumber_RejectsBadToken(t *testing.T) {
	for _, tok := range []string{"", "123", "12345", "abcd"} {
		_, err := billing.AssignNumber(time.Now(), tok)
		assert.ErrorIs(t, err, domain.ErrInvalidSessionToken, tok)
	}
}

func TestNewSessionToken_FourDigits(t *testing.T) {
	tok, err := billing.NewSessionToken(bytes.NewReader([]byte{0, 0, 0, 7, 1, 2, 3, 4}))
	require.NoError(t, err)
	assert.Len(t, tok, 4)

	for i := 0; i < 50; i++ {
		tok, err := billing.NewSessionToken(nil)
		require.NoError(t, err)
		assert.Regexp(t, `^\d{4}$`, tok)
	}
}

func TestNewSessionToken_ReaderFailure(t *testing.T) {
	_, err := billing.NewSessionToken(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestParseNumber_Invalid(t *testing.T) {
	_, _, ok := billing.ParseNumber("INV-2025-1234")
	assert.False(t, ok)
}
