package pagination_test

import (
	"testing"
	"time"

	"github.com/expensio/expensio_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 6, 1, 12, 30, 45, 123456789, time.UTC)
	id := "exp-42"

	token := pagination.EncodeCursorToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeCursorToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeCursorToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeCursorToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeCursorToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
