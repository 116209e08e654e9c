package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedSeq, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedAt, "Created at time should match after decode")
	assert.Equal(t, int64(42), decodedSeq)

	// Non-UTC input round-trips to the same instant.
	local := createdAt.In(time.FixedZone("WIB", 7*3600))
	decodedAt, _, err = DecodeToken(EncodeToken(local, 1))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("notadate|3")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")

	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2024-05-15T00:00:00Z|x")))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")
}

func TestBefore(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	assert.True(t, Before(at.Add(-time.Second), 9, at, 1))
	assert.False(t, Before(at.Add(time.Second), 1, at, 9))
	assert.True(t, Before(at, 1, at, 2))
	assert.False(t, Before(at, 2, at, 2))
}
