package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/errors"
)

func TestWebURL(t *testing.T) {
	config.Global = &config.Configuration{
		Web: config.Web{Origin: "https://pay.example.io/"},
	}
	assert.Equal(t, "https://pay.example.io/send/abc123", WebURL(KindSend, "abc123"))
	assert.Equal(t, "https://pay.example.io/connect/tok", WebURL(KindConnect, "tok"))
}

func TestValidAddress(t *testing.T) {
	assert.True(t, ValidAddress("0xdeadbeef"))
	assert.False(t, ValidAddress(database.PlaceholderAddress))
	assert.False(t, ValidAddress(""))
	assert.False(t, ValidAddress("deadbeef"))
}

func TestCreateWithTokenUnrecoverableError(t *testing.T) {
	boom := errors.New("connection refused")
	var attempts int
	_, err := createWithToken(func(token string) error {
		attempts++
		return boom
	})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestCreateWithTokenRegeneratesOnConflict(t *testing.T) {
	var tokens []string
	_, err := createWithToken(func(token string) error {
		tokens = append(tokens, token)
		if len(tokens) == 1 {
			return errors.New(`duplicate key value violates unique constraint "idx_user_links_link"`)
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Len(t, tokens, 2)
	assert.NotEqual(t, tokens[0], tokens[1])
}
