package database

import (
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"paylink.io/paylink-social/pkg/errors"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKeyErr(
		errors.Wrap(&pgconn.PgError{Code: "23505"}, "store link record")))
	assert.True(t, IsDuplicateKeyErr(
		errors.New(`duplicate key value violates unique constraint "idx_send_links_link"`)))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))
}

func TestJSONBArrayScanSources(t *testing.T) {
	var fromBytes JSONBArray
	assert.NoError(t, fromBytes.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, []string{"a", "b"}, fromBytes.Strings())

	var fromString JSONBArray
	assert.NoError(t, fromString.Scan(`["c"]`))
	assert.Equal(t, []string{"c"}, fromString.Strings())

	var fromNil JSONBArray
	assert.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil.Strings())
}
