package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCutUUIDString(t *testing.T) {
	token := NewCutUUIDString()
	assert.Len(t, token, 32)
	assert.False(t, strings.Contains(token, "-"))
	assert.NotEqual(t, token, NewCutUUIDString())
}

func TestDecodeTimeInSnowflake(t *testing.T) {
	// message id from the discord docs
	created := DecodeTimeInSnowflake("175928847299117063")
	require.NotNil(t, created)
	assert.Equal(t, 2016, created.UTC().Year())
}

func TestDecodeTimeInSnowflakeInvalid(t *testing.T) {
	assert.Nil(t, DecodeTimeInSnowflake("not-a-snowflake"))
	assert.Nil(t, DecodeTimeInSnowflake(""))
}

func TestMustGetJSONString(t *testing.T) {
	assert.Equal(t, "{}", MustGetJSONString(nil))
	assert.Equal(t, `{"a":1}`, MustGetJSONString(map[string]int{"a": 1}))
}
