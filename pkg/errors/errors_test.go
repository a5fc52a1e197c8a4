package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinelIdentity(t *testing.T) {
	sentinel := New("not found")
	err := Wrapf(Wrap(sentinel, "load record"), "handle request %v", 7)
	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "handle request 7:load record:not found", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "whatever"))
	assert.Nil(t, Wrapf(nil, "whatever %v", 1))
	assert.Nil(t, WithStack(nil))
}

func TestWithStackKeepsMessage(t *testing.T) {
	err := WithStack(New("boom"))
	assert.Equal(t, "boom", err.Error())
}

func TestFullStackNamesCaller(t *testing.T) {
	err := New("boom").(*fundamental)
	frames := err.stack.fullStack()
	assert.NotEmpty(t, frames)
	var found bool
	for _, frame := range frames {
		if strings.Contains(frame, "TestFullStackNamesCaller") {
			found = true
		}
	}
	assert.True(t, found)
}
