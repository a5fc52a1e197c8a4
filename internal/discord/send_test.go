package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserMention(t *testing.T) {
	id, ok := parseUserMention("<@175928847299117063>")
	assert.True(t, ok)
	assert.Equal(t, "175928847299117063", id)

	// nickname mention form
	id, ok = parseUserMention("<@!175928847299117063>")
	assert.True(t, ok)
	assert.Equal(t, "175928847299117063", id)
}

func TestParseUserMentionRejectsNonMentions(t *testing.T) {
	for _, input := range []string{
		"0xdeadbeef",
		"<@>",
		"<@abc>",
		"<#175928847299117063>",
		"175928847299117063",
	} {
		_, ok := parseUserMention(input)
		assert.Falsef(t, ok, "input %q", input)
	}
}
