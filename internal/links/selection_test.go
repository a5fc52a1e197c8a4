package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paylink.io/paylink-social/pkg/errors"
)

func TestSelectionRoundTrip(t *testing.T) {
	for _, kind := range []SelectionKind{SelectionVote, SelectionTally, SelectionResult} {
		value := Selection{Kind: kind, ID: 42}.Value()
		parsed, err := ParseSelection(value)
		require.NoError(t, err)
		assert.Equal(t, kind, parsed.Kind)
		assert.EqualValues(t, 42, parsed.ID)
	}
}

func TestParseSelectionMalformed(t *testing.T) {
	for _, value := range []string{
		"",
		"votelist",
		"votelist_",
		"votelist_abc",
		"banlist_7",
		"_7",
	} {
		_, err := ParseSelection(value)
		assert.Truef(t, errors.Is(err, ErrInvalidInput), "value %q", value)
	}
}

func TestOptionChoiceRoundTrip(t *testing.T) {
	value := OptionChoiceValue(3)
	assert.Equal(t, "option_3", value)
	choice, err := ParseOptionChoice(value)
	require.NoError(t, err)
	assert.Equal(t, 3, choice)
}

func TestParseOptionChoiceMalformed(t *testing.T) {
	for _, value := range []string{"", "option_", "option_x", "choice_1"} {
		_, err := ParseOptionChoice(value)
		assert.Truef(t, errors.Is(err, ErrInvalidInput), "value %q", value)
	}
}
