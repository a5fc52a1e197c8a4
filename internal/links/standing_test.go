package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"paylink.io/paylink-social/internal/database"
)

func votesFor(choices ...int) []*database.VoteLinks {
	votes := make([]*database.VoteLinks, 0, len(choices))
	for _, c := range choices {
		votes = append(votes, &database.VoteLinks{Choice: c})
	}
	return votes
}

func TestTallyChoices(t *testing.T) {
	counts := tallyChoices(3, votesFor(0, 1, 1, 2, 1))
	assert.Equal(t, []int{1, 3, 1}, counts)
}

func TestTallyChoicesDropsOutOfRange(t *testing.T) {
	counts := tallyChoices(2, votesFor(0, -1, 5, 1, 1))
	assert.Equal(t, []int{1, 2}, counts)
}

func TestTallyChoicesNoVotes(t *testing.T) {
	assert.Equal(t, []int{0, 0}, tallyChoices(2, nil))
}

func TestLeadingOptionsSingleWinner(t *testing.T) {
	options := []string{"yes", "no", "abstain"}
	assert.Equal(t, []string{"no"}, leadingOptions(options, []int{1, 3, 1}))
}

func TestLeadingOptionsTie(t *testing.T) {
	options := []string{"yes", "no", "abstain"}
	assert.Equal(t, []string{"yes", "no"}, leadingOptions(options, []int{2, 2, 1}))
}

func TestLeadingOptionsNoVotes(t *testing.T) {
	assert.Nil(t, leadingOptions([]string{"yes", "no"}, []int{0, 0}))
}
