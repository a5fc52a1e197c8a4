package links

import (
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/errors"
)

// VoteStanding is the current result of a vote session computed from the
// signed votes in the store.
type VoteStanding struct {
	Topic    string
	Options  []string
	Counts   []int
	Winners  []string
	Total    int
	Finished bool
}

// VoteResult tallies the stored signed votes of a session. It reflects what
// the store has seen, which may trail the chain for votes still waiting on
// their completion call.
func VoteResult(createID int64) (*VoteStanding, error) {
	session, err := database.CreateLinks{}.SelectByID(createID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.Wrap(ErrNotFound, "vote session")
	}
	votes, err := database.VoteLinks{}.SelectCompletedByCreateID(createID)
	if err != nil {
		return nil, err
	}
	options := session.Options.Strings()
	counts := tallyChoices(len(options), votes)
	standing := &VoteStanding{
		Topic:    session.Topic,
		Options:  options,
		Counts:   counts,
		Winners:  leadingOptions(options, counts),
		Finished: session.Finished != nil && *session.Finished,
	}
	for _, c := range counts {
		standing.Total += c
	}
	return standing, nil
}

// tallyChoices counts votes per option index, dropping out-of-range choices.
func tallyChoices(optionCount int, votes []*database.VoteLinks) []int {
	counts := make([]int, optionCount)
	for _, vote := range votes {
		if vote.Choice < 0 || vote.Choice >= optionCount {
			continue
		}
		counts[vote.Choice]++
	}
	return counts
}

// leadingOptions returns the options holding the current plurality. Empty
// when nobody voted yet.
func leadingOptions(options []string, counts []int) []string {
	var max int
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return nil
	}
	var leaders []string
	for i, c := range counts {
		if c == max && i < len(options) {
			leaders = append(leaders, options[i])
		}
	}
	return leaders
}
