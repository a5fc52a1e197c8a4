package links

import (
	"fmt"
	"strconv"
	"strings"

	"paylink.io/paylink-social/pkg/errors"
)

// SelectionKind tags a choice-list value with the action it belongs to, so
// the follow-up interaction dispatches on the value alone. The two-step vote
// flow is deliberately stateless between chat round trips: the chosen
// session id travels inside the control value, never in server session
// state.
type SelectionKind string

const (
	SelectionVote   = SelectionKind("votelist")
	SelectionTally  = SelectionKind("tallylist")
	SelectionResult = SelectionKind("resultlist")
)

type Selection struct {
	Kind SelectionKind
	ID   int64
}

func (s Selection) Value() string {
	return fmt.Sprintf("%v_%v", s.Kind, s.ID)
}

// ParseSelection decodes a kind-prefixed choice value back into its tagged
// form.
func ParseSelection(value string) (Selection, error) {
	idx := strings.LastIndex(value, "_")
	if idx < 0 {
		return Selection{}, errors.Wrapf(ErrInvalidInput, "malformed selection value %v", value)
	}
	kind := SelectionKind(value[:idx])
	switch kind {
	case SelectionVote, SelectionTally, SelectionResult:
	default:
		return Selection{}, errors.Wrapf(ErrInvalidInput, "unknown selection kind %v", value)
	}
	id, err := strconv.ParseInt(value[idx+1:], 10, 64)
	if err != nil {
		return Selection{}, errors.Wrapf(ErrInvalidInput, "malformed selection id %v", value)
	}
	return Selection{Kind: kind, ID: id}, nil
}

const optionChoicePrefix = "option_"

// OptionChoiceValue encodes a vote option index for the second select of the
// vote flow.
func OptionChoiceValue(index int) string {
	return fmt.Sprintf("%v%v", optionChoicePrefix, index)
}

func ParseOptionChoice(value string) (int, error) {
	if !strings.HasPrefix(value, optionChoicePrefix) {
		return 0, errors.Wrapf(ErrInvalidInput, "malformed option choice %v", value)
	}
	index, err := strconv.Atoi(strings.TrimPrefix(value, optionChoicePrefix))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidInput, "malformed option index %v", value)
	}
	return index, nil
}
