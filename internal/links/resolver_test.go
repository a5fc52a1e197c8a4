package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/errors"
)

// fakeBindingHistory serves binding rows newest-first the way the cursor
// queries do against the store.
func fakeBindingHistory(rows []*database.UserLinks) cursorQuery {
	return func(before *int64) (*database.UserLinks, error) {
		var latest *database.UserLinks
		for _, row := range rows {
			if before != nil && row.GenerateTime >= *before {
				continue
			}
			if latest == nil || row.GenerateTime > latest.GenerateTime {
				latest = row
			}
		}
		return latest, nil
	}
}

func TestLatestValidSkipsPendingBindings(t *testing.T) {
	rows := []*database.UserLinks{
		{Address: "0xaaa", GenerateTime: 100},
		{Address: database.PlaceholderAddress, GenerateTime: 200},
		{Address: database.PlaceholderAddress, GenerateTime: 300},
	}
	link, err := latestValid(fakeBindingHistory(rows))
	require.NoError(t, err)
	assert.Equal(t, "0xaaa", link.Address)
	assert.EqualValues(t, 100, link.GenerateTime)
}

func TestLatestValidPrefersNewestCompleted(t *testing.T) {
	rows := []*database.UserLinks{
		{Address: "0xold", GenerateTime: 100},
		{Address: "0xnew", GenerateTime: 200},
		{Address: database.PlaceholderAddress, GenerateTime: 300},
	}
	link, err := latestValid(fakeBindingHistory(rows))
	require.NoError(t, err)
	assert.Equal(t, "0xnew", link.Address)
}

func TestLatestValidExhaustedHistory(t *testing.T) {
	rows := []*database.UserLinks{
		{Address: database.PlaceholderAddress, GenerateTime: 100},
		{Address: database.PlaceholderAddress, GenerateTime: 200},
	}
	_, err := latestValid(fakeBindingHistory(rows))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLatestValidEmptyHistory(t *testing.T) {
	_, err := latestValid(fakeBindingHistory(nil))
	assert.True(t, errors.Is(err, ErrNotFound))
}
