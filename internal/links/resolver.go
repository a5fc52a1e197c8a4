package links

import (
	"paylink.io/paylink-social/internal/database"
)

// cursorQuery returns the latest binding row, or the latest one strictly
// older than *before when a cursor is given. nil row means history exhausted.
type cursorQuery func(before *int64) (*database.UserLinks, error)

// latestValid walks a user's binding history newest-first, skipping
// placeholder rows left behind by abandoned or still-pending connect
// attempts, until it reaches a completed binding. Every resolver call site
// funnels through this one walk.
func latestValid(next cursorQuery) (*database.UserLinks, error) {
	link, err := next(nil)
	if err != nil {
		return nil, err
	}
	for link != nil && link.Address == database.PlaceholderAddress {
		before := link.GenerateTime
		link, err = next(&before)
		if err != nil {
			return nil, err
		}
	}
	if link == nil {
		return nil, ErrNotFound
	}
	return link, nil
}

// ResolveAddress returns the user's most recent completed wallet address.
func ResolveAddress(user string) (string, error) {
	link, err := latestValid(func(before *int64) (*database.UserLinks, error) {
		return database.UserLinks{}.SelectLatestByUserBefore(user, before)
	})
	if err != nil {
		return "", err
	}
	return link.Address, nil
}

// ResolveOwner is the inverse direction used by the change notifier: find
// the chat user most recently bound to the given wallet address.
func ResolveOwner(address string) (*database.UserLinks, error) {
	return latestValid(func(before *int64) (*database.UserLinks, error) {
		return database.UserLinks{}.SelectLatestByAddressBefore(address, before)
	})
}
