package links

import (
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

const (
	// TransactionPageSize is the number of rows shown per chat embed page.
	TransactionPageSize = 10

	// UnknownCounterpart is displayed when a row's counterpart user never
	// completed a wallet binding.
	UnknownCounterpart = "unknown"
)

// Role selects which side of a transfer a history page describes.
type Role string

const (
	RoleSender   = Role("sender")
	RoleReceiver = Role("receiver")
)

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleSender:
		return RoleSender, nil
	case RoleReceiver:
		return RoleReceiver, nil
	}
	return "", errors.Wrapf(ErrInvalidInput, "unknown history role %v", value)
}

type TransactionRow struct {
	Amount             string
	CounterpartAddress string
	TransactionHash    string
	Network            string
	GenerateTime       int64
}

type TransactionPage struct {
	Number  int
	Items   []*TransactionRow
	HasNext bool
}

// PageTransactions serves one page of a user's completed transfer history,
// newest first. Page numbers are 1-based. One extra row is fetched to detect
// a next page without a count query.
func PageTransactions(user string, role Role, page int) (*TransactionPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * TransactionPageSize
	var (
		rows []*database.SendLinks
		err  error
	)
	switch role {
	case RoleSender:
		rows, err = database.SendLinks{}.SelectCompletedBySender(user, TransactionPageSize+1, offset)
	case RoleReceiver:
		var address string
		address, err = ResolveAddress(user)
		if err != nil {
			return nil, err
		}
		rows, err = database.SendLinks{}.SelectCompletedByReceiver(address, TransactionPageSize+1, offset)
	default:
		return nil, errors.Wrapf(ErrInvalidInput, "unknown history role %v", role)
	}
	if err != nil {
		return nil, err
	}
	window, hasNext := pageWindow(rows, TransactionPageSize)
	items := make([]*TransactionRow, 0, len(window))
	for _, trx := range window {
		items = append(items, &TransactionRow{
			Amount:             trx.Amount,
			CounterpartAddress: counterpartAddress(role, trx),
			TransactionHash:    *trx.TransactionHash,
			Network:            trx.Network,
			GenerateTime:       trx.GenerateTime,
		})
	}
	return &TransactionPage{Number: page, Items: items, HasNext: hasNext}, nil
}

// pageWindow trims the probe row used for next-page detection.
func pageWindow(rows []*database.SendLinks, size int) ([]*database.SendLinks, bool) {
	if len(rows) > size {
		return rows[:size], true
	}
	return rows, false
}

// counterpartAddress names the other side of a transfer. A sender page shows
// the recipient address stored on the row; a receiver page resolves the
// sending user's current address and falls back to a display placeholder
// rather than failing the whole page.
func counterpartAddress(role Role, trx *database.SendLinks) string {
	if role == RoleSender {
		return trx.ToAddress
	}
	address, err := ResolveAddress(trx.User)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error(err)
		}
		return UnknownCounterpart
	}
	return address
}
