package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"paylink.io/paylink-social/internal/database"
)

func fakeSendRows(n int) []*database.SendLinks {
	rows := make([]*database.SendLinks, n)
	for i := range rows {
		rows[i] = &database.SendLinks{ID: int64(i + 1)}
	}
	return rows
}

func TestPageWindowProbeRowDetected(t *testing.T) {
	window, hasNext := pageWindow(fakeSendRows(TransactionPageSize+1), TransactionPageSize)
	assert.Len(t, window, TransactionPageSize)
	assert.True(t, hasNext)
}

func TestPageWindowExactPage(t *testing.T) {
	window, hasNext := pageWindow(fakeSendRows(TransactionPageSize), TransactionPageSize)
	assert.Len(t, window, TransactionPageSize)
	assert.False(t, hasNext)
}

func TestPageWindowShortPage(t *testing.T) {
	window, hasNext := pageWindow(fakeSendRows(3), TransactionPageSize)
	assert.Len(t, window, 3)
	assert.False(t, hasNext)
}

func TestPageWindowEmpty(t *testing.T) {
	window, hasNext := pageWindow(nil, TransactionPageSize)
	assert.Empty(t, window)
	assert.False(t, hasNext)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("sender")
	assert.NoError(t, err)
	assert.Equal(t, RoleSender, role)

	role, err = ParseRole("receiver")
	assert.NoError(t, err)
	assert.Equal(t, RoleReceiver, role)

	_, err = ParseRole("auditor")
	assert.Error(t, err)
}

func TestCounterpartAddressSenderSide(t *testing.T) {
	trx := &database.SendLinks{ToAddress: "0xdef"}
	assert.Equal(t, "0xdef", counterpartAddress(RoleSender, trx))
}
