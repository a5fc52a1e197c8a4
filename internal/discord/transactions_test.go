package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/pkg/errors"
)

func TestPaginateCustomIDRoundTrip(t *testing.T) {
	customID := paginateCustomID(links.RoleSender, "next", 2)
	assert.Equal(t, "paginate_sender_next_2", customID)

	role, target, err := parsePaginateCustomID(customID)
	require.NoError(t, err)
	assert.Equal(t, links.RoleSender, role)
	assert.Equal(t, 3, target)
}

func TestParsePaginateCustomIDPrev(t *testing.T) {
	role, target, err := parsePaginateCustomID("paginate_receiver_prev_5")
	require.NoError(t, err)
	assert.Equal(t, links.RoleReceiver, role)
	assert.Equal(t, 4, target)
}

func TestParsePaginateCustomIDClampsToFirstPage(t *testing.T) {
	_, target, err := parsePaginateCustomID("paginate_sender_prev_1")
	require.NoError(t, err)
	assert.Equal(t, 1, target)
}

func TestTransactionsErrorMessage(t *testing.T) {
	assert.Equal(t, "No address connected.", transactionsErrorMessage(links.ErrNotFound))
	assert.Equal(t, "No address connected.",
		transactionsErrorMessage(errors.Wrap(links.ErrNotFound, "resolve address")))
	assert.Equal(t, "Failed to load transactions.",
		transactionsErrorMessage(errors.New("connection refused")))
}

func TestParsePaginateCustomIDMalformed(t *testing.T) {
	for _, customID := range []string{
		"paginate_sender_next",
		"paginate_auditor_next_1",
		"paginate_sender_sideways_1",
		"paginate_sender_next_x",
	} {
		_, _, err := parsePaginateCustomID(customID)
		assert.Errorf(t, err, "custom id %q", customID)
	}
}
