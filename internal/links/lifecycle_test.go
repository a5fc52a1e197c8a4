package links

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"paylink.io/paylink-social/internal/cache"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/errors"
)

// setupTestStore swaps the store global for an in-memory sqlite database
// migrated with the link tables.
func setupTestStore(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&database.UserLinks{},
		&database.SendLinks{},
		&database.CreateLinks{},
		&database.VoteLinks{},
		&database.TallyLinks{},
	))
	prev := database.Postgres
	database.Postgres = db
	t.Cleanup(func() {
		database.Postgres = prev
		sqlDB.Close()
	})
}

func setupTestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := cache.Redis
	cache.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Redis.Close()
		cache.Redis = prev
	})
}

func TestCompleteUserLinkRejectsSecondCompletion(t *testing.T) {
	setupTestStore(t)
	link, err := CreateUserLink("u1")
	require.NoError(t, err)

	row, err := CompleteUserLink(link.Link, "0x1f00d", "proof", "adapter-signature")
	require.NoError(t, err)
	assert.Equal(t, "0x1f00d", row.Address)

	_, err = CompleteUserLink(link.Link, "0x2bad", "proof", "adapter-signature")
	assert.True(t, errors.Is(err, ErrAlreadyCompleted))

	address, err := ResolveAddress("u1")
	require.NoError(t, err)
	assert.Equal(t, "0x1f00d", address)
}

func TestCompleteSendLinkUnknownToken(t *testing.T) {
	setupTestStore(t)
	_, err := CompleteSendLink(context.Background(), "no-such-token", "0xhash", "Testnet")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCompleteSendLinkPublishesOnce(t *testing.T) {
	setupTestStore(t)
	setupTestCache(t)
	ctx := context.Background()

	link, err := CreateSendLink("sender", "0xdest", "5")
	require.NoError(t, err)

	sub := cache.SubscribeSendLinkCompleted(ctx)
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)
	events := sub.Channel()

	completed, err := CompleteSendLink(ctx, link.Link, "0xhash", "Testnet")
	require.NoError(t, err)
	require.NotNil(t, completed.TransactionHash)
	assert.Equal(t, "0xhash", *completed.TransactionHash)

	select {
	case msg := <-events:
		assert.Equal(t,
			fmt.Sprintf(`{"operation_type":"update","id":%v}`, completed.ID),
			msg.Payload)
	case <-time.After(time.Second):
		t.Fatal("no completion event published")
	}

	_, err = CompleteSendLink(ctx, link.Link, "0xother", "Testnet")
	assert.True(t, errors.Is(err, ErrAlreadyCompleted))

	select {
	case msg := <-events:
		t.Fatalf("unexpected second event %v", msg.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCompletionIsolatedPerToken(t *testing.T) {
	setupTestStore(t)
	setupTestCache(t)
	ctx := context.Background()

	first, err := CreateSendLink("u1", "0xdest", "1")
	require.NoError(t, err)
	second, err := CreateSendLink("u1", "0xdest", "2")
	require.NoError(t, err)
	require.NotEqual(t, first.Link, second.Link)

	_, err = CompleteSendLink(ctx, first.Link, "0xhash", "Testnet")
	require.NoError(t, err)

	pending, err := database.SendLinks{}.SelectByLink(second.Link)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Nil(t, pending.TransactionHash)

	page, err := PageTransactions("u1", RoleSender, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].Amount)
	assert.False(t, page.HasNext)
}

func TestOpenTopicsFilterFinishedStates(t *testing.T) {
	setupTestStore(t)
	rows := []database.CreateLinks{
		{User: "alice", Link: "t1", Topic: "open-null",
			Options: database.Convert2JsonbArray([]string{"a", "b"}), GenerateTime: 1},
		{User: "alice", Link: "t2", Topic: "open-false", Finished: database.PointerBool(false),
			Options: database.Convert2JsonbArray([]string{"a", "b"}), GenerateTime: 2},
		{User: "bob", Link: "t3", Topic: "closed", Finished: database.PointerBool(true),
			Options: database.Convert2JsonbArray([]string{"a", "b"}), GenerateTime: 3},
	}
	for _, row := range rows {
		require.NoError(t, row.Create())
	}

	open, err := database.CreateLinks{}.SelectOpenTopics()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open-null", "open-false"}, topicsOf(open))

	mine, err := database.CreateLinks{}.SelectOpenTopicsByUser("alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"open-null", "open-false"}, topicsOf(mine))

	all, err := database.CreateLinks{}.SelectAllTopics()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func topicsOf(rows []*database.CreateLinks) []string {
	topics := make([]string, 0, len(rows))
	for _, row := range rows {
		topics = append(topics, row.Topic)
	}
	return topics
}

func TestCreateTallyLinkRequiresOwnership(t *testing.T) {
	setupTestStore(t)
	_, err := CreateCreateLink("alice", "ship it?", []string{"yes", "no"}, "chan1")
	require.NoError(t, err)
	sessions, err := database.CreateLinks{}.SelectOpenTopicsByUser("alice")
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	_, err = CreateTallyLink("bob", sessions[0].ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	tally, err := CreateTallyLink("alice", sessions[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, tally.Link)
}
