package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

var (
	Redis       *redis.Client
	RateLimiter *redis_rate.Limiter
)

func Init(cred *config.DBCredential) {
	db, _ := strconv.ParseInt(cred.Database, 10, 64)
	Redis = redis.NewClient(&redis.Options{
		Addr: cred.GetRedisAddress(),
		DB:   int(db),
	})
	if _, err := Redis.Ping(context.TODO()).Result(); err != nil {
		log.Fatalf("ping to redis:%v", err)
	}
	RateLimiter = redis_rate.NewLimiter(Redis)
}

func Close() {
	if Redis != nil {
		Redis.Close()
		Redis = nil
	}
}

const sendLinkCompletedChannel = "paylink:sendlink:completed"

// PublishSendLinkCompleted announces a completed transfer update on the
// change channel. The payload carries only the row id; subscribers reload
// the full record themselves.
func PublishSendLinkCompleted(ctx context.Context, id int64) error {
	payload := fmt.Sprintf(`{"operation_type":"update","id":%v}`, id)
	err := Redis.Publish(ctx, sendLinkCompletedChannel, payload).Err()
	return errors.WrapAndReport(err, "publish send link completion")
}

// SubscribeSendLinkCompleted opens the standing change subscription consumed
// by the transfer notifier.
func SubscribeSendLinkCompleted(ctx context.Context) *redis.PubSub {
	return Redis.Subscribe(ctx, sendLinkCompletedChannel)
}
