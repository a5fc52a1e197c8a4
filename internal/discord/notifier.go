package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/go-redis/redis_rate/v9"
	"github.com/tidwall/gjson"
	"go.uber.org/atomic"
	"paylink.io/paylink-social/internal/cache"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/internal/links"
	"paylink.io/paylink-social/internal/networks"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

const dmPerMinuteLimit = 20

// TransferNotifier watches the change channel for completed transfers and
// DMs both sides. Delivery is best-effort: a closed DM or a rate-limited
// user never fails the event.
type TransferNotifier struct {
	started   *atomic.Bool
	delivered *atomic.Int64
	cancel    context.CancelFunc
}

func NewTransferNotifier() *TransferNotifier {
	return &TransferNotifier{
		started:   atomic.NewBool(false),
		delivered: atomic.NewInt64(0),
	}
}

func (n *TransferNotifier) Start(ctx context.Context) {
	if !n.started.CAS(false, true) {
		return
	}
	ctx, n.cancel = context.WithCancel(ctx)
	go n.watch(ctx)
}

func (n *TransferNotifier) Stop() {
	if n.cancel != nil {
		n.cancel()
	}
}

func (n *TransferNotifier) watch(ctx context.Context) {
	log.Info("Transfer notifier running...")
	defer log.Info("Transfer notifier stopped...")
	sub := cache.SubscribeSendLinkCompleted(ctx)
	defer sub.Close()
	events := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			n.handleEvent(ctx, msg.Payload)
		}
	}
}

// handleEvent reloads the announced row and fans the DMs out. The payload
// names the row only; the record is read back from the store so the message
// always reflects committed state.
func (n *TransferNotifier) handleEvent(ctx context.Context, payload string) {
	if gjson.Get(payload, "operation_type").String() != "update" {
		return
	}
	id := gjson.Get(payload, "id").Int()
	if id == 0 {
		log.Warnf("Transfer event without id:%v", payload)
		return
	}
	link, err := database.SendLinks{}.SelectByID(id)
	if err != nil {
		log.Error(err)
		return
	}
	if link == nil || link.TransactionHash == nil {
		log.Debugf("Transfer %v not completed yet, skipped", id)
		return
	}
	explorerURL := networks.ExplorerTxnURL(link.Network, *link.TransactionHash)
	n.notifySender(ctx, link, explorerURL)
	n.notifyReceiver(ctx, link, explorerURL)
	log.Debugf("Transfer notifications delivered:%v", n.delivered.Load())
}

func (n *TransferNotifier) notifySender(ctx context.Context, link *database.SendLinks, explorerURL string) {
	n.directMessage(ctx, link.User, fmt.Sprintf(
		"You sent %v to `%v` !\nCheck the transaction on the [explorer](%v) 🔎",
		link.Amount, link.ToAddress, explorerURL))
}

func (n *TransferNotifier) notifyReceiver(ctx context.Context, link *database.SendLinks, explorerURL string) {
	owner, err := links.ResolveOwner(link.ToAddress)
	if errors.Is(err, links.ErrNotFound) {
		log.Debugf("No user bound to %v, receiver DM skipped", link.ToAddress)
		return
	}
	if err != nil {
		log.Error(err)
		return
	}
	n.directMessage(ctx, owner.User, fmt.Sprintf(
		"You received %v!\nCheck the transaction on the [explorer](%v) 🔎",
		link.Amount, explorerURL))
}

func (n *TransferNotifier) directMessage(ctx context.Context, userID, content string) {
	if session == nil {
		log.Warn("Bot session not ready, DM dropped")
		return
	}
	res, err := cache.RateLimiter.Allow(ctx, "paylink:dm:"+userID,
		redis_rate.PerMinute(dmPerMinuteLimit))
	if err != nil {
		log.Error(errors.WrapAndReport(err, "check dm rate limit"))
	} else if res.Allowed == 0 {
		log.Warnf("DM to %v rate limited", userID)
		return
	}
	channel, err := session.UserChannelCreate(userID)
	if err != nil {
		log.Errorf("create dm channel with %v:%v", userID, err)
		return
	}
	_, err = session.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Content: content,
	})
	if err != nil {
		log.Errorf("send dm to %v:%v", userID, err)
		return
	}
	n.delivered.Inc()
}
