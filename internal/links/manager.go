package links

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"paylink.io/paylink-social/internal/cache"
	"paylink.io/paylink-social/internal/config"
	"paylink.io/paylink-social/internal/database"
	"paylink.io/paylink-social/pkg/common"
	"paylink.io/paylink-social/pkg/errors"
	"paylink.io/paylink-social/pkg/log"
)

// Kind names one wallet action and doubles as the web page path segment.
type Kind string

const (
	KindConnect = Kind("connect")
	KindSend    = Kind("send")
	KindCreate  = Kind("create")
	KindVote    = Kind("vote")
	KindTally   = Kind("tally")
)

var (
	ErrNotFound         = errors.New("link not found")
	ErrAlreadyCompleted = errors.New("link already completed")
	ErrInvalidInput     = errors.New("invalid input")

	// ErrUpstream covers store, cache or chat platform failures. Errors not
	// matching one of the other sentinels are treated as upstream at the
	// serving boundary.
	ErrUpstream = errors.New("upstream failure")
)

const (
	minVoteOptions = 2
	maxVoteOptions = 10

	tokenCreateAttempts = 3
)

// WebURL builds the user-facing completion page URL for a link.
func WebURL(kind Kind, token string) string {
	origin := strings.TrimSuffix(config.Global.Web.Origin, "/")
	return fmt.Sprintf("%v/%v/%v", origin, kind, token)
}

// ValidAddress reports whether a wallet address is syntactically acceptable.
// The bare placeholder is not an address.
func ValidAddress(address string) bool {
	return strings.HasPrefix(address, database.PlaceholderAddress) &&
		len(address) > len(database.PlaceholderAddress)
}

// createWithToken generates a fresh token and stores the record under it.
// Collisions are practically impossible yet still fenced by the unique index
// on the token column; a conflict regenerates and retries.
func createWithToken(create func(token string) error) (string, error) {
	var token string
	err := retry.Do(func() error {
		token = common.NewCutUUIDString()
		err := create(token)
		if err == nil {
			return nil
		}
		if database.IsDuplicateKeyErr(err) {
			return err
		}
		return retry.Unrecoverable(err)
	}, retry.Attempts(tokenCreateAttempts), retry.LastErrorOnly(true))
	if err != nil {
		return "", errors.WrapAndReport(err, "store link record")
	}
	return token, nil
}

// CreateUserLink opens a pending wallet binding for a chat user. The address
// stays the placeholder until the web side completes the connect flow.
func CreateUserLink(user string) (*database.UserLinks, error) {
	row := database.UserLinks{
		User:         user,
		Address:      database.PlaceholderAddress,
		GenerateTime: time.Now().UnixMilli(),
	}
	token, err := createWithToken(func(token string) error {
		row.Link = token
		return row.Create()
	})
	if err != nil {
		return nil, err
	}
	row.Link = token
	publishAudit(KindConnect, auditOpCreated, row)
	return &row, nil
}

// CreateSendLink opens a pending transfer to an already resolved recipient
// address.
func CreateSendLink(user, toAddress, amount string) (*database.SendLinks, error) {
	if amount == "" || !ValidAddress(toAddress) {
		return nil, errors.Wrap(ErrInvalidInput, "amount and recipient address required")
	}
	row := database.SendLinks{
		User:         user,
		ToAddress:    toAddress,
		Amount:       amount,
		GenerateTime: time.Now().UnixMilli(),
	}
	token, err := createWithToken(func(token string) error {
		row.Link = token
		return row.Create()
	})
	if err != nil {
		return nil, err
	}
	row.Link = token
	publishAudit(KindSend, auditOpCreated, row)
	return &row, nil
}

// CreateCreateLink opens a pending vote-creation session.
func CreateCreateLink(user, topic string, options []string, channelID string) (*database.CreateLinks, error) {
	if topic == "" {
		return nil, errors.Wrap(ErrInvalidInput, "vote topic required")
	}
	if len(options) < minVoteOptions || len(options) > maxVoteOptions {
		return nil, errors.Wrapf(ErrInvalidInput, "vote requires %v to %v options",
			minVoteOptions, maxVoteOptions)
	}
	row := database.CreateLinks{
		User:         user,
		Topic:        topic,
		Options:      database.Convert2JsonbArray(options),
		ChannelID:    channelID,
		GenerateTime: time.Now().UnixMilli(),
	}
	token, err := createWithToken(func(token string) error {
		row.Link = token
		return row.Create()
	})
	if err != nil {
		return nil, err
	}
	row.Link = token
	publishAudit(KindCreate, auditOpCreated, row)
	return &row, nil
}

// CreateVoteLink records a voter's option choice for a session and opens the
// signing link.
func CreateVoteLink(user string, createID int64, choice int) (*database.VoteLinks, error) {
	session, err := database.CreateLinks{}.SelectByID(createID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.Wrap(ErrNotFound, "vote session")
	}
	if choice < 0 || choice >= len(session.Options) {
		return nil, errors.Wrap(ErrInvalidInput, "choice out of range")
	}
	row := database.VoteLinks{
		User:         user,
		CreateID:     createID,
		Choice:       choice,
		GenerateTime: time.Now().UnixMilli(),
	}
	token, err := createWithToken(func(token string) error {
		row.Link = token
		return row.Create()
	})
	if err != nil {
		return nil, err
	}
	row.Link = token
	publishAudit(KindVote, auditOpCreated, row)
	return &row, nil
}

// CreateTallyLink opens a declare-winner action for a session the requester
// created. The chat list only offers the requester's own sessions, but the
// session id arrives in a client-controlled component value, so ownership is
// checked again here. voteID may still be empty when no voter completion has
// reported the on-chain id yet.
func CreateTallyLink(user string, createID int64) (*database.TallyLinks, error) {
	session, err := database.CreateLinks{}.SelectByID(createID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.User != user {
		return nil, errors.Wrap(ErrNotFound, "vote session")
	}
	var voteID string
	if session.VoteID != nil {
		voteID = *session.VoteID
	}
	row := database.TallyLinks{
		User:         user,
		VoteID:       voteID,
		GenerateTime: time.Now().UnixMilli(),
	}
	token, err := createWithToken(func(token string) error {
		row.Link = token
		return row.Create()
	})
	if err != nil {
		return nil, err
	}
	row.Link = token
	publishAudit(KindTally, auditOpCreated, row)
	return &row, nil
}

// CompleteUserLink writes the wallet address for a pending binding. A second
// completion for the same token is rejected, never merged.
func CompleteUserLink(token, address, message, signature string) (*database.UserLinks, error) {
	row, err := database.UserLinks{}.SelectByLink(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.Address != database.PlaceholderAddress {
		return nil, ErrAlreadyCompleted
	}
	if !ValidAddress(address) {
		return nil, errors.Wrap(ErrInvalidInput, "malformed wallet address")
	}
	if !verifyConnectProof(address, message, signature) {
		return nil, errors.Wrap(ErrInvalidInput, "signature does not match address")
	}
	if err := row.UpdateAddress(address); err != nil {
		return nil, err
	}
	row.Address = address
	publishAudit(KindConnect, auditOpCompleted, *row)
	return row, nil
}

// CompleteSendLink records the signed transfer and announces the update on
// the change channel. Publish failures are logged only: record state is
// committed and notification stays best-effort.
func CompleteSendLink(ctx context.Context, token, txnHash, network string) (*database.SendLinks, error) {
	row, err := database.SendLinks{}.SelectByLink(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.TransactionHash != nil {
		return nil, ErrAlreadyCompleted
	}
	if txnHash == "" {
		return nil, errors.Wrap(ErrInvalidInput, "transaction hash required")
	}
	if err := row.UpdateCompletion(txnHash, network); err != nil {
		return nil, err
	}
	row.TransactionHash = database.PointerString(txnHash)
	row.Network = network
	if err := cache.PublishSendLinkCompleted(ctx, row.ID); err != nil {
		log.Error(err)
	}
	publishAudit(KindSend, auditOpCompleted, *row)
	return row, nil
}

// CompleteCreateLink records the vote-creation transaction and, when known,
// the on-chain vote id.
func CompleteCreateLink(token, txnHash, network, voteID string) (*database.CreateLinks, error) {
	row, err := database.CreateLinks{}.SelectByLink(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.TransactionHash != nil {
		return nil, ErrAlreadyCompleted
	}
	if txnHash == "" {
		return nil, errors.Wrap(ErrInvalidInput, "transaction hash required")
	}
	if err := row.UpdateCompletion(txnHash, network, voteID); err != nil {
		return nil, err
	}
	row.TransactionHash = database.PointerString(txnHash)
	row.Network = network
	if voteID != "" {
		row.VoteID = database.PointerString(voteID)
	}
	publishAudit(KindCreate, auditOpCompleted, *row)
	return row, nil
}

// CompleteVoteLink records a signed vote. The voter's wallet learned the
// on-chain vote id while signing, so it is backfilled onto the session when
// still missing there.
func CompleteVoteLink(token, txnHash, network, voteID string) (*database.VoteLinks, error) {
	row, err := database.VoteLinks{}.SelectByLink(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.TransactionHash != nil {
		return nil, ErrAlreadyCompleted
	}
	if txnHash == "" {
		return nil, errors.Wrap(ErrInvalidInput, "transaction hash required")
	}
	if err := row.UpdateCompletion(txnHash, network); err != nil {
		return nil, err
	}
	row.TransactionHash = database.PointerString(txnHash)
	row.Network = network
	if voteID != "" {
		err := database.CreateLinks{ID: row.CreateID}.UpdateVoteID(voteID)
		if err != nil {
			log.Error(err)
		}
	}
	publishAudit(KindVote, auditOpCompleted, *row)
	return row, nil
}

// CompleteTallyLink records the declare-winner transaction and flips the
// referenced session's finished flag. The secondary update is best-effort:
// a failure there leaves the tally committed and is only logged.
func CompleteTallyLink(token, txnHash, network, voteID string, finished bool) (*database.TallyLinks, error) {
	row, err := database.TallyLinks{}.SelectByLink(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrNotFound
	}
	if row.TransactionHash != nil {
		return nil, ErrAlreadyCompleted
	}
	if txnHash == "" {
		return nil, errors.Wrap(ErrInvalidInput, "transaction hash required")
	}
	if err := row.UpdateCompletion(txnHash, network); err != nil {
		return nil, err
	}
	row.TransactionHash = database.PointerString(txnHash)
	row.Network = network
	if voteID == "" {
		voteID = row.VoteID
	}
	if voteID != "" {
		if err := (database.CreateLinks{}).FinishByVoteID(voteID, finished); err != nil {
			log.Error(err)
		}
	}
	publishAudit(KindTally, auditOpCompleted, *row)
	return row, nil
}
