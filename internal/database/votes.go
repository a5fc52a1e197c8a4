package database

import (
	"gorm.io/gorm"
	"paylink.io/paylink-social/pkg/errors"
)

// CreateLinks is a pending or completed vote creation. vote_id is the
// on-chain voting session id and arrives only after the web side submits the
// creation transaction; finished flips when the creator tallies.
type CreateLinks struct {
	ID              int64      `gorm:"primaryKey"`
	User            string     `gorm:"type:varchar(255);index:idx_create_links_user_time"`
	Link            string     `gorm:"type:varchar(64);uniqueIndex"`
	Topic           string     `gorm:"type:varchar(255)"`
	Options         JSONBArray `gorm:"type:jsonb"`
	ChannelID       string     `gorm:"type:varchar(255)"`
	VoteID          *string    `gorm:"type:varchar(255);index"`
	Finished        *bool
	TransactionHash *string `gorm:"type:varchar(255)"`
	Network         string  `gorm:"type:varchar(64)"`
	GenerateTime    int64   `gorm:"type:int8;index:idx_create_links_user_time"`
}

func (in CreateLinks) Create() error {
	return Postgres.Create(&in).Error
}

func (CreateLinks) SelectByLink(link string) (*CreateLinks, error) {
	var row CreateLinks
	err := Postgres.Where("link = ?", link).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query create link by token")
	}
	return &row, nil
}

func (CreateLinks) SelectByID(id int64) (*CreateLinks, error) {
	var row CreateLinks
	err := Postgres.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query create link by id")
	}
	return &row, nil
}

// SelectOpenTopics lists vote sessions that still accept votes.
func (CreateLinks) SelectOpenTopics() ([]*CreateLinks, error) {
	var rows []*CreateLinks
	err := Postgres.Where("topic <> '' AND (finished IS NULL OR finished = false)").
		Order("generate_time desc").Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query open vote topics")
	}
	return rows, nil
}

// SelectOpenTopicsByUser lists vote sessions the given user may still tally.
func (CreateLinks) SelectOpenTopicsByUser(user string) ([]*CreateLinks, error) {
	var rows []*CreateLinks
	err := Postgres.Where("\"user\" = ? AND topic <> '' AND (finished IS NULL OR finished = false)", user).
		Order("generate_time desc").Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query open vote topics by user")
	}
	return rows, nil
}

// SelectAllTopics lists every vote session with a topic, finished or not.
func (CreateLinks) SelectAllTopics() ([]*CreateLinks, error) {
	var rows []*CreateLinks
	err := Postgres.Where("topic <> ''").Order("generate_time desc").Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query all vote topics")
	}
	return rows, nil
}

// UpdateCompletion records the creation transaction and on-chain vote id.
func (in CreateLinks) UpdateCompletion(txnHash, network, voteID string) error {
	fields := map[string]interface{}{
		"transaction_hash": txnHash,
		"network":          network,
	}
	if voteID != "" {
		fields["vote_id"] = voteID
	}
	err := Postgres.Model(&CreateLinks{}).Where("id = ?", in.ID).Updates(fields).Error
	return errors.WrapAndReport(err, "update create link completion")
}

// UpdateVoteID backfills the on-chain vote id when a voter's completion call
// learns it before the creator's did.
func (in CreateLinks) UpdateVoteID(voteID string) error {
	err := Postgres.Model(&CreateLinks{}).
		Where("id = ? AND vote_id IS NULL", in.ID).
		Update("vote_id", voteID).Error
	return errors.WrapAndReport(err, "update create link vote id")
}

// FinishByVoteID flips the finished flag of the session holding the given
// on-chain vote id.
func (CreateLinks) FinishByVoteID(voteID string, finished bool) error {
	err := Postgres.Model(&CreateLinks{}).Where("vote_id = ?", voteID).
		Update("finished", finished).Error
	return errors.WrapAndReport(err, "finish create link by vote id")
}

// VoteLinks is one cast vote: choice indexes into the referenced session's
// options array.
type VoteLinks struct {
	ID              int64   `gorm:"primaryKey"`
	User            string  `gorm:"type:varchar(255);index:idx_vote_links_user_time"`
	Link            string  `gorm:"type:varchar(64);uniqueIndex"`
	Choice          int     `gorm:"type:int"`
	CreateID        int64   `gorm:"type:int8;index"`
	TransactionHash *string `gorm:"type:varchar(255)"`
	Network         string  `gorm:"type:varchar(64)"`
	GenerateTime    int64   `gorm:"type:int8;index:idx_vote_links_user_time"`
}

func (in VoteLinks) Create() error {
	return Postgres.Create(&in).Error
}

func (VoteLinks) SelectByLink(link string) (*VoteLinks, error) {
	var row VoteLinks
	err := Postgres.Where("link = ?", link).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query vote link by token")
	}
	return &row, nil
}

// SelectCompletedByCreateID returns every signed vote of a session, for
// computing the current standing.
func (VoteLinks) SelectCompletedByCreateID(createID int64) ([]*VoteLinks, error) {
	var rows []*VoteLinks
	err := Postgres.Where("create_id = ? AND transaction_hash IS NOT NULL", createID).
		Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query votes by session")
	}
	return rows, nil
}

func (in VoteLinks) UpdateCompletion(txnHash, network string) error {
	err := Postgres.Model(&VoteLinks{}).Where("id = ?", in.ID).
		Updates(map[string]interface{}{
			"transaction_hash": txnHash,
			"network":          network,
		}).Error
	return errors.WrapAndReport(err, "update vote link completion")
}

// TallyLinks is a pending or completed declare-winner action.
type TallyLinks struct {
	ID              int64   `gorm:"primaryKey"`
	User            string  `gorm:"type:varchar(255);index:idx_tally_links_user_time"`
	Link            string  `gorm:"type:varchar(64);uniqueIndex"`
	VoteID          string  `gorm:"type:varchar(255)"`
	TransactionHash *string `gorm:"type:varchar(255)"`
	Network         string  `gorm:"type:varchar(64)"`
	GenerateTime    int64   `gorm:"type:int8;index:idx_tally_links_user_time"`
}

func (in TallyLinks) Create() error {
	return Postgres.Create(&in).Error
}

func (TallyLinks) SelectByLink(link string) (*TallyLinks, error) {
	var row TallyLinks
	err := Postgres.Where("link = ?", link).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query tally link by token")
	}
	return &row, nil
}

func (in TallyLinks) UpdateCompletion(txnHash, network string) error {
	err := Postgres.Model(&TallyLinks{}).Where("id = ?", in.ID).
		Updates(map[string]interface{}{
			"transaction_hash": txnHash,
			"network":          network,
		}).Error
	return errors.WrapAndReport(err, "update tally link completion")
}
