package database

import (
	"gorm.io/gorm"
	"paylink.io/paylink-social/pkg/errors"
)

// SendLinks is a pending or completed transfer. transaction_hash is null
// exactly while the transfer waits for the web-side signing flow.
type SendLinks struct {
	ID              int64   `gorm:"primaryKey"`
	User            string  `gorm:"type:varchar(255);index:idx_send_links_user_time"`
	Link            string  `gorm:"type:varchar(64);uniqueIndex"`
	ToAddress       string  `gorm:"type:varchar(255);index"`
	Amount          string  `gorm:"type:varchar(255)"`
	TransactionHash *string `gorm:"type:varchar(255)"`
	Network         string  `gorm:"type:varchar(64)"`
	GenerateTime    int64   `gorm:"type:int8;index:idx_send_links_user_time"`
}

func (in SendLinks) Create() error {
	return Postgres.Create(&in).Error
}

func (SendLinks) SelectByLink(link string) (*SendLinks, error) {
	var row SendLinks
	err := Postgres.Where("link = ?", link).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query send link by token")
	}
	return &row, nil
}

func (SendLinks) SelectByID(id int64) (*SendLinks, error) {
	var row SendLinks
	err := Postgres.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query send link by id")
	}
	return &row, nil
}

// UpdateCompletion writes the signing outcome. The pending check happens in
// the lifecycle manager before this is called.
func (in SendLinks) UpdateCompletion(txnHash, network string) error {
	err := Postgres.Model(&SendLinks{}).Where("id = ?", in.ID).
		Updates(map[string]interface{}{
			"transaction_hash": txnHash,
			"network":          network,
		}).Error
	return errors.WrapAndReport(err, "update send link completion")
}

// SelectCompletedBySender pages a user's completed outgoing transfers,
// newest first.
func (SendLinks) SelectCompletedBySender(user string, limit, offset int) ([]*SendLinks, error) {
	var rows []*SendLinks
	err := Postgres.Where("\"user\" = ? AND transaction_hash IS NOT NULL", user).
		Order("generate_time desc").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query sender transactions")
	}
	return rows, nil
}

// SelectCompletedByReceiver pages completed transfers addressed to the given
// wallet, newest first.
func (SendLinks) SelectCompletedByReceiver(address string, limit, offset int) ([]*SendLinks, error) {
	var rows []*SendLinks
	err := Postgres.Where("to_address = ? AND transaction_hash IS NOT NULL", address).
		Order("generate_time desc").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, errors.WrapAndReport(err, "query receiver transactions")
	}
	return rows, nil
}
