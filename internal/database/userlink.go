package database

import (
	"gorm.io/gorm"
	"paylink.io/paylink-social/pkg/errors"
)

// PlaceholderAddress marks a wallet binding that was issued from chat but not
// yet completed on the web side.
const PlaceholderAddress = "0x"

// UserLinks binds a chat user to a wallet address. Rows are append-only: a
// reconnect writes a new row instead of touching the old one, so a user's
// address history stays ordered by generate_time.
type UserLinks struct {
	ID           int64  `gorm:"primaryKey"`
	User         string `gorm:"type:varchar(255);index:idx_user_links_user_time"`
	Link         string `gorm:"type:varchar(64);uniqueIndex"`
	Address      string `gorm:"type:varchar(255);index"`
	GenerateTime int64  `gorm:"type:int8;index:idx_user_links_user_time"`
}

func (in UserLinks) Create() error {
	return Postgres.Create(&in).Error
}

func (UserLinks) SelectByLink(link string) (*UserLinks, error) {
	var row UserLinks
	err := Postgres.Where("link = ?", link).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query user link by token")
	}
	return &row, nil
}

// SelectLatestByUserBefore returns the user's most recent row, or the most
// recent one strictly older than *before when a cursor is given.
func (UserLinks) SelectLatestByUserBefore(user string, before *int64) (*UserLinks, error) {
	return selectLatestUserLink(Postgres.Where("\"user\" = ?", user), before)
}

// SelectLatestByAddressBefore is the inverse lookup used by the change
// notifier: latest binding row holding the given address.
func (UserLinks) SelectLatestByAddressBefore(address string, before *int64) (*UserLinks, error) {
	return selectLatestUserLink(Postgres.Where("address = ?", address), before)
}

func selectLatestUserLink(tx *gorm.DB, before *int64) (*UserLinks, error) {
	if before != nil {
		tx = tx.Where("generate_time < ?", *before)
	}
	var row UserLinks
	err := tx.Order("generate_time desc").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.WrapAndReport(err, "query latest user link")
	}
	return &row, nil
}

// UpdateAddress writes the completed wallet address for a pending binding.
func (in UserLinks) UpdateAddress(address string) error {
	err := Postgres.Model(&UserLinks{}).Where("id = ?", in.ID).
		Update("address", address).Error
	return errors.WrapAndReport(err, "update user link address")
}
