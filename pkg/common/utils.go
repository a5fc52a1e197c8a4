package common

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//NewCutUUIDString returns uuid string that cut `-`.
func NewCutUUIDString() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

//DecodeTimeInSnowflake parses a discord snowflake id into its creation time.
//Returns nil when the id is not a valid snowflake.
func DecodeTimeInSnowflake(id string) *time.Time {
	snowflake.Epoch = 1420070400000
	sid, err := snowflake.ParseString(id)
	if err != nil {
		log.Errorf("parse snowflake id %v:%v", id, err)
		return nil
	}
	ms := sid.Time()
	t := time.Unix(0, ms*int64(time.Millisecond))
	return &t
}

func MustGetJSONString(m interface{}) string {
	if m == nil {
		return "{}"
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Error(err)
		return "{}"
	}
	return string(data)
}
