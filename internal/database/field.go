package database

import (
	"database/sql/driver"
	"encoding/json"

	"paylink.io/paylink-social/pkg/errors"
)

type JSONBArray []interface{}

func (j JSONBArray) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *JSONBArray) Scan(value interface{}) error {
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, j)
	case string:
		return json.Unmarshal([]byte(data), j)
	case nil:
		*j = nil
		return nil
	}
	return errors.Errorf("unsupported jsonb source type %T", value)
}

func (j JSONBArray) Strings() []string {
	results := make([]string, 0, len(j))
	for _, ele := range j {
		s, ok := ele.(string)
		if !ok {
			continue
		}
		results = append(results, s)
	}
	return results
}
