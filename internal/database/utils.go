package database

import (
	"strings"

	"github.com/jackc/pgconn"
	"paylink.io/paylink-social/pkg/errors"
)

const (
	duplicateKeyErrString = "duplicate key"
	uniqueViolationCode   = "23505"
)

//IsDuplicateKeyErr 返回是否为唯一键冲突错误.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return strings.Contains(err.Error(), duplicateKeyErrString)
}

func PointerString(s string) *string {
	return &s
}

func PointerBool(b bool) *bool {
	return &b
}

func Convert2JsonbArray(arr []string) JSONBArray {
	var results JSONBArray
	for _, ele := range arr {
		results = append(results, ele)
	}
	return results
}
