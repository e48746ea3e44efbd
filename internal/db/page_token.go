package db

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidPageToken = errors.New("invalid page token")

const pageTokenPrefix = "p:"

// EncodePageToken makes an opaque continuation token pointing after position.
func EncodePageToken(lastPosition int32) string {
	return base64.RawURLEncoding.EncodeToString([]byte(pageTokenPrefix + strconv.FormatInt(int64(lastPosition), 10)))
}

// DecodePageToken returns the position the next page starts after. The empty
// token starts from the beginning (-1).
func DecodePageToken(token string) (int32, error) {
	if token == "" {
		return -1, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidPageToken
	}
	s, ok := strings.CutPrefix(string(raw), pageTokenPrefix)
	if !ok {
		return 0, ErrInvalidPageToken
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return 0, ErrInvalidPageToken
	}
	return int32(n), nil
}
