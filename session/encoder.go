package session

import (
	"encoding/json"
	"errors"
)

const (
	recordFormatVersionCurrent = 1
	recordFormatVersionV1      = 1
)

// ErrRecordCorrupt is returned when a persisted record cannot be decoded.
var ErrRecordCorrupt = errors.New("session record corrupt")

type record struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Encode serializes a token and user into the persisted record format.
func Encode(token string, user User) ([]byte, error) {
	if token == "" {
		return nil, errors.New("token empty")
	}
	body, err := json.Marshal(record{Token: token, User: &user})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(body)+1)
	out = append(out, recordFormatVersionCurrent)
	return append(out, body...), nil
}

// Decode parses a persisted record. A record missing either half is corrupt.
func Decode(data []byte) (string, User, error) {
	if len(data) < 2 {
		return "", User{}, ErrRecordCorrupt
	}

	switch data[0] {
	case recordFormatVersionV1:
	default:
		return "", User{}, ErrRecordCorrupt
	}

	var rec record
	if err := json.Unmarshal(data[1:], &rec); err != nil {
		return "", User{}, ErrRecordCorrupt
	}
	if rec.Token == "" || rec.User == nil || rec.User.ID == "" {
		return "", User{}, ErrRecordCorrupt
	}

	return rec.Token, *rec.User, nil
}
