// Package telegram reads the identity the Telegram WebApp host hands to the
// Mini App. The payload is trusted after a structural freshness check; the
// HMAC signature is not verified.
package telegram

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxAge is how old auth_date may be before initData is rejected.
const DefaultMaxAge = 24 * time.Hour

// MaxClockSkew is how far auth_date may lie ahead of the server clock.
const MaxClockSkew = 5 * time.Minute

var (
	ErrEmpty     = errors.New("init data is empty")
	ErrMalformed = errors.New("init data is malformed")
	ErrNoHash    = errors.New("init data has no hash")
	ErrExpired   = errors.New("init data is expired")
	ErrFuture    = errors.New("init data is issued in the future")
)

type WebAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (u WebAppUser) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}
	return name
}

// InitData is the parsed WebApp launch payload.
type InitData struct {
	QueryID    string
	User       *WebAppUser
	AuthDate   time.Time
	StartParam string
	Hash       string
}

// Parse decodes the URL-encoded initData string without checking freshness.
func Parse(raw string) (*InitData, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmpty
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := &InitData{
		QueryID:    values.Get("query_id"),
		StartParam: values.Get("start_param"),
		Hash:       values.Get("hash"),
	}
	if s := values.Get("auth_date"); s != "" {
		secs, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: auth_date %q", ErrMalformed, s)
		}
		d.AuthDate = time.Unix(secs, 0).UTC()
	}
	if s := values.Get("user"); s != "" {
		var u WebAppUser
		if err := json.Unmarshal([]byte(s), &u); err != nil {
			return nil, fmt.Errorf("%w: user: %v", ErrMalformed, err)
		}
		d.User = &u
	}
	return d, nil
}

// Validate parses raw and checks that it carries a hash and an auth_date no
// older than maxAge at now and at most MaxClockSkew ahead of it. A
// non-positive maxAge means DefaultMaxAge.
func Validate(raw string, maxAge time.Duration, now time.Time) (*InitData, error) {
	d, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if d.Hash == "" {
		return nil, ErrNoHash
	}
	if d.AuthDate.IsZero() {
		return nil, fmt.Errorf("%w: auth_date is missing", ErrMalformed)
	}
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if d.AuthDate.Sub(now) > MaxClockSkew {
		return nil, fmt.Errorf("%w: issued %s", ErrFuture, d.AuthDate.Format(time.RFC3339))
	}
	if now.Sub(d.AuthDate) > maxAge {
		return nil, fmt.Errorf("%w: issued %s", ErrExpired, d.AuthDate.Format(time.RFC3339))
	}
	if d.User == nil || d.User.ID <= 0 {
		return nil, fmt.Errorf("%w: user is missing", ErrMalformed)
	}
	return d, nil
}
