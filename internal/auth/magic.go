// Package auth implements passwordless sign-in via HMAC-signed magic
// links.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type MagicLink struct {
	Secret  []byte
	BaseURL string
}

var (
	ErrBadToken   = errors.New("bad token")
	ErrBadSig     = errors.New("invalid signature")
	ErrExpired    = errors.New("expired")
	ErrBadPayload = errors.New("bad payload")
)

// Sign produces a token binding the email to an expiry instant.
func (m MagicLink) Sign(email string, exp time.Time) string {
	msg := email + "|" + strconv.FormatInt(exp.Unix(), 10)
	mac := hmac.New(sha256.New, m.Secret)
	mac.Write([]byte(msg))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	payload := base64.RawURLEncoding.EncodeToString([]byte(msg))
	return payload + "." + sig
}

// Verify checks signature and expiry and returns the signed email.
func (m MagicLink) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", ErrBadToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrBadToken
	}

	mac := hmac.New(sha256.New, m.Secret)
	mac.Write(raw)
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", ErrBadSig
	}

	fields := strings.SplitN(string(raw), "|", 2)
	if len(fields) != 2 {
		return "", ErrBadPayload
	}
	email := strings.TrimSpace(fields[0])
	ts, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || email == "" {
		return "", ErrBadPayload
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return "", ErrExpired
	}
	return email, nil
}

// URL builds the full callback link for an email with the given ttl.
func (m MagicLink) URL(email string, ttl time.Duration) string {
	tok := m.Sign(email, time.Now().Add(ttl))
	u, _ := url.Parse(m.BaseURL)
	u.Path = "/auth/callback"
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}
