package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"safeguard-backend/internal/infrastructure/chain"
)

const (
	HeaderRequestID     = "X-Request-Id"
	HeaderRequestAt     = "X-Request-At"
	HeaderWalletAddress = "X-Wallet-Address"
)

// Allowed client/server clock skew for X-Request-At.
const maxClockSkew = 10 * time.Minute

// idempHeaders is the validated header triple of a mutating request.
type idempHeaders struct {
	RequestID string
	RequestAt time.Time
	Wallet    string // lowercased
}

func readIdempHeaders(h http.Header, now time.Time) (idempHeaders, error) {
	var out idempHeaders

	out.RequestID = strings.TrimSpace(h.Get(HeaderRequestID))
	if out.RequestID == "" {
		return out, errors.New("missing " + HeaderRequestID)
	}
	if !validReqID(out.RequestID) {
		return out, errors.New("invalid " + HeaderRequestID + " format")
	}

	at, err := parseRequestAt(h.Get(HeaderRequestAt))
	if err != nil {
		return out, err
	}
	if d := now.Sub(at); d > maxClockSkew || d < -maxClockSkew {
		return out, errors.New(HeaderRequestAt + " too skewed")
	}
	out.RequestAt = at

	wallet := strings.TrimSpace(h.Get(HeaderWalletAddress))
	if wallet == "" {
		return out, errors.New("missing " + HeaderWalletAddress)
	}
	if !chain.IsAddress(wallet) {
		return out, errors.New("invalid " + HeaderWalletAddress)
	}
	out.Wallet = chain.Lower(wallet)
	return out, nil
}

// key scopes a request id to the route and the calling wallet.
func (h idempHeaders) key(method, route string) string {
	return strings.Join([]string{"idemp", "sg", strings.ToLower(method), route, h.Wallet, h.RequestID}, ":")
}

// validReqID accepts canonical UUIDs and their 32-hex form, lowercase only.
func validReqID(id string) bool {
	if id != strings.ToLower(id) {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil && (len(id) == 32 || len(id) == 36)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds or RFC3339 with a
// zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }
