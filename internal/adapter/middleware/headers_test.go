package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIdempHeaders(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := func() http.Header {
		h := http.Header{}
		h.Set(HeaderRequestID, "3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88")
		h.Set(HeaderRequestAt, now.Format(time.RFC3339))
		h.Set(HeaderWalletAddress, " 0x"+strings.ToUpper(testWallet[2:]))
		return h
	}

	got, err := readIdempHeaders(valid(), now)
	require.NoError(t, err)
	assert.Equal(t, testWallet, got.Wallet)
	assert.True(t, got.RequestAt.Equal(now))

	tests := []struct {
		name    string
		mutate  func(h http.Header)
		wantMsg string
	}{
		{"missing id", func(h http.Header) { h.Del(HeaderRequestID) }, "missing X-Request-Id"},
		{"bad id", func(h http.Header) { h.Set(HeaderRequestID, "NOT-VALID") }, "invalid X-Request-Id format"},
		{"missing at", func(h http.Header) { h.Del(HeaderRequestAt) }, "missing X-Request-At"},
		{"future skew", func(h http.Header) {
			h.Set(HeaderRequestAt, now.Add(maxClockSkew+time.Second).Format(time.RFC3339))
		}, "X-Request-At too skewed"},
		{"missing wallet", func(h http.Header) { h.Del(HeaderWalletAddress) }, "missing X-Wallet-Address"},
		{"bad wallet", func(h http.Header) { h.Set(HeaderWalletAddress, "0x123") }, "invalid X-Wallet-Address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := valid()
			tt.mutate(h)
			_, err := readIdempHeaders(h, now)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestIdempHeaders_Key(t *testing.T) {
	h := idempHeaders{RequestID: strings.Repeat("a", 32), Wallet: testWallet}
	assert.Equal(t, "idemp:sg:post:/api/claims/:id/review:"+testWallet+":"+strings.Repeat("a", 32),
		h.key(http.MethodPost, "/api/claims/:id/review"))
}

func TestValidReqID(t *testing.T) {
	for _, s := range []string{
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88",
		strings.Repeat("a", 32),
	} {
		assert.True(t, validReqID(s), s)
	}
	for _, s := range []string{
		"",
		"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88",
		strings.Repeat("A", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
		"urn:uuid:3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88",
		"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88}",
	} {
		assert.False(t, validReqID(s), s)
	}
}

func TestParseRequestAt(t *testing.T) {
	base := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)

	ok := map[string]time.Time{
		strconv.FormatInt(base.Unix(), 10):      base,
		strconv.FormatInt(base.UnixMilli(), 10): base,
		"2025-09-05T10:00:00+07:00":             base,
		"2025-09-05T03:00:00.000Z":              base,
	}
	for raw, want := range ok {
		got, err := parseRequestAt(raw)
		require.NoError(t, err, raw)
		assert.True(t, got.Equal(want), "%s => %v", raw, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, raw := range []string{"", "  ", "2025-09-05 10:00:00", "2025-09-05T10:00:00", "yesterday"} {
		_, err := parseRequestAt(raw)
		assert.Error(t, err, raw)
	}
}
