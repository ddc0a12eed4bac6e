// Package id generates public identifiers for stored documents.
package id

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const (
	PrefixPolicy = "POL"
	PrefixClaim  = "CLM"
)

// New returns "<prefix>-" followed by 32 uppercase hex characters.
func New(prefix string) string {
	u := uuid.New()
	return prefix + "-" + strings.ToUpper(hex.EncodeToString(u[:]))
}
