package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func IsAddress(s string) bool { return common.IsHexAddress(strings.TrimSpace(s)) }

// Lower is the storage key form of an address.
func Lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IsZero(s string) bool { return common.HexToAddress(s) == (common.Address{}) }
