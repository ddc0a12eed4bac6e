package chain

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const unknownError = "An unknown error occurred"

const revertPrefix = "execution reverted with the following reason:\n"

var (
	reLowerUpper      = regexp.MustCompile(`([a-z])([A-Z])`)
	reUpperUpperLower = regexp.MustCompile(`([A-Z])([A-Z][a-z])`)
	reUpper           = regexp.MustCompile(`([A-Z])`)
)

// FormatErrorName turns an ABI error name into words:
// camelCase and PascalCase split on case changes, snake_case on underscores.
func FormatErrorName(name string) string {
	if strings.Contains(name, " ") {
		return name
	}
	if reLowerUpper.MatchString(name) {
		s := reLowerUpper.ReplaceAllString(name, "$1 $2")
		return reUpperUpperLower.ReplaceAllString(s, "$1 $2")
	}
	if strings.Contains(name, "_") {
		parts := strings.Split(name, "_")
		for i, w := range parts {
			if w == "" {
				continue
			}
			parts[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
		}
		return strings.Join(parts, " ")
	}
	s := strings.TrimSpace(reUpper.ReplaceAllString(name, " $1"))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseError renders a JSON-RPC or contract-call error as a display string.
// Revert payloads are decoded as Error(string)/Panic(uint256) first, then
// matched against the custom errors of the given ABIs.
func ParseError(err error, abis ...*abi.ABI) string {
	if err == nil {
		return ""
	}
	var de rpc.DataError
	if errors.As(err, &de) {
		if data, ok := revertData(de.ErrorData()); ok {
			if msg, ok := decodeRevert(data, abis); ok {
				return msg
			}
		}
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return unknownError
}

func revertData(v any) ([]byte, bool) {
	switch d := v.(type) {
	case string:
		b, err := hexutil.Decode(d)
		return b, err == nil && len(b) >= 4
	case []byte:
		return d, len(d) >= 4
	}
	return nil, false
}

func decodeRevert(data []byte, abis []*abi.ABI) (string, bool) {
	if reason, err := abi.UnpackRevert(data); err == nil {
		return revertPrefix + reason, true
	}
	for _, a := range abis {
		if a == nil {
			continue
		}
		for _, e := range a.Errors {
			if !bytes.Equal(e.ID[:4], data[:4]) {
				continue
			}
			args := ""
			if vals, err := e.Unpack(data); err == nil {
				if list, ok := vals.([]interface{}); ok {
					parts := make([]string, len(list))
					for i, v := range list {
						parts[i] = fmt.Sprint(v)
					}
					args = strings.Join(parts, ",")
				}
			}
			return fmt.Sprintf("%s%s(%s)", revertPrefix, FormatErrorName(e.Name), args), true
		}
	}
	return "", false
}
