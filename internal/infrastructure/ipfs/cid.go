package ipfs

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
)

const scheme = "ipfs://"

// Normalize strips an ipfs:// prefix and validates the remaining CID.
func Normalize(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, scheme)
	ref = strings.TrimPrefix(ref, "/ipfs/")
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrInvalidCID)
	}
	c, err := cid.Decode(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCID, err)
	}
	return c.String(), nil
}

func IsCID(ref string) bool {
	_, err := Normalize(ref)
	return err == nil
}
