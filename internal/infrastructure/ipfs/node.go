package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
)

// shellAPI is the subset of the IPFS RPC shell used here.
type shellAPI interface {
	Add(r io.Reader, options ...shell.AddOpts) (string, error)
	Cat(path string) (io.ReadCloser, error)
}

// NodeClient stores documents on a local IPFS node through its HTTP RPC.
type NodeClient struct {
	sh shellAPI
}

func NewNodeClient(addr string, timeout time.Duration) *NodeClient {
	sh := shell.NewShell(addr)
	if timeout > 0 {
		sh.SetTimeout(timeout)
	}
	return &NodeClient{sh: sh}
}

func (n *NodeClient) Put(ctx context.Context, name string, v any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode document %s: %w", name, err)
	}
	c, err := n.sh.Add(bytes.NewReader(payload), shell.Pin(true))
	if err != nil {
		return "", fmt.Errorf("ipfs add %s: %w", name, err)
	}
	return Normalize(c)
}

func (n *NodeClient) Get(ctx context.Context, ref string, out any) error {
	c, err := Normalize(ref)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	rc, err := n.sh.Cat(c)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %s", ErrNotFound, c)
		}
		return fmt.Errorf("ipfs cat %s: %w", c, err)
	}
	defer rc.Close()
	if err := json.NewDecoder(rc).Decode(out); err != nil {
		return fmt.Errorf("ipfs cat %s: decode: %w", c, err)
	}
	return nil
}
