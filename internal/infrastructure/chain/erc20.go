package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNotContract    = errors.New("address returned no data; not an ERC-20 contract")
)

const erc20ABI = `[
 {"constant":true,"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"},
 {"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
 {"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
 {"type":"error","name":"ERC20InsufficientBalance","inputs":[{"name":"sender","type":"address"},{"name":"balance","type":"uint256"},{"name":"needed","type":"uint256"}]},
 {"type":"error","name":"ERC20InvalidSender","inputs":[{"name":"sender","type":"address"}]},
 {"type":"error","name":"ERC20InvalidReceiver","inputs":[{"name":"receiver","type":"address"}]}
]`

var parsedERC20 = func() abi.ABI {
	a, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic(err)
	}
	return a
}()

// ERC20ABI returns the token ABI, custom errors included, for ParseError.
func ERC20ABI() *abi.ABI {
	a := parsedERC20
	return &a
}

type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
}

// ERC20Reader reads token metadata through eth_call.
type ERC20Reader struct {
	caller ethereum.ContractCaller
	abi    abi.ABI
}

func NewERC20Reader(caller ethereum.ContractCaller) (*ERC20Reader, error) {
	if caller == nil {
		return nil, errors.New("erc20 reader needs a contract caller")
	}
	return &ERC20Reader{caller: caller, abi: parsedERC20}, nil
}

func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	c, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	return c, nil
}

// Metadata fetches name, symbol and decimals concurrently.
func (r *ERC20Reader) Metadata(ctx context.Context, address string) (*Metadata, error) {
	if !IsAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	to := common.HexToAddress(address)

	var md Metadata
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := r.call(gctx, to, "name")
		if err == nil {
			md.Name, _ = v.(string)
		}
		return err
	})
	g.Go(func() error {
		v, err := r.call(gctx, to, "symbol")
		if err == nil {
			md.Symbol, _ = v.(string)
		}
		return err
	})
	g.Go(func() error {
		v, err := r.call(gctx, to, "decimals")
		if err == nil {
			md.Decimals, _ = v.(uint8)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &md, nil
}

func (r *ERC20Reader) call(ctx context.Context, to common.Address, method string) (any, error) {
	data, err := r.abi.Pack(method)
	if err != nil {
		return nil, err
	}
	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%s(): %w", method, err)
	}
	if len(out) == 0 {
		return nil, ErrNotContract
	}
	vals, err := r.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("%s(): decode: %w", method, err)
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("%s(): unexpected output arity %d", method, len(vals))
	}
	return vals[0], nil
}
