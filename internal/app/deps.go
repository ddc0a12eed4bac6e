package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"safeguard-backend/internal/config"
	"safeguard-backend/internal/infrastructure/chain"
	"safeguard-backend/internal/infrastructure/ipfs"
	applog "safeguard-backend/internal/logger"
)

const ipfsTimeout = 30 * time.Second

// NewIPFSStore picks the document store for cfg.IPFSMode.
func NewIPFSStore(cfg *config.Config) ipfs.Store {
	switch cfg.IPFSMode {
	case config.IPFSPinning:
		return ipfs.NewPinningClient(cfg.IPFSPinningURL, cfg.IPFSGatewayURL, cfg.IPFSPinningToken, ipfsTimeout)
	case config.IPFSNode:
		return ipfs.NewNodeClient(cfg.IPFSNodeAddr, ipfsTimeout)
	default:
		return ipfs.Disabled{}
	}
}

// NewChainReader dials the RPC endpoint when one is configured. A nil reader
// disables on-chain token metadata resolution.
func NewChainReader(ctx context.Context, cfg *config.Config) (*chain.ERC20Reader, func()) {
	if cfg.ChainRPCURL == "" {
		return nil, func() {}
	}
	client, err := chain.Dial(ctx, cfg.ChainRPCURL)
	if err != nil {
		applog.CtxWarn(ctx, "chain rpc unavailable, token metadata lookup disabled", zap.Error(err))
		return nil, func() {}
	}
	reader, err := chain.NewERC20Reader(client)
	if err != nil {
		client.Close()
		applog.CtxWarn(ctx, "erc20 reader init failed", zap.Error(err))
		return nil, func() {}
	}
	return reader, client.Close
}
