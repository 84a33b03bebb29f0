package price

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
	"github.com/vultisig/vultisig-go/common"

	"github.com/vultisig/app-send/internal/address"
)

// staticGas is the fallback table used when no RPC is configured or the node
// is unreachable. Coarse values are fine here; the send screen only displays
// them.
var staticGas = map[common.Chain]Gas{
	common.Ethereum:  {Price: 1.5, Unit: "gwei"},
	common.Arbitrum:  {Price: 0.1, Unit: "gwei"},
	common.Avalanche: {Price: 25, Unit: "nAVAX"},
	common.Base:      {Price: 0.05, Unit: "gwei"},
	common.Optimism:  {Price: 0.05, Unit: "gwei"},
	common.Polygon:   {Price: 30, Unit: "gwei"},
	common.BscChain:  {Price: 1, Unit: "gwei"},
	common.Bitcoin:   {Price: 12, Unit: "sat/vB"},
	common.Solana:    {Price: 5000, Unit: "lamports"},
}

// GasFeed estimates fees, asking an EVM node when one is configured and
// falling back to the static table otherwise.
type GasFeed struct {
	evm    *ethclient.Client
	logger *logrus.Logger
}

// NewGasFeed dials the EVM RPC when a URL is given. A failed dial is logged
// and degrades to static estimates rather than failing startup.
func NewGasFeed(evmRPC string, logger *logrus.Logger) *GasFeed {
	f := &GasFeed{logger: logger}
	if evmRPC == "" {
		return f
	}
	client, err := ethclient.Dial(evmRPC)
	if err != nil {
		logger.WithError(err).Warn("failed to dial EVM RPC, using static gas estimates")
		return f
	}
	f.evm = client
	return f
}

// GasEstimate returns a fee estimate for the chain, nil when the chain is
// unknown.
func (f *GasFeed) GasEstimate(ctx context.Context, chain common.Chain) (*Gas, error) {
	if family, ok := address.FamilyFor(chain); ok && family == address.FamilyEVM && f.evm != nil {
		wei, err := f.evm.SuggestGasPrice(ctx)
		if err == nil && wei != nil {
			gwei, _ := new(big.Float).Quo(
				new(big.Float).SetInt(wei),
				big.NewFloat(1e9),
			).Float64()
			return &Gas{Price: gwei, Unit: "gwei"}, nil
		}
		f.logger.WithError(err).Debug("gas price RPC failed, using static estimate")
	}

	if gas, ok := staticGas[chain]; ok {
		return &gas, nil
	}
	return nil, nil
}
