// Package address does structural, offline validation of recipient addresses
// per chain family. No network calls; a valid format says nothing about the
// address existing on chain.
package address

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	ecommon "github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
	"github.com/vultisig/vultisig-go/common"
)

// Family groups chains that share one address format.
type Family string

const (
	FamilyEVM    Family = "evm"
	FamilyUTXO   Family = "utxo"
	FamilySolana Family = "solana"
)

// FamilyFor maps a chain to its address family. Unsupported chains return
// ok=false.
func FamilyFor(chain common.Chain) (Family, bool) {
	switch chain {
	case common.Ethereum, common.Arbitrum, common.Avalanche, common.Base,
		common.Optimism, common.Polygon, common.BscChain:
		return FamilyEVM, true
	case common.Bitcoin:
		return FamilyUTXO, true
	case common.Solana:
		return FamilySolana, true
	default:
		return "", false
	}
}

// IsValidFormat checks the address against the family's structural rules.
func IsValidFormat(addr string, family Family) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}

	switch family {
	case FamilyEVM:
		return ecommon.IsHexAddress(addr)
	case FamilyUTXO:
		_, err := btcutil.DecodeAddress(addr, &chaincfg.MainNetParams)
		return err == nil
	case FamilySolana:
		pk, err := solana.PublicKeyFromBase58(addr)
		return err == nil && !pk.IsZero()
	default:
		return false
	}
}
