package gating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vultisig/vultisig-go/common"
)

const validEthAddr = "0x90F8bf6A479f320ead074411a4B0e7944Ea8c9C1"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		chain     common.Chain
		symbol    string
		want      Report
	}{
		{
			name:      "valid eth recipient",
			recipient: validEthAddr,
			chain:     common.Ethereum,
			symbol:    "ETH",
			want: Report{
				AddressPresent:           true,
				AddressStructurallyValid: true,
				ChainSupported:           true,
				ChainAssetMatch:          true,
			},
		},
		{
			name:      "empty recipient",
			recipient: "",
			chain:     common.Ethereum,
			symbol:    "ETH",
			want: Report{
				ChainSupported:  true,
				ChainAssetMatch: true,
			},
		},
		{
			name:      "malformed recipient",
			recipient: "0x1234",
			chain:     common.Ethereum,
			symbol:    "ETH",
			want: Report{
				AddressPresent:  true,
				ChainSupported:  true,
				ChainAssetMatch: true,
			},
		},
		{
			name:      "asset on wrong chain",
			recipient: validEthAddr,
			chain:     common.Ethereum,
			symbol:    "BTC",
			want: Report{
				AddressPresent:           true,
				AddressStructurallyValid: true,
				ChainSupported:           true,
			},
		},
		{
			name:      "unsupported chain",
			recipient: "rDNa9vZsXvSrSxmguIL2DAOkVMTKmCqq87",
			chain:     common.XRP,
			symbol:    "XRP",
			want: Report{
				AddressPresent: true,
			},
		},
		{
			name:      "case insensitive symbol match",
			recipient: validEthAddr,
			chain:     common.Ethereum,
			symbol:    "eth",
			want: Report{
				AddressPresent:           true,
				AddressStructurallyValid: true,
				ChainSupported:           true,
				ChainAssetMatch:          true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.recipient, tt.chain, tt.symbol))
		})
	}
}

func TestAllowAmountInteraction(t *testing.T) {
	invalid := Evaluate("", common.Ethereum, "ETH")
	valid := Evaluate(validEthAddr, common.Ethereum, "ETH")

	t.Run("valid address unblocks everything", func(t *testing.T) {
		for _, i := range []Interaction{InteractionClick, InteractionFocus, InteractionDragStart} {
			d := valid.AllowAmountInteraction(i)
			assert.False(t, d.Blocked, "interaction %s", i)
		}
	})

	t.Run("intentional block carries feedback", func(t *testing.T) {
		for _, i := range []Interaction{InteractionClick, InteractionKeydown, InteractionMouseDown, InteractionDragStart} {
			d := invalid.AllowAmountInteraction(i)
			assert.True(t, d.Blocked, "interaction %s", i)
			assert.Equal(t, FeedbackEnterAddress, d.Feedback)
		}
	})

	t.Run("passive block is silent", func(t *testing.T) {
		for _, i := range []Interaction{InteractionFocus, InteractionTab} {
			d := invalid.AllowAmountInteraction(i)
			assert.True(t, d.Blocked, "interaction %s", i)
			assert.Empty(t, d.Feedback)
		}
	})
}
