package types_test

import (
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/proof-of-capital/capital/x/capital/types"
)

func addr(name string) string {
	buf := make([]byte, 20)
	copy(buf, name)
	return sdk.AccAddress(buf).String()
}

func TestMsgValidateBasic(t *testing.T) {
	caller := addr("caller")

	cases := []struct {
		name    string
		msg     interface{ ValidateBasic() error }
		wantErr bool
	}{
		{"buy ok", types.MsgBuy{Buyer: caller, Amount: sdkmath.NewInt(1)}, false},
		{"buy bad address", types.MsgBuy{Buyer: "nope", Amount: sdkmath.NewInt(1)}, true},
		{"buy zero amount", types.MsgBuy{Buyer: caller, Amount: sdkmath.ZeroInt()}, true},
		{"buy nil amount", types.MsgBuy{Buyer: caller}, true},
		{"sell ok", types.MsgSell{Seller: caller, Amount: sdkmath.NewInt(1)}, false},
		{"sell negative amount", types.MsgSell{Seller: caller, Amount: sdkmath.NewInt(-1)}, true},
		{"deposit ok", types.MsgDeposit{Depositor: caller, Asset: types.AssetLaunch, Amount: sdkmath.NewInt(5)}, false},
		{"deposit unknown asset", types.MsgDeposit{Depositor: caller, Asset: "gold", Amount: sdkmath.NewInt(5)}, true},
		{"calculate offset ok", types.MsgCalculateOffset{Caller: caller, Amount: sdkmath.NewInt(5)}, false},
		{"schedule ok", types.MsgScheduleWithdrawal{Caller: caller, Asset: types.AssetCollateral, Recipient: addr("r"), Amount: sdkmath.NewInt(5)}, false},
		{"schedule bad recipient", types.MsgScheduleWithdrawal{Caller: caller, Asset: types.AssetCollateral, Recipient: "nope", Amount: sdkmath.NewInt(5)}, true},
		{"confirm ok", types.MsgConfirmWithdrawal{Caller: caller, Asset: types.AssetLaunch}, false},
		{"confirm bad asset", types.MsgConfirmWithdrawal{Caller: caller, Asset: "gold"}, true},
		{"cancel ok", types.MsgCancelWithdrawal{Caller: caller, Asset: types.AssetLaunch}, false},
		{"set market maker ok", types.MsgSetMarketMaker{Caller: caller, Address: addr("mm"), Enabled: true}, false},
		{"set market maker bad address", types.MsgSetMarketMaker{Caller: caller, Address: "nope"}, true},
		{"set profit mode ok", types.MsgSetProfitInTime{Caller: caller, Enabled: true}, false},
		{"set royalty ok", types.MsgSetRoyaltyPercent{Caller: caller, RoyaltyBps: 2_000}, false},
		{"set royalty over divisor", types.MsgSetRoyaltyPercent{Caller: caller, RoyaltyBps: types.PercentDivisor + 1}, true},
		{"set profit ok", types.MsgSetProfitPercent{Caller: caller, ProfitBps: 1_500}, false},
		{"set profit negative", types.MsgSetProfitPercent{Caller: caller, ProfitBps: -1}, true},
		{"set recipient ok", types.MsgSetRoyaltyRecipient{Caller: caller, Recipient: addr("royalty")}, false},
		{"set recipient bad address", types.MsgSetRoyaltyRecipient{Caller: caller, Recipient: "nope"}, true},
		{"claim ok", types.MsgClaimProfit{Caller: caller}, false},
		{"claim bad caller", types.MsgClaimProfit{Caller: ""}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGenesisStateValidate(t *testing.T) {
	base := types.GenesisState{
		Params:           types.DefaultParams(),
		Owner:            addr("owner"),
		Dao:              addr("dao"),
		ReturnWallet:     addr("return"),
		RoyaltyRecipient: addr("royalty"),
		MarketMakers:     []string{addr("mm")},
		OffsetLaunch:     sdkmath.NewInt(1_000),
		LaunchBalance:    sdkmath.NewInt(1_000_000),
		LockEndTime:      time.Unix(1_780_000_000, 0).UTC(),
		ControlDay:       time.Unix(1_770_000_000, 0).UTC(),
	}
	require.NoError(t, base.Validate())

	gs := base
	gs.Owner = "nope"
	require.Error(t, gs.Validate())

	gs = base
	gs.MarketMakers = []string{addr("mm"), addr("mm")}
	require.Error(t, gs.Validate())

	gs = base
	gs.OffsetLaunch = sdkmath.NewInt(-1)
	require.Error(t, gs.Validate())

	gs = base
	gs.LockEndTime = time.Time{}
	require.Error(t, gs.Validate())
}
