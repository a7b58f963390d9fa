package keeper

import (
	"context"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// The Msg* methods are the externally-visible entry points. Each validates
// the message, resolves the caller's role exactly once and hands off to the
// corresponding keeper operation.

func (k Keeper) resolveCaller(ctx context.Context, addr string) (sdk.AccAddress, types.Role, error) {
	addr = strings.TrimSpace(addr)
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, types.RolePublic, err
	}
	return acc, k.ResolveRole(ctx, addr), nil
}

// MsgBuy handles a curve purchase.
func (k Keeper) MsgBuy(ctx context.Context, msg types.MsgBuy) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	buyer, role, err := k.resolveCaller(ctx, msg.Buyer)
	if err != nil {
		return err
	}
	return k.Buy(ctx, buyer, role, msg.Amount)
}

// MsgSell handles a curve sale.
func (k Keeper) MsgSell(ctx context.Context, msg types.MsgSell) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	seller, role, err := k.resolveCaller(ctx, msg.Seller)
	if err != nil {
		return err
	}
	return k.Sell(ctx, seller, role, msg.Amount)
}

// MsgDeposit handles an unaccounted deposit.
func (k Keeper) MsgDeposit(ctx context.Context, msg types.MsgDeposit) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	depositor, _, err := k.resolveCaller(ctx, msg.Depositor)
	if err != nil {
		return err
	}
	return k.Deposit(ctx, depositor, msg.Asset, msg.Amount)
}

// MsgCalculateOffset handles absorption of the offset pre-commitment.
func (k Keeper) MsgCalculateOffset(ctx context.Context, msg types.MsgCalculateOffset) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.CalculateOffset(ctx, caller, role, msg.Amount)
}

// MsgCalculateLaunch handles absorption of unaccounted launch deposits.
func (k Keeper) MsgCalculateLaunch(ctx context.Context, msg types.MsgCalculateLaunch) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.CalculateLaunch(ctx, caller, role, msg.Amount)
}

// MsgCalculateCollateral handles absorption of unaccounted collateral.
func (k Keeper) MsgCalculateCollateral(ctx context.Context, msg types.MsgCalculateCollateral) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.CalculateCollateral(ctx, caller, role, msg.Amount)
}

// MsgScheduleWithdrawal handles scheduling a deferred withdrawal.
func (k Keeper) MsgScheduleWithdrawal(ctx context.Context, msg types.MsgScheduleWithdrawal) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.ScheduleWithdrawal(ctx, caller, role, msg.Asset, msg.Recipient, msg.Amount)
}

// MsgConfirmWithdrawal handles confirmation after the timelock.
func (k Keeper) MsgConfirmWithdrawal(ctx context.Context, msg types.MsgConfirmWithdrawal) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.ConfirmWithdrawal(ctx, caller, role, msg.Asset)
}

// MsgCancelWithdrawal handles cancelling a schedule.
func (k Keeper) MsgCancelWithdrawal(ctx context.Context, msg types.MsgCancelWithdrawal) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	caller, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.CancelWithdrawal(ctx, caller, role, msg.Asset)
}

// MsgSetMarketMaker handles market-maker registry changes.
func (k Keeper) MsgSetMarketMaker(ctx context.Context, msg types.MsgSetMarketMaker) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.SetMarketMaker(ctx, role, strings.TrimSpace(msg.Address), msg.Enabled)
}

// MsgSetProfitInTime handles profit-mode switches.
func (k Keeper) MsgSetProfitInTime(ctx context.Context, msg types.MsgSetProfitInTime) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.SetProfitInTime(ctx, role, msg.Enabled)
}

// MsgSetProfitPercent handles profit share changes.
func (k Keeper) MsgSetProfitPercent(ctx context.Context, msg types.MsgSetProfitPercent) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.SetProfitPercent(ctx, role, msg.ProfitBps)
}

// MsgSetRoyaltyRecipient handles royalty recipient changes.
func (k Keeper) MsgSetRoyaltyRecipient(ctx context.Context, msg types.MsgSetRoyaltyRecipient) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.SetRoyaltyRecipient(ctx, role, strings.TrimSpace(msg.Recipient))
}

// MsgSetRoyaltyPercent handles royalty share changes.
func (k Keeper) MsgSetRoyaltyPercent(ctx context.Context, msg types.MsgSetRoyaltyPercent) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.SetRoyaltyPercent(ctx, role, msg.RoyaltyBps)
}

// MsgClaimProfit handles accumulated profit payout.
func (k Keeper) MsgClaimProfit(ctx context.Context, msg types.MsgClaimProfit) error {
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	_, role, err := k.resolveCaller(ctx, msg.Caller)
	if err != nil {
		return err
	}
	return k.ClaimProfit(ctx, role)
}
