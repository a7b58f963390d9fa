package types

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(strings.TrimSpace(addr)); err != nil {
		return fmt.Errorf("invalid %s address: %w", field, err)
	}
	return nil
}

func validateAmount(amount sdkmath.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return ErrZeroAmount
	}
	return nil
}

// MsgBuy purchases launch units along the live curve.
type MsgBuy struct {
	Buyer  string      `json:"buyer"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgBuy) ValidateBasic() error {
	if err := validateAddress("buyer", m.Buyer); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgSell sells launch units back to the contract.
type MsgSell struct {
	Seller string      `json:"seller"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgSell) ValidateBasic() error {
	if err := validateAddress("seller", m.Seller); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgDeposit places an asset into the unaccounted buffer. Launch deposits
// are classified as offset-aligned at deposit time and never reclassified.
type MsgDeposit struct {
	Depositor string      `json:"depositor"`
	Asset     Asset       `json:"asset"`
	Amount    sdkmath.Int `json:"amount"`
}

func (m MsgDeposit) ValidateBasic() error {
	if err := validateAddress("depositor", m.Depositor); err != nil {
		return err
	}
	if err := m.Asset.Validate(); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgCalculateOffset absorbs the construction-time offset pre-commitment.
type MsgCalculateOffset struct {
	Caller string      `json:"caller"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgCalculateOffset) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgCalculateLaunch absorbs unaccounted launch deposits, preferring the
// offset-aligned bucket.
type MsgCalculateLaunch struct {
	Caller string      `json:"caller"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgCalculateLaunch) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgCalculateCollateral absorbs unaccounted collateral into the offset
// curve; change the curve cannot absorb is forwarded to the DAO.
type MsgCalculateCollateral struct {
	Caller string      `json:"caller"`
	Amount sdkmath.Int `json:"amount"`
}

func (m MsgCalculateCollateral) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgScheduleWithdrawal schedules a deferred withdrawal, overwriting any
// prior schedule for the same asset and resetting its timer.
type MsgScheduleWithdrawal struct {
	Caller    string      `json:"caller"`
	Asset     Asset       `json:"asset"`
	Recipient string      `json:"recipient"`
	Amount    sdkmath.Int `json:"amount"`
}

func (m MsgScheduleWithdrawal) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	if err := validateAddress("recipient", m.Recipient); err != nil {
		return err
	}
	if err := m.Asset.Validate(); err != nil {
		return err
	}
	return validateAmount(m.Amount)
}

// MsgConfirmWithdrawal executes a schedule after the 30-day delay.
type MsgConfirmWithdrawal struct {
	Caller string `json:"caller"`
	Asset  Asset  `json:"asset"`
}

func (m MsgConfirmWithdrawal) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return m.Asset.Validate()
}

// MsgCancelWithdrawal clears a schedule without moving funds.
type MsgCancelWithdrawal struct {
	Caller string `json:"caller"`
	Asset  Asset  `json:"asset"`
}

func (m MsgCancelWithdrawal) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return m.Asset.Validate()
}

// MsgSetMarketMaker grants or revokes market-maker status.
type MsgSetMarketMaker struct {
	Caller  string `json:"caller"`
	Address string `json:"address"`
	Enabled bool   `json:"enabled"`
}

func (m MsgSetMarketMaker) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return validateAddress("market maker", m.Address)
}

// MsgSetProfitInTime switches between accumulating and immediate profit
// distribution. The royalty collaborator is notified best-effort.
type MsgSetProfitInTime struct {
	Caller  string `json:"caller"`
	Enabled bool   `json:"enabled"`
}

func (m MsgSetProfitInTime) ValidateBasic() error {
	return validateAddress("caller", m.Caller)
}

// MsgSetProfitPercent adjusts the share of every buy taken as profit.
type MsgSetProfitPercent struct {
	Caller    string `json:"caller"`
	ProfitBps int64  `json:"profit_bps"`
}

func (m MsgSetProfitPercent) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	if m.ProfitBps < 0 || m.ProfitBps > PercentDivisor {
		return fmt.Errorf("profit share must be in [0, %d] BPS, got %d", PercentDivisor, m.ProfitBps)
	}
	return nil
}

// MsgSetRoyaltyRecipient redirects the royalty share of future profit.
type MsgSetRoyaltyRecipient struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
}

func (m MsgSetRoyaltyRecipient) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	return validateAddress("recipient", m.Recipient)
}

// MsgSetRoyaltyPercent adjusts the royalty share of profit. The creator
// share is derived, keeping the two summing to the divisor.
type MsgSetRoyaltyPercent struct {
	Caller     string `json:"caller"`
	RoyaltyBps int64  `json:"royalty_bps"`
}

func (m MsgSetRoyaltyPercent) ValidateBasic() error {
	if err := validateAddress("caller", m.Caller); err != nil {
		return err
	}
	if m.RoyaltyBps < 0 || m.RoyaltyBps > PercentDivisor {
		return fmt.Errorf("royalty share must be in [0, %d] BPS, got %d", PercentDivisor, m.RoyaltyBps)
	}
	return nil
}

// MsgClaimProfit pays out profit accumulated under profit-in-time mode.
type MsgClaimProfit struct {
	Caller string `json:"caller"`
}

func (m MsgClaimProfit) ValidateBasic() error {
	return validateAddress("caller", m.Caller)
}
