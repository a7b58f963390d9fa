package types

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

// GenesisState is the constructor shape of the contract: curve parameters,
// role addresses and the issuer's initial offset pre-commitment.
type GenesisState struct {
	Params           Params   `json:"params"`
	Owner            string   `json:"owner"`
	Dao              string   `json:"dao"`
	ReturnWallet     string   `json:"return_wallet"`
	RoyaltyRecipient string   `json:"royalty_recipient"`
	MarketMakers     []string `json:"market_makers"`

	// OffsetLaunch is the issuer pre-commitment; a positive value creates
	// the unaccounted offset bucket and leaves the contract uninitialized
	// until it is absorbed.
	OffsetLaunch sdkmath.Int `json:"offset_launch"`

	// LaunchBalance is the launch stock available for sale.
	LaunchBalance sdkmath.Int `json:"launch_balance"`

	LockEndTime time.Time `json:"lock_end_time"`
	ControlDay  time.Time `json:"control_day"`

	ProfitInTime bool `json:"profit_in_time"`
}

// DefaultGenesisState returns an inactive placeholder genesis.
func DefaultGenesisState() GenesisState {
	return GenesisState{
		Params:        DefaultParams(),
		OffsetLaunch:  sdkmath.ZeroInt(),
		LaunchBalance: sdkmath.ZeroInt(),
	}
}

// Validate checks the genesis state.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}
	if err := validateAddress("owner", gs.Owner); err != nil {
		return err
	}
	if err := validateAddress("dao", gs.Dao); err != nil {
		return err
	}
	if err := validateAddress("return wallet", gs.ReturnWallet); err != nil {
		return err
	}
	if err := validateAddress("royalty recipient", gs.RoyaltyRecipient); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(gs.MarketMakers))
	for _, mm := range gs.MarketMakers {
		if err := validateAddress("market maker", mm); err != nil {
			return err
		}
		if _, dup := seen[mm]; dup {
			return fmt.Errorf("duplicate market maker address: %s", mm)
		}
		seen[mm] = struct{}{}
	}
	if gs.OffsetLaunch.IsNil() || gs.OffsetLaunch.IsNegative() {
		return fmt.Errorf("offset launch cannot be negative")
	}
	if gs.LaunchBalance.IsNil() || gs.LaunchBalance.IsNegative() {
		return fmt.Errorf("launch balance cannot be negative")
	}
	if gs.LockEndTime.IsZero() {
		return fmt.Errorf("lock end time must be set")
	}
	if gs.ControlDay.IsZero() {
		return fmt.Errorf("control day must be set")
	}
	return nil
}
