package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Validation and access errors report synchronously and mutate nothing.
// Ledger-consistency errors are unrecoverable defects: the call aborts and
// no partial state is committed.
var (
	ErrZeroAmount                        = errorsmod.Register(ModuleName, 2, "amount must be positive")
	ErrContractInactive                  = errorsmod.Register(ModuleName, 3, "contract is no longer active")
	ErrUnauthorized                      = errorsmod.Register(ModuleName, 4, "caller is not allowed to perform this operation")
	ErrTradingNotAllowedOnlyMarketMakers = errorsmod.Register(ModuleName, 5, "trading is restricted to market makers")

	ErrPriceOverflow      = errorsmod.Register(ModuleName, 6, "step price exceeds the configured bound")
	ErrStepUnderflow      = errorsmod.Register(ModuleName, 7, "step curve retreated past the origin")
	ErrLedgerInconsistent = errorsmod.Register(ModuleName, 8, "ledger counters are inconsistent")

	ErrNoUnitsAvailableForBuyback    = errorsmod.Register(ModuleName, 9, "no units available for buyback")
	ErrInsufficientUnitsForBuyback   = errorsmod.Register(ModuleName, 10, "insufficient units available for buyback")
	ErrInsufficientCollateralBalance = errorsmod.Register(ModuleName, 11, "insufficient contract collateral balance")
	ErrInsufficientLaunchBalance     = errorsmod.Register(ModuleName, 12, "insufficient contract launch balance")
	ErrInsufficientSoldUnits         = errorsmod.Register(ModuleName, 13, "sold units below earned units")

	ErrInsufficientUnaccountedOffsetBalance     = errorsmod.Register(ModuleName, 14, "insufficient unaccounted offset balance")
	ErrInsufficientUnaccountedLaunchBalance     = errorsmod.Register(ModuleName, 15, "insufficient unaccounted launch balance")
	ErrInsufficientUnaccountedCollateralBalance = errorsmod.Register(ModuleName, 16, "insufficient unaccounted collateral balance")
	ErrContractAlreadyInitialized               = errorsmod.Register(ModuleName, 17, "offset pre-commitment already fully absorbed")

	ErrNoWithdrawalScheduled = errorsmod.Register(ModuleName, 18, "no deferred withdrawal is scheduled")
	ErrWithdrawalNotReady    = errorsmod.Register(ModuleName, 19, "deferred withdrawal delay has not elapsed")

	ErrReentrantCall = errorsmod.Register(ModuleName, 20, "reentrant invocation rejected")
	ErrDustTrade     = errorsmod.Register(ModuleName, 21, "trade amount truncates to zero collateral")
	ErrInvalidParams = errorsmod.Register(ModuleName, 22, "invalid module parameters")
)
