package keeper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// BankKeeper is the asset transfer collaborator. Every failure aborts the
// triggering call.
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
}

// WrapKeeper converts between the wrapped collateral denom and the native
// denom held by the module account.
type WrapKeeper interface {
	Wrap(ctx context.Context, module string, amt sdk.Coin) error
	Unwrap(ctx context.Context, module string, amt sdk.Coin) error
}

// RoyaltyHook is notified when the profit distribution mode changes.
// Failures are recorded in an event and never abort the triggering call.
type RoyaltyHook interface {
	Notify(ctx context.Context, profitInTime bool) error
}

// Keeper manages the bonding-curve sale/buyback contract state.
type Keeper struct {
	cdc          codec.Codec
	storeService store.KVStoreService
	logger       log.Logger

	bankKeeper  BankKeeper
	wrapKeeper  WrapKeeper
	royaltyHook RoyaltyHook

	guard *callGuard

	Params        collections.Item[string]
	ContractState collections.Item[string]
	Owner         collections.Item[string]
	Dao           collections.Item[string]
	ReturnWallet  collections.Item[string]
	Royalty       collections.Item[string]
	MarketMakers  collections.KeySet[string]
}

// NewKeeper creates a new capital keeper.
func NewKeeper(
	cdc codec.Codec,
	storeService store.KVStoreService,
	logger log.Logger,
	bankKeeper BankKeeper,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	return Keeper{
		cdc:          cdc,
		storeService: storeService,
		logger:       logger,
		bankKeeper:   bankKeeper,
		guard:        newCallGuard(),
		Params: collections.NewItem(
			sb,
			collections.NewPrefix(types.ParamsKey),
			"params",
			collections.StringValue,
		),
		ContractState: collections.NewItem(
			sb,
			collections.NewPrefix(types.ContractStateKey),
			"contract_state",
			collections.StringValue,
		),
		Owner: collections.NewItem(
			sb,
			collections.NewPrefix(types.OwnerKey),
			"owner",
			collections.StringValue,
		),
		Dao: collections.NewItem(
			sb,
			collections.NewPrefix(types.DaoKey),
			"dao",
			collections.StringValue,
		),
		ReturnWallet: collections.NewItem(
			sb,
			collections.NewPrefix(types.ReturnWalletKey),
			"return_wallet",
			collections.StringValue,
		),
		Royalty: collections.NewItem(
			sb,
			collections.NewPrefix(types.RoyaltyRecipientKey),
			"royalty_recipient",
			collections.StringValue,
		),
		MarketMakers: collections.NewKeySet(
			sb,
			collections.NewPrefix(types.MarketMakerKeyPrefix),
			"market_makers",
			collections.StringKey,
		),
	}
}

// SetWrapKeeper wires the native-currency wrap collaborator.
func (k *Keeper) SetWrapKeeper(wrapKeeper WrapKeeper) {
	k.wrapKeeper = wrapKeeper
}

// SetRoyaltyHook wires the royalty notification collaborator.
func (k *Keeper) SetRoyaltyHook(hook RoyaltyHook) {
	k.royaltyHook = hook
}

// Logger returns a module-tagged logger.
func (k Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}

// GetParams loads the module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	raw, err := k.Params.Get(ctx)
	if err != nil {
		return types.Params{}, fmt.Errorf("params not set")
	}
	var params types.Params
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return types.Params{}, fmt.Errorf("decode params: %w", err)
	}
	return params, nil
}

// SetParams stores validated module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return types.ErrInvalidParams.Wrap(err.Error())
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return k.Params.Set(ctx, string(raw))
}

// GetState loads the contract aggregate.
func (k Keeper) GetState(ctx context.Context) (types.ContractState, error) {
	raw, err := k.ContractState.Get(ctx)
	if err != nil {
		return types.ContractState{}, fmt.Errorf("contract state not set")
	}
	var state types.ContractState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return types.ContractState{}, fmt.Errorf("decode contract state: %w", err)
	}
	return state, nil
}

func (k Keeper) setState(ctx context.Context, state types.ContractState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return k.ContractState.Set(ctx, string(raw))
}

// ResolveRole maps a caller address onto its role, resolved once per call.
func (k Keeper) ResolveRole(ctx context.Context, addr string) types.Role {
	if owner, err := k.Owner.Get(ctx); err == nil && owner == addr {
		return types.RoleOwner
	}
	if dao, err := k.Dao.Get(ctx); err == nil && dao == addr {
		return types.RoleDao
	}
	if rw, err := k.ReturnWallet.Get(ctx); err == nil && rw == addr {
		return types.RoleReturnWallet
	}
	if ok, err := k.MarketMakers.Has(ctx, addr); err == nil && ok {
		return types.RoleMarketMaker
	}
	return types.RolePublic
}

func (k Keeper) daoAddress(ctx context.Context) (sdk.AccAddress, error) {
	dao, err := k.Dao.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("dao address not set")
	}
	return sdk.AccAddressFromBech32(dao)
}

func contextNow(ctx context.Context) (sdk.Context, time.Time) {
	if sdkCtx, ok := unwrapSDKContext(ctx); ok {
		return sdkCtx, sdkCtx.BlockTime()
	}
	return sdk.Context{}, time.Now().UTC()
}

func unwrapSDKContext(ctx context.Context) (sdk.Context, bool) {
	if ctx == nil {
		return sdk.Context{}, false
	}
	if sdkCtx, ok := ctx.(sdk.Context); ok {
		return sdkCtx, true
	}
	if val := ctx.Value(sdk.SdkContextKey); val != nil {
		if sdkCtx, ok := val.(sdk.Context); ok {
			return sdkCtx, true
		}
	}
	return sdk.Context{}, false
}

func emitEventIfPossible(ctx sdk.Context, event sdk.Event) {
	if em := ctx.EventManager(); em != nil {
		em.EmitEvent(event)
	}
}
