package keeper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	storemetrics "cosmossdk.io/store/metrics"
	"cosmossdk.io/store/rootmulti"
	storetypes "cosmossdk.io/store/types"
	tmproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/std"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/proof-of-capital/capital/x/capital/keeper"
	"github.com/proof-of-capital/capital/x/capital/types"
)

var baseTime = time.Unix(1_770_100_000, 0).UTC()

func testAddr(name string) string {
	buf := make([]byte, 20)
	copy(buf, name)
	return sdk.AccAddress(buf).String()
}

var (
	ownerAddr        = testAddr("owner")
	daoAddr          = testAddr("dao")
	returnWalletAddr = testAddr("return-wallet")
	royaltyAddr      = testAddr("royalty")
	marketMakerAddr  = testAddr("market-maker")
	publicAddr       = testAddr("alice")
)

// transferRecord captures one bank movement for assertions.
type transferRecord struct {
	From   string
	To     string
	Module string
	Coins  sdk.Coins
	In     bool // true when coins moved into the module account
}

// mockBank records transfers and optionally fails them.
type mockBank struct {
	transfers []transferRecord
	failNext  bool
}

func (m *mockBank) SendCoinsFromAccountToModule(_ context.Context, sender sdk.AccAddress, module string, amt sdk.Coins) error {
	if m.failNext {
		m.failNext = false
		return errors.New("mock transfer failure")
	}
	m.transfers = append(m.transfers, transferRecord{From: sender.String(), Module: module, Coins: amt, In: true})
	return nil
}

func (m *mockBank) SendCoinsFromModuleToAccount(_ context.Context, module string, recipient sdk.AccAddress, amt sdk.Coins) error {
	if m.failNext {
		m.failNext = false
		return errors.New("mock transfer failure")
	}
	m.transfers = append(m.transfers, transferRecord{To: recipient.String(), Module: module, Coins: amt, In: false})
	return nil
}

func (m *mockBank) GetBalance(_ context.Context, _ sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, sdkmath.ZeroInt())
}

// receivedFrom sums coins the module pulled from one sender.
func (m *mockBank) receivedFrom(addr, denom string) sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, tr := range m.transfers {
		if tr.In && tr.From == addr {
			total = total.Add(tr.Coins.AmountOf(denom))
		}
	}
	return total
}

// sentTo sums coins the module sent to one recipient.
func (m *mockBank) sentTo(addr, denom string) sdkmath.Int {
	total := sdkmath.ZeroInt()
	for _, tr := range m.transfers {
		if !tr.In && tr.To == addr {
			total = total.Add(tr.Coins.AmountOf(denom))
		}
	}
	return total
}

func setupKeeper(t *testing.T) (keeper.Keeper, sdk.Context, *mockBank) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	cms := rootmulti.NewStore(db, log.NewNopLogger(), storemetrics.NoOpMetrics{})
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, nil)
	require.NoError(t, cms.LoadLatestVersion())

	header := tmproto.Header{
		ChainID: "capital-test-1",
		Height:  100,
		Time:    baseTime,
	}
	ctx := sdk.NewContext(cms, header, false, log.NewNopLogger())

	reg := codectypes.NewInterfaceRegistry()
	std.RegisterInterfaces(reg)
	cdc := codec.NewProtoCodec(reg)

	bank := &mockBank{}
	k := keeper.NewKeeper(
		cdc,
		runtime.NewKVStoreService(storeKey),
		log.NewNopLogger(),
		bank,
	)

	return k, ctx, bank
}

// testParams keeps the curve small enough for tests to traverse levels and
// turns the profit split off so buyback refunds are fully backed.
func testParams() types.Params {
	params := types.DefaultParams()
	params.BaseLevelUnits = sdkmath.NewInt(1_000)
	params.TrendChangeStep = 3
	params.MaxStep = 50
	params.ProfitBps = 0
	return params
}

func testGenesis(params types.Params, offsetLaunch sdkmath.Int) types.GenesisState {
	return types.GenesisState{
		Params:           params,
		Owner:            ownerAddr,
		Dao:              daoAddr,
		ReturnWallet:     returnWalletAddr,
		RoyaltyRecipient: royaltyAddr,
		MarketMakers:     []string{marketMakerAddr},
		OffsetLaunch:     offsetLaunch,
		LaunchBalance:    sdkmath.NewInt(1_000_000),
		// Lock end far enough out that public trading starts closed.
		LockEndTime: baseTime.Add(200 * 24 * time.Hour),
		ControlDay:  baseTime,
	}
}

func initContract(t *testing.T, k keeper.Keeper, ctx sdk.Context, gs types.GenesisState) {
	t.Helper()
	require.NoError(t, k.InitGenesis(ctx, gs))
}

// absorbOffset drains the full pre-commitment as the owner.
func absorbOffset(t *testing.T, k keeper.Keeper, ctx sdk.Context, amount sdkmath.Int) {
	t.Helper()
	require.NoError(t, k.MsgCalculateOffset(ctx, types.MsgCalculateOffset{
		Caller: ownerAddr,
		Amount: amount,
	}))
}
