package session

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/provider/providertest"
	"github.com/tranvictor/tokenwallet/util/addrbook"
	"github.com/tranvictor/tokenwallet/wallet"
)

var (
	alice = common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	bob   = common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
	token = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	nft   = common.HexToAddress("0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D")
)

func newSession(t *testing.T, f *providertest.Fake) *Session {
	t.Helper()
	client := wallet.NewClient(f, wallet.WithResolver(addrbook.Chain{
		addrbook.Literal{},
		addrbook.Map{"bob": bob.Hex()},
	}))
	s, err := New(context.Background(), client, 0)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func withContracts(f *providertest.Fake) *providertest.ERC721 {
	f.Contracts[token] = (&providertest.ERC20{
		Name: "USD Coin", Symbol: "USDC", Decimals: 6,
		Balances: map[common.Address]*big.Int{alice: big.NewInt(2500000)},
	}).Func()
	collection := &providertest.ERC721{
		Name: "Apes", Symbol: "APE", Enumerable: true,
		Owned: map[common.Address][]*big.Int{alice: {big.NewInt(5), big.NewInt(9), big.NewInt(2)}},
	}
	f.Contracts[nft] = collection.Func()
	return collection
}

func TestAddSameAssetInDifferentCaseOnce(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	ctx := context.Background()

	first, added, err := s.Assets.Add(ctx, strings.ToLower(token.Hex()))
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	_, added, err = s.Assets.Add(ctx, "0x"+strings.ToUpper(token.Hex()[2:]))
	if err != nil || added {
		t.Fatalf("second add: added=%v err=%v", added, err)
	}
	if s.Assets.Len() != 1 {
		t.Fatalf("expected exactly one asset, got %d", s.Assets.Len())
	}
	if first.Kind() != wallet.KindFungible || first.Symbol != "USDC" {
		t.Fatalf("unexpected asset %+v", first)
	}
	if n := len(f.CallsTo("supportsInterface")); n != 1 {
		t.Fatalf("duplicate add must not probe again, probed %d times", n)
	}
}

func TestAddClassifiesNFT(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	asset, _, err := s.Assets.Add(context.Background(), nft.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if asset.Kind() != wallet.KindNonFungible || !asset.Classification.Enumerable || asset.Name != "Apes" {
		t.Fatalf("unexpected asset %+v", asset)
	}
	if _, ok := s.PanelFor(asset).(*ERC721Panel); !ok {
		t.Fatalf("expected an ERC721 panel")
	}
}

func TestAddAssetFormInvalidAddress(t *testing.T) {
	f := providertest.New(alice)
	s := newSession(t, f)
	f.Reset()

	form := s.NewAddAssetForm()
	form.Address = "0x1234"
	if _, _, err := form.Submit(context.Background()); !errors.Is(err, twcommon.ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}
	if form.Address != "0x1234" {
		t.Fatalf("field must be kept, got %q", form.Address)
	}
	if len(f.Events()) != 0 {
		t.Fatalf("no call expected, got %v", f.Events())
	}
}

func TestTransferFormInvalidAddressMakesNoCall(t *testing.T) {
	for _, to := range []string{"0xnothex", "carol", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD"} {
		f := providertest.New(alice)
		s := newSession(t, f)
		f.Reset()

		form := s.NewTransferForm()
		form.To, form.Amount = to, "1"
		if _, err := form.Submit(context.Background()); !errors.Is(err, twcommon.ErrNotSubmitted) {
			t.Fatalf("%s: expected ErrNotSubmitted, got %v", to, err)
		}
		if form.To != to || form.Amount != "1" {
			t.Fatalf("%s: fields changed to %q/%q", to, form.To, form.Amount)
		}
		if len(f.Events()) != 0 {
			t.Fatalf("%s: no call expected, got %v", to, f.Events())
		}
	}
}

func TestNativeTransferRefreshesOnceAfterConfirmation(t *testing.T) {
	f := providertest.New(alice)
	f.Balances[alice] = big.NewInt(3e18)
	s := newSession(t, f)
	f.Reset()

	form := s.NewTransferForm()
	form.To, form.Amount = "bob", "1"
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	events := f.Events()
	want := []string{"send", "confirm", "balance"}
	if strings.Join(events, ",") != strings.Join(want, ",") {
		t.Fatalf("events = %v, want %v", events, want)
	}
	if form.To != "" || form.Amount != "" {
		t.Fatalf("fields must be cleared after success")
	}
	if bal, _ := s.Native.Balance(); bal != "3" {
		t.Fatalf("balance = %q", bal)
	}
	if sent := f.Sent(); sent[0].To != bob {
		t.Fatalf("sent to %s", sent[0].To.Hex())
	}
}

func TestFailedTransferKeepsFieldsAndSkipsRefresh(t *testing.T) {
	f := providertest.New(alice)
	f.ConfirmErr = twcommon.ErrTxReverted
	s := newSession(t, f)
	f.Reset()

	form := s.NewTransferForm()
	form.To, form.Amount = bob.Hex(), "1"
	if _, err := form.Submit(context.Background()); !errors.Is(err, twcommon.ErrTxReverted) {
		t.Fatalf("expected ErrTxReverted, got %v", err)
	}
	if form.To == "" || f.Count("balance") != 0 {
		t.Fatalf("failed transfer must not clear fields or refresh")
	}
}

func TestTokenTransferForm(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), token.Hex())
	panel := s.PanelFor(asset)
	f.Reset()

	form := s.NewTokenTransferForm(asset, panel)
	form.To, form.Amount = bob.Hex(), "0.5"
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap, err := panel.(*ERC20Panel).Snapshot()
	if err != nil || snap.Balance != "2.500000" || snap.Symbol != "USDC" {
		t.Fatalf("snapshot = %+v, %v", snap, err)
	}
	if f.Count("call:decimals") != 2 {
		t.Fatalf("decimals must be read for the transfer and for the refresh")
	}
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	f := providertest.New(alice)
	f.Balances[alice] = big.NewInt(1e18)
	s := newSession(t, f)

	entered := make(chan struct{})
	release := make(chan struct{})
	first := true
	f.Hook = func(ctx context.Context, op string) error {
		if op != "balance" || !first {
			return nil
		}
		first = false
		close(entered)
		<-release
		return nil
	}

	done := make(chan error)
	go func() { done <- s.Native.Refresh(context.Background()) }()
	<-entered

	f.Balances[alice] = big.NewInt(2e18)
	if err := s.Native.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	f.Balances[alice] = big.NewInt(3e18)
	close(release)

	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("older refresh must be discarded, got %v", err)
	}
	if bal, _ := s.Native.Balance(); bal != "2" {
		t.Fatalf("balance = %q, want the newer result 2", bal)
	}
}

func TestNFTPanelEnumeratesInOrder(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), nft.Hex())
	panel := s.PanelFor(asset).(*ERC721Panel)
	f.Reset()

	if err := panel.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap, _ := panel.Snapshot()
	if snap.Count.Int64() != 3 || len(snap.Holdings) != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
	for i, call := range f.CallsTo("tokenOfOwnerByIndex") {
		if call.Args[1].(*big.Int).Int64() != int64(i) {
			t.Fatalf("index %d requested out of order: %s", i, call.Args[1])
		}
	}
	if snap.Holdings[0].TokenID.Int64() != 5 || snap.Holdings[2].URI != "ipfs://2" {
		t.Fatalf("unexpected holdings %+v", snap.Holdings)
	}
}

func TestNFTPartialFailureKeepsSnapshot(t *testing.T) {
	f := providertest.New(alice)
	collection := withContracts(f)
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), nft.Hex())
	panel := s.PanelFor(asset).(*ERC721Panel)
	if err := panel.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	collection.FailAt = big.NewInt(1)
	collection.Owned[alice] = append(collection.Owned[alice], big.NewInt(77))
	if err := panel.Refresh(context.Background()); err == nil {
		t.Fatalf("expected the refresh to fail")
	}
	snap, err := panel.Snapshot()
	if err == nil {
		t.Fatalf("the failure must be reported")
	}
	if len(snap.Holdings) != 3 || snap.Count.Int64() != 3 {
		t.Fatalf("previous snapshot must stay, got %+v", snap)
	}
}

func TestNonEnumerableNFTShowsCountOnly(t *testing.T) {
	f := providertest.New(alice)
	collection := withContracts(f)
	collection.Enumerable = false
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), nft.Hex())
	if asset.Classification.Enumerable {
		t.Fatalf("expected a non enumerable asset")
	}
	panel := s.PanelFor(asset).(*ERC721Panel)
	if err := panel.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	snap, _ := panel.Snapshot()
	if snap.Count.Int64() != 3 || len(snap.Holdings) != 0 {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(f.CallsTo("tokenOfOwnerByIndex")) != 0 {
		t.Fatalf("must never enumerate a non enumerable contract")
	}
}

func TestNFTTransferForm(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), nft.Hex())
	panel := s.PanelFor(asset)

	form := s.NewNFTTransferForm(asset, panel)
	form.To, form.TokenID, form.Data = "bob", "9", "0x01"
	if _, err := form.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	if form.To != "" || form.TokenID != "" {
		t.Fatalf("fields must be cleared")
	}
	if sent := f.Sent(); len(sent) != 1 || sent[0].To != nft {
		t.Fatalf("unexpected txs %+v", sent)
	}
}

func TestNFTTransferFormRejectsBadTokenID(t *testing.T) {
	f := providertest.New(alice)
	withContracts(f)
	s := newSession(t, f)
	asset, _, _ := s.Assets.Add(context.Background(), nft.Hex())

	for _, id := range []string{"-1", "0b101", "nine"} {
		form := s.NewNFTTransferForm(asset, s.PanelFor(asset))
		form.To, form.TokenID = "bob", id
		_, err := form.Submit(context.Background())
		if !errors.Is(err, twcommon.ErrNotSubmitted) {
			t.Fatalf("token id %q: want ErrNotSubmitted, got %v", id, err)
		}
		if form.TokenID != id {
			t.Fatalf("fields must be kept after a refused submit")
		}
	}
	if len(f.Sent()) != 0 {
		t.Fatalf("nothing must be sent")
	}
}

func TestSelectAccount(t *testing.T) {
	f := providertest.New(alice, bob)
	s := newSession(t, f)
	if s.Active() != alice {
		t.Fatalf("first account must be active by default")
	}
	got, err := s.Select("fb6916")
	if err != nil || got != bob || s.Native.Account() != bob {
		t.Fatalf("fuzzy select: %s %v", got.Hex(), err)
	}
	if got, _ := s.Select(strings.ToLower(alice.Hex())); got != alice {
		t.Fatalf("exact select: %s", got.Hex())
	}
	if _, err := s.Select("zzzz"); err == nil {
		t.Fatalf("expected no match")
	}
}

func TestNewSessionWithoutAccounts(t *testing.T) {
	_, err := New(context.Background(), wallet.NewClient(providertest.New()), 0)
	if !errors.Is(err, twcommon.ErrNoAccounts) {
		t.Fatalf("expected ErrNoAccounts, got %v", err)
	}
}
