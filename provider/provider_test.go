package provider

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/networks"
	"github.com/tranvictor/tokenwallet/util/account"
)

const testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

type fakeReader struct {
	nonce    uint64
	gasPrice *big.Int
	tip      *big.Int
	estimate uint64
}

func (f *fakeReader) ChainID(ctx context.Context) (*big.Int, error) { return big.NewInt(1337), nil }
func (f *fakeReader) GetBalance(ctx context.Context, a common.Address) (*big.Int, error) {
	return big.NewInt(7), nil
}
func (f *fakeReader) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return nil, nil
}
func (f *fakeReader) GetPendingNonce(ctx context.Context, a common.Address) (uint64, error) {
	return f.nonce, nil
}
func (f *fakeReader) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return f.estimate, nil
}
func (f *fakeReader) SuggestedGasSettings(ctx context.Context) (*big.Int, *big.Int, error) {
	return f.gasPrice, f.tip, nil
}
func (f *fakeReader) TxInfoFromHash(ctx context.Context, h common.Hash) (twcommon.TxInfo, error) {
	return twcommon.TxInfo{Status: twcommon.TxStatusDone, Receipt: &types.Receipt{Status: 1}}, nil
}

type fakeBroadcaster struct {
	sent []*types.Transaction
	fail error
}

func (f *fakeBroadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error) {
	if f.fail != nil {
		return tx.Hash().Hex(), false, f.fail
	}
	f.sent = append(f.sent, tx)
	return tx.Hash().Hex(), true, nil
}

type fakeConfirmer struct{}

func (fakeConfirmer) WaitConfirmed(ctx context.Context, h common.Hash) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: h}, nil
}

func newTestKeystore(t *testing.T, r *fakeReader, b *fakeBroadcaster, gas GasOptions) *Keystore {
	t.Helper()
	key, err := crypto.HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	return NewKeystore(account.NewAccount(key), big.NewInt(1337), gas, r, b, fakeConfirmer{})
}

func TestKeystoreSendBuildsSignedDynamicFeeTx(t *testing.T) {
	r := &fakeReader{nonce: 9, gasPrice: big.NewInt(30e9), tip: big.NewInt(2e9), estimate: 52000}
	b := &fakeBroadcaster{}
	k := newTestKeystore(t, r, b, GasOptions{})
	from := k.account.Address()
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	hash, err := k.SendTransaction(context.Background(), TxRequest{From: from, To: to, Value: big.NewInt(1000)})
	if err != nil {
		t.Fatal(err)
	}
	if len(b.sent) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(b.sent))
	}
	tx := b.sent[0]
	if tx.Hash() != hash {
		t.Fatalf("returned hash %s != broadcast %s", hash.Hex(), tx.Hash().Hex())
	}
	if tx.Type() != types.DynamicFeeTxType || tx.Nonce() != 9 || tx.Gas() != 52000 {
		t.Fatalf("type=%d nonce=%d gas=%d", tx.Type(), tx.Nonce(), tx.Gas())
	}
	if *tx.To() != to || tx.Value().Int64() != 1000 {
		t.Fatalf("to=%s value=%s", tx.To().Hex(), tx.Value())
	}
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), tx)
	if err != nil || sender != from {
		t.Fatalf("sender=%s err=%v", sender.Hex(), err)
	}
}

func TestKeystoreLegacyOverrides(t *testing.T) {
	r := &fakeReader{}
	b := &fakeBroadcaster{}
	k := newTestKeystore(t, r, b, GasOptions{GasPriceGwei: 1.5, GasLimit: 21000, TxType: twcommon.TxTypeLegacy})
	_, err := k.SendTransaction(context.Background(), TxRequest{From: k.account.Address(), Value: big.NewInt(1)})
	if err != nil {
		t.Fatal(err)
	}
	tx := b.sent[0]
	if tx.Type() != types.LegacyTxType || tx.GasPrice().Int64() != 1500000000 || tx.Gas() != 21000 {
		t.Fatalf("type=%d price=%s gas=%d", tx.Type(), tx.GasPrice(), tx.Gas())
	}
}

func TestKeystoreRejectsForeignSender(t *testing.T) {
	k := newTestKeystore(t, &fakeReader{}, &fakeBroadcaster{}, GasOptions{})
	_, err := k.SendTransaction(context.Background(), TxRequest{From: common.HexToAddress("0x01")})
	if !twcommon.HasCode(err, twcommon.CodeSigner) {
		t.Fatalf("expected signer error, got %v", err)
	}
}

func TestKeystoreBroadcastFailure(t *testing.T) {
	r := &fakeReader{gasPrice: big.NewInt(1), estimate: 21000}
	k := newTestKeystore(t, r, &fakeBroadcaster{fail: errors.New("all nodes down")}, GasOptions{})
	_, err := k.SendTransaction(context.Background(), TxRequest{From: k.account.Address()})
	if !twcommon.HasCode(err, twcommon.CodeSendTx) {
		t.Fatalf("expected send error, got %v", err)
	}
}

type fakeRPC struct {
	accounts []common.Address
	lastArgs []interface{}
}

func (f *fakeRPC) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	f.lastArgs = args
	switch method {
	case "eth_accounts":
		*(result.(*[]common.Address)) = f.accounts
		return nil
	case "eth_sendTransaction":
		*(result.(*common.Hash)) = common.HexToHash("0xabc")
		return nil
	}
	return errors.New("method not allowed")
}

func TestNodeAccountsAndSend(t *testing.T) {
	alice := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	rpc := &fakeRPC{accounts: []common.Address{alice}}
	n := NewNode(rpc, &fakeReader{}, fakeConfirmer{})

	accounts, err := n.Accounts(context.Background())
	if err != nil || len(accounts) != 1 || accounts[0] != alice {
		t.Fatalf("accounts=%v err=%v", accounts, err)
	}

	hash, err := n.SendTransaction(context.Background(), TxRequest{From: alice, To: alice})
	if err != nil {
		t.Fatal(err)
	}
	if hash != common.HexToHash("0xabc") {
		t.Fatalf("hash = %s", hash.Hex())
	}
	args := rpc.lastArgs[0].(sendTxArgs)
	if args.From != alice || args.Value.ToInt().Sign() != 0 {
		t.Fatalf("unexpected args %+v", args)
	}
}

func TestDialWithoutNodesIsNoProvider(t *testing.T) {
	empty := networks.NewGenericNetwork(networks.GenericNetworkConfig{Name: "empty", ChainID: 5})
	_, err := Dial(context.Background(), Options{Network: empty})
	if !IsNoProvider(err) {
		t.Fatalf("expected NO_PROVIDER, got %v", err)
	}
	var appErr *twcommon.AppError
	if !errors.As(err, &appErr) || appErr.Code != twcommon.CodeNoProvider {
		t.Fatalf("expected *AppError, got %T", err)
	}

	if _, err := Dial(context.Background(), Options{}); !IsNoProvider(err) {
		t.Fatalf("expected NO_PROVIDER without network, got %v", err)
	}
}

func TestDialUnreachableNodeIsNoProvider(t *testing.T) {
	empty := networks.NewGenericNetwork(networks.GenericNetworkConfig{Name: "empty", ChainID: 5})
	_, err := Dial(context.Background(), Options{
		Network: empty,
		Nodes:   map[string]string{"dead": "http://127.0.0.1:1"},
	})
	if !IsNoProvider(err) {
		t.Fatalf("expected NO_PROVIDER, got %v", err)
	}
}
