package reader

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

type fakeNode struct {
	name    string
	delay   time.Duration
	balance *big.Int
	err     error

	tx        *types.Transaction
	txErr     error
	isPending bool
	receipt   *types.Receipt
}

func (f *fakeNode) NodeName() string { return f.name }
func (f *fakeNode) NodeURL() string  { return "fake://" + f.name }

func (f *fakeNode) wait(ctx context.Context) error {
	select {
	case <-time.After(f.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeNode) ChainID(ctx context.Context) (*big.Int, error) { return big.NewInt(1337), nil }
func (f *fakeNode) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return 21000, nil
}
func (f *fakeNode) GetCode(ctx context.Context, a common.Address) ([]byte, error) { return nil, nil }
func (f *fakeNode) GetBalance(ctx context.Context, a common.Address) (*big.Int, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.balance, f.err
}
func (f *fakeNode) GetPendingNonce(ctx context.Context, a common.Address) (uint64, error) {
	return 0, nil
}
func (f *fakeNode) TransactionReceipt(ctx context.Context, h common.Hash) (*types.Receipt, error) {
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}
func (f *fakeNode) TransactionByHash(ctx context.Context, h common.Hash) (*types.Transaction, bool, error) {
	return f.tx, f.isPending, f.txErr
}
func (f *fakeNode) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(10), nil
}
func (f *fakeNode) SuggestedGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(100), nil
}
func (f *fakeNode) CallContract(ctx context.Context, msg ethereum.CallMsg, b *big.Int) ([]byte, error) {
	return nil, nil
}
func (f *fakeNode) HeaderByNumber(ctx context.Context, n int64) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1), BaseFee: big.NewInt(7)}, nil
}

func TestFirstSuccessSkipsFailingNode(t *testing.T) {
	r := NewEthReaderWithNodes(map[string]EthereumNode{
		"bad":  &fakeNode{name: "bad", err: errors.New("boom")},
		"good": &fakeNode{name: "good", delay: 10 * time.Millisecond, balance: big.NewInt(42)},
	})
	b, err := r.GetBalance(context.Background(), common.Address{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if b.Int64() != 42 {
		t.Fatalf("balance = %s, want 42", b)
	}
}

func TestAllNodesFailingJoinsErrors(t *testing.T) {
	r := NewEthReaderWithNodes(map[string]EthereumNode{
		"a": &fakeNode{name: "a", err: errors.New("a down")},
		"b": &fakeNode{name: "b", err: errors.New("b down")},
	})
	_, err := r.GetBalance(context.Background(), common.Address{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestNoNodes(t *testing.T) {
	r := NewEthReaderWithNodes(map[string]EthereumNode{})
	if _, err := r.GetBalance(context.Background(), common.Address{}); !errors.Is(err, ErrNoNodes) {
		t.Fatalf("expected ErrNoNodes, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	r := NewEthReaderWithNodes(map[string]EthereumNode{
		"slow": &fakeNode{name: "slow", delay: time.Second, balance: big.NewInt(1)},
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.GetBalance(ctx, common.Address{}); err == nil {
		t.Fatalf("expected an error from a cancelled context")
	}
}

func TestSuggestedGasSettingsAddsTipMargin(t *testing.T) {
	r := NewEthReaderWithNodes(map[string]EthereumNode{"a": &fakeNode{name: "a"}})
	price, tip, err := r.SuggestedGasSettings(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if price.Int64() != 10 || tip.Int64() != 120 {
		t.Fatalf("price=%s tip=%s", price, tip)
	}
}

func TestTxInfoFromHash(t *testing.T) {
	tx := types.NewTx(&types.LegacyTx{Nonce: 1, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(0)})
	tcs := []struct {
		name string
		node *fakeNode
		want twcommon.TxStatus
	}{
		{"notfound", &fakeNode{txErr: ethereum.NotFound}, twcommon.TxStatusNotFound},
		{"pending", &fakeNode{tx: tx, isPending: true}, twcommon.TxStatusPending},
		{"mined no receipt yet", &fakeNode{tx: tx}, twcommon.TxStatusPending},
		{"done", &fakeNode{tx: tx, receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}, twcommon.TxStatusDone},
		{"reverted", &fakeNode{tx: tx, receipt: &types.Receipt{Status: types.ReceiptStatusFailed}}, twcommon.TxStatusReverted},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			tc.node.name = "n"
			r := NewEthReaderWithNodes(map[string]EthereumNode{"n": tc.node})
			info, _ := r.TxInfoFromHash(context.Background(), common.Hash{})
			if info.Status != tc.want {
				t.Fatalf("status = %s, want %s", info.Status, tc.want)
			}
		})
	}
}
