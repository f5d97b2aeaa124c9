package broadcaster

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
)

type fakeCaller struct {
	err   error
	calls atomic.Int32
}

func (f *fakeCaller) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	f.calls.Add(1)
	if method != "eth_sendRawTransaction" {
		return errors.New("unexpected method " + method)
	}
	return f.err
}

func testTx() *types.Transaction {
	return types.NewTx(&types.LegacyTx{Nonce: 3, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(5)})
}

func TestBroadcastSucceedsWhenOneNodeAccepts(t *testing.T) {
	good, bad := &fakeCaller{}, &fakeCaller{err: errors.New("rejected")}
	b := NewBroadcaster(map[string]RPCCaller{"good": good, "bad": bad})
	hash, ok, err := b.BroadcastTx(context.Background(), testTx())
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if hash != testTx().Hash().Hex() {
		t.Fatalf("hash = %s, want %s", hash, testTx().Hash().Hex())
	}
	if good.calls.Load() != 1 || bad.calls.Load() != 1 {
		t.Fatalf("every node must be tried once")
	}
	if len(b.GetNodes()) != 2 {
		t.Fatalf("want 2 nodes, got %d", len(b.GetNodes()))
	}
}

func TestBroadcastFailsWhenAllNodesReject(t *testing.T) {
	b := NewBroadcaster(map[string]RPCCaller{
		"a": &fakeCaller{err: errors.New("a")},
		"b": &fakeCaller{err: errors.New("b")},
	})
	_, ok, err := b.BroadcastTx(context.Background(), testTx())
	if ok || err == nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestBroadcastWithoutNodes(t *testing.T) {
	_, ok, err := NewBroadcaster(nil).BroadcastTx(context.Background(), testTx())
	if ok || err == nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}
