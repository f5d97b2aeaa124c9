// Package providertest provides an in-memory provider.Provider for tests.
// Contract calls are decoded by method selector against the ABIs the wallet
// knows and answered by plain Go functions.
package providertest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/provider"
)

// ErrReverted is what a ContractFunc returns to simulate a revert.
var ErrReverted = errors.New("execution reverted")

// ContractFunc answers a decoded call with the method's outputs.
type ContractFunc func(method string, args []interface{}) ([]interface{}, error)

type Call struct {
	Contract common.Address
	Method   string
	Args     []interface{}
}

type Fake struct {
	mu sync.Mutex

	Accts     []common.Address
	Balances  map[common.Address]*big.Int
	Contracts map[common.Address]ContractFunc

	// Hook, when set, runs before every answer and can block or fail it.
	Hook func(ctx context.Context, op string) error

	SendErr    error
	ConfirmErr error

	calls  []Call
	sent   []provider.TxRequest
	events []string
}

func New(accounts ...common.Address) *Fake {
	return &Fake{
		Accts:     accounts,
		Balances:  map[common.Address]*big.Int{},
		Contracts: map[common.Address]ContractFunc{},
	}
}

func (f *Fake) record(ctx context.Context, op string) error {
	f.mu.Lock()
	f.events = append(f.events, op)
	hook := f.Hook
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, op)
	}
	return nil
}

func (f *Fake) Accounts(ctx context.Context) ([]common.Address, error) {
	if err := f.record(ctx, "accounts"); err != nil {
		return nil, err
	}
	return f.Accts, nil
}

func (f *Fake) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	if err := f.record(ctx, "balance"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.Balances[addr]; ok {
		return new(big.Int).Set(b), nil
	}
	return big.NewInt(0), nil
}

var knownABIs = []func() *abi.ABI{
	twcommon.GetERC20ABI,
	twcommon.GetERC721ABI,
	twcommon.GetERC165ABI,
	twcommon.GetENSRegistryABI,
	twcommon.GetENSResolverABI,
}

func methodByID(id []byte) (*abi.Method, error) {
	for _, get := range knownABIs {
		if m, err := get().MethodById(id); err == nil {
			return m, nil
		}
	}
	return nil, fmt.Errorf("unknown selector %x", id)
}

func (f *Fake) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	if msg.To == nil || len(msg.Data) < 4 {
		return nil, fmt.Errorf("malformed call")
	}
	m, err := methodByID(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	if err := f.record(ctx, "call:"+m.Name); err != nil {
		return nil, err
	}
	args, err := m.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls = append(f.calls, Call{Contract: *msg.To, Method: m.Name, Args: args})
	fn, ok := f.Contracts[*msg.To]
	f.mu.Unlock()
	if !ok {
		// no code at the address
		return []byte{}, nil
	}
	outs, err := fn(m.Name, args)
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(outs...)
}

func (f *Fake) SendTransaction(ctx context.Context, req provider.TxRequest) (common.Hash, error) {
	if err := f.record(ctx, "send"); err != nil {
		return common.Hash{}, err
	}
	if f.SendErr != nil {
		return common.Hash{}, f.SendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	return crypto.Keccak256Hash([]byte(fmt.Sprintf("tx-%d", len(f.sent)))), nil
}

func (f *Fake) WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := f.record(ctx, "confirm"); err != nil {
		return nil, err
	}
	if f.ConfirmErr != nil {
		return nil, f.ConfirmErr
	}
	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      hash,
		BlockNumber: big.NewInt(1),
	}, nil
}

// Calls returns the decoded contract calls in the order they were made.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// CallsTo returns the calls of one method.
func (f *Fake) CallsTo(method string) []Call {
	result := []Call{}
	for _, c := range f.Calls() {
		if c.Method == method {
			result = append(result, c)
		}
	}
	return result
}

func (f *Fake) Sent() []provider.TxRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]provider.TxRequest{}, f.sent...)
}

// Events lists every provider operation in order: "accounts", "balance",
// "call:<method>", "send" and "confirm".
func (f *Fake) Events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.events...)
}

func (f *Fake) Count(op string) int {
	n := 0
	for _, e := range f.Events() {
		if e == op {
			n++
		}
	}
	return n
}

func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls, f.sent, f.events = nil, nil, nil
}
