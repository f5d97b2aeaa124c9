// Package wallet adapts the wallet provider to the token standards the
// front end understands: the native coin, ERC-20 and ERC-721, plus the
// ERC-165 probe used to tell them apart.
//
// Every read is a fresh remote call. Nothing is cached, decimals included.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/provider"
	"github.com/tranvictor/tokenwallet/util/addrbook"
)

// ErrEmptyReply is returned for a call that came back with no data, which is
// what an address without code or a contract without the method answers.
var ErrEmptyReply = errors.New("empty reply")

type Client struct {
	provider       provider.Provider
	resolver       addrbook.Resolver
	policy         IndeterminatePolicy
	logger         *zap.Logger
	nativeDecimals uint64
}

type Option func(*Client)

func WithResolver(r addrbook.Resolver) Option {
	return func(c *Client) { c.resolver = r }
}

func WithPolicy(p IndeterminatePolicy) Option {
	return func(c *Client) { c.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithNativeDecimals(d uint64) Option {
	return func(c *Client) { c.nativeDecimals = d }
}

func NewClient(p provider.Provider, opts ...Option) *Client {
	c := &Client{
		provider:       p,
		resolver:       addrbook.Literal{},
		policy:         TreatAsFungible,
		nativeDecimals: 18,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = twcommon.Logger()
	}
	return c
}

func (c *Client) Provider() provider.Provider {
	return c.provider
}

func (c *Client) Accounts(ctx context.Context) ([]common.Address, error) {
	return c.provider.Accounts(ctx)
}

// call packs a read, runs it against the latest block and unpacks the
// outputs.
func (c *Client) call(
	ctx context.Context,
	contract common.Address,
	a *abi.ABI,
	method string,
	args ...interface{},
) ([]interface{}, error) {
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	start := time.Now()
	out, err := c.provider.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data})
	c.logger.Debug("contract call",
		zap.String("method", method),
		zap.Stringer("contract", contract),
		zap.Duration("took", time.Since(start)),
		zap.Error(err),
	)
	if err != nil {
		return nil, fmt.Errorf("calling %s on %s: %w", method, contract.Hex(), err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("calling %s on %s: %w", method, contract.Hex(), ErrEmptyReply)
	}
	values, err := a.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("decoding %s from %s: %w", method, contract.Hex(), err)
	}
	return values, nil
}

func (c *Client) callString(ctx context.Context, contract common.Address, a *abi.ABI, method string, args ...interface{}) (string, error) {
	values, err := c.call(ctx, contract, a, method, args...)
	if err != nil {
		return "", err
	}
	s, ok := values[0].(string)
	if !ok {
		return "", fmt.Errorf("%s returned %T, not a string", method, values[0])
	}
	return s, nil
}

func (c *Client) callBigInt(ctx context.Context, contract common.Address, a *abi.ABI, method string, args ...interface{}) (*big.Int, error) {
	values, err := c.call(ctx, contract, a, method, args...)
	if err != nil {
		return nil, err
	}
	n, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s returned %T, not an integer", method, values[0])
	}
	return n, nil
}

// transact submits a tx through the provider and waits for its first
// confirmation. Provider errors are returned as they are, wrapped.
func (c *Client) transact(ctx context.Context, req provider.TxRequest) (*types.Receipt, error) {
	hash, err := c.provider.SendTransaction(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submitting tx: %w", err)
	}
	c.logger.Info("tx submitted",
		zap.Stringer("tx", hash),
		zap.Stringer("from", req.From),
		zap.Stringer("to", req.To),
	)
	receipt, err := c.provider.WaitConfirmed(ctx, hash)
	if err != nil {
		return receipt, fmt.Errorf("tx %s: %w", hash.Hex(), err)
	}
	return receipt, nil
}
