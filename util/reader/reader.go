package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/config"
)

var ErrNoNodes = errors.New("no nodes configured")

// EthReader fans every read out to all of its nodes and returns the first
// successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return NewEthReaderWithNodes(ns)
}

func NewEthReaderWithNodes(nodes map[string]EthereumNode) *EthReader {
	return &EthReader{nodes: nodes}
}

func (er *EthReader) Nodes() map[string]EthereumNode {
	return er.nodes
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

// nodeContext bounds a single node call by --timeout. Without it a hung
// node holds the call until ctx is done.
func nodeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if config.Timeout > 0 {
		return context.WithTimeout(ctx, config.Timeout)
	}
	return context.WithCancel(ctx)
}

type nodeResult[T any] struct {
	value T
	err   error
}

// firstSuccess queries every node concurrently and returns the first value
// without error. The context passed to the nodes is cancelled once an answer
// is in, so slower nodes are abandoned.
func firstSuccess[T any](
	ctx context.Context,
	er *EthReader,
	op string,
	call func(ctx context.Context, n EthereumNode) (T, error),
) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, ErrNoNodes
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan nodeResult[T], len(er.nodes))
	for _, n := range er.nodes {
		go func(n EthereumNode) {
			nodeCtx, nodeCancel := nodeContext(ctx)
			defer nodeCancel()
			v, err := call(nodeCtx, n)
			resCh <- nodeResult[T]{value: v, err: wrapError(err, n.NodeName())}
		}(n)
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case result := <-resCh:
			if result.err == nil {
				return result.value, nil
			}
			twcommon.Logger().Debug("node read failed", zap.String("op", op), zap.Error(result.err))
			errs = append(errs, result.err)
		}
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	return firstSuccess(ctx, er, "chain_id", func(ctx context.Context, n EthereumNode) (*big.Int, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	return firstSuccess(ctx, er, "estimate_gas", func(ctx context.Context, n EthereumNode) (uint64, error) {
		return n.EstimateGas(ctx, msg)
	})
}

func (er *EthReader) GetCode(ctx context.Context, address common.Address) ([]byte, error) {
	return firstSuccess(ctx, er, "get_code", func(ctx context.Context, n EthereumNode) ([]byte, error) {
		return n.GetCode(ctx, address)
	})
}

func (er *EthReader) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return firstSuccess(ctx, er, "get_balance", func(ctx context.Context, n EthereumNode) (*big.Int, error) {
		return n.GetBalance(ctx, address)
	})
}

func (er *EthReader) GetPendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	return firstSuccess(ctx, er, "pending_nonce", func(ctx context.Context, n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(ctx, address)
	})
}

func (er *EthReader) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return firstSuccess(ctx, er, "receipt", func(ctx context.Context, n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(ctx, hash)
	})
}

type txByHash struct {
	tx        *types.Transaction
	isPending bool
}

func (er *EthReader) TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error) {
	res, err := firstSuccess(ctx, er, "tx_by_hash", func(ctx context.Context, n EthereumNode) (txByHash, error) {
		tx, isPending, err := n.TransactionByHash(ctx, hash)
		return txByHash{tx, isPending}, err
	})
	return res.tx, res.isPending, err
}

// CallContract runs msg against the latest block.
func (er *EthReader) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return firstSuccess(ctx, er, "call", func(ctx context.Context, n EthereumNode) ([]byte, error) {
		return n.CallContract(ctx, msg, nil)
	})
}

func (er *EthReader) HeaderByNumber(ctx context.Context, number int64) (*types.Header, error) {
	return firstSuccess(ctx, er, "header", func(ctx context.Context, n EthereumNode) (*types.Header, error) {
		return n.HeaderByNumber(ctx, number)
	})
}

func (er *EthReader) SuggestedGasPrice(ctx context.Context) (*big.Int, error) {
	return firstSuccess(ctx, er, "gas_price", func(ctx context.Context, n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasPrice(ctx)
	})
}

// SuggestedGasTipCap adds 20% to what the node suggests.
func (er *EthReader) SuggestedGasTipCap(ctx context.Context) (*big.Int, error) {
	tip, err := firstSuccess(ctx, er, "gas_tip", func(ctx context.Context, n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasTipCap(ctx)
	})
	if err != nil {
		return nil, err
	}
	return new(big.Int).Div(new(big.Int).Mul(tip, big.NewInt(120)), big.NewInt(100)), nil
}

// CheckDynamicFeeTxAvailable reports whether the latest block carries a base
// fee, which is how London enabled chains are told apart.
func (er *EthReader) CheckDynamicFeeTxAvailable(ctx context.Context) (bool, error) {
	header, err := er.HeaderByNumber(ctx, -1)
	if err != nil {
		return false, err
	}
	return header.BaseFee != nil && header.BaseFee.Sign() > 0, nil
}

// SuggestedGasSettings returns the gas price (fee cap for dynamic fee txs)
// and tip in wei. tip is nil when the chain has no base fee.
func (er *EthReader) SuggestedGasSettings(ctx context.Context) (gasPrice, tip *big.Int, err error) {
	isDynamicFeeAvailable, err := er.CheckDynamicFeeTxAvailable(ctx)
	if err != nil {
		return nil, nil, err
	}
	gasPrice, err = er.SuggestedGasPrice(ctx)
	if err != nil {
		return nil, nil, err
	}
	if isDynamicFeeAvailable {
		tip, err = er.SuggestedGasTipCap(ctx)
		if err != nil {
			return nil, nil, err
		}
	}
	return gasPrice, tip, nil
}

func (er *EthReader) TxInfoFromHash(ctx context.Context, hash common.Hash) (twcommon.TxInfo, error) {
	txObj, isPending, err := er.TransactionByHash(ctx, hash)
	if errors.Is(err, ethereum.NotFound) {
		return twcommon.TxInfo{Status: twcommon.TxStatusNotFound}, nil
	}
	if err != nil {
		return twcommon.TxInfo{Status: twcommon.TxStatusError}, err
	}
	if txObj == nil {
		return twcommon.TxInfo{Status: twcommon.TxStatusNotFound}, nil
	}
	if isPending {
		return twcommon.TxInfo{Status: twcommon.TxStatusPending, Tx: txObj}, nil
	}

	receipt, err := er.TransactionReceipt(ctx, hash)
	if receipt == nil {
		return twcommon.TxInfo{Status: twcommon.TxStatusPending, Tx: txObj}, err
	}
	// pre-byzantium receipts carry a post state root instead of a status
	if len(receipt.PostState) == len(common.Hash{}) || receipt.Status == types.ReceiptStatusSuccessful {
		return twcommon.TxInfo{Status: twcommon.TxStatusDone, Tx: txObj, Receipt: receipt}, nil
	}
	return twcommon.TxInfo{Status: twcommon.TxStatusReverted, Tx: txObj, Receipt: receipt}, nil
}
