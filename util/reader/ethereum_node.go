package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ChainID(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (gas uint64, err error)
	GetCode(ctx context.Context, address common.Address) (code []byte, err error)
	GetBalance(ctx context.Context, address common.Address) (balance *big.Int, err error)
	GetPendingNonce(ctx context.Context, address common.Address) (nonce uint64, err error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (receipt *types.Receipt, err error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	SuggestedGasPrice(ctx context.Context) (*big.Int, error)
	SuggestedGasTipCap(ctx context.Context) (*big.Int, error)
	// CallContract runs an eth_call against the latest block when atBlock
	// is nil.
	CallContract(ctx context.Context, msg ethereum.CallMsg, atBlock *big.Int) ([]byte, error)
	// HeaderByNumber returns the latest header for a negative number.
	HeaderByNumber(ctx context.Context, number int64) (*types.Header, error)
}
