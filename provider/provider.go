// Package provider is the boundary between the wallet and whatever holds the
// user's accounts: a node that manages them (Node) or a keystore file that
// signs locally (Keystore).
package provider

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

// TxRequest is a transaction the provider completes (nonce, gas, fees),
// signs and submits.
type TxRequest struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte
}

type Provider interface {
	// Accounts lists the accounts the user granted access to.
	Accounts(ctx context.Context) ([]common.Address, error)
	BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error)
	// WaitConfirmed blocks until the tx has its first confirmation.
	WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// chainReader is what the providers need from util/reader.EthReader.
type chainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	GetPendingNonce(ctx context.Context, address common.Address) (uint64, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SuggestedGasSettings(ctx context.Context) (gasPrice, tip *big.Int, err error)
	TxInfoFromHash(ctx context.Context, hash common.Hash) (twcommon.TxInfo, error)
}

type confirmer interface {
	WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}
