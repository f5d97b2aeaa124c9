package provider

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
	"golang.org/x/term"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/util/account"
)

// GasOptions overrides what the nodes suggest. Zero values mean "ask the
// node".
type GasOptions struct {
	GasPriceGwei float64
	TipGwei      float64
	GasLimit     uint64
	TxType       string
}

type txBroadcaster interface {
	BroadcastTx(ctx context.Context, tx *types.Transaction) (string, bool, error)
}

// Keystore signs with a single local account and broadcasts the signed tx
// to every node.
type Keystore struct {
	account     *account.Account
	chainID     *big.Int
	gas         GasOptions
	reader      chainReader
	broadcaster txBroadcaster
	monitor     confirmer
}

func NewKeystore(
	acc *account.Account,
	chainID *big.Int,
	gas GasOptions,
	r chainReader,
	b txBroadcaster,
	m confirmer,
) *Keystore {
	return &Keystore{
		account:     acc,
		chainID:     chainID,
		gas:         gas,
		reader:      r,
		broadcaster: b,
		monitor:     m,
	}
}

func (k *Keystore) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{k.account.Address()}, nil
}

func (k *Keystore) BalanceAt(ctx context.Context, addr common.Address) (*big.Int, error) {
	return k.reader.GetBalance(ctx, addr)
}

func (k *Keystore) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return k.reader.CallContract(ctx, msg)
}

func gweiToWei(gwei float64) (*big.Int, error) {
	return twcommon.ToBaseUnits(strconv.FormatFloat(gwei, 'f', -1, 64), 9)
}

func (k *Keystore) gasPrices(ctx context.Context) (gasPrice, tip *big.Int, err error) {
	if k.gas.GasPriceGwei > 0 {
		if gasPrice, err = gweiToWei(k.gas.GasPriceGwei); err != nil {
			return nil, nil, err
		}
	}
	if k.gas.TipGwei > 0 {
		if tip, err = gweiToWei(k.gas.TipGwei); err != nil {
			return nil, nil, err
		}
	}
	if gasPrice != nil && (tip != nil || k.gas.TxType == twcommon.TxTypeLegacy) {
		return gasPrice, tip, nil
	}
	suggestedPrice, suggestedTip, err := k.reader.SuggestedGasSettings(ctx)
	if err != nil {
		return nil, nil, err
	}
	if gasPrice == nil {
		gasPrice = suggestedPrice
	}
	if tip == nil {
		tip = suggestedTip
	}
	return gasPrice, tip, nil
}

func (k *Keystore) txType(tip *big.Int) string {
	if k.gas.TxType != "" {
		return k.gas.TxType
	}
	if tip != nil {
		return twcommon.TxTypeDynamicFee
	}
	return twcommon.TxTypeLegacy
}

func (k *Keystore) SendTransaction(ctx context.Context, req TxRequest) (common.Hash, error) {
	if req.From != k.account.Address() {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeSigner, "send",
			fmt.Errorf("keystore holds %s, not %s", k.account.AddressHex(), req.From.Hex()))
	}
	nonce, err := k.reader.GetPendingNonce(ctx, req.From)
	if err != nil {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeNonce, "pending nonce", err)
	}
	gasPrice, tip, err := k.gasPrices(ctx)
	if err != nil {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeGas, "gas price", err)
	}
	txType := k.txType(tip)
	if txType == twcommon.TxTypeDynamicFee && tip == nil {
		tip = big.NewInt(0)
	}
	gasLimit := k.gas.GasLimit
	if gasLimit == 0 {
		to := req.To
		gasLimit, err = k.reader.EstimateGas(ctx, ethereum.CallMsg{
			From:  req.From,
			To:    &to,
			Value: req.Value,
			Data:  req.Data,
		})
		if err != nil {
			return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeGas, "estimate gas", err)
		}
	}

	tx := twcommon.BuildExactTx(txType, k.chainID, nonce, req.To, req.Value, gasLimit, gasPrice, tip, req.Data)
	signed, err := k.account.SignTx(tx, k.chainID)
	if err != nil {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeSigner, "sign", err)
	}
	hash, ok, err := k.broadcaster.BroadcastTx(ctx, signed)
	if !ok {
		return common.Hash{}, twcommon.WrapWithCode(twcommon.CodeSendTx, "broadcast", err)
	}
	twcommon.Logger().Debug("tx broadcasted",
		zap.String("tx", hash),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
		zap.String("type", txType),
	)
	return signed.Hash(), nil
}

func (k *Keystore) WaitConfirmed(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return k.monitor.WaitConfirmed(ctx, hash)
}

// PromptPassword reads a passphrase from the terminal without echo.
func PromptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
