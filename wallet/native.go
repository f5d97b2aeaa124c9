package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/provider"
)

// NativeBalance returns the balance in whole coins, e.g. "1.5".
func (c *Client) NativeBalance(ctx context.Context, address common.Address) (string, error) {
	wei, err := c.provider.BalanceAt(ctx, address)
	if err != nil {
		return "", fmt.Errorf("reading balance of %s: %w", address.Hex(), err)
	}
	return twcommon.FormatUnits(wei, c.nativeDecimals), nil
}

// TransferNative sends amount coins and returns once the tx is confirmed.
func (c *Client) TransferNative(ctx context.Context, from, to common.Address, amount string) (*types.Receipt, error) {
	value, err := twcommon.ToBaseUnits(amount, c.nativeDecimals)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, provider.TxRequest{
		From:  from,
		To:    to,
		Value: value,
	})
}
