package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/provider"
)

func (c *Client) ERC20Name(ctx context.Context, contract common.Address) (string, error) {
	return c.callString(ctx, contract, twcommon.GetERC20ABI(), "name")
}

func (c *Client) ERC20Symbol(ctx context.Context, contract common.Address) (string, error) {
	return c.callString(ctx, contract, twcommon.GetERC20ABI(), "symbol")
}

func (c *Client) ERC20Decimals(ctx context.Context, contract common.Address) (uint64, error) {
	values, err := c.call(ctx, contract, twcommon.GetERC20ABI(), "decimals")
	if err != nil {
		return 0, err
	}
	d, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("decimals returned %T, not uint8", values[0])
	}
	return uint64(d), nil
}

// ERC20BalanceOf returns the raw balance in base units.
func (c *Client) ERC20BalanceOf(ctx context.Context, contract, holder common.Address) (*big.Int, error) {
	return c.callBigInt(ctx, contract, twcommon.GetERC20ABI(), "balanceOf", holder)
}

// ERC20Balance reads decimals then the balance and returns the balance with
// exactly decimals fractional digits.
func (c *Client) ERC20Balance(ctx context.Context, contract, holder common.Address) (string, error) {
	decimals, err := c.ERC20Decimals(ctx, contract)
	if err != nil {
		return "", err
	}
	balance, err := c.ERC20BalanceOf(ctx, contract, holder)
	if err != nil {
		return "", err
	}
	return twcommon.FromBaseUnits(balance, decimals), nil
}

// TransferERC20 scales amount by the token's decimals, read fresh, and
// calls transfer.
func (c *Client) TransferERC20(ctx context.Context, from, contract, to common.Address, amount string) (*types.Receipt, error) {
	decimals, err := c.ERC20Decimals(ctx, contract)
	if err != nil {
		return nil, err
	}
	value, err := twcommon.ToBaseUnits(amount, decimals)
	if err != nil {
		return nil, err
	}
	data, err := twcommon.PackERC20Data("transfer", to, value)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, provider.TxRequest{
		From: from,
		To:   contract,
		Data: data,
	})
}
