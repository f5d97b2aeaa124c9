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

func (c *Client) ERC721Name(ctx context.Context, contract common.Address) (string, error) {
	return c.callString(ctx, contract, twcommon.GetERC721ABI(), "name")
}

func (c *Client) ERC721Symbol(ctx context.Context, contract common.Address) (string, error) {
	return c.callString(ctx, contract, twcommon.GetERC721ABI(), "symbol")
}

// ERC721BalanceOf returns how many tokens of contract owner holds.
func (c *Client) ERC721BalanceOf(ctx context.Context, contract, owner common.Address) (*big.Int, error) {
	return c.callBigInt(ctx, contract, twcommon.GetERC721ABI(), "balanceOf", owner)
}

// TokenOfOwnerByIndex needs the enumerable extension; it fails on contracts
// without it.
func (c *Client) TokenOfOwnerByIndex(ctx context.Context, contract, owner common.Address, index *big.Int) (*big.Int, error) {
	return c.callBigInt(ctx, contract, twcommon.GetERC721ABI(), "tokenOfOwnerByIndex", owner, index)
}

func (c *Client) TokenURI(ctx context.Context, contract common.Address, tokenID *big.Int) (string, error) {
	return c.callString(ctx, contract, twcommon.GetERC721ABI(), "tokenURI", tokenID)
}

func (c *Client) OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error) {
	values, err := c.call(ctx, contract, twcommon.GetERC721ABI(), "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("ownerOf returned %T, not an address", values[0])
	}
	return owner, nil
}

// SafeTransferERC721 uses safeTransferFrom(address,address,uint256,bytes). A
// contract recipient without the receiver hook makes the tx revert.
func (c *Client) SafeTransferERC721(
	ctx context.Context,
	from, contract, to common.Address,
	tokenID *big.Int,
	data []byte,
) (*types.Receipt, error) {
	if data == nil {
		data = []byte{}
	}
	input, err := twcommon.PackERC721Data("safeTransferFrom", from, to, tokenID, data)
	if err != nil {
		return nil, err
	}
	return c.transact(ctx, provider.TxRequest{
		From: from,
		To:   contract,
		Data: input,
	})
}
