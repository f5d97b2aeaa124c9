package wallet

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type Holding struct {
	TokenID *big.Int
	URI     string
}

// Holdings walks the tokens owner holds in an enumerable ERC-721 contract.
// The owned count is read on first use, then each index from 0 up is
// resolved to a token id and then to its URI, one at a time and in order.
// Nothing is read ahead, so a caller can stop at any point.
//
//	it := client.Holdings(contract, owner)
//	for h, ok := it.Next(ctx); ok; h, ok = it.Next(ctx) {
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
type Holdings struct {
	client   *Client
	contract common.Address
	owner    common.Address

	count *big.Int
	index *big.Int
	err   error
}

func (c *Client) Holdings(contract, owner common.Address) *Holdings {
	return &Holdings{
		client:   c,
		contract: contract,
		owner:    owner,
		index:    big.NewInt(0),
	}
}

// Count returns the owned count, reading it if needed.
func (h *Holdings) Count(ctx context.Context) (*big.Int, error) {
	if h.count != nil {
		return h.count, nil
	}
	count, err := h.client.ERC721BalanceOf(ctx, h.contract, h.owner)
	if err != nil {
		return nil, err
	}
	h.count = count
	return count, nil
}

// Next returns the next holding. It returns false when every index was
// read, when ctx is done or after a failure; Err tells which.
func (h *Holdings) Next(ctx context.Context) (Holding, bool) {
	if h.err != nil {
		return Holding{}, false
	}
	if err := ctx.Err(); err != nil {
		h.err = err
		return Holding{}, false
	}
	count, err := h.Count(ctx)
	if err != nil {
		h.err = err
		return Holding{}, false
	}
	if h.index.Cmp(count) >= 0 {
		return Holding{}, false
	}
	tokenID, err := h.client.TokenOfOwnerByIndex(ctx, h.contract, h.owner, new(big.Int).Set(h.index))
	if err != nil {
		h.err = fmt.Errorf("token at index %s: %w", h.index, err)
		return Holding{}, false
	}
	uri, err := h.client.TokenURI(ctx, h.contract, tokenID)
	if err != nil {
		h.err = fmt.Errorf("uri of token %s: %w", tokenID, err)
		return Holding{}, false
	}
	h.index.Add(h.index, big.NewInt(1))
	return Holding{TokenID: tokenID, URI: uri}, true
}

func (h *Holdings) Err() error {
	return h.err
}

// Collect gathers up to limit holdings, or all of the remaining ones when
// limit is 0. On failure it returns what was read so far with the error.
func (h *Holdings) Collect(ctx context.Context, limit int) ([]Holding, error) {
	result := []Holding{}
	for limit == 0 || len(result) < limit {
		holding, ok := h.Next(ctx)
		if !ok {
			break
		}
		result = append(result, holding)
	}
	return result, h.Err()
}

// Restart rewinds to index 0 and forgets the count and any error, so the
// next call reads everything again.
func (h *Holdings) Restart() {
	h.count = nil
	h.index = big.NewInt(0)
	h.err = nil
}
