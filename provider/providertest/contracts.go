package providertest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

type ERC20 struct {
	Name     string
	Symbol   string
	Decimals uint8
	Balances map[common.Address]*big.Int
}

func (t *ERC20) Func() ContractFunc {
	return func(method string, args []interface{}) ([]interface{}, error) {
		switch method {
		case "name":
			return []interface{}{t.Name}, nil
		case "symbol":
			return []interface{}{t.Symbol}, nil
		case "decimals":
			return []interface{}{t.Decimals}, nil
		case "balanceOf":
			b, ok := t.Balances[args[0].(common.Address)]
			if !ok {
				b = big.NewInt(0)
			}
			return []interface{}{b}, nil
		}
		// plain ERC-20 without ERC-165
		return nil, ErrReverted
	}
}

type ERC721 struct {
	Name       string
	Symbol     string
	Enumerable bool
	// Owned lists the token ids of each owner in index order.
	Owned map[common.Address][]*big.Int
	// URIs defaults to "ipfs://<id>".
	URIs map[string]string
	// FailAt, when set, makes tokenOfOwnerByIndex revert at that index.
	FailAt *big.Int
}

func (t *ERC721) uri(id *big.Int) string {
	if u, ok := t.URIs[id.String()]; ok {
		return u
	}
	return "ipfs://" + id.String()
}

func (t *ERC721) Func() ContractFunc {
	return func(method string, args []interface{}) ([]interface{}, error) {
		switch method {
		case "supportsInterface":
			id := args[0].([4]byte)
			switch id {
			case twcommon.ERC721InterfaceID:
				return []interface{}{true}, nil
			case twcommon.ERC721EnumerableInterfaceID:
				return []interface{}{t.Enumerable}, nil
			}
			return []interface{}{false}, nil
		case "name":
			return []interface{}{t.Name}, nil
		case "symbol":
			return []interface{}{t.Symbol}, nil
		case "balanceOf":
			return []interface{}{big.NewInt(int64(len(t.Owned[args[0].(common.Address)])))}, nil
		case "tokenOfOwnerByIndex":
			if !t.Enumerable {
				return nil, ErrReverted
			}
			owned := t.Owned[args[0].(common.Address)]
			index := args[1].(*big.Int)
			if t.FailAt != nil && index.Cmp(t.FailAt) == 0 {
				return nil, ErrReverted
			}
			if !index.IsInt64() || index.Int64() >= int64(len(owned)) {
				return nil, fmt.Errorf("%w: index out of bounds", ErrReverted)
			}
			return []interface{}{owned[index.Int64()]}, nil
		case "tokenURI":
			return []interface{}{t.uri(args[0].(*big.Int))}, nil
		case "ownerOf":
			id := args[0].(*big.Int)
			for owner, ids := range t.Owned {
				for _, owned := range ids {
					if owned.Cmp(id) == 0 {
						return []interface{}{owner}, nil
					}
				}
			}
			return nil, ErrReverted
		}
		return nil, ErrReverted
	}
}
