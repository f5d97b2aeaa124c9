package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/wallet"
)

type Asset struct {
	Address        common.Address
	Classification wallet.Classification
	Name           string
	Symbol         string
}

func (a Asset) Kind() wallet.Kind {
	return a.Classification.Kind
}

// AssetList is the in-memory list of added contracts, keyed by lower-cased
// address and kept in insertion order.
type AssetList struct {
	client *wallet.Client

	mu     sync.Mutex
	order  []string
	assets map[string]Asset
}

func NewAssetList(client *wallet.Client) *AssetList {
	return &AssetList{
		client: client,
		assets: map[string]Asset{},
	}
}

func assetKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

// Add resolves input, classifies the contract and appends it. Adding an
// address that is already listed, in any letter case, returns the existing
// entry and added=false without any remote call besides resolution.
func (l *AssetList) Add(ctx context.Context, input string) (asset Asset, added bool, err error) {
	addr, err := l.client.ResolveAddress(ctx, strings.TrimSpace(input))
	if err != nil {
		return Asset{}, false, fmt.Errorf("%w: %v", twcommon.ErrNotSubmitted, err)
	}
	key := assetKey(addr)
	if existing, ok := l.Get(addr); ok {
		return existing, false, nil
	}

	cls, err := l.client.Classify(ctx, addr)
	if err != nil {
		return Asset{}, false, err
	}
	asset = Asset{Address: addr, Classification: cls}
	// name and symbol are optional in both standards
	if cls.Kind == wallet.KindNonFungible {
		asset.Name, _ = l.client.ERC721Name(ctx, addr)
		asset.Symbol, _ = l.client.ERC721Symbol(ctx, addr)
	} else {
		asset.Name, _ = l.client.ERC20Name(ctx, addr)
		asset.Symbol, _ = l.client.ERC20Symbol(ctx, addr)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.assets[key]; ok {
		return existing, false, nil
	}
	l.assets[key] = asset
	l.order = append(l.order, key)
	return asset, true, nil
}

func (l *AssetList) Get(addr common.Address) (Asset, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.assets[assetKey(addr)]
	return a, ok
}

func (l *AssetList) All() []Asset {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]Asset, 0, len(l.order))
	for _, key := range l.order {
		result = append(result, l.assets[key])
	}
	return result
}

func (l *AssetList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.order)
}
