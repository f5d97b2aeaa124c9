// Package session holds the state of one interactive wallet session: the
// accounts, the active one, the assets the user added and the panels that
// show them.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/wallet"
)

type Session struct {
	client   *wallet.Client
	pageSize int

	Assets *AssetList
	Native *NativePanel

	mu       sync.Mutex
	accounts []common.Address
	active   int
}

// New loads the provider's accounts once and makes the first one active.
func New(ctx context.Context, client *wallet.Client, pageSize int) (*Session, error) {
	accounts, err := client.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, twcommon.ErrNoAccounts
	}
	return &Session{
		client:   client,
		pageSize: pageSize,
		Assets:   NewAssetList(client),
		Native:   NewNativePanel(client, accounts[0]),
		accounts: accounts,
	}, nil
}

func (s *Session) Client() *wallet.Client {
	return s.client
}

func (s *Session) Accounts() []common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.Address{}, s.accounts...)
}

func (s *Session) Active() common.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[s.active]
}

// FindAccount matches hint against the accounts: an exact address in any
// case first, then the best fuzzy match on the hex form.
func FindAccount(accounts []common.Address, hint string) (int, error) {
	hint = strings.TrimSpace(hint)
	for i, a := range accounts {
		if strings.EqualFold(a.Hex(), hint) {
			return i, nil
		}
	}
	hexes := make([]string, len(accounts))
	for i, a := range accounts {
		hexes[i] = strings.ToLower(a.Hex())
	}
	matches := fuzzy.Find(strings.ToLower(hint), hexes)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no account matches %q", hint)
	}
	return matches[0].Index, nil
}

// Select makes the account matching hint active and points the native
// panel at it.
func (s *Session) Select(hint string) (common.Address, error) {
	s.mu.Lock()
	idx, err := FindAccount(s.accounts, hint)
	if err != nil {
		s.mu.Unlock()
		return common.Address{}, err
	}
	s.active = idx
	account := s.accounts[idx]
	s.mu.Unlock()

	s.Native.SetAccount(account)
	return account, nil
}

// PanelFor builds the panel of asset for the active account.
func (s *Session) PanelFor(asset Asset) Refresher {
	if asset.Kind() == wallet.KindNonFungible {
		return NewERC721Panel(s.client, asset, s.Active(), s.pageSize)
	}
	return NewERC20Panel(s.client, asset, s.Active())
}

func (s *Session) NewTransferForm() *TransferForm {
	return NewTransferForm(s.client, s.Active, s.Native)
}

func (s *Session) NewTokenTransferForm(asset Asset, panel Refresher) *TransferForm {
	return NewTokenTransferForm(s.client, s.Active, asset.Address, panel)
}

func (s *Session) NewNFTTransferForm(asset Asset, panel Refresher) *NFTTransferForm {
	return NewNFTTransferForm(s.client, s.Active, asset.Address, panel)
}

func (s *Session) NewAddAssetForm() *AddAssetForm {
	return NewAddAssetForm(s.Assets)
}
