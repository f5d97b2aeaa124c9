package session

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/tokenwallet/wallet"
)

// Refresher is a panel that re-reads its state from the chain.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// NativePanel shows the native coin balance of the active account.
type NativePanel struct {
	client *wallet.Client
	seq    sequencer

	mu      sync.Mutex
	account common.Address
	balance string
	err     error
}

func NewNativePanel(client *wallet.Client, account common.Address) *NativePanel {
	return &NativePanel{client: client, account: account}
}

// SetAccount switches the account and drops whatever is in flight.
func (p *NativePanel) SetAccount(account common.Address) {
	p.seq.next()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.account = account
	p.balance = ""
	p.err = nil
}

func (p *NativePanel) Account() common.Address {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account
}

func (p *NativePanel) Refresh(ctx context.Context) error {
	ticket := p.seq.next()
	account := p.Account()
	balance, err := p.client.NativeBalance(ctx, account)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seq.isLatest(ticket) {
		return ErrStale
	}
	if err != nil {
		p.err = err
		return err
	}
	p.balance, p.err = balance, nil
	return nil
}

// Balance is the last committed balance and the error of the last refresh.
func (p *NativePanel) Balance() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance, p.err
}

type ERC20Snapshot struct {
	Name    string
	Symbol  string
	Balance string
}

type ERC20Panel struct {
	client  *wallet.Client
	asset   Asset
	account common.Address
	seq     sequencer

	mu       sync.Mutex
	snapshot ERC20Snapshot
	err      error
}

func NewERC20Panel(client *wallet.Client, asset Asset, account common.Address) *ERC20Panel {
	return &ERC20Panel{client: client, asset: asset, account: account}
}

func (p *ERC20Panel) Asset() Asset {
	return p.asset
}

func (p *ERC20Panel) Refresh(ctx context.Context) error {
	ticket := p.seq.next()
	snap, err := p.read(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seq.isLatest(ticket) {
		return ErrStale
	}
	p.err = err
	if err != nil {
		return err
	}
	p.snapshot = snap
	return nil
}

func (p *ERC20Panel) read(ctx context.Context) (ERC20Snapshot, error) {
	name, err := p.client.ERC20Name(ctx, p.asset.Address)
	if err != nil {
		return ERC20Snapshot{}, err
	}
	symbol, err := p.client.ERC20Symbol(ctx, p.asset.Address)
	if err != nil {
		return ERC20Snapshot{}, err
	}
	balance, err := p.client.ERC20Balance(ctx, p.asset.Address, p.account)
	if err != nil {
		return ERC20Snapshot{}, err
	}
	return ERC20Snapshot{Name: name, Symbol: symbol, Balance: balance}, nil
}

func (p *ERC20Panel) Snapshot() (ERC20Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.err
}

type ERC721Snapshot struct {
	Name   string
	Symbol string
	Count  *big.Int
	// Holdings is empty for contracts without the enumerable extension.
	Holdings []wallet.Holding
}

type ERC721Panel struct {
	client   *wallet.Client
	asset    Asset
	account  common.Address
	pageSize int
	seq      sequencer

	mu       sync.Mutex
	snapshot ERC721Snapshot
	err      error
}

// NewERC721Panel lists at most pageSize holdings per refresh, all of them
// when pageSize is 0.
func NewERC721Panel(client *wallet.Client, asset Asset, account common.Address, pageSize int) *ERC721Panel {
	return &ERC721Panel{client: client, asset: asset, account: account, pageSize: pageSize}
}

func (p *ERC721Panel) Asset() Asset {
	return p.asset
}

// Refresh rebuilds the holdings from scratch. When any read fails the
// previous snapshot stays as it was.
func (p *ERC721Panel) Refresh(ctx context.Context) error {
	ticket := p.seq.next()
	snap, err := p.read(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.seq.isLatest(ticket) {
		return ErrStale
	}
	p.err = err
	if err != nil {
		return err
	}
	p.snapshot = snap
	return nil
}

func (p *ERC721Panel) read(ctx context.Context) (ERC721Snapshot, error) {
	name, err := p.client.ERC721Name(ctx, p.asset.Address)
	if err != nil {
		return ERC721Snapshot{}, err
	}
	symbol, err := p.client.ERC721Symbol(ctx, p.asset.Address)
	if err != nil {
		return ERC721Snapshot{}, err
	}
	snap := ERC721Snapshot{Name: name, Symbol: symbol}
	if !p.asset.Classification.Enumerable {
		snap.Count, err = p.client.ERC721BalanceOf(ctx, p.asset.Address, p.account)
		if err != nil {
			return ERC721Snapshot{}, err
		}
		return snap, nil
	}
	it := p.client.Holdings(p.asset.Address, p.account)
	snap.Holdings, err = it.Collect(ctx, p.pageSize)
	if err != nil {
		return ERC721Snapshot{}, err
	}
	snap.Count, err = it.Count(ctx)
	if err != nil {
		return ERC721Snapshot{}, err
	}
	return snap, nil
}

func (p *ERC721Panel) Snapshot() (ERC721Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot, p.err
}
