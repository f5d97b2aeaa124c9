package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/wallet"
)

func notSubmitted(err error) error {
	return fmt.Errorf("%w: %v", twcommon.ErrNotSubmitted, err)
}

// TransferForm sends the native coin, or an ERC-20 token when Token is set.
// Fields are cleared only after a confirmed transfer.
type TransferForm struct {
	client *wallet.Client
	from   func() common.Address
	token  *common.Address
	panel  Refresher

	To     string
	Amount string
}

func NewTransferForm(client *wallet.Client, from func() common.Address, panel Refresher) *TransferForm {
	return &TransferForm{client: client, from: from, panel: panel}
}

func NewTokenTransferForm(client *wallet.Client, from func() common.Address, token common.Address, panel Refresher) *TransferForm {
	return &TransferForm{client: client, from: from, token: &token, panel: panel}
}

// Submit resolves To; on failure nothing is sent, the fields stay and the
// error wraps ErrNotSubmitted. Otherwise the transfer is sent and, once
// confirmed, the panel is refreshed exactly once.
func (f *TransferForm) Submit(ctx context.Context) (*types.Receipt, error) {
	to, err := f.client.ResolveAddress(ctx, strings.TrimSpace(f.To))
	if err != nil {
		return nil, notSubmitted(err)
	}
	var receipt *types.Receipt
	if f.token == nil {
		receipt, err = f.client.TransferNative(ctx, f.from(), to, f.Amount)
	} else {
		receipt, err = f.client.TransferERC20(ctx, f.from(), *f.token, to, f.Amount)
	}
	if err != nil {
		return receipt, err
	}
	f.To, f.Amount = "", ""
	if f.panel != nil {
		if err := f.panel.Refresh(ctx); err != nil && !errors.Is(err, ErrStale) {
			return receipt, fmt.Errorf("transfer confirmed, refreshing balance: %w", err)
		}
	}
	return receipt, nil
}

type NFTTransferForm struct {
	client   *wallet.Client
	from     func() common.Address
	contract common.Address
	panel    Refresher

	To      string
	TokenID string
	// Data is passed to the receiver hook, hex encoded. Empty means no data.
	Data string
}

func NewNFTTransferForm(client *wallet.Client, from func() common.Address, contract common.Address, panel Refresher) *NFTTransferForm {
	return &NFTTransferForm{client: client, from: from, contract: contract, panel: panel}
}

func (f *NFTTransferForm) Submit(ctx context.Context) (*types.Receipt, error) {
	to, err := f.client.ResolveAddress(ctx, strings.TrimSpace(f.To))
	if err != nil {
		return nil, notSubmitted(err)
	}
	tokenID, err := twcommon.ParseTokenID(f.TokenID)
	if err != nil {
		return nil, notSubmitted(fmt.Errorf("invalid token id %q: %w", f.TokenID, err))
	}
	var data []byte
	if f.Data != "" {
		if data, err = hexutil.Decode(f.Data); err != nil {
			return nil, fmt.Errorf("invalid data %q: %w", f.Data, err)
		}
	}
	receipt, err := f.client.SafeTransferERC721(ctx, f.from(), f.contract, to, tokenID, data)
	if err != nil {
		return receipt, err
	}
	f.To, f.TokenID, f.Data = "", "", ""
	if f.panel != nil {
		if err := f.panel.Refresh(ctx); err != nil && !errors.Is(err, ErrStale) {
			return receipt, fmt.Errorf("transfer confirmed, refreshing holdings: %w", err)
		}
	}
	return receipt, nil
}

type AddAssetForm struct {
	assets *AssetList

	Address string
}

func NewAddAssetForm(assets *AssetList) *AddAssetForm {
	return &AddAssetForm{assets: assets}
}

func (f *AddAssetForm) Submit(ctx context.Context) (Asset, bool, error) {
	asset, added, err := f.assets.Add(ctx, f.Address)
	if err != nil {
		return asset, added, err
	}
	f.Address = ""
	return asset, added, nil
}
