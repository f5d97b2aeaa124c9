package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"

	cmdutil "github.com/tranvictor/tokenwallet/cmd/util"
	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/ui"
	"github.com/tranvictor/tokenwallet/wallet"
)

// recipientInput resolves prefill, or prompts for a recipient until one
// resolves. The confirmation summary and the form both use the address
// returned here.
func recipientInput(ctx context.Context, u ui.UI, client *wallet.Client, prefill string) (common.Address, error) {
	if prefill == "" {
		return cmdutil.PromptRecipient(u, "Recipient (address, address book name or ENS name):", func(s string) (common.Address, error) {
			return client.ResolveAddress(ctx, s)
		}), nil
	}
	addr, err := client.ResolveAddress(ctx, prefill)
	if err != nil {
		return common.Address{}, err
	}
	u.Interpret(addr.Hex())
	return addr, nil
}

func amountInput(u ui.UI, symbol string, decimals uint64, prefill string) string {
	if prefill != "" {
		return prefill
	}
	return cmdutil.PromptAmount(u, fmt.Sprintf("Amount of %s:", symbol), decimals)
}

// submit waits for the transfer with a spinner and shows its receipt. A
// reverted tx still comes with a receipt, so it is shown before the error.
func submit(u ui.UI, send func() (*types.Receipt, error)) error {
	stop := u.Spinner("Waiting for the tx to be mined...")
	receipt, err := send()
	stop()

	ui.RenderReceipt(u, receipt)
	if err != nil {
		return err
	}
	u.Success("Transfer confirmed.")
	return nil
}

// renderPanel shows the latest snapshot of an asset panel.
func renderPanel(u ui.UI, panel session.Refresher) error {
	switch p := panel.(type) {
	case *session.ERC20Panel:
		snap, err := p.Snapshot()
		if err != nil {
			return err
		}
		ui.RenderERC20(u, snap)
	case *session.ERC721Panel:
		snap, err := p.Snapshot()
		if err != nil {
			return err
		}
		ui.RenderERC721(u, snap)
	case *session.NativePanel:
		balance, err := p.Balance()
		if err != nil {
			return err
		}
		ui.RenderNativeBalance(u, p.Account(), balance, network.GetNativeTokenSymbol())
	}
	return nil
}

func sendNative(ctx context.Context, u ui.UI, s *session.Session, to, amount string) error {
	client := s.Client()
	recipient, err := recipientInput(ctx, u, client, to)
	if err != nil {
		return err
	}
	form := s.NewTransferForm()
	form.To = recipient.Hex()
	form.Amount = amountInput(u, network.GetNativeTokenSymbol(), network.GetNativeTokenDecimal(), amount)

	err = cmdutil.PromptTxConfirmation(u, "Confirm transfer", cmdutil.TxSummary{
		From: s.Active(),
		To:   recipient,
		Rows: [][2]string{
			{"Amount", fmt.Sprintf("%s %s", form.Amount, network.GetNativeTokenSymbol())},
			{"Network", network.GetName()},
		},
	})
	if err != nil {
		return err
	}
	if err := submit(u, func() (*types.Receipt, error) { return form.Submit(ctx) }); err != nil {
		return err
	}
	return renderPanel(u, s.Native)
}

// sendToken sends from the active account and refreshes panel once the
// transfer is confirmed.
func sendToken(ctx context.Context, u ui.UI, s *session.Session, asset session.Asset, panel session.Refresher, to, amount string) error {
	if asset.Kind() != wallet.KindFungible {
		return fmt.Errorf("%s is an %s contract, use \"nft send\"", asset.Address.Hex(), asset.Kind())
	}
	client := s.Client()
	decimals, err := client.ERC20Decimals(ctx, asset.Address)
	if err != nil {
		return err
	}
	recipient, err := recipientInput(ctx, u, client, to)
	if err != nil {
		return err
	}
	form := s.NewTokenTransferForm(asset, panel)
	form.To = recipient.Hex()
	form.Amount = amountInput(u, asset.Symbol, decimals, amount)

	err = cmdutil.PromptTxConfirmation(u, "Confirm token transfer", cmdutil.TxSummary{
		From: s.Active(),
		To:   recipient,
		Rows: [][2]string{
			{"Token", fmt.Sprintf("%s (%s)", asset.Symbol, asset.Address.Hex())},
			{"Amount", fmt.Sprintf("%s %s", form.Amount, asset.Symbol)},
		},
	})
	if err != nil {
		return err
	}
	if err := submit(u, func() (*types.Receipt, error) { return form.Submit(ctx) }); err != nil {
		return err
	}
	return renderPanel(u, panel)
}

// sendNFT is sendToken for one NFT. A nil data is prompted for.
func sendNFT(ctx context.Context, u ui.UI, s *session.Session, asset session.Asset, panel session.Refresher, to, tokenID string, data *string) error {
	if asset.Kind() != wallet.KindNonFungible {
		return fmt.Errorf("%s is an %s contract, use \"token send\"", asset.Address.Hex(), asset.Kind())
	}
	recipient, err := recipientInput(ctx, u, s.Client(), to)
	if err != nil {
		return err
	}
	form := s.NewNFTTransferForm(asset, panel)
	form.To = recipient.Hex()
	var id *big.Int
	if tokenID == "" {
		id = cmdutil.PromptTokenID(u, "Token ID:")
	} else if id, err = twcommon.ParseTokenID(tokenID); err != nil {
		return err
	}
	form.TokenID = id.String()
	if data == nil {
		form.Data = cmdutil.PromptHexData(u, "Data for the receiver (empty for none):")
	} else {
		form.Data = *data
	}
	var payload []byte
	if form.Data != "" {
		if payload, err = hexutil.Decode(form.Data); err != nil {
			return fmt.Errorf("invalid data %q: %w", form.Data, err)
		}
	}

	err = cmdutil.PromptTxConfirmation(u, "Confirm NFT transfer", cmdutil.TxSummary{
		From: s.Active(),
		To:   recipient,
		Rows: [][2]string{
			{"Collection", fmt.Sprintf("%s (%s)", asset.Symbol, asset.Address.Hex())},
			{"Token ID", form.TokenID},
		},
		Data: payload,
	})
	if err != nil {
		return err
	}
	if err := submit(u, func() (*types.Receipt, error) { return form.Submit(ctx) }); err != nil {
		return err
	}
	return renderPanel(u, panel)
}
