package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/tokenwallet/cmd/util"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/ui"
	"github.com/tranvictor/tokenwallet/wallet"
)

const (
	menuAccounts = "Accounts"
	menuSwitch   = "Switch account"
	menuBalance  = "Balance"
	menuSend     = "Send"
	menuAddAsset = "Add asset"
	menuAssets   = "Assets"
	menuQuit     = "Quit"

	assetRefresh = "Refresh"
	assetSend    = "Send"
	assetBack    = "Back"
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Run the interactive wallet",
	Long: `Starts an interactive session over the provider's accounts: switch the
active account, watch its balance, add ERC-20 and ERC-721 contracts and
send from any of them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		return runApp(ctx, appUI, s)
	},
}

// runApp loops over the main menu until the user quits. Failed actions are
// reported and the loop goes on.
func runApp(ctx context.Context, u ui.UI, s *session.Session) error {
	if err := s.Native.Refresh(ctx); err != nil && !errors.Is(err, session.ErrStale) {
		u.Error("Couldn't read the balance: %s", err)
	}
	u.Section(fmt.Sprintf("tokenwallet on %s", network.GetName()))
	_ = renderPanel(u, s.Native)

	options := []string{menuAccounts, menuSwitch, menuBalance, menuSend, menuAddAsset, menuAssets, menuQuit}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch options[u.Choose("What do you want to do?", options)] {
		case menuAccounts:
			ui.RenderAccounts(u, s.Accounts(), s.Active())
		case menuSwitch:
			err = switchAccount(ctx, u, s)
		case menuBalance:
			err = refreshAndRender(ctx, u, s.Native)
		case menuSend:
			err = sendNative(ctx, u, s, "", "")
		case menuAddAsset:
			err = addAsset(ctx, u, s)
		case menuAssets:
			err = openAsset(ctx, u, s)
		case menuQuit:
			return nil
		}
		reportActionError(u, err)
	}
}

func reportActionError(u ui.UI, err error) {
	switch {
	case err == nil:
	case errors.Is(err, cmdutil.ErrAborted):
		u.Warn("Aborted.")
	default:
		u.Error("%s", err)
	}
}

func refreshAndRender(ctx context.Context, u ui.UI, panel session.Refresher) error {
	if err := panel.Refresh(ctx); err != nil && !errors.Is(err, session.ErrStale) {
		return err
	}
	return renderPanel(u, panel)
}

func switchAccount(ctx context.Context, u ui.UI, s *session.Session) error {
	accounts := s.Accounts()
	options := make([]string, len(accounts))
	for i, a := range accounts {
		options[i] = a.Hex()
	}
	idx := u.Choose("Which account?", options)
	account, err := s.Select(options[idx])
	if err != nil {
		return err
	}
	u.Success("Active account: %s", account.Hex())
	return refreshAndRender(ctx, u, s.Native)
}

func addAsset(ctx context.Context, u ui.UI, s *session.Session) error {
	form := s.NewAddAssetForm()
	form.Address = cmdutil.PromptInput(u, "Contract (address, address book name or ENS name):")
	asset, added, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	if !added {
		u.Warn("%s is already in the list.", asset.Address.Hex())
		return nil
	}
	u.Success("Added %s %s (%s).", asset.Kind(), u.Style(ui.Named(asset.Symbol)), asset.Address.Hex())
	return nil
}

func openAsset(ctx context.Context, u ui.UI, s *session.Session) error {
	assets := s.Assets.All()
	ui.RenderAssets(u, assets)
	if len(assets) == 0 {
		return nil
	}
	options := make([]string, 0, len(assets)+1)
	for _, a := range assets {
		options = append(options, a.Address.Hex())
	}
	options = append(options, assetBack)
	idx := u.Choose("Which asset?", options)
	if idx == len(assets) {
		return nil
	}
	asset := assets[idx]
	panel := s.PanelFor(asset)

	u.Section(fmt.Sprintf("%s (%s)", asset.Symbol, asset.Kind()))
	sub := u.Indent()
	if err := refreshAndRender(ctx, sub, panel); err != nil {
		return err
	}
	actions := []string{assetRefresh, assetSend, assetBack}
	for {
		var err error
		switch actions[sub.Choose("What do you want to do with it?", actions)] {
		case assetRefresh:
			err = refreshAndRender(ctx, sub, panel)
		case assetSend:
			if asset.Kind() == wallet.KindNonFungible {
				err = sendNFT(ctx, sub, s, asset, panel, "", "", nil)
			} else {
				err = sendToken(ctx, sub, s, asset, panel, "", "")
			}
		case assetBack:
			return nil
		}
		reportActionError(sub, err)
	}
}

func init() {
	rootCmd.AddCommand(appCmd)
}
