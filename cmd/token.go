package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/ui"
	"github.com/tranvictor/tokenwallet/wallet"
)

// loadAsset adds the contract named by input to the session, classifying
// it on the way.
func loadAsset(ctx context.Context, s *session.Session, input string) (session.Asset, error) {
	asset, _, err := s.Assets.Add(ctx, input)
	if err != nil {
		return session.Asset{}, fmt.Errorf("couldn't load asset %q: %w", input, err)
	}
	return asset, nil
}

var classifyCmd = &cobra.Command{
	Use:   "classify <contract>",
	Short: "Tell whether a contract is an ERC-20 token or an ERC-721 collection",
	Long: `Probes the contract with ERC-165 supportsInterface. A contract declaring
the ERC-721 interface is an NFT collection, any other answer means ERC-20.
When the probe gets no answer at all the contract is treated as ERC-20,
or the command fails with --strict.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newWalletClient(ctx)
		if err != nil {
			return err
		}
		contract, err := contractArg(ctx, client, args[0])
		if err != nil {
			return err
		}
		cls, err := client.Classify(ctx, contract)
		if err != nil {
			return err
		}
		ui.RenderClassification(appUI, contract, cls)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Read and send ERC-20 tokens",
	Long:  ``,
}

var tokenInfoCmd = &cobra.Command{
	Use:   "info <contract>",
	Short: "Show name, symbol and decimals of an ERC-20 token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		asset, err := loadAsset(ctx, s, args[0])
		if err != nil {
			return err
		}
		if asset.Kind() != wallet.KindFungible {
			return fmt.Errorf("%s is an %s contract, use \"nft info\"", asset.Address.Hex(), asset.Kind())
		}
		decimals, err := s.Client().ERC20Decimals(ctx, asset.Address)
		if err != nil {
			return err
		}
		appUI.KeyValue([][2]string{
			{"Contract", asset.Address.Hex()},
			{"Name", appUI.Style(ui.Named(asset.Name))},
			{"Symbol", appUI.Style(ui.Named(asset.Symbol))},
			{"Decimals", fmt.Sprintf("%d", decimals)},
		})
		return nil
	},
}

var tokenBalanceCmd = &cobra.Command{
	Use:   "balance <contract> [account]",
	Short: "Show the ERC-20 balance of an account",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		asset, err := loadAsset(ctx, s, args[0])
		if err != nil {
			return err
		}
		if asset.Kind() != wallet.KindFungible {
			return fmt.Errorf("%s is an %s contract, use \"nft list\"", asset.Address.Hex(), asset.Kind())
		}
		account, err := holder(ctx, s, args, 1)
		if err != nil {
			return err
		}
		panel := session.NewERC20Panel(s.Client(), asset, account)
		if err := panel.Refresh(ctx); err != nil {
			return err
		}
		appUI.Info("Account: %s", account.Hex())
		return renderPanel(appUI, panel)
	},
}

var tokenSendCmd = &cobra.Command{
	Use:   "send <contract>",
	Short: "Send an ERC-20 token",
	Long: `Sends the token from the active account. --to and --amount are prompted
for when missing. The amount is in token units and is scaled by the
token's decimals.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		asset, err := loadAsset(ctx, s, args[0])
		if err != nil {
			return err
		}
		return sendToken(ctx, appUI, s, asset, s.PanelFor(asset), config.To, config.Amount)
	},
}

func init() {
	AddCommonFlagsToTransactionalCmds(tokenSendCmd)
	tokenSendCmd.Flags().StringVarP(&config.Amount, "amount", "a", "", "Amount in token units, e.g. 12.5")

	tokenCmd.AddCommand(tokenInfoCmd)
	tokenCmd.AddCommand(tokenBalanceCmd)
	tokenCmd.AddCommand(tokenSendCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(classifyCmd)
}
