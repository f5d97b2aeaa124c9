package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/ui"
	"github.com/tranvictor/tokenwallet/wallet"
)

var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "List and send ERC-721 NFTs",
	Long:  ``,
}

var nftInfoCmd = &cobra.Command{
	Use:   "info <contract>",
	Short: "Show name, symbol and enumerability of an NFT collection",
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
		if asset.Kind() != wallet.KindNonFungible {
			return fmt.Errorf("%s is an %s contract, use \"token info\"", asset.Address.Hex(), asset.Kind())
		}
		appUI.KeyValue([][2]string{
			{"Contract", asset.Address.Hex()},
			{"Name", appUI.Style(ui.Named(asset.Name))},
			{"Symbol", appUI.Style(ui.Named(asset.Symbol))},
			{"Enumerable", fmt.Sprintf("%t", asset.Classification.Enumerable)},
		})
		return nil
	},
}

var nftListCmd = &cobra.Command{
	Use:   "list <contract> [account]",
	Short: "List the NFTs an account holds in a collection",
	Long: `Lists token ids and URIs for collections implementing the enumerable
extension, up to --page-size of them. Other collections only show how many
tokens the account holds.`,
	Args: cobra.RangeArgs(1, 2),
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
		if asset.Kind() != wallet.KindNonFungible {
			return fmt.Errorf("%s is an %s contract, use \"token balance\"", asset.Address.Hex(), asset.Kind())
		}
		account, err := holder(ctx, s, args, 1)
		if err != nil {
			return err
		}
		panel := session.NewERC721Panel(s.Client(), asset, account, int(config.PageSize))
		if err := panel.Refresh(ctx); err != nil {
			return err
		}
		appUI.Info("Account: %s", account.Hex())
		return renderPanel(appUI, panel)
	},
}

var nftSendCmd = &cobra.Command{
	Use:   "send <contract>",
	Short: "Send an NFT with safeTransferFrom",
	Long: `Sends one token of the collection from the active account. --to and
--token-id are prompted for when missing. --data is handed to the
receiver's onERC721Received hook.`,
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
		return sendNFT(ctx, appUI, s, asset, s.PanelFor(asset), config.To, config.TokenID, &config.Data)
	},
}

func init() {
	AddCommonFlagsToTransactionalCmds(nftSendCmd)
	nftSendCmd.Flags().StringVar(&config.TokenID, "token-id", "", "Token id to send.")
	nftSendCmd.Flags().StringVar(&config.Data, "data", "", "0x prefixed data passed to the receiver.")

	nftCmd.AddCommand(nftInfoCmd)
	nftCmd.AddCommand(nftListCmd)
	nftCmd.AddCommand(nftSendCmd)
	rootCmd.AddCommand(nftCmd)
}
