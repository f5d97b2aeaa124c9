package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/ui"
)

var accountsCmd = &cobra.Command{
	Use:     "accounts",
	Aliases: []string{"acc"},
	Short:   "List the accounts the provider gives access to",
	Long: `Lists the node's accounts, or the keystore account when --keystore is
given. The active account, picked with --from, is marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		ui.RenderAccounts(appUI, s.Accounts(), s.Active())
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [account]",
	Short: "Show the native coin balance of an account",
	Long: `The account can be an address, an address book or ENS name, or a hint
matching one of your accounts. Without it the active account is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		account, err := holder(ctx, s, args, 0)
		if err != nil {
			return err
		}
		balance, err := s.Client().NativeBalance(ctx, account)
		if err != nil {
			return err
		}
		ui.RenderNativeBalance(appUI, account, balance, network.GetNativeTokenSymbol())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(accountsCmd)
	rootCmd.AddCommand(balanceCmd)
}
