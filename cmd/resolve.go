package cmd

import (
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Resolve an address book or ENS name to an address",
	Long: `Looks the input up as an address, then in the address book
(--address-book, ~/.tokenwallet/addresses.json by default), then on ENS.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newWalletClient(ctx)
		if err != nil {
			return err
		}
		addr, err := client.ResolveAddress(ctx, args[0])
		if err != nil {
			return err
		}
		appUI.Info("%s", args[0])
		appUI.Interpret(addr.Hex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
