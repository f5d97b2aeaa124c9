package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/config"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send the network's native coin",
	Long: `Sends ETH (or the network's coin) from the active account. --to and
--amount are prompted for when missing, and the transfer is confirmed
before it is sent unless --yes is given. The command returns once the tx
is mined.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s, err := newSession(ctx)
		if err != nil {
			return err
		}
		return sendNative(ctx, appUI, s, config.To, config.Amount)
	},
}

func init() {
	AddCommonFlagsToTransactionalCmds(sendCmd)
	sendCmd.Flags().StringVarP(&config.Amount, "amount", "a", "", "Amount in coin units, e.g. 0.5")
	rootCmd.AddCommand(sendCmd)
}
