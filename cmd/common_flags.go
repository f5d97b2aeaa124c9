package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/config"
)

func AddCommonFlagsToTransactionalCmds(c *cobra.Command) {
	c.PersistentFlags().
		Float64VarP(&config.GasPrice, "gasprice", "p", 0, "Gas price in gwei. If default value is used, we will use the node's suggestion. Only applies to keystore accounts.")
	c.PersistentFlags().
		Float64VarP(&config.TipGas, "tipgas", "s", 0, "Tip in gwei, will be used in dynamic fee tx, default value gets from node.")
	c.PersistentFlags().
		Uint64VarP(&config.GasLimit, "gas", "g", 0, "Gas limit for the tx. If default value is used, we will use ethereum nodes to estimate the gas limit.")
	c.PersistentFlags().
		StringVar(&config.TxType, "tx-type", "", "Force the tx type: \"legacy\" or \"dynamicfee\". Default picks dynamic fee when the node supports it.")
	c.PersistentFlags().
		StringVarP(&config.To, "to", "t", "", "Recipient. It can be an address, an address book name or an ENS name. Prompted when empty.")
	c.PersistentFlags().
		BoolVarP(&config.Yes, "yes", "y", false, "Send without asking for confirmation.")
}
