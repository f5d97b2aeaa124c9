// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/networks"
	"github.com/tranvictor/tokenwallet/provider"
	"github.com/tranvictor/tokenwallet/ui"
)

var (
	v = config.NewViper()

	// network is resolved from --network before any command runs.
	network networks.Network

	appUI ui.UI = ui.NewTerminalUI()

	dialProvider = provider.Dial
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tokenwallet",
	Short: "Hold ETH, ERC-20 and ERC-721 assets from the command line",
	Long: fmt.Sprintf(`tokenwallet talks to an Ethereum node to show your balances and send
ETH, ERC-20 tokens and ERC-721 NFTs.

Accounts come from the node itself (eth_accounts) or, with --keystore, from
a local keystore file or directory that signs transactions locally.

A token contract is classified with ERC-165: contracts that declare the
ERC-721 interface are NFTs, everything else is treated as ERC-20.

By default tokenwallet uses public nodes. You can add your own node by
setting the following env vars:
	1. For mainnet: %s
	2. For sepolia: %s
	3. For dev: %s
or by passing --node.

Settings can also be kept in ~/.tokenwallet/config.yaml or given as
%s_* environment variables.`,
		networks.EthereumMainnet.GetNodeVariableName(),
		networks.Sepolia.GetNodeVariableName(),
		networks.Dev.GetNodeVariableName(),
		config.EnvPrefix,
	),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if err := config.Load(v); err != nil {
		return fmt.Errorf("couldn't read config: %w", err)
	}
	if err := twcommon.InitLogger(config.Debug); err != nil {
		return err
	}
	n, err := networks.GetNetwork(config.Network)
	if err != nil {
		return fmt.Errorf("%w, supported: %v", err, networks.GetSupportedNetworkNames())
	}
	network = n
	return nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("network", "k", "mainnet", "ethereum network. Run \"tokenwallet networks\" for the valid values.")
	flags.String("node", "", "Extra node url, it takes priority over the default nodes.")
	flags.String("keystore", "", "Keystore file or directory. Without it the node's own accounts are used.")
	flags.StringP("from", "f", "", "Account to act from. It can be an address or a hint to look it up in the account list.")
	flags.Duration("timeout", 0, "Timeout of every node request, 0 means none.")
	flags.Duration("poll-interval", 0, "How often a sent tx is checked until it is mined.")
	flags.Uint64("page-size", 0, "Max NFTs listed per collection, 0 means all.")
	flags.String("ens-registry", "", "ENS registry address overriding the network's.")
	flags.String("address-book", "", "JSON file of name to address entries.")
	flags.Bool("strict", false, "Fail when the ERC-165 probe of a contract gets no answer instead of treating it as ERC-20.")
	flags.Bool("debug", false, "Log node requests and contract calls.")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		appUI.Error("%s", err)
		os.Exit(1)
	}
}
