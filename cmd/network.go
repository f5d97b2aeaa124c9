package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/networks"
)

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List the supported networks and the nodes each one uses",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		names := networks.GetSupportedNetworkNames()
		rows := [][]string{}
		seen := map[uint64]bool{}
		for _, name := range names {
			n, err := networks.GetNetwork(name)
			if err != nil || seen[n.GetChainID()] {
				continue
			}
			seen[n.GetChainID()] = true

			nodes := networks.NodesFor(n, nil)
			nodeNames := make([]string, 0, len(nodes))
			for nodeName := range nodes {
				nodeNames = append(nodeNames, nodeName)
			}
			sort.Strings(nodeNames)

			rows = append(rows, []string{
				n.GetName(),
				strings.Join(n.GetAlternativeNames(), ", "),
				fmt.Sprintf("%d", n.GetChainID()),
				n.GetNativeTokenSymbol(),
				strings.Join(nodeNames, ", "),
				n.GetNodeVariableName(),
			})
		}
		appUI.Table([]string{"Network", "Aliases", "Chain ID", "Coin", "Nodes", "Node env var"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(networksCmd)
}
