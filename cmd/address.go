package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/util/addrbook"
)

var addressCmd = &cobra.Command{
	Use:   "addr [query]",
	Short: "Find at max 10 matching address book entries",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := addrbook.LoadMap(config.AddressBook)
		if err != nil {
			return err
		}
		entries := book.Search(strings.Join(args, " "), 10)
		if len(entries) == 0 {
			appUI.Warn("No entry in %s matches.", config.AddressBook)
			return nil
		}
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{fmt.Sprintf("%d", e.Score), e.Name, e.Address})
		}
		appUI.Table([]string{"Score", "Name", "Address"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
}
