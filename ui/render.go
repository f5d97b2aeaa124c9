package ui

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/wallet"
)

func RenderAccounts(u UI, accounts []common.Address, active common.Address) {
	rows := make([][]string, 0, len(accounts))
	for i, a := range accounts {
		mark := ""
		if a == active {
			mark = u.Style(StyledText{Text: "*", Severity: SeveritySuccess})
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), a.Hex(), mark})
	}
	u.Table([]string{"#", "Account", "Active"}, rows)
}

func RenderNativeBalance(u UI, account common.Address, balance, symbol string) {
	u.KeyValue([][2]string{
		{"Account", account.Hex()},
		{"Balance", fmt.Sprintf("%s %s", twcommon.ReadableNumber(balance), symbol)},
	})
}

// RenderAssets lists tokens first and collections after, each kind in its
// own group. The # column keeps the asset's position in the session list.
func RenderAssets(u UI, assets []session.Asset) {
	if len(assets) == 0 {
		u.Info("No asset added yet.")
		return
	}
	var tokens, collections, other [][]string
	for i, a := range assets {
		row := []string{
			fmt.Sprintf("%d", i+1),
			u.Style(Named(a.Symbol)),
			u.Style(Named(a.Name)),
			a.Kind().String(),
			a.Address.Hex(),
		}
		switch a.Kind() {
		case wallet.KindFungible:
			tokens = append(tokens, row)
		case wallet.KindNonFungible:
			if !a.Classification.Enumerable {
				row[3] += " (count only)"
			}
			collections = append(collections, row)
		default:
			other = append(other, row)
		}
	}
	var groups [][][]string
	for _, g := range [][][]string{tokens, collections, other} {
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}
	u.TableWithGroups([]string{"#", "Symbol", "Name", "Standard", "Contract"}, groups)
}

func RenderClassification(u UI, contract common.Address, cls wallet.Classification) {
	rows := [][2]string{
		{"Contract", contract.Hex()},
		{"Standard", cls.Kind.String()},
		{"ERC165 probe", cls.Probe.String()},
	}
	if cls.Kind == wallet.KindNonFungible {
		rows = append(rows, [2]string{"Enumerable", fmt.Sprintf("%t", cls.Enumerable)})
	}
	u.KeyValue(rows)
	if cls.ProbeErr != nil {
		u.Warn("Probe could not get an answer: %s", cls.ProbeErr)
	}
}

func RenderERC20(u UI, snap session.ERC20Snapshot) {
	u.KeyValue([][2]string{
		{"Token", fmt.Sprintf("%s (%s)", u.Style(Named(snap.Name)), u.Style(Named(snap.Symbol)))},
		{"Balance", fmt.Sprintf("%s %s", twcommon.ReadableNumber(snap.Balance), snap.Symbol)},
	})
}

func RenderERC721(u UI, snap session.ERC721Snapshot) {
	count := "0"
	if snap.Count != nil {
		count = snap.Count.String()
	}
	u.KeyValue([][2]string{
		{"Collection", fmt.Sprintf("%s (%s)", u.Style(Named(snap.Name)), u.Style(Named(snap.Symbol)))},
		{"Owned", count},
	})
	RenderHoldings(u.Indent(), snap.Holdings)
}

func RenderHoldings(u UI, holdings []wallet.Holding) {
	if len(holdings) == 0 {
		return
	}
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{h.TokenID.String(), h.URI})
	}
	u.Table([]string{"Token ID", "URI"}, rows)
}

func RenderReceipt(u UI, receipt *types.Receipt) {
	if receipt == nil {
		return
	}
	status := StyledText{Text: "done", Severity: SeveritySuccess}
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = StyledText{Text: "reverted", Severity: SeverityError}
	}
	u.Critical("Tx: %s", receipt.TxHash.Hex())
	rows := [][2]string{
		{"Status", u.Style(status)},
	}
	if receipt.BlockNumber != nil {
		rows = append(rows, [2]string{"Block", receipt.BlockNumber.String()})
	}
	rows = append(rows, [2]string{"Gas used", fmt.Sprintf("%d", receipt.GasUsed)})
	u.KeyValue(rows)
}

// RenderCallData dumps data as 32 byte words, one per line, through u's
// writer.
func RenderCallData(u UI, data []byte) {
	w := u.Writer()
	for i := 0; i < len(data); i += 32 {
		fmt.Fprintf(w, "[%d] %x\n", i/32, data[i:min(i+32, len(data))])
	}
}
