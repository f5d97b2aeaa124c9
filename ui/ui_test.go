package ui

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/tokenwallet/session"
	"github.com/tranvictor/tokenwallet/wallet"
)

var (
	alice = common.HexToAddress("0x8d12A197cB00D4747a1fe03395095ce2A5CC6819")
	bob   = common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359")
)

func TestRenderAccountsMarksActive(t *testing.T) {
	u := NewRecordingUI()
	RenderAccounts(u, []common.Address{alice, bob}, bob)

	rows := u.Values("TableRow")
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %v", rows)
	}
	if !strings.HasSuffix(rows[1], "| *") {
		t.Errorf("bob should be marked active: %q", rows[1])
	}
	if strings.HasSuffix(rows[0], "| *") {
		t.Errorf("alice should not be marked active: %q", rows[0])
	}
}

func TestRenderNativeBalance(t *testing.T) {
	u := NewRecordingUI()
	RenderNativeBalance(u, alice, "1234.5", "ETH")
	want := []string{"Account: " + alice.Hex(), "Balance: 1,234.5 ETH"}
	got := u.Values("KeyValue")
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: want %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRenderAssets(t *testing.T) {
	tests := []struct {
		name   string
		assets []session.Asset
		want   []string
	}{
		{
			name: "empty",
			want: nil,
		},
		{
			name: "mixed",
			assets: []session.Asset{
				{
					Address:        alice,
					Classification: wallet.Classification{Kind: wallet.KindFungible},
					Name:           "USD Coin",
					Symbol:         "USDC",
				},
				{
					Address:        bob,
					Classification: wallet.Classification{Kind: wallet.KindNonFungible},
					Name:           "",
					Symbol:         "APE",
				},
			},
			want: []string{
				"1 | USDC | USD Coin | ERC20 | " + alice.Hex(),
				"2 | APE | unknown | ERC721 (count only) | " + bob.Hex(),
			},
		},
		{
			name: "collections after tokens",
			assets: []session.Asset{
				{
					Address:        bob,
					Classification: wallet.Classification{Kind: wallet.KindNonFungible, Enumerable: true},
					Name:           "Apes",
					Symbol:         "APE",
				},
				{
					Address:        alice,
					Classification: wallet.Classification{Kind: wallet.KindFungible},
					Name:           "USD Coin",
					Symbol:         "USDC",
				},
			},
			want: []string{
				"2 | USDC | USD Coin | ERC20 | " + alice.Hex(),
				"1 | APE | Apes | ERC721 | " + bob.Hex(),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := NewRecordingUI()
			RenderAssets(u, tc.assets)
			got := u.Values("TableRow")
			if len(got) != len(tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("row %d: want %q, got %q", i, tc.want[i], got[i])
				}
			}
			if len(tc.assets) == 0 && !u.HasMessage("no asset") {
				t.Error("expected an empty list notice")
			}
			if len(tc.assets) == 2 && len(u.Values("TableDivider")) != 1 {
				t.Errorf("tokens and collections must be separate groups: %v", u.Entries())
			}
		})
	}
}

func TestRenderClassificationWarnsOnProbeError(t *testing.T) {
	u := NewRecordingUI()
	RenderClassification(u, alice, wallet.Classification{
		Kind:     wallet.KindFungible,
		Probe:    wallet.ProbeIndeterminate,
		ProbeErr: errors.New("connection refused"),
	})
	if !u.HasMessage("Standard: ERC20") {
		t.Errorf("missing standard row: %v", u.Entries())
	}
	if len(u.Values("Warn")) != 1 {
		t.Errorf("expected one warning, got %v", u.Entries())
	}
}

func TestRenderERC721CountOnly(t *testing.T) {
	u := NewRecordingUI()
	RenderERC721(u, session.ERC721Snapshot{Name: "Apes", Symbol: "APE", Count: big.NewInt(3)})
	if !u.HasMessage("Owned: 3") {
		t.Errorf("missing count: %v", u.Entries())
	}
	if len(u.Values("TableRow")) != 0 {
		t.Errorf("count-only snapshot should not render a table")
	}
}

func TestRenderERC721Holdings(t *testing.T) {
	u := NewRecordingUI()
	RenderERC721(u, session.ERC721Snapshot{
		Name:   "Apes",
		Symbol: "APE",
		Count:  big.NewInt(2),
		Holdings: []wallet.Holding{
			{TokenID: big.NewInt(7), URI: "ipfs://7"},
			{TokenID: big.NewInt(9), URI: "ipfs://9"},
		},
	})
	rows := u.Values("TableRow")
	if len(rows) != 2 || rows[0] != "7 | ipfs://7" || rows[1] != "9 | ipfs://9" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestRenderReceipt(t *testing.T) {
	tests := []struct {
		status uint64
		want   string
	}{
		{types.ReceiptStatusSuccessful, "Status: done"},
		{types.ReceiptStatusFailed, "Status: reverted"},
	}
	for _, tc := range tests {
		u := NewRecordingUI()
		RenderReceipt(u, &types.Receipt{
			Status:      tc.status,
			TxHash:      common.HexToHash("0x01"),
			BlockNumber: big.NewInt(100),
			GasUsed:     21000,
		})
		if !u.HasMessage(tc.want) {
			t.Errorf("want %q in %v", tc.want, u.Entries())
		}
		if !u.HasMessage("Gas used: 21000") {
			t.Errorf("missing gas used in %v", u.Entries())
		}
		if got := u.CriticalMessages(); len(got) != 1 || got[0] != "Tx: "+common.HexToHash("0x01").Hex() {
			t.Errorf("tx hash must stand out: %v", got)
		}
	}
}

func TestTerminalUIPlainOutput(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader(""), false)

	u.Section("USDC")
	u.Indent().KeyValue([][2]string{{"Balance", "10"}, {"Symbol", "USDC"}})
	stop := u.Spinner("waiting")
	stop()

	got := out.String()
	for _, want := range []string{
		"USDC",
		"  Balance  10\n",
		"  Symbol   USDC\n",
		"waiting\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "\x1b[") {
		t.Errorf("non-terminal output should not carry colour codes: %q", got)
	}
}

func TestTerminalUIGroupedTable(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader(""), false)
	u.Indent().TableWithGroups([]string{"#", "Symbol"}, [][][]string{
		{{"1", "USDC"}},
		{{"2", "APE"}},
	})
	want := strings.Join([]string{
		"  ┌───┬────────┐",
		"  │ # │ Symbol │",
		"  ├───┼────────┤",
		"  │ 1 │ USDC   │",
		"  ├───┼────────┤",
		"  │ 2 │ APE    │",
		"  └───┴────────┘",
		"",
	}, "\n")
	if got := ansi.Strip(out.String()); got != want {
		t.Errorf("want\n%s\ngot\n%s", want, got)
	}
}

func TestWriterFollowsIndentation(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader(""), false)
	RenderCallData(u.Indent().Indent(), []byte{0xbe, 0xef})
	if got := out.String(); got != "    [0] beef\n" {
		t.Errorf("terminal: %q", got)
	}

	rec := NewRecordingUI()
	RenderCallData(rec.Indent(), make([]byte, 33))
	want := "  [0] " + strings.Repeat("00", 32) + "\n  [1] 00\n"
	if rec.Output() != want {
		t.Errorf("recording: want %q, got %q", want, rec.Output())
	}
}

func TestTerminalUIAskRetriesUntilValid(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader("abc\n2\n"), false)
	idx := u.Choose("pick", []string{"one", "two"})
	if idx != 1 {
		t.Fatalf("want 1, got %d", idx)
	}
	if !strings.Contains(out.String(), "please enter a number between 1 and 2") {
		t.Errorf("missing retry message: %q", out.String())
	}
}

func TestTerminalUIAskStopsAtEOF(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader("partial"), false)
	got := u.Ask(func(string) error { return errors.New("never valid") })
	if got != "partial" {
		t.Errorf("want partial, got %q", got)
	}
}

func TestRecordingUIConfirm(t *testing.T) {
	u := NewRecordingUI("", "n", "YES")
	if !u.Confirm("send?", true) {
		t.Error("empty answer should take the default")
	}
	if u.Confirm("send?", true) {
		t.Error("n should be no")
	}
	if !u.Confirm("send?", false) {
		t.Error("YES should be yes")
	}
}

func TestRecordingUIHelpers(t *testing.T) {
	u := NewRecordingUI()
	u.Info("hello %s", "bob")
	u.Indent().Critical("tx %d", 1)
	_, _ = u.Writer().Write([]byte("raw"))

	if got := u.InfoMessages(); len(got) != 1 || got[0] != "hello bob" {
		t.Errorf("info: %v", got)
	}
	if got := u.CriticalMessages(); len(got) != 1 || got[0] != "tx 1" {
		t.Errorf("critical: %v", got)
	}
	if u.Output() != "raw" {
		t.Errorf("output: %q", u.Output())
	}
}

func TestTerminalUIChooseAtEOFPicksLast(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalUIWithIO(&out, strings.NewReader(""), false)
	if idx := u.Choose("pick", []string{"one", "two", "quit"}); idx != 2 {
		t.Errorf("want 2, got %d", idx)
	}
}
