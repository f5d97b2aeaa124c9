package util

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/config"
	"github.com/tranvictor/tokenwallet/ui"
)

var ErrAborted = errors.New("user aborted")

type (
	StringValidator func(st string) error
	AddressResolver func(input string) (common.Address, error)
)

// PromptInputWithValidation shows a label, then loops until the validator passes.
func PromptInputWithValidation(u ui.UI, label string, validator StringValidator) string {
	if label != "" {
		u.Info(label)
	}
	return strings.TrimSpace(u.Ask(func(s string) error {
		return validator(strings.TrimSpace(s))
	}))
}

// PromptInput shows an optional label and reads one line.
func PromptInput(u ui.UI, label string) string {
	if label != "" {
		u.Info(label)
	}
	return strings.TrimSpace(u.Ask(nil))
}

// PromptItemInList shows a label and loops until the user enters one of options.
func PromptItemInList(u ui.UI, label string, options []string) string {
	return PromptInputWithValidation(u, label, func(s string) error {
		for _, op := range options {
			if s == strings.TrimSpace(op) {
				return nil
			}
		}
		return fmt.Errorf("your input is not in the list")
	})
}

// PromptAmount reads a decimal amount of an asset with the given decimals.
func PromptAmount(u ui.UI, label string, decimals uint64) string {
	return PromptInputWithValidation(u, label, func(s string) error {
		amount, err := twcommon.ToBaseUnits(s, decimals)
		if err != nil {
			return err
		}
		if amount.Sign() < 0 {
			return fmt.Errorf("amount can't be negative")
		}
		return nil
	})
}

// PromptRecipient reads a recipient until it resolves and echoes the
// address it resolved to.
func PromptRecipient(u ui.UI, label string, resolve AddressResolver) common.Address {
	var resolved common.Address
	PromptInputWithValidation(u, label, func(s string) error {
		addr, err := resolve(s)
		if err != nil {
			return err
		}
		resolved = addr
		return nil
	})
	u.Interpret(resolved.Hex())
	return resolved
}

func PromptTokenID(u ui.UI, label string) *big.Int {
	var id *big.Int
	PromptInputWithValidation(u, label, func(s string) error {
		n, err := twcommon.ParseTokenID(s)
		if err != nil {
			return err
		}
		id = n
		return nil
	})
	return id
}

// PromptHexData reads optional 0x prefixed call data, empty means none.
func PromptHexData(u ui.UI, label string) string {
	return PromptInputWithValidation(u, label, func(s string) error {
		if s == "" {
			return nil
		}
		_, err := hexutil.Decode(s)
		return err
	})
}

// TxSummary is what the user reviews before a transfer is signed. Data is
// the payload handed to an NFT receiver, if any.
type TxSummary struct {
	From common.Address
	To   common.Address
	Rows [][2]string
	Data []byte
}

// PromptTxConfirmation shows what is about to be sent and asks the user to
// confirm. It returns ErrAborted when the user declines.
func PromptTxConfirmation(u ui.UI, title string, sum TxSummary) error {
	u.Section(title)
	u.Critical("%s ==> %s", sum.From.Hex(), sum.To.Hex())
	u.KeyValue(sum.Rows)
	if len(sum.Data) > 0 {
		u.Info("Data (%d bytes):", len(sum.Data))
		ui.RenderCallData(u.Indent(), sum.Data)
	}
	if !config.Yes && !u.Confirm("Confirm?", true) {
		return ErrAborted
	}
	return nil
}
