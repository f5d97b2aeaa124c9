// Package addrbook turns what a user typed into a recipient or contract
// field into a checksummed Ethereum address.
//
// Literal addresses go through [Literal]. Names go through the local
// address book ([Map]) or ENS ([ENS]). [Chain] tries resolvers in order and
// is what the wallet uses in production. Tests inject a [Map] so that no
// network call is needed.
package addrbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

// Resolver maps an address literal or a name to an address in hex form.
//
// Contract: a name with no registered address yields an error wrapping
// twcommon.ErrNameNotFound.
type Resolver interface {
	Resolve(ctx context.Context, input string) (string, error)
}

// IsValidAddress accepts "0x" followed by 40 hex digits. All lower or all
// upper case digits are accepted as is; mixed case must match the EIP-55
// checksum.
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") || !common.IsHexAddress(s) {
		return false
	}
	body := s[2:]
	if body == strings.ToLower(body) || body == strings.ToUpper(body) {
		return true
	}
	return common.HexToAddress(s).Hex() == s
}

// Literal resolves only well formed address literals and returns them
// unchanged.
type Literal struct{}

func (Literal) Resolve(ctx context.Context, input string) (string, error) {
	if IsValidAddress(input) {
		return input, nil
	}
	return "", fmt.Errorf("%q: %w", input, twcommon.ErrInvalidAddress)
}
