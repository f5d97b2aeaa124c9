package addrbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

// Map is the local address book: lower-cased names to addresses. Lookups
// are case insensitive.
//
// Example:
//
//	r := addrbook.Map{
//	    "vitalik": "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
//	    "usdc":    "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
//	}
type Map map[string]string

func (m Map) Resolve(ctx context.Context, input string) (string, error) {
	if addr, ok := m[strings.ToLower(strings.TrimSpace(input))]; ok {
		return addr, nil
	}
	return "", fmt.Errorf("%q is not in the address book: %w", input, twcommon.ErrNameNotFound)
}

// LoadMap reads a JSON object of name to address. A missing file is an
// empty address book.
func LoadMap(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Map{}, nil
	}
	if err != nil {
		return nil, err
	}
	raw := map[string]string{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing address book %s: %w", path, err)
	}
	result := Map{}
	for name, addr := range raw {
		if !IsValidAddress(addr) {
			return nil, fmt.Errorf("address book entry %q: %w", name, twcommon.ErrInvalidAddress)
		}
		result[strings.ToLower(name)] = addr
	}
	return result, nil
}
