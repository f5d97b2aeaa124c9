package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	twcommon "github.com/tranvictor/tokenwallet/common"
	"github.com/tranvictor/tokenwallet/util/addrbook"
)

// ResolveAddress turns a literal address or a name into an address. A
// literal comes back unchanged. Whatever the resolver returns is checked
// again, so a failed lookup and a malformed address look the same to the
// caller.
func (c *Client) ResolveAddress(ctx context.Context, input string) (common.Address, error) {
	resolved, err := c.resolver.Resolve(ctx, input)
	if err != nil {
		return common.Address{}, err
	}
	if !addrbook.IsValidAddress(resolved) {
		return common.Address{}, fmt.Errorf("%q resolved to %q: %w", input, resolved, twcommon.ErrInvalidAddress)
	}
	return common.HexToAddress(resolved), nil
}
