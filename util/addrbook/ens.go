package addrbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

// Caller runs a read only contract call. The wallet provider satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
}

type ENS struct {
	registry common.Address
	caller   Caller
}

func NewENS(registry common.Address, caller Caller) *ENS {
	return &ENS{registry: registry, caller: caller}
}

// NameHash implements the EIP-137 namehash of a dot separated name.
func NameHash(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(strings.ToLower(name), ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := crypto.Keccak256([]byte(labels[i]))
		node = crypto.Keccak256Hash(node.Bytes(), label)
	}
	return node
}

func (e *ENS) Resolve(ctx context.Context, input string) (string, error) {
	name := strings.TrimSpace(input)
	if !strings.Contains(name, ".") {
		return "", fmt.Errorf("%q is not an ENS name: %w", input, twcommon.ErrNameNotFound)
	}
	node := NameHash(name)

	resolver, err := e.readAddress(ctx, e.registry, twcommon.GetENSRegistryABI(), "resolver", node)
	if err != nil {
		return "", fmt.Errorf("reading ENS resolver of %s: %w", name, err)
	}
	if resolver == (common.Address{}) {
		return "", fmt.Errorf("%s has no resolver: %w", name, twcommon.ErrNameNotFound)
	}
	addr, err := e.readAddress(ctx, resolver, twcommon.GetENSResolverABI(), "addr", node)
	if err != nil {
		return "", fmt.Errorf("reading ENS address of %s: %w", name, err)
	}
	if addr == (common.Address{}) {
		return "", fmt.Errorf("%s: %w", name, twcommon.ErrNameNotFound)
	}
	twcommon.Logger().Debug("ens resolved", zap.String("name", name), zap.Stringer("address", addr))
	return addr.Hex(), nil
}

func (e *ENS) readAddress(ctx context.Context, contract common.Address, a *abi.ABI, method string, node common.Hash) (common.Address, error) {
	data, err := a.Pack(method, node)
	if err != nil {
		return common.Address{}, err
	}
	out, err := e.caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data})
	if err != nil {
		return common.Address{}, err
	}
	if len(out) == 0 {
		return common.Address{}, nil
	}
	var result common.Address
	if err := a.UnpackIntoInterface(&result, method, out); err != nil {
		return common.Address{}, err
	}
	return result, nil
}
