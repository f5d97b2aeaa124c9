package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	twcommon "github.com/tranvictor/tokenwallet/common"
)

// Probe is the outcome of an ERC-165 supportsInterface call.
type Probe int

const (
	ProbeIndeterminate Probe = iota
	ProbeSupported
	ProbeUnsupported
)

func (p Probe) String() string {
	switch p {
	case ProbeSupported:
		return "supported"
	case ProbeUnsupported:
		return "unsupported"
	default:
		return "indeterminate"
	}
}

type Kind int

const (
	KindFungible Kind = iota
	KindNonFungible
)

func (k Kind) String() string {
	if k == KindNonFungible {
		return "ERC721"
	}
	return "ERC20"
}

// IndeterminatePolicy decides what Classify does when the probe could not
// get an answer.
type IndeterminatePolicy int

const (
	// TreatAsFungible classifies the asset as ERC-20.
	TreatAsFungible IndeterminatePolicy = iota
	// FailOnIndeterminate returns the probe error.
	FailOnIndeterminate
)

type Classification struct {
	Kind Kind
	// Enumerable is only meaningful for KindNonFungible.
	Enumerable bool
	Probe      Probe
	// ProbeErr is why the probe was indeterminate.
	ProbeErr error
}

// SupportsInterface asks contract whether it implements id. A false answer,
// a revert or an empty reply (no code, no fallback) is ProbeUnsupported.
// Anything else that goes wrong is ProbeIndeterminate together with the
// error.
func (c *Client) SupportsInterface(ctx context.Context, contract common.Address, id [4]byte) (Probe, error) {
	values, err := c.call(ctx, contract, twcommon.GetERC165ABI(), "supportsInterface", id)
	if err != nil {
		if isRevert(err) || errors.Is(err, ErrEmptyReply) {
			return ProbeUnsupported, nil
		}
		if ctx.Err() != nil {
			return ProbeIndeterminate, ctx.Err()
		}
		return ProbeIndeterminate, err
	}
	if ok, _ := values[0].(bool); ok {
		return ProbeSupported, nil
	}
	return ProbeUnsupported, nil
}

func isRevert(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		return true
	}
	return strings.Contains(err.Error(), "execution reverted")
}

// Classify probes contract for ERC-721 and, when present, its enumerable
// extension.
func (c *Client) Classify(ctx context.Context, contract common.Address) (Classification, error) {
	probe, err := c.SupportsInterface(ctx, contract, twcommon.ERC721InterfaceID)
	switch probe {
	case ProbeUnsupported:
		return Classification{Kind: KindFungible, Probe: probe}, nil
	case ProbeIndeterminate:
		if c.policy == FailOnIndeterminate {
			return Classification{Probe: probe, ProbeErr: err}, fmt.Errorf("classifying %s: %w", contract.Hex(), err)
		}
		c.logger.Debug("erc165 probe indeterminate, treating as fungible",
			zap.Stringer("contract", contract), zap.Error(err))
		return Classification{Kind: KindFungible, Probe: probe, ProbeErr: err}, nil
	}

	result := Classification{Kind: KindNonFungible, Probe: probe}
	enumProbe, err := c.SupportsInterface(ctx, contract, twcommon.ERC721EnumerableInterfaceID)
	switch enumProbe {
	case ProbeSupported:
		result.Enumerable = true
	case ProbeIndeterminate:
		if c.policy == FailOnIndeterminate {
			return result, fmt.Errorf("probing enumerable extension of %s: %w", contract.Hex(), err)
		}
		result.ProbeErr = err
	}
	return result, nil
}
