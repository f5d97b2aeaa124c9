package addrbook

import (
	"context"
	"errors"
)

// Chain returns the answer of the first resolver that succeeds. When all
// of them fail the errors are joined, so errors.Is still finds
// ErrNameNotFound or ErrInvalidAddress.
type Chain []Resolver

func (c Chain) Resolve(ctx context.Context, input string) (string, error) {
	errs := []error{}
	for _, r := range c {
		addr, err := r.Resolve(ctx, input)
		if err == nil {
			return addr, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", errors.New("no resolver configured")
	}
	return "", errors.Join(errs...)
}
