package common

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrNameNotFound   = errors.New("name has no registered address")
	// ErrNotSubmitted is returned by forms that refused to submit. No call
	// reached the provider.
	ErrNotSubmitted = errors.New("not submitted")
	ErrNoAccounts   = errors.New("provider exposes no accounts")
	ErrTxReverted   = errors.New("transaction reverted")
	ErrTxLost       = errors.New("transaction lost: never seen by any node")
)

type Code string

const (
	CodeNoProvider Code = "NO_PROVIDER"
	CodeDialNode   Code = "DIAL_NODE_ERROR"
	CodeAccounts   Code = "ACCOUNTS_ERROR"
	CodeNonce      Code = "NONCE_ERROR"
	CodeGas        Code = "GAS_ESTIMATE_ERROR"
	CodeSigner     Code = "SIGNER_ERROR"
	CodeSendTx     Code = "SEND_TX_ERROR"
	CodeKeystore   Code = "KEYSTORE_ERROR"
)

type AppError struct {
	Code Code
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func WrapWithCode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// HasCode reports whether any error in err's chain is an AppError with code.
func HasCode(err error, code Code) bool {
	var appErr *AppError
	for errors.As(err, &appErr) {
		if appErr.Code == code {
			return true
		}
		err = appErr.Err
	}
	return false
}
