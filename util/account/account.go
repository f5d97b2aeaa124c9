package account

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is an unlocked wallet account able to sign transactions for its
// own address.
type Account struct {
	signer  Signer
	address common.Address
}

// NewKeystoreAccount decrypts file with password and unlocks the account.
func NewKeystoreAccount(file string, password string) (*Account, error) {
	_, key, err := PrivateKeyFromKeystore(file, password)
	if err != nil {
		return nil, err
	}
	return NewAccount(key), nil
}

// NewAccount wraps an already decrypted key.
func NewAccount(key *ecdsa.PrivateKey) *Account {
	addr := crypto.PubkeyToAddress(key.PublicKey)
	return &Account{
		signer:  keystoreSigner{key: key, from: addr},
		address: addr,
	}
}

func (self *Account) Address() common.Address {
	return self.address
}

func (self *Account) AddressHex() string {
	return self.address.Hex()
}

func (self *Account) SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	signedTx, err := self.signer.SignTx(tx, chainId)
	if err != nil {
		return tx, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	return signedTx, nil
}
