package account

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type Signer interface {
	SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

// keystoreSigner signs with a key decrypted from a keystore file. The key
// never leaves the account it was unlocked for.
type keystoreSigner struct {
	key  *ecdsa.PrivateKey
	from common.Address
}

func (s keystoreSigner) SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainId)
	if err != nil {
		return nil, err
	}
	return opts.Signer(s.from, tx)
}
