package account

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

func AddressFromPrivateKey(key *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(key.PublicKey).Hex()
}

func PrivateKeyFromKeystore(file string, password string) (string, *ecdsa.PrivateKey, error) {
	json, err := os.ReadFile(file)
	if err != nil {
		return "", nil, err
	}
	key, err := keystore.DecryptKey(json, password)
	if err != nil {
		return "", nil, err
	}
	pubhex := AddressFromPrivateKey(key.PrivateKey)
	return pubhex, key.PrivateKey, nil
}

// KeystoreEntry is an account found in a keystore directory.
type KeystoreEntry struct {
	Address common.Address
	File    string
}

// ScanKeystoreDir lists the accounts in a geth style keystore directory,
// ordered by file name so the first entry is stable across runs.
func ScanKeystoreDir(dir string) ([]KeystoreEntry, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("keystore dir %s: %w", dir, err)
	}
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	result := []KeystoreEntry{}
	for _, acc := range ks.Accounts() {
		result = append(result, KeystoreEntry{
			Address: acc.Address,
			File:    acc.URL.Path,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].File < result[j].File
	})
	return result, nil
}
