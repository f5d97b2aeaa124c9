package account

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

const testKey = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

func TestAccountSignsForChain(t *testing.T) {
	key, err := crypto.HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	acc := NewAccount(key)
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.LegacyTx{Nonce: 0, To: &to, Gas: 21000, GasPrice: big.NewInt(1), Value: big.NewInt(1)})
	chainID := big.NewInt(1337)
	signed, err := acc.SignTx(tx, chainID)
	if err != nil {
		t.Fatal(err)
	}
	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	if err != nil {
		t.Fatal(err)
	}
	if sender != acc.Address() {
		t.Fatalf("sender = %s, want %s", sender.Hex(), acc.AddressHex())
	}
}

func TestKeystoreRoundTrip(t *testing.T) {
	priv, err := crypto.HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(priv.PublicKey),
		PrivateKey: priv,
	}
	blob, err := keystore.EncryptKey(key, "secret", keystore.LightScryptN, keystore.LightScryptP)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	file := filepath.Join(dir, "UTC--test--"+key.Address.Hex()[2:])
	if err := os.WriteFile(file, blob, 0o600); err != nil {
		t.Fatal(err)
	}

	entries, err := ScanKeystoreDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Address != key.Address {
		t.Fatalf("unexpected entries: %+v", entries)
	}

	acc, err := NewKeystoreAccount(entries[0].File, "secret")
	if err != nil {
		t.Fatal(err)
	}
	if acc.Address() != key.Address {
		t.Fatalf("address = %s, want %s", acc.AddressHex(), key.Address.Hex())
	}
	if _, err := NewKeystoreAccount(entries[0].File, "wrong"); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestSignerRejectsForeignSender(t *testing.T) {
	key, err := crypto.HexToECDSA(testKey)
	if err != nil {
		t.Fatal(err)
	}
	other, err := crypto.GenerateKey()
	if err != nil {
		t.Fatal(err)
	}
	acc := &Account{
		signer:  keystoreSigner{key: key, from: crypto.PubkeyToAddress(other.PublicKey)},
		address: crypto.PubkeyToAddress(other.PublicKey),
	}
	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	tx := types.NewTx(&types.LegacyTx{To: &to, Gas: 21000, GasPrice: big.NewInt(1)})
	if _, err := acc.SignTx(tx, big.NewInt(1)); err == nil {
		t.Fatalf("expected signing for a foreign address to fail")
	}
}
