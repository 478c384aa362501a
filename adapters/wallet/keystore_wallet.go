package wallet

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// KeystoreWallet signs with a key from a local go-ethereum keystore directory
type KeystoreWallet struct {
	ks         *keystore.KeyStore
	account    accounts.Account
	passphrase string
}

// OpenKeystore opens the keystore at dir using standard scrypt parameters
func OpenKeystore(dir string) *keystore.KeyStore {
	return keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
}

// NewKeystoreWallet selects address from ks, or the first account when address is empty
func NewKeystoreWallet(ks *keystore.KeyStore, address, passphrase string) (*KeystoreWallet, error) {
	var account accounts.Account
	if address == "" {
		all := ks.Accounts()
		if len(all) == 0 {
			return nil, core.ErrNoAccounts
		}
		account = all[0]
	} else {
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("%w: %s", core.ErrInvalidAddress, address)
		}
		found, err := ks.Find(accounts.Account{Address: common.HexToAddress(address)})
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", address, err)
		}
		account = found
	}

	return &KeystoreWallet{
		ks:         ks,
		account:    account,
		passphrase: passphrase,
	}, nil
}

var _ ports.Wallet = (*KeystoreWallet)(nil)

// RequestAccounts returns the selected account
func (w *KeystoreWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	return []string{w.account.Address.Hex()}, nil
}

// PersonalSign produces an EIP-191 personal_sign signature with V in {27, 28}
func (w *KeystoreWallet) PersonalSign(ctx context.Context, message, address string) (string, error) {
	if !common.IsHexAddress(address) || common.HexToAddress(address) != w.account.Address {
		return "", fmt.Errorf("%w: %s is not the keystore account", core.ErrInvalidAddress, address)
	}

	sig, err := w.ks.SignHashWithPassphrase(w.account, w.passphrase, accounts.TextHash([]byte(message)))
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27

	return hexutil.Encode(sig), nil
}
