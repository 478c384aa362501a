package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/tidbit/core"
)

func newKeystore(t *testing.T) (*keystore.KeyStore, accounts.Account) {
	t.Helper()
	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.NewAccount("pass")
	require.NoError(t, err)
	return ks, account
}

// recoverSigner checks a personal_sign signature the way the backend does
func recoverSigner(t *testing.T, message, signature string) common.Address {
	t.Helper()
	sig, err := hexutil.Decode(signature)
	require.NoError(t, err)
	require.Len(t, sig, crypto.SignatureLength)

	sig[crypto.RecoveryIDOffset] -= 27
	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(*pub)
}

func TestKeystoreWalletSignsLoginMessage(t *testing.T) {
	ks, account := newKeystore(t)
	w, err := NewKeystoreWallet(ks, "", "pass")
	require.NoError(t, err)

	addrs, err := w.RequestAccounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{account.Address.Hex()}, addrs)

	msg := core.LoginMessage("n1")
	sig, err := w.PersonalSign(context.Background(), msg, addrs[0])
	require.NoError(t, err)

	assert.Equal(t, account.Address, recoverSigner(t, msg, sig))
}

func TestKeystoreWalletSelectsByAddress(t *testing.T) {
	ks, _ := newKeystore(t)
	second, err := ks.NewAccount("pass")
	require.NoError(t, err)

	w, err := NewKeystoreWallet(ks, second.Address.Hex(), "pass")
	require.NoError(t, err)

	addrs, _ := w.RequestAccounts(context.Background())
	assert.Equal(t, []string{second.Address.Hex()}, addrs)
}

func TestKeystoreWalletErrors(t *testing.T) {
	empty := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	_, err := NewKeystoreWallet(empty, "", "pass")
	assert.True(t, errors.Is(err, core.ErrNoAccounts))

	ks, account := newKeystore(t)
	_, err = NewKeystoreWallet(ks, "not-an-address", "pass")
	assert.True(t, errors.Is(err, core.ErrInvalidAddress))

	w, err := NewKeystoreWallet(ks, account.Address.Hex(), "wrong")
	require.NoError(t, err)
	_, err = w.PersonalSign(context.Background(), "hello", account.Address.Hex())
	assert.Error(t, err, "wrong passphrase")

	_, err = w.PersonalSign(context.Background(), "hello", "0x0000000000000000000000000000000000000001")
	assert.True(t, errors.Is(err, core.ErrInvalidAddress))
}

type rejectErr struct{}

func (rejectErr) Error() string  { return "User rejected the request." }
func (rejectErr) ErrorCode() int { return 4001 }

// ethAPI and personalAPI emulate an injected browser wallet
type ethAPI struct{ accounts []string }

func (api *ethAPI) RequestAccounts() []string { return api.accounts }

type personalAPI struct {
	signer *KeystoreWallet
	reject bool
}

func (api *personalAPI) Sign(ctx context.Context, data hexutil.Bytes, address string) (string, error) {
	if api.reject {
		return "", rejectErr{}
	}
	return api.signer.PersonalSign(ctx, string(data), address)
}

func newRPCWallet(t *testing.T, reject bool) (*RPCWallet, accounts.Account) {
	t.Helper()
	ks, account := newKeystore(t)
	signer, err := NewKeystoreWallet(ks, "", "pass")
	require.NoError(t, err)

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", &ethAPI{accounts: []string{account.Address.Hex()}}))
	require.NoError(t, server.RegisterName("personal", &personalAPI{signer: signer, reject: reject}))
	t.Cleanup(server.Stop)

	w := NewRPCWallet(rpc.DialInProc(server))
	t.Cleanup(w.Close)
	return w, account
}

func TestRPCWallet(t *testing.T) {
	w, account := newRPCWallet(t, false)
	ctx := context.Background()

	addrs, err := w.RequestAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{account.Address.Hex()}, addrs)

	msg := core.LoginMessage("abc123")
	sig, err := w.PersonalSign(ctx, msg, addrs[0])
	require.NoError(t, err)
	assert.Equal(t, account.Address, recoverSigner(t, msg, sig))
}

func TestRPCWalletUserRejection(t *testing.T) {
	w, account := newRPCWallet(t, true)

	_, err := w.PersonalSign(context.Background(), "hello", account.Address.Hex())
	assert.True(t, errors.Is(err, core.ErrUserRejected), "got %v", err)
}

type stubWallet struct{ calls int }

func (s *stubWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	s.calls++
	return []string{"0xAAA"}, nil
}

func (s *stubWallet) PersonalSign(ctx context.Context, message, address string) (string, error) {
	s.calls++
	return "0xSIG", nil
}

func TestConfirmingWallet(t *testing.T) {
	next := &stubWallet{}
	var labels []string
	answer := true
	w := &ConfirmingWallet{
		Next: next,
		Confirm: func(label string) (bool, error) {
			labels = append(labels, label)
			return answer, nil
		},
	}
	ctx := context.Background()

	addrs, err := w.RequestAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xAAA"}, addrs)

	sig, err := w.PersonalSign(ctx, core.LoginMessage("n1"), "0xAAA")
	require.NoError(t, err)
	assert.Equal(t, "0xSIG", sig)
	require.Len(t, labels, 2)
	assert.Contains(t, labels[1], "Nonce: n1")

	answer = false
	_, err = w.PersonalSign(ctx, "hello", "0xAAA")
	assert.True(t, errors.Is(err, core.ErrUserRejected))
	assert.Equal(t, 2, next.calls, "rejected request never reaches the wallet")
}
