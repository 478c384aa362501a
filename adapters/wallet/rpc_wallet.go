package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// RPCWallet drives an external wallet over JSON-RPC (eth_requestAccounts, personal_sign)
type RPCWallet struct {
	client *rpc.Client
}

// DialRPCWallet connects to the wallet endpoint at url
func DialRPCWallet(ctx context.Context, url string) (*RPCWallet, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial wallet: %w", err)
	}
	return NewRPCWallet(client), nil
}

// NewRPCWallet wraps an existing rpc client
func NewRPCWallet(client *rpc.Client) *RPCWallet {
	return &RPCWallet{client: client}
}

var _ ports.Wallet = (*RPCWallet)(nil)

// RequestAccounts asks the wallet for its accounts
func (w *RPCWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := w.client.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, mapRPCError(err)
	}
	return accounts, nil
}

// PersonalSign asks the wallet to sign message; the text is sent hex encoded
func (w *RPCWallet) PersonalSign(ctx context.Context, message, address string) (string, error) {
	var sig hexutil.Bytes
	if err := w.client.CallContext(ctx, &sig, "personal_sign", hexutil.Bytes(message), address); err != nil {
		return "", mapRPCError(err)
	}
	return sig.String(), nil
}

// Close drops the connection
func (w *RPCWallet) Close() {
	w.client.Close()
}

// userRejectedCode is the EIP-1193 "User Rejected Request" code
const userRejectedCode = 4001

func mapRPCError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return fmt.Errorf("%w: %v", core.ErrUserRejected, err)
	}
	return err
}
