package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/layer-3/tidbit/core"
	"github.com/layer-3/tidbit/ports"
)

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(label string) (bool, error)

// ConfirmingWallet asks the user before exposing accounts or signing,
// the way a browser wallet pops up an approval dialog
type ConfirmingWallet struct {
	Next    ports.Wallet
	Confirm ConfirmFunc
}

// NewConfirmingWallet wraps next with terminal prompts
func NewConfirmingWallet(next ports.Wallet) *ConfirmingWallet {
	return &ConfirmingWallet{Next: next, Confirm: PromptConfirm}
}

var _ ports.Wallet = (*ConfirmingWallet)(nil)

// RequestAccounts asks for approval before listing accounts
func (w *ConfirmingWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := w.ask("Connect wallet to tidbit"); err != nil {
		return nil, err
	}
	return w.Next.RequestAccounts(ctx)
}

// PersonalSign shows the message and asks for approval before signing
func (w *ConfirmingWallet) PersonalSign(ctx context.Context, message, address string) (string, error) {
	if err := w.ask(fmt.Sprintf("Sign with %s:\n%s\n", address, message)); err != nil {
		return "", err
	}
	return w.Next.PersonalSign(ctx, message, address)
}

func (w *ConfirmingWallet) ask(label string) error {
	ok, err := w.Confirm(label)
	if err != nil {
		return err
	}
	if !ok {
		return core.ErrUserRejected
	}
	return nil
}

// PromptConfirm is a promptui y/N confirmation
func PromptConfirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PromptPassphrase reads a masked passphrase
func PromptPassphrase(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}
