// Package ledger applies balance mutations to user records.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xlovstudio/rui/rui/database/models"
)

type Currency string

const (
	Coins       Currency = "coins"
	Butterflies Currency = "butterflies"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrInvalidTarget     = errors.New("invalid transfer target")
	ErrUnknownCurrency   = errors.New("unknown currency")
)

func ParseCurrency(s string) (Currency, error) {
	switch c := Currency(strings.ToLower(strings.TrimSpace(s))); c {
	case Coins, Butterflies:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

func balance(u *models.User, c Currency) (*int64, error) {
	switch c {
	case Coins:
		return &u.Coins, nil
	case Butterflies:
		return &u.Butterflies, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, c)
}

// Balance returns the user's holding of c.
func Balance(u *models.User, c Currency) int64 {
	b, err := balance(u, c)
	if err != nil {
		return 0
	}
	return *b
}

// Grant adds non-negative amounts to both balances.
func Grant(u *models.User, coins, butterflies int64) error {
	if coins < 0 || butterflies < 0 {
		return ErrInvalidAmount
	}
	u.Coins += coins
	u.Butterflies += butterflies
	return nil
}

// Spend debits amount or fails without touching the balance.
func Spend(u *models.User, c Currency, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	b, err := balance(u, c)
	if err != nil {
		return err
	}
	if *b < amount {
		return ErrInsufficientFunds
	}
	*b -= amount
	return nil
}

// Transfer moves amount of c from sender to receiver. Either both balances
// change or neither does.
func Transfer(sender, receiver *models.User, c Currency, amount int64) error {
	if sender == nil || receiver == nil {
		return ErrInvalidTarget
	}
	if sender.ID == receiver.ID {
		return ErrSelfTransfer
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	from, err := balance(sender, c)
	if err != nil {
		return err
	}
	to, _ := balance(receiver, c)
	if *from < amount {
		return ErrInsufficientFunds
	}
	*from -= amount
	*to += amount
	return nil
}
