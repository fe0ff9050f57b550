package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Coins       int64     `json:"coins"`
	Butterflies int64     `json:"butterflies"`
	Created     time.Time `json:"created"`

	// Timestamps
	LastDaily   *time.Time `json:"lastDaily"`
	LastWeekly  *time.Time `json:"lastWeekly"`
	LastMonthly *time.Time `json:"lastMonthly"`
	LastWork    *time.Time `json:"lastWork"`
	LastDrop    *time.Time `json:"lastDrop"`
	LastClaim   *time.Time `json:"lastClaim"`

	ActiveBoost *ActiveBoost `json:"activeBoost"`
	PendingDrop *PendingDrop `json:"pendingDrop"`
}

// NewUser builds a fresh profile with empty balances and no cooldowns.
func NewUser(id, name string, now time.Time) *User {
	return &User{
		ID:      id,
		Name:    name,
		Created: now,
	}
}

// BoostTier names one of the purchasable drop boosts.
type BoostTier string

const (
	BoostSmall  BoostTier = "small"
	BoostNormal BoostTier = "normal"
	BoostMega   BoostTier = "mega"
)

type ActiveBoost struct {
	Type      BoostTier `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (b *ActiveBoost) Expired(now time.Time) bool {
	return b == nil || now.After(b.ExpiresAt)
}

func (b *ActiveBoost) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type      BoostTier       `json:"type"`
		ExpiresAt json.RawMessage `json:"expiresAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	expires, err := parseExpiry(raw.ExpiresAt)
	if err != nil {
		return fmt.Errorf("active boost: %w", err)
	}
	b.Type = raw.Type
	b.ExpiresAt = expires
	return nil
}

// PendingDrop holds the three offered cards until one is picked or the offer lapses.
type PendingDrop struct {
	Cards     []Card    `json:"cards"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (p *PendingDrop) Expired(now time.Time) bool {
	return p == nil || now.After(p.ExpiresAt)
}

func (p *PendingDrop) UnmarshalJSON(data []byte) error {
	var raw struct {
		Cards     []Card          `json:"cards"`
		ExpiresAt json.RawMessage `json:"expiresAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	expires, err := parseExpiry(raw.ExpiresAt)
	if err != nil {
		return fmt.Errorf("pending drop: %w", err)
	}
	p.Cards = raw.Cards
	p.ExpiresAt = expires
	return nil
}

// parseExpiry accepts RFC 3339 strings and the legacy epoch milliseconds format.
func parseExpiry(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(raw, &t); err != nil {
			return time.Time{}, fmt.Errorf("invalid expiry %s: %w", raw, err)
		}
		return t, nil
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid expiry %s: %w", raw, err)
	}
	return time.UnixMilli(ms), nil
}
