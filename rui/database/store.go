package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names one of the three logical documents the bot persists.
type Collection string

const (
	CollectionUsers     Collection = "users"
	CollectionUserCards Collection = "user_cards"
	CollectionCards     Collection = "cards"
)

var Collections = []Collection{CollectionUsers, CollectionUserCards, CollectionCards}

func ParseCollection(s string) (Collection, error) {
	for _, c := range Collections {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

// Document is the raw JSON body of a collection.
type Document = json.RawMessage

// ErrNotFound is returned by Load when a collection was never saved.
var ErrNotFound = errors.New("document not found")

// Store persists whole collection documents. Saves are last-write-wins.
type Store interface {
	Load(ctx context.Context, c Collection) (Document, error)
	Save(ctx context.Context, c Collection, doc Document) error
}

// Closer is implemented by stores holding connections.
type Closer interface {
	Close(ctx context.Context) error
}
