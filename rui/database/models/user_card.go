package models

import "time"

// UserCard is an owned copy of a catalog card. The card data is a snapshot taken
// at acquisition time, later catalog edits never reach it.
type UserCard struct {
	Card
	Obtained time.Time `json:"obtained,omitempty"`
}

// NewUserCard snapshots the catalog card.
func NewUserCard(c Card, obtained time.Time) UserCard {
	snapshot := c
	if c.Droppable != nil {
		snapshot.Droppable = BoolPtr(*c.Droppable)
	}
	return UserCard{Card: snapshot, Obtained: obtained}
}
