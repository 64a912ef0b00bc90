package services

import (
	"github.com/google/uuid"

	"auction-api/internal/models"
)

// Client is the resolved identity of a request: either an
// authenticated user or a guest. Exactly one of the two fields is set.
type Client struct {
	User    *models.User
	GuestID uuid.UUID
}

// Authenticated reports whether the client is a logged-in user.
func (c Client) Authenticated() bool {
	return c.User != nil
}

// Key is the identifier scoping the client's watchlist entries: the
// user id when authenticated, the guest id otherwise.
func (c Client) Key() uuid.UUID {
	if c.User != nil {
		return c.User.ID
	}
	return c.GuestID
}
