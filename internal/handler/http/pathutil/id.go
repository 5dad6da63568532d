package pathutil

import (
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidID indicates that a path ID is not a UUID.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a UUID taken from a request path.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
