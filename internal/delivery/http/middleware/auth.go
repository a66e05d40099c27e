package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saved-places-service/internal/pkg/errors"
	"github.com/saved-places-service/internal/pkg/utils"
)

// UserIDKey is the locals key the auth middleware stores the caller's
// identity under.
const UserIDKey = "user_id"

// UserIdentity extracts the caller's user id from the X-User-ID header,
// as forwarded by the API gateway. Requests without a parseable id are
// rejected before any handler runs.
func UserIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			return utils.SendError(c, errors.ErrUnauthenticated)
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return utils.SendError(c, errors.ErrUnauthenticated)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identity stored by UserIdentity.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.ErrUnauthenticated
	}
	return id, nil
}
