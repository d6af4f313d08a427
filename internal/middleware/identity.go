package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/studydock/studydock-go/internal/model"
)

// Identity headers set by the upstream auth proxy after it has verified the
// caller's session with the identity provider. The id is stable across
// requests; the profile fields may change and are re-synced on every write.
const (
	HeaderUserID     = "X-User-Id"
	HeaderUserEmail  = "X-User-Email"
	HeaderUserName   = "X-User-Name"
	HeaderUserAvatar = "X-User-Avatar"
)

const identityLocal = "identity"

// ParseIdentity builds an Identity from raw header values. Returns false if
// there is no user id, i.e. the request is anonymous.
func ParseIdentity(id, email, name, avatar string) (model.Identity, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Identity{}, false
	}
	return model.Identity{
		ID:        id,
		Email:     strings.TrimSpace(email),
		FullName:  strings.TrimSpace(name),
		AvatarURL: strings.TrimSpace(avatar),
	}, true
}

// WithIdentity extracts the caller identity (if any) into request locals.
// It never rejects: anonymous requests pass through and individual routes
// decide whether they require authentication.
func WithIdentity() fiber.Handler {
	return func(c fiber.Ctx) error {
		id, ok := ParseIdentity(
			c.Get(HeaderUserID),
			c.Get(HeaderUserEmail),
			c.Get(HeaderUserName),
			c.Get(HeaderUserAvatar),
		)
		if ok {
			c.Locals(identityLocal, id)
		}
		return c.Next()
	}
}

// IdentityFrom returns the caller identity stored by WithIdentity.
func IdentityFrom(c fiber.Ctx) (model.Identity, bool) {
	id, ok := c.Locals(identityLocal).(model.Identity)
	return id, ok
}

// RequireIdentity rejects anonymous requests before any mutation runs.
func RequireIdentity() fiber.Handler {
	return func(c fiber.Ctx) error {
		if _, ok := IdentityFrom(c); !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
		}
		return c.Next()
	}
}
