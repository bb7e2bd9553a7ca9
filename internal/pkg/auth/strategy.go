package auth

import (
	"time"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
)

// Identity is the authenticated principal encoded into tokens. Carrying the
// role lets every privileged operation re-check authorization server-side
// without another user lookup.
type Identity struct {
	UserID int64
	Role   model.Role
}

type Strategy interface {
	IssueToken(identity Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
