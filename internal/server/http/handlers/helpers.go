package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/domain/model"
	pkgAuth "github.com/ZeinabAndPixel/Z-One-Laptop/internal/pkg/auth"
	"github.com/ZeinabAndPixel/Z-One-Laptop/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated identity from context. An empty
// identity (zero user ID, empty role) means the request was not
// authenticated; the role policy denies it everywhere.
func CurrentIdentity(c *gin.Context) pkgAuth.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return pkgAuth.Identity{}
	}
	identity, _ := val.(pkgAuth.Identity)
	return identity
}

// CurrentRole is shorthand for the authenticated role.
func CurrentRole(c *gin.Context) model.Role {
	return CurrentIdentity(c).Role
}
