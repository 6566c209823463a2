package jwt

import (
	"strings"

	"AssistHub/internal/modules/user/domain/entity"
	"AssistHub/internal/modules/user/domain/repository"
	"AssistHub/pkg/back"
	"AssistHub/pkg/util/myjwt"
	"AssistHub/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Auth validates the bearer token and loads the authenticated user into the
// context. Long-lived tokens are additionally checked against the user's
// current token id, which is how revocation works.
func Auth(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			back.Error(c, xerr.Unauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := myjwt.ParseToken(tokenString)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			back.Error(c, xerr.Unauthorized, "invalid token subject")
			c.Abort()
			return
		}
		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			back.Error(c, xerr.Unauthorized, "unknown user")
			c.Abort()
			return
		}

		if claims.IsLongLived() {
			if user.LongLivedTokenID == nil || user.LongLivedTokenID.String() != claims.LongLivedTokenID {
				back.Error(c, xerr.Unauthorized, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set("userId", user.ID.String())
		c.Set("user", user)
		c.Set("roles", claims.Roles)
		c.Next()
	}
}

// RequireAdmin must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != entity.RoleAdmin {
			back.Error(c, xerr.Forbidden, "admin role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by Auth, or nil.
func CurrentUser(c *gin.Context) *entity.User {
	value, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, ok := value.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
