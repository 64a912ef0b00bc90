package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auction-api/internal/repository"
	"auction-api/internal/services"
	"auction-api/services/api/handler"
	"auction-api/services/api/helpers"
	"auction-api/utils"
)

// IdentityResolver turns a bearer token or guest identifier into the
// client identity consumed by handlers.
type IdentityResolver struct {
	users    repository.UserStore
	tokens   repository.TokenStore
	guests   repository.GuestStore
	tokenMgr *utils.TokenManager
}

// NewIdentityResolver creates an IdentityResolver.
func NewIdentityResolver(users repository.UserStore, tokens repository.TokenStore, guests repository.GuestStore, tokenMgr *utils.TokenManager) *IdentityResolver {
	return &IdentityResolver{users: users, tokens: tokens, guests: guests, tokenMgr: tokenMgr}
}

// RequireUser only admits authenticated users.
func (r *IdentityResolver) RequireUser(c *gin.Context) {
	raw := bearerToken(c)
	if raw == "" {
		utils.JSONFailure(c, http.StatusUnauthorized, "Unauthorized user", nil)
		c.Abort()
		return
	}

	client, ok := r.resolveUser(c, raw)
	if !ok {
		utils.JSONFailure(c, http.StatusUnauthorized, "Auth Token is invalid or expired", nil)
		c.Abort()
		return
	}

	c.Set(helpers.ClientContextKey, client)
	c.Next()
}

// ResolveClient admits both authenticated users and guests, creating a
// guest identity when the request carries none.
func (r *IdentityResolver) ResolveClient(c *gin.Context) {
	if raw := bearerToken(c); raw != "" {
		client, ok := r.resolveUser(c, raw)
		if !ok {
			utils.JSONFailure(c, http.StatusUnauthorized, "Auth Token is invalid or expired", nil)
			c.Abort()
			return
		}
		c.Set(helpers.ClientContextKey, client)
		c.Next()
		return
	}

	rawGuest := c.GetHeader(handler.GuestHeader)
	if rawGuest == "" {
		rawGuest, _ = c.Cookie(handler.SessionCookie)
	}
	guest, err := r.guests.GetOrCreate(c.Request.Context(), rawGuest)
	if err != nil {
		utils.Error("identity: failed to resolve guest", map[string]any{"error": err.Error()})
		utils.JSONFailure(c, http.StatusInternalServerError, "Server Error", nil)
		c.Abort()
		return
	}

	c.Set(helpers.ClientContextKey, services.Client{GuestID: guest.ID})
	c.Next()
}

// resolveUser validates an access token and checks the stored token
// record still exists, so logout revokes outstanding tokens.
func (r *IdentityResolver) resolveUser(c *gin.Context, raw string) (services.Client, bool) {
	userID, err := r.tokenMgr.DecodeAccessToken(raw)
	if err != nil {
		return services.Client{}, false
	}

	token, err := r.tokens.GetByUserID(c.Request.Context(), userID)
	if err != nil || token == nil {
		return services.Client{}, false
	}

	user, err := r.users.GetByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		return services.Client{}, false
	}
	return services.Client{User: user}, true
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
