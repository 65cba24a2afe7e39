package handlers

import (
	"net/http"

	"bloodlink/models"
	"bloodlink/services/auth"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	Service   auth.AuthService
	Resolver  auth.PrincipalResolver
	AuthCache *redis.Client
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc auth.AuthService, resolver auth.PrincipalResolver, authCache *redis.Client) *AuthHandler {
	return &AuthHandler{Service: svc, Resolver: resolver, AuthCache: authCache}
}

// LoginHandler authenticates a principal and returns a token pair.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Service.Login(req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshHandler rotates a refresh token.
func (h *AuthHandler) RefreshHandler(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Service.Refresh(req.RefreshToken)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SignupHandler registers a new principal. The OTP challenge for the
// signup contact details must already be verified.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.Service.Signup(req)
	if err != nil {
		logger.Warn("Signup rejected", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LogoutHandler revokes the presented access token.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	tokenString := c.GetString("accessToken")
	if tokenString == "" {
		utils.RespondError(c, utils.ErrAuthentication)
		return
	}

	if err := h.Service.Logout(tokenString); err != nil {
		utils.RespondError(c, err)
		return
	}
	h.dropCachedToken(c, tokenString)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// LogoutAllHandler revokes every session of the authenticated principal.
func (h *AuthHandler) LogoutAllHandler(c *gin.Context) {
	principalID := c.GetString("principalID")

	if err := h.Service.LogoutAll(principalID); err != nil {
		utils.RespondError(c, err)
		return
	}
	// The redis entry for the presented token is dropped immediately;
	// entries for the owner's other tokens age out with the cache TTL.
	h.dropCachedToken(c, c.GetString("accessToken"))
	c.JSON(http.StatusOK, gin.H{"message": "All sessions revoked"})
}

// SessionsHandler lists the principal's active sessions.
func (h *AuthHandler) SessionsHandler(c *gin.Context) {
	principalID := c.GetString("principalID")

	sessions, err := h.Service.Sessions(principalID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// MeHandler returns the authenticated principal's unified profile.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	principalID := c.GetString("principalID")

	principal, err := h.Resolver.ResolveByID(principalID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, principal)
}

func (h *AuthHandler) dropCachedToken(c *gin.Context, tokenString string) {
	if h.AuthCache == nil || tokenString == "" {
		return
	}
	key := utils.AuthCachePrefix + utils.HashToken(tokenString)
	if err := h.AuthCache.Del(c.Request.Context(), key).Err(); err != nil {
		getLogger(c).Warn("failed to drop cached token", zap.Error(err))
	}
}
