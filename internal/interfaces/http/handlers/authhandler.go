package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lutrii-inc/lutrii/internal/infrastructure/auth"
	apperrors "github.com/lutrii-inc/lutrii/internal/shared/errors"
	"github.com/lutrii-inc/lutrii/internal/shared/logger"
	"github.com/lutrii-inc/lutrii/internal/shared/utils"
)

// AuthHandler issues API tokens for ledger addresses. Only user-role tokens
// can be minted over HTTP; admin tokens come from the token CLI command.
type AuthHandler struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthHandler(jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		logger:     logger.NewLogger(),
	}
}

type IssueTokenRequest struct {
	Address string `json:"address" binding:"required,min=8,max=64"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for token issuance", "error", err)
		utils.ValidationErrorResponse(c, err)
		return
	}

	pair, err := h.jwtService.Generate(req.Address, auth.RoleUser)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	pair, err := h.jwtService.Refresh(req.RefreshToken)
	if err != nil {
		h.logger.Warnw("token refresh rejected", "error", err)
		utils.ErrorResponse(c, apperrors.NewUnauthorizedError("invalid refresh token"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}
