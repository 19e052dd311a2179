package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/dto"
)

// claimRequest is the body of an administrative grant or revoke.
type claimRequest struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// ListUserClaimsHandler returns the stored claims of any user.
func (s *Server) ListUserClaimsHandler(c *gin.Context) {
	userID := c.Param("id")
	cs, err := s.Claims.GetClaims(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"claims": dto.FromClaims(cs)})
}

// GrantClaimHandler adds a single claim to a user. The change reaches an
// already-signed-in user only once their cached session entry expires, so the
// handler invalidates the cache to shorten the wait; the session token itself
// still carries the old set until it is reissued.
func (s *Server) GrantClaimHandler(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	userID := c.Param("id")

	claim := claims.Claim{Type: claims.ClaimType(req.Type), Value: claims.ParseValue(req.Value)}
	if err := s.Claims.AddClaims(c.Request.Context(), userID, []claims.Claim{claim}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "grant_failed"})
		return
	}
	if s.Cache != nil {
		_ = s.Cache.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusCreated, gin.H{"status": "granted"})
}

// RevokeClaimHandler removes a single claim from a user.
func (s *Server) RevokeClaimHandler(c *gin.Context) {
	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}
	userID := c.Param("id")

	claim := claims.Claim{Type: claims.ClaimType(req.Type), Value: claims.ParseValue(req.Value)}
	if err := s.Claims.RemoveClaims(c.Request.Context(), userID, []claims.Claim{claim}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "revoke_failed"})
		return
	}
	if s.Cache != nil {
		_ = s.Cache.Invalidate(c.Request.Context(), userID)
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}
