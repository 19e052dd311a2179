package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/games"
	"github.com/legit-games/portal-iam/policy"
)

// Context keys set by SessionMiddleware.
const (
	ctxUserID     = "user_id"
	ctxExternalID = "external_id"
	ctxUsername   = "username"
	ctxClaims     = "portal_claims"
)

// SessionMiddleware validates the bearer session token and sets the
// principal's identity and claim set in context. The session cache is
// preferred over the token's embedded claims when it has a fresher entry;
// both expire within the same staleness window.
func (s *Server) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "missing authorization header",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		sc, err := s.Tokens.Parse(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":             "unauthorized",
				"error_description": "invalid or expired session token",
			})
			c.Abort()
			return
		}

		cs := sc.ClaimSet()
		if s.Cache != nil {
			if cached, ok, err := s.Cache.GetClaims(c.Request.Context(), sc.Subject); err == nil && ok {
				cs = cached
			}
		}

		c.Set(ctxUserID, sc.Subject)
		c.Set(ctxExternalID, sc.ExternalID)
		c.Set(ctxUsername, sc.Username)
		c.Set(ctxClaims, cs)
		c.Next()
	}
}

// principalClaims returns the claim set placed in context by SessionMiddleware.
func principalClaims(c *gin.Context) []claims.Claim {
	if v, ok := c.Get(ctxClaims); ok {
		if cs, ok2 := v.([]claims.Claim); ok2 {
			return cs
		}
	}
	return nil
}

// ResourceResolver builds the policy resource context from a request.
// A nil resolver falls back to DefaultResourceResolver.
type ResourceResolver func(*gin.Context) *policy.Resource

// DefaultResourceResolver reads the resource's game type from the "gameType"
// query or path parameter and an optional resource id from the "id"
// parameter. Unparseable values are left unset, which makes game-scoped
// policies fail closed.
func DefaultResourceResolver(c *gin.Context) *policy.Resource {
	res := &policy.Resource{}
	gt := c.Query("gameType")
	if gt == "" {
		gt = c.Param("gameType")
	}
	if g, ok := games.Parse(gt); ok {
		res.Game = &g
	}
	if idStr := c.Param("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			res.ID = &id
		}
	}
	return res
}

// RequirePolicy returns a middleware that evaluates the named policy for the
// request's principal before the handler runs. Denied maps to 403.
func (s *Server) RequirePolicy(policyName string, resolve ResourceResolver) gin.HandlerFunc {
	if resolve == nil {
		resolve = DefaultResourceResolver
	}
	return func(c *gin.Context) {
		cs := principalClaims(c)
		res := resolve(c)
		principalID := c.GetString(ctxExternalID)
		if s.Evaluator.EvaluateFor(cs, policyName, res, principalID) != policy.Satisfied {
			c.JSON(http.StatusForbidden, gin.H{
				"error":             "forbidden",
				"error_description": "policy " + policyName + " not satisfied",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
