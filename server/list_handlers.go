package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/legit-games/portal-iam/claims"
	"github.com/legit-games/portal-iam/dto"
	"github.com/legit-games/portal-iam/repository"
)

// ListBanFileMonitorsHandler lists the ban file monitors the principal may
// see: monitors for games they hold a qualifying game-wide claim for, plus
// individual monitors they hold an item-scoped claim for. The route is gated
// by the AccessBanFileMonitors policy; the derived filter only scopes the
// query, and an empty filter still refuses to query the repository unscoped.
func (s *Server) ListBanFileMonitorsHandler(c *gin.Context) {
	cs := principalClaims(c)
	gamesList, items := claims.ClaimedGamesAndItems(cs, claims.BanFileMonitorQualifiers)
	filter := repository.ListFilter{Games: gamesList, Items: items}
	if filter.Empty() {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	monitors, err := s.BanFileMonitors.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "repository_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": monitors, "total": len(monitors)})
}

// ListGameServersHandler lists game servers under the same scoping rules.
func (s *Server) ListGameServersHandler(c *gin.Context) {
	cs := principalClaims(c)
	gamesList, items := claims.ClaimedGamesAndItems(cs, claims.GameServerQualifiers)
	filter := repository.ListFilter{Games: gamesList, Items: items}
	if filter.Empty() {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	servers, err := s.GameServers.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "repository_unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": servers, "total": len(servers)})
}

// ProfileHandler returns the signed-in user and their current claims.
func (s *Server) ProfileHandler(c *gin.Context) {
	userID := c.GetString(ctxUserID)
	user, err := s.Users.GetUser(c.Request.Context(), userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":   dto.FromUser(user),
		"claims": dto.FromClaims(principalClaims(c)),
	})
}
