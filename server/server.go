package server

import (
	"github.com/gin-gonic/gin"

	"github.com/legit-games/portal-iam/forums"
	"github.com/legit-games/portal-iam/policy"
	"github.com/legit-games/portal-iam/repository"
	"github.com/legit-games/portal-iam/store"
)

// Server wires the authorization core to its HTTP surface.
type Server struct {
	Config     *AppConfig
	Evaluator  *policy.Evaluator
	Reconciler *forums.Reconciler
	Auth       *forums.Authenticator
	Provider   forums.Provider
	Tokens     *TokenService

	Users  *store.UserStore
	Claims *store.ClaimStore
	Cache  store.SessionCache

	BanFileMonitors repository.BanFileMonitors
	GameServers     repository.GameServers
}

// NewServer assembles a server; the policy registry is built once here and
// shared read-only across all requests.
func NewServer(cfg *AppConfig, users *store.UserStore, claimStore *store.ClaimStore, cache store.SessionCache,
	provider forums.Provider, auth *forums.Authenticator, tokens *TokenService,
	banFileMonitors repository.BanFileMonitors, gameServers repository.GameServers) *Server {
	s := &Server{
		Config:          cfg,
		Evaluator:       policy.NewEvaluator(policy.NewRegistry()),
		Auth:            auth,
		Provider:        provider,
		Tokens:          tokens,
		Users:           users,
		Claims:          claimStore,
		Cache:           cache,
		BanFileMonitors: banFileMonitors,
		GameServers:     gameServers,
	}
	s.Reconciler = forums.NewReconciler(provider, &signInManager{users: users}, &userRegistry{users: users}, claimStore)
	return s
}

// Routes registers all portal endpoints on the engine.
func (s *Server) Routes(r *gin.Engine) {
	r.GET("/auth/external", s.ExternalLoginHandler)
	r.GET("/auth/callback", s.ExternalLoginCallbackHandler)

	api := r.Group("/api", s.SessionMiddleware())
	{
		api.GET("/profile", s.ProfileHandler)
		api.GET("/ban-file-monitors", s.RequirePolicy(policy.AccessBanFileMonitors, nil), s.ListBanFileMonitorsHandler)
		api.GET("/game-servers", s.RequirePolicy(policy.AccessGameServers, nil), s.ListGameServersHandler)

		admin := api.Group("/users", s.RequirePolicy(policy.SeniorAdmin, nil))
		{
			admin.GET("/:id/claims", s.ListUserClaimsHandler)
			admin.POST("/:id/claims", s.GrantClaimHandler)
			admin.DELETE("/:id/claims", s.RevokeClaimHandler)
		}
	}
}
