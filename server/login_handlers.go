package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-session/session/v3"
	"github.com/google/uuid"

	"github.com/legit-games/portal-iam/forums"
)

// providerName identifies the forum login link in user_logins rows.
const providerName = "forums"

// ExternalLoginHandler starts the forum login round trip: it stashes the
// anti-forgery state and the eventual return URL in the server-side session
// and redirects the browser to the forum's authorization endpoint.
func (s *Server) ExternalLoginHandler(c *gin.Context) {
	st, err := session.Start(c.Request.Context(), c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_error"})
		return
	}

	state := uuid.NewString()
	st.Set("oauth_state", state)
	if returnURL := c.Query("returnUrl"); returnURL != "" {
		st.Set("return_url", returnURL)
	}
	if err := st.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_error"})
		return
	}

	c.Redirect(http.StatusFound, s.Auth.ConfigureExternalAuthenticationProperties(state))
}

// ExternalLoginCallbackHandler consumes the forum's callback. No code means
// the user came back without a provider session; that is an anonymous return,
// not an error.
func (s *Server) ExternalLoginCallbackHandler(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	st, err := session.Start(c.Request.Context(), c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_error"})
		return
	}
	wantState, _ := st.Get("oauth_state")
	if wantState == nil || wantState.(string) != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_state"})
		return
	}

	token, err := s.Auth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "exchange_failed"})
		return
	}

	member, err := s.Provider.Identify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "member_lookup_failed"})
		return
	}

	info := &forums.LoginInfo{
		Provider:    providerName,
		ExternalID:  member.ID,
		DisplayName: member.DisplayName,
		Email:       member.Email,
	}
	outcome, err := s.Reconciler.ProcessExternalLogin(c.Request.Context(), info)
	if err != nil {
		log.Printf("server: external login failed for %s: %v", member.ID, err)
	}

	switch outcome {
	case forums.OutcomeSuccess:
		s.finishLogin(c, st, info)
	case forums.OutcomeLocked:
		c.JSON(http.StatusForbidden, gin.H{"error": "account_locked"})
	case forums.OutcomeAnonymous:
		c.Redirect(http.StatusFound, "/")
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login_failed"})
	}
}

// finishLogin loads the signed-in user, primes the session cache with their
// fresh claim set, and hands the browser a session credential.
func (s *Server) finishLogin(c *gin.Context, st session.Store, info *forums.LoginInfo) {
	user, err := s.Users.FindByLogin(c.Request.Context(), info.Provider, info.ExternalID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
		return
	}

	cs, err := s.Claims.GetClaims(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login_failed"})
		return
	}

	if s.Cache != nil {
		if err := s.Cache.PutClaims(c.Request.Context(), user.ID, cs, s.Config.Session.TTL()); err != nil {
			log.Printf("server: session cache put failed for %s: %v", user.ID, err)
		}
	}

	tokenString, err := s.Tokens.Issue(user.ID, user.Username, user.ExternalID, cs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_issue_failed"})
		return
	}

	returnURL := "/"
	if v, _ := st.Get("return_url"); v != nil {
		if ru, ok := v.(string); ok && ru != "" {
			returnURL = ru
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"return_url":   returnURL,
	})
}
