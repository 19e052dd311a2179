package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/legit-games/portal-iam/forums"
	"github.com/legit-games/portal-iam/migrate"
	"github.com/legit-games/portal-iam/repository"
	"github.com/legit-games/portal-iam/seed"
	"github.com/legit-games/portal-iam/server"
	"github.com/legit-games/portal-iam/store"
)

var addrvar string

func init() {
	flag.StringVar(&addrvar, "addr", ":9096", "listen address")
}

func main() {
	flag.Parse()

	// Optionally run DB migrations before the server starts.
	// Configure via environment variables (see migrate.RunFromEnv docs):
	// MIGRATE_ON_START=1 MIGRATE_DRIVER=postgres MIGRATE_DSN=...
	if err := migrate.RunFromEnv(); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := seed.RunFromEnv(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	cfg := server.GetConfig()

	dsn := cfg.PortalDBDSN()
	if dsn == "" {
		log.Fatalf("startup failed: %v", server.ErrPortalDBDSNNotSet)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("portal db: %v", err)
	}

	if cfg.Session.SigningKey == "" {
		log.Fatalf("startup failed: %v", server.ErrSigningKeyNotSet)
	}
	if cfg.Forum.ClientID == "" || cfg.Forum.ClientSecret == "" {
		log.Fatalf("startup failed: %v", server.ErrForumOAuthNotSet)
	}

	// Session cache: prefer Valkey when configured; else local buntdb.
	var cache store.SessionCache
	if cfg.Cache.ValkeyAddr != "" {
		vk, err := store.NewValkeySessionCache(cfg.Cache.ValkeyAddr, "portal:")
		if err != nil {
			log.Fatalf("valkey session cache: %v", err)
		}
		defer vk.Close()
		cache = vk
		log.Printf("Using Valkey session cache at %s", cfg.Cache.ValkeyAddr)
	} else {
		bunt, err := store.NewBuntSessionCache(cfg.Cache.BuntPath)
		if err != nil {
			log.Fatalf("buntdb session cache: %v", err)
		}
		defer bunt.Close()
		cache = bunt
		log.Printf("Using buntdb session cache")
	}

	provider := forums.NewClient(cfg.Forum.BaseURL, cfg.Forum.APIKey)
	auth := forums.NewAuthenticator(cfg.Forum.ClientID, cfg.Forum.ClientSecret,
		cfg.Forum.AuthURL, cfg.Forum.TokenURL, cfg.Forum.RedirectURL, cfg.Forum.Scopes)
	tokens := server.NewTokenService([]byte(cfg.Session.SigningKey), jwt.SigningMethodHS512, cfg.Session.TTL())

	repo := repository.NewClient(cfg.Repository.BaseURL, cfg.Repository.APIKey)

	srv := server.NewServer(cfg,
		store.NewUserStore(db), store.NewClaimStore(db), cache,
		provider, auth, tokens,
		repo, repo.GameServers())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	srv.Routes(r)

	log.Printf("Portal IAM listening on %s", addrvar)
	if err := r.Run(addrvar); err != nil {
		log.Printf("server exited: %v", err)
		os.Exit(1)
	}
}
