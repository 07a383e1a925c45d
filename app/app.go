package app

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/TheWaulicus/wolves-den-inventory/data"
	"github.com/TheWaulicus/wolves-den-inventory/db"
	"github.com/TheWaulicus/wolves-den-inventory/memdb"
	"github.com/TheWaulicus/wolves-den-inventory/session"
	"github.com/TheWaulicus/wolves-den-inventory/store"
)

// Aliases to keep handler signatures short.
type Ctx = gin.Context
type H = gin.H

// App aggregates the wired dependencies. The backend is chosen once at
// construction: Postgres+Redis when configured, the in-memory fallback
// otherwise.
type App struct {
	Router   *gin.Engine
	Store    store.Store
	Sessions session.Store
	RDB      *redis.Client
	Config   Config

	hub *db.Hub
}

// Config comes from environment variables.
type Config struct {
	DatabaseURL string
	RedisAddr   string
	RedisPwd    string
	WebOrigin   string
	SessionTTL  time.Duration
	SeedDemo    bool
}

func MustNew() *App {
	cfg := loadConfig()

	// --- Redis (optional) ---
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis: %v", err)
		}
	}

	// --- Persistence backend ---
	var (
		st  store.Store
		hub *db.Hub
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		hub = db.NewHub(rdb)
		st = db.NewStore(conn, hub)
		log.Println("database connected")
	} else {
		st = memdb.New()
		log.Println("no DATABASE_URL configured, running on the in-memory fallback store")
		if cfg.SeedDemo {
			if err := data.Seed(context.Background(), st); err != nil {
				log.Printf("seed: %v", err)
			}
		}
	}

	// --- Sessions ---
	var sess session.Store
	if rdb != nil {
		sess = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		sess = session.NewMemStore(cfg.SessionTTL)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{Router: r, Store: st, Sessions: sess, RDB: rdb, Config: cfg, hub: hub}
}

func (a *App) Close() {
	if a.hub != nil {
		a.hub.Close()
	}
	if a.RDB != nil {
		_ = a.RDB.Close()
	}
}

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("SESSION_TTL_SECONDS", "86400") + "s"); err == nil {
		ttl = d
	}
	return Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RedisPwd:    os.Getenv("REDIS_PASSWORD"),
		WebOrigin:   get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL:  ttl,
		SeedDemo:    get("SEED_DEMO", "true") == "true",
	}
}
