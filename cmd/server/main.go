package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "duskvale/internal/adapter/http"
	metricsinmem "duskvale/internal/adapter/metrics/inmemory"
	"duskvale/internal/adapter/narrator/gemini"
	gormrepo "duskvale/internal/adapter/repo/gorm"
	"duskvale/internal/adapter/repo/memory"
	"duskvale/internal/app/narrative"
	"duskvale/internal/app/ports"
	"duskvale/internal/app/replay"
	"duskvale/internal/app/session"
	"duskvale/internal/app/turn"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	players, sessions, events, txManager := mustBuildRepos()
	resolver := buildResolverFromEnv()
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		SessionUC: session.UseCase{
			TxManager: txManager,
			Players:   players,
			Sessions:  sessions,
			Events:    events,
			Resolver:  resolver,
			Now:       time.Now,
			NewID:     uuid.NewString,
		},
		TurnUC: turn.UseCase{
			TxManager: txManager,
			Players:   players,
			Sessions:  sessions,
			Events:    events,
			Resolver:  resolver,
			Metrics:   kpiRecorder,
			Now:       time.Now,
		},
		ReplayUC:  replay.UseCase{Events: events},
		KPI:       kpiRecorder,
		NewAnonID: uuid.NewString,
	}

	addr := ":" + strings.TrimSpace(envOr("PORT", "8080"))
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("duskvale server listening on %s", addr)
	s.Spin()
}

// mustBuildRepos picks the storage backend from QUEST_DB_DSN: Postgres when
// set, the in-memory store otherwise. Local runs need no database.
func mustBuildRepos() (ports.PlayerRepository, ports.SessionRepository, ports.EventRepository, ports.TxManager) {
	dsn := strings.TrimSpace(os.Getenv("QUEST_DB_DSN"))
	if dsn == "" {
		log.Println("QUEST_DB_DSN not set, using in-memory store")
		store := memory.NewStore()
		return memory.NewPlayerRepo(store), memory.NewSessionRepo(store), memory.NewEventRepo(store), memory.NewTxManager(store)
	}

	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	if dir := strings.TrimSpace(os.Getenv("QUEST_MIGRATIONS_DIR")); dir != "" {
		if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
			log.Fatalf("apply migrations: %v", err)
		}
	}
	return gormrepo.NewPlayerRepo(db), gormrepo.NewSessionRepo(db), gormrepo.NewEventRepo(db), gormrepo.NewTxManager(db)
}

// buildResolverFromEnv wires the Gemini narrator when GEMINI_API_KEY is set.
// Without a key the resolver still works; every turn takes the deterministic
// fallback path.
func buildResolverFromEnv() narrative.Resolver {
	r := narrative.Resolver{
		Timeout:   time.Duration(intEnv("NARRATOR_TIMEOUT_SECONDS", 0)) * time.Second,
		MaxTokens: intEnv("NARRATOR_MAX_TOKENS", 0),
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		log.Println("GEMINI_API_KEY not set, narration uses the fallback path")
		return r
	}

	client, err := gemini.New(context.Background(), apiKey, strings.TrimSpace(os.Getenv("GEMINI_MODEL")))
	if err != nil {
		log.Fatalf("gemini client: %v", err)
	}
	r.Narrator = client
	return r
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
