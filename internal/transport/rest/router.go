package rest

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/config"
	"github.com/resilientme/backend/internal/transport/middleware"
)

// TokenValidator checks an access token and returns the user ID and admin flag.
type TokenValidator interface {
	ValidateAccessToken(token string) (uuid.UUID, bool, error)
}

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Log        *slog.Logger
	CORS       config.CORSConfig
	Validator  TokenValidator
	Health     *HealthHandler
	Entries    *EntryHandler
	Posts      *PostHandler
	Exports    *ExportHandler
	Account    *AccountHandler
	Stats      *StatsHandler
	Challenges *ChallengeHandler
	Admin      *AdminHandler
}

// NewRouter assembles the HTTP mux. Health probes and signed export
// downloads are public; everything else requires a bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	base := middleware.Chain(
		middleware.Recovery(deps.Log),
		middleware.RequestID,
		middleware.Logger(deps.Log),
		middleware.CORS(deps.CORS),
	)
	authed := middleware.Auth(deps.Validator)

	public := func(h http.HandlerFunc) http.Handler { return h }
	protected := func(h http.HandlerFunc) http.Handler { return authed(h) }

	mux.Handle("GET /healthz", public(deps.Health.Live))
	mux.Handle("GET /readyz", public(deps.Health.Ready))
	mux.Handle("GET /health", public(deps.Health.Health))

	mux.Handle("POST /v1/entries", protected(deps.Entries.Create))
	mux.Handle("GET /v1/entries", protected(deps.Entries.List))

	mux.Handle("POST /v1/posts", protected(deps.Posts.Create))
	mux.Handle("GET /v1/posts", protected(deps.Posts.List))
	mux.Handle("POST /v1/posts/{id}/reactions", protected(deps.Posts.React))
	mux.Handle("POST /v1/posts/{id}/reports", protected(deps.Posts.Report))

	mux.Handle("GET /v1/score", protected(deps.Stats.Score))
	mux.Handle("GET /v1/insights", protected(deps.Stats.Insights))
	mux.Handle("GET /v1/challenges/today", protected(deps.Challenges.Today))

	mux.Handle("POST /v1/exports", protected(deps.Exports.Create))
	mux.Handle("GET /v1/exports/download", public(deps.Exports.Download))

	mux.Handle("DELETE /v1/account", protected(deps.Account.Delete))

	mux.Handle("POST /v1/admin/posts/backfill-status", protected(deps.Admin.BackfillPostStatus))

	return base(mux)
}
