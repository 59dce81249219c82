package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/adapter/objectstore"
	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	store *objectstore.Filesystem
	svc   *Service
}

func newFixture(t *testing.T, events []domain.Event) *fixture {
	t.Helper()

	store, err := objectstore.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	eventsRepo := &eventRepoMock{
		ListSinceFunc: func(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]domain.Event, error) {
			return events, nil
		},
	}
	challengesRepo := &challengeRepoMock{
		ListByOwnerFunc: func(ctx context.Context, ownerID uuid.UUID) ([]domain.Challenge, error) {
			return []domain.Challenge{{
				OwnerID: ownerID,
				Day:     time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
				Title:   "Self-Care Check",
				Points:  10,
			}}, nil
		},
	}
	insightsRepo := &insightRepoMock{
		GetFunc: func(ctx context.Context, ownerID uuid.UUID) (*domain.InsightSet, error) {
			return nil, domain.ErrNotFound
		},
	}
	lim := &limiterMock{
		AllowFunc: func(ctx context.Context, ownerID uuid.UUID, actionKey string) error { return nil },
	}
	signer := objectstore.NewURLSigner(testSecret, "http://localhost:8080", time.Hour)

	return &fixture{
		store: store,
		svc:   NewService(testLogger(), eventsRepo, challengesRepo, insightsRepo, store, signer, lim),
	}
}

func TestService_Create_RoundTrip(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	note := "ghosted"
	events := []domain.Event{{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Category:   domain.CategoryDating,
		Impact:     8,
		Note:       &note,
		OccurredAt: time.Date(2026, 4, 1, 20, 0, 0, 0, time.UTC),
	}}

	f := newFixture(t, events)
	ctx := ctxutil.WithUserID(context.Background(), ownerID)

	signedURL, err := f.svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u, err := url.Parse(signedURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	data, err := f.svc.Download(context.Background(), u.Query().Get("token"))
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if len(bundle.Events) != 1 || bundle.Events[0].Impact != 8 {
		t.Errorf("events = %+v", bundle.Events)
	}
	if len(bundle.Challenges) != 1 || bundle.Challenges[0].Title != "Self-Care Check" {
		t.Errorf("challenges = %+v", bundle.Challenges)
	}
}

func TestService_Create_RateLimited(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.svc.limiter = &limiterMock{
		AllowFunc: func(ctx context.Context, ownerID uuid.UUID, actionKey string) error {
			return domain.ErrRateLimited
		},
	}
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())

	if _, err := f.svc.Create(ctx); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("Create() error = %v, want ErrRateLimited", err)
	}
}

func TestService_Download_BadToken(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	if _, err := f.svc.Download(context.Background(), "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Download() error = %v, want ErrUnauthorized", err)
	}
}

func TestService_DeleteByOwner(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	f := newFixture(t, nil)
	ctx := ctxutil.WithUserID(context.Background(), ownerID)

	if _, err := f.svc.Create(ctx); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := f.svc.Create(ctx); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := f.svc.DeleteByOwner(context.Background(), ownerID); err != nil {
		t.Fatalf("DeleteByOwner() error = %v", err)
	}

	names, err := f.store.List(context.Background(), ownerPrefix(ownerID))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("remaining objects = %v, want none", names)
	}
}
