package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// Create builds a fresh bundle for the caller, stores it, and returns a
// signed download URL.
func (s *Service) Create(ctx context.Context) (string, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	if err := s.limiter.Allow(ctx, ownerID, domain.ActionExport); err != nil {
		return "", err
	}

	now := s.now().UTC()

	events, err := s.events.ListSince(ctx, ownerID, time.Time{})
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}

	challenges, err := s.challenges.ListByOwner(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("list challenges: %w", err)
	}

	var insights []domain.Insight
	set, err := s.insights.Get(ctx, ownerID)
	switch {
	case err == nil:
		insights = set.Insights
	case errors.Is(err, domain.ErrNotFound):
		// no detector run yet
	default:
		return "", fmt.Errorf("get insights: %w", err)
	}

	bundle := Bundle{
		GeneratedAt: now,
		Events:      toEventRecords(events),
		Insights:    insights,
		Challenges:  toChallengeRecords(challenges),
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode bundle: %w", err)
	}

	name := objectName(ownerID, uuid.New())
	if err := s.store.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("store bundle: %w", err)
	}

	url, err := s.signer.Sign(name, now)
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}

	s.log.InfoContext(ctx, "export created",
		slog.String("owner_id", ownerID.String()),
		slog.String("object", name),
		slog.Int("events", len(bundle.Events)),
	)
	return url, nil
}

// Download resolves a signed token and returns the bundle bytes. The token
// itself is the credential; no session is required.
func (s *Service) Download(ctx context.Context, token string) ([]byte, error) {
	name, err := s.signer.Verify(token)
	if err != nil {
		return nil, err
	}

	data, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	return data, nil
}

// DeleteByOwner removes every stored bundle of an owner. Used by account
// deletion.
func (s *Service) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	names, err := s.store.List(ctx, ownerPrefix(ownerID))
	if err != nil {
		return fmt.Errorf("list bundles: %w", err)
	}

	for _, name := range names {
		if err := s.store.Delete(ctx, name); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete bundle %s: %w", name, err)
		}
	}
	return nil
}

func ownerPrefix(ownerID uuid.UUID) string {
	return "exports/" + ownerID.String() + "/"
}

func objectName(ownerID, exportID uuid.UUID) string {
	return ownerPrefix(ownerID) + exportID.String() + ".json"
}
