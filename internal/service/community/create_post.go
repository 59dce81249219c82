package community

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/pkg/ctxutil"
)

// CreatePostInput is one post submission.
type CreatePostInput struct {
	Category string
	Content  string
}

// CreatePost publishes a new post for the caller. The author ID is stored
// but never exposed through the feed.
func (s *Service) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	authorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := s.limiter.Allow(ctx, authorID, domain.ActionCreatePost); err != nil {
		return nil, err
	}

	content := domain.SanitizeText(input.Content)
	if len([]rune(content)) < domain.MinPostContentLen {
		return nil, domain.NewValidationError("content", "content too short")
	}

	category := domain.Category(input.Category)
	if !category.IsValid() {
		return nil, domain.NewValidationError("category", "unknown category")
	}

	if err := s.users.EnsureExists(ctx, authorID); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Category:  category,
		Content:   content,
		Status:    domain.PostStatusVisible,
		Reactions: map[string]int{},
		CreatedAt: s.now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID.String()),
		slog.String("category", post.Category.String()),
	)
	return post, nil
}

// ListPosts returns the visible feed, newest first.
func (s *Service) ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	posts, err := s.posts.ListVisible(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
