package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/resilientme/backend/internal/domain"
	"github.com/resilientme/backend/internal/service/community"
)

type communityService interface {
	CreatePost(ctx context.Context, input community.CreatePostInput) (*domain.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]domain.Post, error)
	React(ctx context.Context, postID uuid.UUID, reaction string) error
	Report(ctx context.Context, postID uuid.UUID) error
}

// PostHandler serves the community wall endpoints.
type PostHandler struct {
	community communityService
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(community communityService) *PostHandler {
	return &PostHandler{community: community}
}

type createPostRequest struct {
	Category string `json:"category"`
	Content  string `json:"content"`
}

// postResponse deliberately omits the author: the wall is anonymous.
type postResponse struct {
	ID        uuid.UUID      `json:"id"`
	Category  string         `json:"category"`
	Content   string         `json:"content"`
	Reactions map[string]int `json:"reactions"`
	CreatedAt time.Time      `json:"created_at"`
}

func toPostResponse(p *domain.Post) postResponse {
	reactions := p.Reactions
	if reactions == nil {
		reactions = map[string]int{}
	}
	return postResponse{
		ID:        p.ID,
		Category:  p.Category.String(),
		Content:   p.Content,
		Reactions: reactions,
		CreatedAt: p.CreatedAt,
	}
}

// Create publishes a new post.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.community.CreatePost(r.Context(), community.CreatePostInput{
		Category: req.Category,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

// List returns the visible feed, newest first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 0)
	offset := parseQueryInt(r, "offset", 0)

	posts, err := h.community.ListPosts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]postResponse, len(posts))
	for i := range posts {
		out[i] = toPostResponse(&posts[i])
	}
	writeJSON(w, http.StatusOK, out)
}

type reactRequest struct {
	Reaction string `json:"reaction"`
}

// React adds a reaction to a post. Repeating a reaction is a no-op, so the
// response is 204 either way.
func (h *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req reactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.community.React(r.Context(), postID, req.Reaction); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Report flags a post for moderation.
func (h *PostHandler) Report(w http.ResponseWriter, r *http.Request) {
	postID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.community.Report(r.Context(), postID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(key))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(key, "must be a valid UUID")
	}
	return id, nil
}
