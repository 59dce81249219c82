package rest

import (
	"context"
	"net/http"
)

type accountService interface {
	Delete(ctx context.Context) error
}

// AccountHandler serves account lifecycle endpoints.
type AccountHandler struct {
	accounts accountService
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts accountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Delete erases the caller's account and all owned data. Community posts
// stay behind anonymously.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.Delete(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
