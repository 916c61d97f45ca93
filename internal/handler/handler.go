package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/itchan-dev/yatube/internal/markdown"
	"github.com/itchan-dev/yatube/internal/service"
	"github.com/itchan-dev/yatube/shared/config"
	"github.com/itchan-dev/yatube/shared/logger"
)

type Handler struct {
	auth     service.AuthService
	group    service.GroupService
	post     service.PostService
	markdown *markdown.TextProcessor
	health   Pinger
	cfg      *config.Config
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(auth service.AuthService, group service.GroupService, post service.PostService, markdown *markdown.TextProcessor, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, group, post, markdown, health, cfg}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		logger.Log.Error("encoding response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
}
