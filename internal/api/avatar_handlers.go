package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	domainerrors "github.com/listenupapp/swatch-server/internal/errors"
	"github.com/listenupapp/swatch-server/internal/http/response"
	"github.com/listenupapp/swatch-server/internal/media/avatars"
)

func (s *Server) registerAvatarRoutes() {
	// Avatar PNGs are served from a chi route for streaming, not huma.
	// The API route documents the operation and redirects to it.
	huma.Register(s.api, huma.Operation{
		OperationID: "getAvatar",
		Method:      http.MethodGet,
		Path:        "/api/v1/avatars/{id}",
		Summary:     "Get avatar",
		Description: "Redirects to the PNG avatar rendered for an entity UUID",
		Tags:        []string{"Avatars"},
	}, s.handleGetAvatar)

	s.router.Get("/avatars/{path}", s.handleServeAvatar)
}

// === DTOs ===

type GetAvatarInput struct {
	ID   string `path:"id" doc:"Entity UUID"`
	Text string `query:"text" doc:"Initials to draw; at most two characters are kept"`
	Size int    `query:"size" doc:"Square edge in pixels; clamped to the configured range"`
	Seed *int64 `query:"seed" doc:"Seed override; omit to use the instance default"`
}

type AvatarRedirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (o *AvatarRedirectOutput) StatusCode() int {
	return o.Status
}

// === Handlers ===

func (s *Server) handleGetAvatar(_ context.Context, input *GetAvatarInput) (*AvatarRedirectOutput, error) {
	if _, err := uuid.Parse(input.ID); err != nil {
		return nil, domainerrors.Validationf("invalid entity id %q", input.ID).WithCause(err)
	}

	q := url.Values{}
	if input.Text != "" {
		q.Set("text", input.Text)
	}
	if input.Size != 0 {
		q.Set("size", strconv.Itoa(input.Size))
	}
	if input.Seed != nil {
		q.Set("seed", strconv.FormatInt(*input.Seed, 10))
	}

	location := "/avatars/" + input.ID + ".png"
	if len(q) > 0 {
		location += "?" + q.Encode()
	}

	return &AvatarRedirectOutput{
		Status:   http.StatusTemporaryRedirect,
		Location: location,
	}, nil
}

func (s *Server) handleServeAvatar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "path")
	if id == "" {
		response.BadRequest(w, "path required", s.logger)
		return
	}

	// Remove .png extension if present
	if len(id) > 4 && id[len(id)-4:] == ".png" {
		id = id[:len(id)-4]
	}

	entityID, err := uuid.Parse(id)
	if err != nil {
		response.BadRequest(w, "invalid avatar id", s.logger)
		return
	}

	query := r.URL.Query()

	opts := avatars.Options{
		Text: query.Get("text"),
		Seed: s.services.Swatch.EffectiveSeed(nil),
	}
	cache := CacheOneDay

	// Out-of-range sizes are clamped by the renderer, so a bad size
	// never fails the request. A bad seed does: it would silently
	// produce the wrong color.
	if sizeStr := query.Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			opts.Size = size
		}
	}
	if seedStr := query.Get("seed"); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			response.BadRequest(w, "invalid seed", s.logger)
			return
		}
		opts.Seed = seed
		cache = CacheImmutable
	}

	data, err := s.renderer.Render(entityID, opts)
	if err != nil {
		s.logger.Error("Failed to render avatar", "id", entityID, "error", err)
		response.InternalError(w, "avatar rendering failed", s.logger)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", cache)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
