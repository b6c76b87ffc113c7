package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jonathan/glimpse/internal/types"
)

// maxBodyBytes bounds request bodies; queries and keys are short
const maxBodyBytes = 64 << 10

// handleSearch ranks the collected candidates for one query
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body types.SearchRequest
	if err := decodeBody(w, r, &body); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := s.newSearchRequest(r.Context(), body)
	if err != nil {
		s.errorFor(w, r, err)
		return
	}

	results := s.engine.SearchAll(r.Context(), req)
	s.jsonResponse(w, http.StatusOK, types.SearchResponse{Success: true, Results: results})
}

// newSearchRequest normalizes a decoded search body. An omitted mode uses
// the persisted search mode.
func (s *Server) newSearchRequest(ctx context.Context, body types.SearchRequest) (types.SearchRequest, error) {
	if body.Mode != "" && !body.Mode.Valid() {
		return types.SearchRequest{}, &ErrValidation{Field: "mode", Message: "must be local or ai"}
	}

	mode := body.Mode
	if mode == "" {
		mode = s.storedMode(ctx)
	}
	return types.NewSearchRequest(body.Query, mode)
}

// storedMode reads the persisted mode, defaulting to local when settings
// are unavailable
func (s *Server) storedMode(ctx context.Context) types.Mode {
	current, err := s.settings.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read settings, using local search")
		return types.ModeLocal
	}
	return current.EffectiveMode()
}

// handleGetSettings returns the settings without the key itself
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.settings.Load(r.Context())
	if err != nil {
		s.errorFor(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, current.View())
}

// handleSaveAPIKey stores a key and enables AI search
func (s *Server) handleSaveAPIKey(w http.ResponseWriter, r *http.Request) {
	var req types.APIKeyRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.settings.SaveAPIKey(r.Context(), req.APIKey); err != nil {
		s.errorFor(w, r, err)
		return
	}
	s.respondWithSettings(w, r)
}

// handleRemoveAPIKey deletes the key and falls back to local search
func (s *Server) handleRemoveAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.RemoveAPIKey(r.Context()); err != nil {
		s.errorFor(w, r, err)
		return
	}
	s.respondWithSettings(w, r)
}

// handleSetMode switches between local and AI search
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req types.ModeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.settings.SetMode(r.Context(), req.Mode); err != nil {
		s.errorFor(w, r, err)
		return
	}
	s.respondWithSettings(w, r)
}

func (s *Server) respondWithSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.settings.Load(r.Context())
	if err != nil {
		s.errorFor(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, current.View())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
