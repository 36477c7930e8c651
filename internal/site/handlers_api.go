package site

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/folio/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleAPIAbout(w http.ResponseWriter, r *http.Request) {
	about, err := s.content.About(r.Context())
	if err != nil {
		s.log.Error("api about", "error", err)
		jsonError(w, "about data unavailable", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, about)
}

func (s *Server) handleAPISkills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.content.Skills(r.Context()))
}

// handleAPIList lists every document of a collection, newest first.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	kind, ok := store.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		jsonError(w, "unknown collection", http.StatusNotFound)
		return
	}
	if kind == store.KindProject {
		respondJSON(w, http.StatusOK, map[string]any{string(kind): s.content.Projects(r.Context())})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{string(kind): s.content.Posts(r.Context(), kind)})
}

func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	kind, ok := store.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		jsonError(w, "unknown collection", http.StatusNotFound)
		return
	}
	slug := chi.URLParam(r, "slug")

	var (
		doc any
		err error
	)
	if kind == store.KindProject {
		doc, err = s.content.Project(r.Context(), slug)
	} else {
		doc, err = s.content.Post(r.Context(), kind, slug)
	}
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("api get", "kind", kind, "slug", slug, "error", err)
		jsonError(w, "failed to load document", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// respondJSON marshals before writing the header so an encoding failure
// still produces a clean 500.
func respondJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		jsonError(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
