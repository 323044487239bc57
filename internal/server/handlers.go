package server

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/archmap/archmap/pkg/errors"
	"github.com/archmap/archmap/pkg/generator"
	"github.com/archmap/archmap/pkg/store"
)

// runSummary is the listing shape: a record without its diagram text.
type runSummary struct {
	ID          string          `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	SourceRoots []string        `json:"source_roots,omitempty"`
	Diagrams    []string        `json:"diagrams"`
	Stats       generator.Stats `json:"stats"`
}

func summarize(rec *store.Record) runSummary {
	var diagrams []string
	for key := range rec.Diagrams {
		diagrams = append(diagrams, key)
	}
	slices.Sort(diagrams)

	return runSummary{
		ID:          rec.ID,
		CreatedAt:   rec.CreatedAt,
		SourceRoots: rec.SourceRoots,
		Diagrams:    diagrams,
		Stats:       rec.Stats,
	}
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleCreateRun triggers a generation run and archives the result. The
// optional JSON body carries generator options; roots default to the
// server's configured roots.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var opts generator.Options
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
	}
	if len(opts.SourceRoots) == 0 {
		opts.SourceRoots = s.roots
	}
	if s.generator.Source == nil && len(opts.SourceRoots) == 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "no source roots configured"))
		return
	}

	// Server runs stay in memory; artifacts render on demand.
	opts.TargetDir = ""
	opts.Visualize = false

	result, err := s.generator.Run(r.Context(), opts)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "generation failed"))
		return
	}

	rec := store.NewRecord(opts.SourceRoots, result)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "archive run"))
		return
	}
	s.logger.Info("archived run", "id", rec.ID, "diagrams", len(rec.Diagrams))
	writeJSON(w, rec, http.StatusCreated)
}

// handleListRuns lists archived runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "list runs"))
		return
	}
	summaries := make([]runSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summarize(rec))
	}
	writeJSON(w, summaries, http.StatusOK)
}

// handleGetRun returns one archived run with its diagram text.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if rec := s.recordOr404(w, r); rec != nil {
		writeJSON(w, rec, http.StatusOK)
	}
}

// handleGetDiagram returns one diagram's text.
func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	rec := s.recordOr404(w, r)
	if rec == nil {
		return
	}
	text, ok := s.diagramOr404(w, rec, chi.URLParam(r, "key"))
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// handleRenderDiagram renders one diagram on demand.
func (s *Server) handleRenderDiagram(w http.ResponseWriter, r *http.Request) {
	if s.renderer == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeUnsupported, "rendering is not configured"))
		return
	}
	rec := s.recordOr404(w, r)
	if rec == nil {
		return
	}
	key := chi.URLParam(r, "key")
	text, ok := s.diagramOr404(w, rec, key)
	if !ok {
		return
	}

	data, err := s.renderer.Render(r.Context(), text)
	if err != nil {
		code := apperrors.GetCode(err)
		if code == "" {
			code = apperrors.ErrCodeRenderFailed
		}
		writeError(w, apperrors.Wrap(code, err, "render %s", key))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

// recordOr404 loads the record named by the URL, writing the error response
// on a miss or store failure.
func (s *Server) recordOr404(w http.ResponseWriter, r *http.Request) *store.Record {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeStore, err, "load run %s", id))
		return nil
	}
	if rec == nil {
		writeError(w, apperrors.New(apperrors.ErrCodeRunNotFound, "run %s not found", id))
		return nil
	}
	return rec
}

// diagramOr404 looks up one diagram in a record, writing the error response
// when the key is malformed or unknown.
func (s *Server) diagramOr404(w http.ResponseWriter, rec *store.Record, key string) (string, bool) {
	if err := apperrors.ValidateDiagramKey(key); err != nil {
		writeError(w, err)
		return "", false
	}
	text, ok := rec.Diagrams[key]
	if !ok {
		writeError(w, apperrors.New(apperrors.ErrCodeDiagramNotFound, "run %s has no diagram %s", rec.ID, key))
		return "", false
	}
	return text, true
}
