package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sillydeps/pkg/catalog"
	"github.com/matzehuels/sillydeps/pkg/classify"
	"github.com/matzehuels/sillydeps/pkg/errors"
	"github.com/matzehuels/sillydeps/pkg/history"
	"github.com/matzehuels/sillydeps/pkg/pipeline"
)

// WarningHeader carries recovered audit problems, one value per warning.
const WarningHeader = "X-Sillydeps-Warning"

// AuditRequest is the POST /v1/audit body. Manifest and Tree are kept raw
// so that dependency order survives decoding.
type AuditRequest struct {
	Manifest json.RawMessage `json:"manifest"`
	Tree     json.RawMessage `json:"tree,omitempty"`
	Category string          `json:"category,omitempty"`
	Project  string          `json:"project,omitempty"`
}

// AuditResponse is the POST /v1/audit response.
type AuditResponse struct {
	Project  string           `json:"project,omitempty"`
	Result   *classify.Result `json:"result"`
	Warnings []string         `json:"warnings"`
	Degraded bool             `json:"degraded"`
	Cached   bool             `json:"cached"`
}

type categoryJSON struct {
	Name     string      `json:"name"`
	Packages []entryJSON `json:"packages"`
}

type entryJSON struct {
	Name       string `json:"name"`
	Suggestion string `json:"suggestion"`
}

type errorJSON struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.runner.Catalog
	out := make([]categoryJSON, 0, len(cat.Categories()))
	for _, name := range cat.Categories() {
		out = append(out, toCategoryJSON(cat, name))
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	if err := errors.ValidateCategory(name); err != nil {
		s.writeError(w, err)
		return
	}
	if !s.runner.Catalog.Has(name) {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no category %q in catalog", name))
		return
	}
	writeJSON(w, http.StatusOK, toCategoryJSON(s.runner.Catalog, name))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := history.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	entries, err := s.runner.History.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	var req AuditRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if isNull(req.Manifest) {
		s.writeError(w, errors.New(errors.ErrCodeInvalidManifest, "manifest is required"))
		return
	}

	opts := pipeline.Options{
		Manifest: req.Manifest,
		Category: req.Category,
		Project:  req.Project,
	}
	if !isNull(req.Tree) {
		opts.Tree = req.Tree
	}

	out, err := s.runner.Audit(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	warnings := out.WarningMessages()
	for _, msg := range warnings {
		w.Header().Add(WarningHeader, msg)
	}
	writeJSON(w, http.StatusOK, AuditResponse{
		Project:  out.Project,
		Result:   out.Result,
		Warnings: warnings,
		Degraded: out.Degraded,
		Cached:   out.Cached,
	})
}

func toCategoryJSON(cat *catalog.Catalog, name string) categoryJSON {
	entries := cat.Entries(name)
	out := categoryJSON{Name: name, Packages: make([]entryJSON, len(entries))}
	for i, e := range entries {
		out.Packages[i] = entryJSON{Name: e.Name, Suggestion: e.Suggestion}
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidManifest:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCategory, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPackage:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	var body errorJSON
	body.Error.Code = errors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = errors.ErrCodeInternal
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
