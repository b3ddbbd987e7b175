package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

// actionField is the form value carrying the selected action id.
const actionField = "action"

// GenerateResponse is the success payload of POST /generate.
type GenerateResponse struct {
	URL string `json:"url"`
}

// ErrorResponse is the failure payload of the JSON endpoints. Field names the
// control to focus when the failure is a missing value.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := vanilla.PageData{
		Title:   s.title,
		Actions: s.choices(),
		Options: render.RenderOptions{Theme: s.theme},
	}
	if id := strings.TrimSpace(r.URL.Query().Get(actionField)); id != "" {
		state, err := s.orch.State(r.Context(), id, nil)
		if err != nil && !errors.Is(err, registry.ErrActionNotFound) {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
		if err == nil {
			data.State = state
		}
	}

	body, err := s.page.RenderPage(r.Context(), data)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get(actionField))
	body, err := s.orch.Generate(r.Context(), orchestrator.Request{ActionID: id})
	if err != nil {
		if errors.Is(err, registry.ErrActionNotFound) {
			http.Error(w, "unknown action", http.StatusNotFound)
			return
		}
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(body)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid form payload"})
		return
	}
	id := strings.TrimSpace(r.PostForm.Get(actionField))
	if id == "" {
		s.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "Please select an action"})
		return
	}
	action, err := s.actions.Lookup(id)
	if err != nil {
		s.writeJSON(w, r, http.StatusNotFound, ErrorResponse{Error: "unknown action"})
		return
	}
	if s.transformer != nil {
		if err := s.transformer.Transform(r.Context(), &action); err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	values := make(urlbuilder.Values, len(action.Fields))
	for _, field := range action.Fields {
		if raw, ok := r.PostForm[field.Name]; ok && len(raw) > 0 {
			values[field.Name] = raw[0]
		}
	}

	for _, field := range action.Fields {
		if value := values[field.Name]; field.Kind == model.FieldKindSelect && value != "" && !field.HasOption(value) {
			s.writeJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
				Error: fmt.Sprintf("%q is not a valid %s", value, field.DisplayLabel()),
				Field: field.Name,
			})
			return
		}
	}

	url, err := s.builder.Build(action, values)
	if err != nil {
		var missing *urlbuilder.MissingFieldError
		if errors.As(err, &missing) {
			s.writeJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{
				Error: missing.Message(),
				Field: missing.Name,
			})
			return
		}
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.logger.Debug("url generated", slog.String("action", id), requestIDAttr(r.Context()))
	s.writeJSON(w, r, http.StatusOK, GenerateResponse{URL: url})
}

func (s *Server) handleActions(w http.ResponseWriter, r *http.Request) {
	actions := s.actions.Actions()
	if actions == nil {
		actions = []model.Action{}
	}
	s.writeJSON(w, r, http.StatusOK, actions)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := openapi.Export(r.Context(), s.actions, s.builder)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, doc)
}

func (s *Server) choices() []vanilla.ActionChoice {
	actions := s.actions.Actions()
	out := make([]vanilla.ActionChoice, 0, len(actions))
	for _, action := range actions {
		out = append(out, vanilla.ActionChoice{ID: action.ID, Description: action.Description})
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		s.logger.Error("write json response", slog.Any("error", err), requestIDAttr(r.Context()))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Error("request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
		requestIDAttr(r.Context()),
	)
	http.Error(w, http.StatusText(status), status)
}
