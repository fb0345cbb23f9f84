package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gitgraph/pkg/buildinfo"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/script"
	"github.com/matzehuels/gitgraph/pkg/store"
	"github.com/matzehuels/gitgraph/pkg/template"
)

// diagramRequest is the JSON body of create and update. A request with a
// TOML content type carries the script as the raw body instead.
type diagramRequest struct {
	Title  string `json:"title"`
	Script string `json:"script"`
}

type errorResponse struct {
	Error struct {
		Code    errors.Code `json:"code,omitempty"`
		Message string      `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"templates": template.Presets()})
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*store.Diagram{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"diagrams": list})
}

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	req, err := readDiagramRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sc, err := script.Parse([]byte(req.Script))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Title == "" {
		req.Title = sc.Title
	}
	d := store.NewDiagram(req.Title, req.Script)
	if err := s.store.Put(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/diagrams/"+d.ID)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := readDiagramRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := script.Parse([]byte(req.Script)); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Title != "" {
		d.Title = req.Title
	}
	d.Update(req.Script)
	if err := s.store.Put(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.dropSession(d.ID)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.dropSession(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleRender serves one artifact. Query parameters template, orientation,
// mode, pixel_ratio, background and detailed override the script header.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Source:      []byte(d.Script),
		Template:    q.Get("template"),
		Orientation: q.Get("orientation"),
		Mode:        q.Get("mode"),
		Background:  q.Get("background"),
		Formats:     []string{format},
		Logger:      s.logger,
	}
	if v := q.Get("pixel_ratio"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidOption, err, "pixel_ratio"))
			return
		}
		opts.PixelRatio = ratio
	}
	opts.Detailed, _ = strconv.ParseBool(q.Get("detailed"))

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("ETag", strconv.Quote(d.ScriptHash))
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y must be numbers"))
		return
	}
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sess, err := s.session(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.hover(r.Context(), sess, gitgraph.Point{X: x, Y: y}))
}

func readDiagramRequest(r *http.Request) (diagramRequest, error) {
	var req diagramRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScriptBytes+1))
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > maxScriptBytes {
		return req, errors.New(errors.ErrCodeInvalidInput, "script exceeds %d bytes", maxScriptBytes)
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/toml", "text/plain":
		req.Script = string(body)
		req.Title = r.URL.Query().Get("title")
	default:
		if err := json.Unmarshal(body, &req); err != nil {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
	}
	if req.Script == "" {
		return req, errors.New(errors.ErrCodeInvalidInput, "script is required")
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	var resp errorResponse
	resp.Error.Code = errors.GetCode(err)
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

// logRequests logs every request and reports the response to the HTTP hooks
// under its route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
