package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boundlayout/pkg/buildinfo"
	"github.com/matzehuels/boundlayout/pkg/errors"
	"github.com/matzehuels/boundlayout/pkg/pipeline"
	"github.com/matzehuels/boundlayout/pkg/scene"
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if sc.Layout.NumIterations > s.maxIter {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig,
			"num_iterations %d exceeds the server limit of %d", sc.Layout.NumIterations, s.maxIter))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))

	res, err := s.runnerFor(r).Execute(r.Context(), sc, pipeline.Options{
		Formats: []string{format},
		Refresh: refresh,
		Logger:  s.logger,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if res.Layout.Cancelled {
		s.writeError(w, r, r.Context().Err())
		return
	}

	w.Header().Set("X-Run-ID", res.Export.RunID)
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(res.CacheInfo.LayoutHit))
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Load(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handlePartition(w http.ResponseWriter, r *http.Request) {
	sc, err := s.readScene(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runnerFor(r).Partition(r.Context(), sc, chi.URLParam(r, "regionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(hit))
	writeJSON(w, http.StatusOK, res)
}

// readScene decodes a JSON scene body of at most maxBody bytes.
func (s *Server) readScene(w http.ResponseWriter, r *http.Request) (*scene.Scene, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read request body")
	}
	return scene.Parse(body, scene.FormatJSON)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
