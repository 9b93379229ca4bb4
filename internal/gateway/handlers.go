package gateway

import (
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/openclaw/dev-cockpit/internal/core/apierr"
	"github.com/openclaw/dev-cockpit/internal/core/constants"
	"github.com/openclaw/dev-cockpit/internal/core/registry"
	"github.com/openclaw/dev-cockpit/internal/gitactivity"
	"github.com/openclaw/dev-cockpit/internal/usage"
)

// envelope is the wire shape every operation returns.
type envelope struct {
	OK     bool        `json:"ok"`
	Result interface{} `json:"result,omitempty"`
	Error  *wireError  `json:"error,omitempty"`
}

type wireError struct {
	Code    apierr.Code `json:"code"`
	Message string      `json:"message"`
}

func writeResult(w http.ResponseWriter, result interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	data, err := sonic.Marshal(envelope{OK: true, Result: result})
	if err != nil {
		return
	}
	w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, err error) {
	code := apierr.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	data, mErr := sonic.Marshal(envelope{OK: false, Error: &wireError{Code: code, Message: apierr.MessageOf(err)}})
	if mErr != nil {
		return
	}
	w.Write(append(data, '\n'))
}

func statusFor(code apierr.Code) int {
	switch code {
	case apierr.CodeInvalidRequest:
		return http.StatusBadRequest
	case apierr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusServiceUnavailable
	}
}

// windowParams validates the shared days/project query parameters.
func windowParams(r *http.Request) (days int, project string, err error) {
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 0 {
			return 0, "", apierr.New(apierr.CodeInvalidRequest, "days must be a non-negative integer")
		}
	}
	project = r.URL.Query().Get("project")
	if project != "" {
		if err := registry.ValidateProjectName(project); err != nil {
			return 0, "", err
		}
	}
	return days, project, nil
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	reg, err := s.store.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, reg)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	days, project, err := windowParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reg, err := s.store.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.source.List()
	if err != nil {
		writeError(w, apierr.Wrap(err, apierr.CodeUnavailable, "cannot enumerate sessions"))
		return
	}
	writeResult(w, s.usage.Aggregate(r.Context(), usage.Params{Days: days, Project: project}, sess, reg))
}

func (s *Server) handleGitActivity(w http.ResponseWriter, r *http.Request) {
	days, project, err := windowParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	reg, err := s.store.Load()
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, s.git.Aggregate(r.Context(), gitactivity.Params{Days: days, Project: project}, reg))
}

type scanRequest struct {
	Roots    []string `json:"roots"`
	MaxDepth int      `json:"maxDepth"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	roots := req.Roots
	if len(roots) == 0 {
		roots = s.cfg.ScanRoots
	}
	resolved := make([]string, 0, len(roots))
	for _, root := range roots {
		abs, err := registry.ValidateScanRoot(root, s.cfg.ScanBase)
		if err != nil {
			writeError(w, err)
			return
		}
		resolved = append(resolved, abs)
	}
	if req.MaxDepth < 0 || req.MaxDepth > 10 {
		writeError(w, apierr.New(apierr.CodeInvalidRequest, "maxDepth must be between 0 and 10"))
		return
	}

	existing, err := s.store.Load()
	if err != nil {
		writeError(w, err)
		return
	}

	scanner := s.scanner
	if req.MaxDepth > 0 && req.MaxDepth != constants.ScanMaxDepth {
		scanner = s.scannerWithDepth(req.MaxDepth)
	}
	reg := scanner.Scan(r.Context(), resolved, existing)
	if err := s.store.Save(reg); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, reg)
}

type toggleRequest struct {
	Project string `json:"project"`
	Enabled *bool  `json:"enabled"`
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Enabled == nil {
		writeError(w, apierr.New(apierr.CodeInvalidRequest, "enabled is required"))
		return
	}

	reg, err := s.store.Toggle(req.Project, *req.Enabled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, map[string]interface{}{
		"project": req.Project,
		"enabled": *req.Enabled,
		"entry":   reg.Projects[req.Project],
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return apierr.Wrap(err, apierr.CodeInvalidRequest, "cannot read request body")
	}
	if len(data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return apierr.Wrap(err, apierr.CodeInvalidRequest, "request body is not valid JSON")
	}
	return nil
}
