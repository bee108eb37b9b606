package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/dshills/guardian/internal/intake"
	"github.com/dshills/guardian/internal/providers"
	"github.com/dshills/guardian/internal/review"
)

//go:embed static/index.html
var indexHTML []byte

// Form values beyond this are spilled to temp files by the multipart reader.
const multipartMemory = 8 << 20

type reviewRequest struct {
	Code    string `json:"code" validate:"max=2000000"`
	Context string `json:"context" validate:"max=20000"`
}

type intakeRequest struct {
	Paths []string `json:"paths" validate:"required,max=100000,dive,required"`
}

type intakeResponse struct {
	Total         int      `json:"total"`
	Accepted      []string `json:"accepted"`
	Limit         int      `json:"limit"`
	LimitExceeded bool     `json:"limitExceeded"`
	Summary       string   `json:"summary"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	MaxFiles int    `json:"maxFiles"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Provider: s.engine.Provider(),
		Model:    s.cfg.Model,
		MaxFiles: s.maxFiles(),
	})
}

// handleIntake reports which of the offered paths would be reviewed without
// reading any content, so the UI can show a summary before uploading.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	candidates := make([]intake.Candidate, len(req.Paths))
	for i, p := range req.Paths {
		candidates[i] = intake.Candidate{Path: p}
	}
	batch := intake.NewBatch(candidates, s.rules, s.maxFiles())
	writeJSON(w, http.StatusOK, intakeResponse{
		Total:         batch.Total,
		Accepted:      batch.Paths(),
		Limit:         batch.Limit,
		LimitExceeded: batch.LimitExceeded,
		Summary:       batch.Summary(),
	})
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	var body reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(body); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	req, err := review.FromPaste(body.Code, body.Context)
	if err != nil {
		s.writeReviewError(w, err)
		return
	}
	s.runReview(w, r, req)
}

// handleUpload reviews a multipart folder upload. Each "files" part is paired
// with the "paths" value at the same index, since multipart file names lose
// their directories. The server re-applies the intake rules to whatever the
// client sends.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		s.writeDecodeError(w, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	projectContext := r.FormValue("context")
	if err := s.validate.Var(projectContext, "max=20000"); err != nil {
		writeError(w, http.StatusBadRequest, "context is too long")
		return
	}

	files := r.MultipartForm.File["files"]
	paths := r.MultipartForm.Value["paths"]
	candidates := make([]intake.Candidate, len(files))
	for i, fh := range files {
		candidates[i] = uploadCandidate(fh, pathAt(paths, i, fh.Filename))
	}

	batch := intake.NewBatch(candidates, s.rules, s.maxFiles())
	s.log.WithFields(logrus.Fields{
		"total":    batch.Total,
		"accepted": len(batch.Accepted),
	}).Debug("upload filtered")

	req, err := review.FromFiles(r.Context(), batch, projectContext, intake.BundleOptions{
		Concurrency:   s.cfg.Intake.Concurrency,
		RedactSecrets: s.cfg.Privacy.RedactSecrets,
		RedactPaths:   s.cfg.Privacy.RedactPaths,
	})
	if err != nil {
		var inputErr *review.InputError
		if errors.As(err, &inputErr) || errors.Is(err, intake.ErrTooManyFiles) {
			s.writeReviewError(w, err)
			return
		}
		s.log.WithError(err).Error("reading upload failed")
		writeError(w, http.StatusInternalServerError, "An error occurred while reading your files.")
		return
	}
	s.runReview(w, r, req)
}

func (s *Server) runReview(w http.ResponseWriter, r *http.Request, req review.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.reviewTimeout())
	defer cancel()

	result, err := s.engine.Review(ctx, req)
	if err != nil {
		s.writeReviewError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) maxFiles() int {
	if s.cfg.Intake.MaxFiles <= 0 {
		return intake.MaxFiles
	}
	return s.cfg.Intake.MaxFiles
}

func uploadCandidate(fh *multipart.FileHeader, path string) intake.Candidate {
	return intake.Candidate{
		Path: path,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

func pathAt(paths []string, i int, fallback string) string {
	if i < len(paths) {
		if p := strings.TrimPrefix(strings.TrimSpace(paths[i]), "/"); p != "" {
			return p
		}
	}
	return fallback
}

func (s *Server) writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request is larger than %d bytes. Please select fewer or smaller files.", tooLarge.Limit))
		return
	}
	writeError(w, http.StatusBadRequest, "invalid request body")
}

// writeReviewError maps a failure from request building or the engine to a
// status and a message that is safe to show in the UI.
func (s *Server) writeReviewError(w http.ResponseWriter, err error) {
	var inputErr *review.InputError
	switch {
	case errors.As(err, &inputErr):
		writeError(w, http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, review.ErrEmptyCode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, intake.ErrTooManyFiles):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case providers.IsRateLimited(err):
		writeError(w, http.StatusTooManyRequests, "The review service is busy. Please try again shortly.")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "The review took too long. Try sending fewer files.")
	case providers.IsAuthError(err):
		s.log.WithError(err).Error("provider rejected credentials")
		writeError(w, http.StatusBadGateway, "The review service rejected the configured API key.")
	case errors.Is(err, context.Canceled):
		// 499: client closed request.
		writeError(w, 499, "request cancelled")
	default:
		s.log.WithError(err).Error("review failed")
		writeError(w, http.StatusBadGateway, "An error occurred while fetching the code review.")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func extractValidationErrors(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Sprintf("validation error: %s - %s", ve[0].Field(), ve[0].Tag())
	}
	return "validation error"
}
