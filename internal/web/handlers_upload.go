package web

import (
	"net/http"

	"github.com/reclaimhq/dormant/internal/logging"
)

// handleUpload ingests a pipe-delimited account batch uploaded as the
// multipart form field "file". Partial failure is a normal outcome: the
// response reports success and failure counts, and only an unreadable
// stream aborts the batch early.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondBadRequest(w, r, "file exceeds the maximum upload size or is not multipart")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondBadRequest(w, r, "no file provided")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		s.respondBadRequest(w, r, "uploaded file is empty")
		return
	}

	logger := logging.WithFields(r.Context(),
		"file_name", header.Filename,
		"file_size", header.Size,
	)
	logger.Info("batch upload started")

	summary := s.service.Ingest(r.Context(), file)

	logger.Info("batch upload finished",
		"success_count", summary.SuccessCount,
		"failure_count", summary.FailureCount,
	)
	writeJSON(w, http.StatusOK, summary)
}
