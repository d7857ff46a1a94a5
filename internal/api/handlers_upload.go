package api

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/sainikith07/DynoCollect/internal/uploader"
)

// uploadFormField is the multipart form field clients put the file in.
const uploadFormField = "file"

// handleUpload serves one media bucket. The request body is capped
// before the form is parsed, so an oversized upload fails fast.
func (h *Handler) handleUpload(bucket uploader.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

		file, header, err := r.FormFile(uploadFormField)
		if err != nil {
			if isBodyTooLarge(err) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "No file part in the request")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}

		result, err := h.uploads.Upload(
			r.Context(),
			bucket,
			header.Filename,
			file,
			header.Size,
			header.Header.Get("Content-Type"),
		)
		if err != nil {
			h.logger.Error("upload failed",
				"bucket", bucket.String(),
				"filename", header.Filename,
				"error", err,
				"request_id", requestIDFrom(r.Context()),
			)
			writeMappedError(w, err)
			return
		}

		observeUploadBytes(bucket.String(), result.SizeBytes)

		row, err := h.records.RecordMediaURL(r.Context(), bucket.Column(), result.PublicURL)
		if err != nil {
			h.logger.Error("metadata write failed",
				"bucket", bucket.String(),
				"url", result.PublicURL,
				"error", err,
				"request_id", requestIDFrom(r.Context()),
			)
			writeMappedError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"success":             true,
			"url":                 result.PublicURL,
			"data":                row,
			"upload_time_seconds": round2(result.Duration.Seconds()),
			"upload_speed_mbps":   round2(result.ThroughputMBps),
		})
	}
}

// round2 rounds to two decimal places for the response body.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// isBodyTooLarge detects the MaxBytesReader limit being hit. The
// multipart parser does not always preserve the typed error, so the
// message is checked as well.
func isBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
