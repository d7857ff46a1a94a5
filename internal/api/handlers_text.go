package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type textRequest struct {
	TextData string `json:"text_data"`
}

// handleSubmitText accepts a text contribution and stores it as one
// row.
func (h *Handler) handleSubmitText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if strings.TrimSpace(req.TextData) == "" {
		writeError(w, http.StatusBadRequest, "No text data provided")
		return
	}

	row, err := h.records.RecordText(r.Context(), req.TextData)
	if err != nil {
		h.logger.Error("text submission failed",
			"error", err,
			"request_id", requestIDFrom(r.Context()),
		)
		writeMappedError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    row,
	})
}
