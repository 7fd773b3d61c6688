package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// ── Handlers ────────────────────────────────────────────────────────────────

// exportTranscript downloads the transcript of a finished interview.
// @Summary      Download the transcript
// @Description  Returns the plain-text interview report as an attachment. Only available once the interview is finished.
// @Tags         Sessions
// @Produce      plain
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {string}  string  "transcript text"
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "interview not finished"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/transcript [get]
func (h *Handler) exportTranscript(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Get(r.Context(), r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	if !sess.Finished() {
		respondError(w, http.StatusConflict, "interview is not finished")
		return
	}

	data, err := os.ReadFile(sess.TranscriptPath)
	if errors.Is(err, fs.ErrNotExist) {
		respondError(w, http.StatusNotFound, "transcript not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to read transcript", "session_id", sess.ID, "path", sess.TranscriptPath, "error", err)
		respondError(w, http.StatusInternalServerError, "failed to read transcript")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(filepath.Base(sess.TranscriptPath)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
