package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mockinterview/interviewer/internal/domain/interview"
	"github.com/mockinterview/interviewer/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type CreateSessionRequest struct {
	Name   string `json:"name" example:"Ada Lovelace"`
	Email  string `json:"email" example:"ada@example.com"`
	Domain string `json:"domain" example:"Finance"`
}

func (r *CreateSessionRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.Domain) == "" {
		return errors.New("domain is required")
	}
	return nil
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" example:"=SUMIF(A:A, \"X\", B:B)"`
}

func (r *SubmitAnswerRequest) Validate() error {
	if strings.TrimSpace(r.Answer) == "" {
		return errors.New("answer is required")
	}
	return nil
}

type TurnResponse struct {
	Question        string  `json:"question" example:"How do you sum column B where column A equals 'X'?"`
	Answer          string  `json:"answer" example:"=SUMIF(A:A,\"X\",B:B)"`
	ReferenceAnswer string  `json:"reference_answer" example:"=SUMIF(A:A, \"X\", B:B)"`
	Score           float64 `json:"score" example:"0.9"`
	Explanation     string  `json:"explanation" example:"Correct use of SUMIF."`
	Outcome         string  `json:"outcome" example:"correct"`
	Skipped         bool    `json:"skipped" example:"false"`
}

type SessionResponse struct {
	ID               string         `json:"id" example:"7f9c2ba4-e88f-4d2b-9a6e-1c2d3e4f5a6b"`
	Name             string         `json:"name" example:"Ada Lovelace"`
	Email            string         `json:"email" example:"ada@example.com"`
	Domain           string         `json:"domain" example:"Finance"`
	State            string         `json:"state" example:"in_progress"`
	Difficulty       int            `json:"difficulty" example:"5"`
	Asked            int            `json:"asked" example:"1"`
	Correct          int            `json:"correct" example:"0"`
	Wrong            int            `json:"wrong" example:"0"`
	MaxQuestions     int            `json:"max_questions" example:"10"`
	CurrentQuestion  string         `json:"current_question,omitempty" example:"How do you sum column B where column A equals 'X'?"`
	FallbackQuestion bool           `json:"fallback_question" example:"false"`
	FinalScore       *float64       `json:"final_score,omitempty" example:"70"`
	TranscriptPath   string         `json:"transcript_path,omitempty" example:"report/Ada_Lovelace_ada_at_example_com_20261019_140509_7f9c2ba4.txt"`
	CreatedAt        time.Time      `json:"created_at"`
	FinishedAt       *time.Time     `json:"finished_at,omitempty"`
	History          []TurnResponse `json:"history"`
}

// SessionSummary is a session in the list view. Counters are omitted while
// the session is busy.
type SessionSummary struct {
	ID        string    `json:"id" example:"7f9c2ba4-e88f-4d2b-9a6e-1c2d3e4f5a6b"`
	Name      string    `json:"name" example:"Ada Lovelace"`
	Email     string    `json:"email" example:"ada@example.com"`
	Domain    string    `json:"domain" example:"Finance"`
	CreatedAt time.Time `json:"created_at"`
	Busy      bool      `json:"busy" example:"false"`
	State     string    `json:"state,omitempty" example:"in_progress"`
	Asked     int       `json:"asked,omitempty" example:"3"`
}

type FeedbackResponse struct {
	Turn           TurnResponse `json:"turn"`
	NextQuestion   string       `json:"next_question,omitempty" example:"Which function returns the last row with data in column A?"`
	Fallback       bool         `json:"fallback" example:"false"`
	Asked          int          `json:"asked" example:"2"`
	Finished       bool         `json:"finished" example:"false"`
	FinalScore     *float64     `json:"final_score,omitempty" example:"70"`
	TranscriptPath string       `json:"transcript_path,omitempty"`
}

func toTurnResponse(t interview.Turn) TurnResponse {
	return TurnResponse{
		Question:        t.Question,
		Answer:          t.Answer,
		ReferenceAnswer: t.ReferenceAnswer,
		Score:           t.Score,
		Explanation:     t.Explanation,
		Outcome:         string(t.Outcome),
		Skipped:         t.Skipped,
	}
}

func toSessionResponse(s *interview.Session) SessionResponse {
	history := make([]TurnResponse, len(s.History))
	for i, t := range s.History {
		history[i] = toTurnResponse(t)
	}

	resp := SessionResponse{
		ID:               s.ID,
		Name:             s.Name,
		Email:            s.Email,
		Domain:           s.Category.String(),
		State:            string(s.State()),
		Difficulty:       s.Difficulty,
		Asked:            s.Asked,
		Correct:          s.Correct,
		Wrong:            s.Wrong,
		MaxQuestions:     s.MaxQuestions(),
		FallbackQuestion: s.FallbackQuestion,
		TranscriptPath:   s.TranscriptPath,
		CreatedAt:        s.CreatedAt,
		History:          history,
	}
	if s.Pending() {
		resp.CurrentQuestion = s.CurrentQuestion
	}
	if s.Finished() {
		score := s.FinalScorePercent()
		finished := s.FinishedAt
		resp.FinalScore = &score
		resp.FinishedAt = &finished
	}
	return resp
}

func toFeedbackResponse(s *interview.Session, fb service.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		Turn:           toTurnResponse(fb.Turn),
		NextQuestion:   fb.NextQuestion,
		Fallback:       fb.Fallback,
		Asked:          fb.Asked,
		Finished:       fb.Finished,
		TranscriptPath: fb.TranscriptPath,
	}
	if fb.Finished {
		score := s.FinalScorePercent()
		resp.FinalScore = &score
	}
	return resp
}

// ── Handlers ────────────────────────────────────────────────────────────────

// createSession starts a new interview.
// @Summary      Start an interview
// @Description  Validates the candidate details, creates a session and returns it with the first question.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSessionRequest  true  "Candidate details"
// @Success      201   {object}  SessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /sessions [post]
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sess, err := h.interviews.Start(ctx, req.Name, req.Email, req.Domain)
	if h.handleError(w, err, "session") {
		return
	}

	if err := h.store.Save(ctx, sess); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondJSON(w, http.StatusCreated, toSessionResponse(sess))
}

// listSessions returns every live session, oldest first.
// @Summary      List sessions
// @Description  Returns the sessions held in memory. Sessions idle for longer than the configured TTL are dropped.
// @Tags         Sessions
// @Produce      json
// @Success      200  {array}   SessionSummary
// @Failure      500  {object}  map[string]string
// @Router       /sessions [get]
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.List(r.Context())
	if h.handleError(w, err, "session") {
		return
	}

	resp := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		sum := SessionSummary{
			ID:        s.ID,
			Name:      s.Name,
			Email:     s.Email,
			Domain:    s.Category.String(),
			CreatedAt: s.CreatedAt,
		}
		if err := s.Acquire("list sessions"); err != nil {
			sum.Busy = true
		} else {
			sum.State = string(s.State())
			sum.Asked = s.Asked
			s.Release()
		}
		resp = append(resp, sum)
	}

	respondJSON(w, http.StatusOK, resp)
}

// getSession returns the current state of an interview.
// @Summary      Get a session
// @Description  Returns the counters, the pending question and the answered turns. Reference answers are only shown for answered questions.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session is busy"
// @Router       /sessions/{sessionID} [get]
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Get(r.Context(), r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	if h.handleError(w, sess.Acquire("view session"), "session") {
		return
	}
	resp := toSessionResponse(sess)
	sess.Release()

	respondJSON(w, http.StatusOK, resp)
}

// submitAnswer scores an answer to the pending question.
// @Summary      Submit an answer
// @Description  Scores the answer, adjusts the difficulty and returns the feedback with the next question. The tenth answer finishes the interview and writes the transcript. The answer "skip" skips the question.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string               true  "Session ID"
// @Param        body       body      SubmitAnswerRequest  true  "Candidate answer"
// @Success      200        {object}  FeedbackResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session finished or busy"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.store.Get(ctx, r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	var req SubmitAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fb, err := h.interviews.Submit(ctx, sess, req.Answer)
	if h.handleError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, toFeedbackResponse(sess, fb))
}

// skipQuestion skips the pending question.
// @Summary      Skip the current question
// @Description  Records the pending question as skipped with a score of 0 and returns the next question.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  FeedbackResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session finished or busy"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/skip [post]
func (h *Handler) skipQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.store.Get(ctx, r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	fb, err := h.interviews.Skip(ctx, sess)
	if h.handleError(w, err, "session") {
		return
	}

	respondJSON(w, http.StatusOK, toFeedbackResponse(sess, fb))
}

// exitSession ends the interview early.
// @Summary      Exit the interview
// @Description  Finishes the interview without scoring the pending question and writes the transcript.
// @Tags         Sessions
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session already finished or busy"
// @Failure      500        {object}  map[string]string
// @Router       /sessions/{sessionID}/exit [post]
func (h *Handler) exitSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.store.Get(ctx, r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	if h.handleError(w, h.interviews.Exit(ctx, sess), "session") {
		return
	}

	respondJSON(w, http.StatusOK, toSessionResponse(sess))
}

// deleteSession drops a session from memory. Its transcript file stays.
// @Summary      Delete a session
// @Tags         Sessions
// @Param        sessionID  path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /sessions/{sessionID} [delete]
func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), r.PathValue("sessionID"))
	if h.handleError(w, err, "session") {
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
