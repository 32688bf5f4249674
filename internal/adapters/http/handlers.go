package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"svw.info/make24/internal/domain"
	"svw.info/make24/internal/generator"
	"svw.info/make24/internal/i18n"
	"svw.info/make24/internal/infrastructure/storage"
	"svw.info/make24/internal/usecase"
)

type Handler struct {
	UC     *usecase.Service
	I18n   *i18n.Bundle
	Locale string // fallback when a request names no language
}

func New(uc *usecase.Service, b *i18n.Bundle, locale string) *Handler {
	return &Handler{UC: uc, I18n: b, Locale: locale}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/solvable", h.handleSolvable)
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.HandleFunc("/api/check", h.handleCheck)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
	mux.HandleFunc("/api/attempts", h.handleAttempts)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
}

// RegisterPages serves the game page, localized per request, and its
// static assets.
func (h *Handler) RegisterPages(mux *http.ServeMux, tmpl *template.Template, static http.FileSystem) {
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(static)))
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		tag := h.I18n.FromRequest(r, h.Locale)
		p := i18n.Printer(tag)
		text := make(map[string]string)
		for _, k := range pageKeys {
			text[k] = p.Sprintf(k)
		}
		data := map[string]any{
			"Lang":     tag.String(),
			"NextLang": h.I18n.Next(tag).String(),
			"T":        text,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
}

var pageKeys = []string{
	"game.title", "label.numbers", "label.operators", "label.expression",
	"button.check", "button.reset", "button.undo", "button.language",
	"rules.title", "rules.1", "rules.2", "rules.3", "rules.4",
}

// statusFor maps service errors onto HTTP codes.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNumberOutOfRange),
		errors.Is(err, domain.ErrBadToken),
		errors.Is(err, domain.ErrDealSize),
		errors.Is(err, usecase.ErrMissingNumbers),
		errors.Is(err, storage.ErrInvalidID),
		errors.Is(err, generator.ErrInvalidRange),
		errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnsolvable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, generator.ErrAttemptsExhausted):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a POST body into req and validates it. An empty body is
// accepted as the zero request when allowEmpty is set.
func decode(w http.ResponseWriter, r *http.Request, req any, allowEmpty bool) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return false
	}
	return true
}

type errorResp struct {
	Error string `json:"error"`
}

// ---- Generate ----

type generateReq struct {
	Seed int64 `json:"seed,omitempty"`
}

type generateResp struct {
	ID           string           `json:"id,omitempty"`
	Numbers      domain.Quadruple `json:"numbers"`
	Seed         int64            `json:"seed,omitempty"`
	Attempts     int              `json:"attempts,omitempty"`
	Combinations int              `json:"combinations,omitempty"`
	DurationMs   int64            `json:"durationMs"`
	Error        string           `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if !decode(w, r, &req, true) {
		return
	}
	p, st, err := h.UC.Generate(r.Context(), req.Seed)
	if err != nil {
		writeJSON(w, statusFor(err), generateResp{Error: err.Error(), Attempts: st.Attempts, DurationMs: st.Duration.Milliseconds()})
		return
	}
	writeJSON(w, http.StatusOK, generateResp{
		ID:           p.ID,
		Numbers:      p.Numbers,
		Seed:         p.Seed,
		Attempts:     st.Attempts,
		Combinations: st.Combinations,
		DurationMs:   st.Duration.Milliseconds(),
	})
}

// ---- Solvable ----

type solvableReq struct {
	Numbers domain.Quadruple `json:"numbers" validate:"dive,min=1,max=13"`
}
type solvableResp struct {
	Solvable     bool   `json:"solvable"`
	Combinations int    `json:"combinations,omitempty"`
	DurationMs   int64  `json:"durationMs"`
	Error        string `json:"error,omitempty"`
}

func (h *Handler) handleSolvable(w http.ResponseWriter, r *http.Request) {
	var req solvableReq
	if !decode(w, r, &req, false) {
		return
	}
	ok, st, err := h.UC.Solvable(r.Context(), req.Numbers)
	if err != nil {
		writeJSON(w, statusFor(err), solvableResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, solvableResp{Solvable: ok, Combinations: st.Combinations, DurationMs: st.Duration.Milliseconds()})
}

// ---- Evaluate ----

type evaluateReq struct {
	Tokens []string `json:"tokens" validate:"max=64"`
}
type evaluateResp struct {
	Valid  bool                 `json:"valid"`
	Value  *float64             `json:"value,omitempty"`
	Reason domain.InvalidReason `json:"reason,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func outcomeResp(o domain.Outcome) evaluateResp {
	resp := evaluateResp{Valid: o.Valid, Reason: o.Reason}
	if o.Valid {
		v := o.Value
		resp.Value = &v
	}
	return resp
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if !decode(w, r, &req, false) {
		return
	}
	toks, err := domain.ParseTokens(req.Tokens)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, evaluateResp{Error: err.Error()})
		return
	}
	o, err := h.UC.Evaluate(r.Context(), toks)
	if err != nil {
		writeJSON(w, statusFor(err), evaluateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, outcomeResp(o))
}

// ---- Check ----

type checkReq struct {
	ID      string            `json:"id,omitempty" validate:"max=128"`
	Numbers *domain.Quadruple `json:"numbers,omitempty"`
	Tokens  []string          `json:"tokens" validate:"max=64"`
}
type conflictResp struct {
	domain.Conflict
	Message string `json:"message"`
}
type checkResp struct {
	Correct bool `json:"correct"`
	evaluateResp
	Conflicts []conflictResp `json:"conflicts,omitempty"`
	Message   string         `json:"message,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkReq
	if !decode(w, r, &req, false) {
		return
	}
	toks, err := domain.ParseTokens(req.Tokens)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	res, err := h.UC.Check(r.Context(), usecase.CheckRequest{PuzzleID: req.ID, Numbers: req.Numbers, Tokens: toks})
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	p := i18n.Printer(h.I18n.FromRequest(r, h.Locale))
	resp := checkResp{
		Correct:      res.Correct,
		evaluateResp: outcomeResp(res.Outcome),
		Message:      i18n.Verdict(p, res.Correct, res.Outcome),
	}
	for _, c := range res.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictResp{Conflict: c, Message: i18n.ConflictText(p, c)})
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Hint ----

type hintReq struct {
	Numbers domain.Quadruple `json:"numbers" validate:"dive,min=1,max=13"`
	Tokens  []string         `json:"tokens" validate:"max=64"`
}
type hintResp struct {
	domain.Hint
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if !decode(w, r, &req, false) {
		return
	}
	toks, err := domain.ParseTokens(req.Tokens)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return
	}
	hh, err := h.UC.Hint(r.Context(), req.Numbers, toks)
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, hintResp{Hint: hh})
}

// ---- Save / Load / List / Attempts ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p domain.Puzzle
	if !decode(w, r, &p, false) {
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: p.ID})
}

type idReq struct {
	ID string `json:"id" validate:"required,max=128"`
}
type loadResp struct {
	Puzzle *domain.Puzzle `json:"puzzle,omitempty"`
	Error  string         `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req idReq
	if !decode(w, r, &req, false) {
		return
	}
	p, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Puzzle: p})
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
	Error   string              `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResp{Error: "method not allowed"})
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, statusFor(err), listResp{Error: err.Error()})
		return
	}
	if ps == nil {
		ps = []domain.PuzzleMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Puzzles: ps})
}

type attemptsResp struct {
	Attempts []domain.Attempt `json:"attempts"`
	Error    string           `json:"error,omitempty"`
}

func (h *Handler) handleAttempts(w http.ResponseWriter, r *http.Request) {
	var req idReq
	if !decode(w, r, &req, false) {
		return
	}
	as, err := h.UC.Attempts(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, statusFor(err), attemptsResp{Error: err.Error()})
		return
	}
	if as == nil {
		as = []domain.Attempt{}
	}
	writeJSON(w, http.StatusOK, attemptsResp{Attempts: as})
}
