// Package handler exposes the interview and calculation core over HTTP. For
// each transition it returns the next question's full metadata so an external
// presentation or text-generation layer can render it; it accepts back only a
// single raw string answer.
package handler

import (
	"errors"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/answers"
	"tax-engine/internal/interview"
	"tax-engine/internal/model"
	"tax-engine/internal/profile"
	"tax-engine/internal/rulepack"
	"tax-engine/internal/taxcalc"
)

type API struct {
	interview *interview.Interview
	store     *interview.Store
	registry  *rulepack.Registry
	log       *zap.Logger
}

func New(iv *interview.Interview, store *interview.Store, registry *rulepack.Registry, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{interview: iv, store: store, registry: registry, log: log}
}

type startRequest struct {
	TaxYear int `json:"tax_year"`
}

type answerRequest struct {
	Answer string `json:"answer"`
}

type questionResponse struct {
	SessionID string          `json:"session_id"`
	Complete  bool            `json:"complete"`
	Question  *model.Question `json:"question,omitempty"`
	Error     string          `json:"error,omitempty"`
}

type statusResponse struct {
	Year  int             `json:"year"`
	State model.PackState `json:"state"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Handle routes every request. Registered directly with fasthttp.
func (a *API) Handle(ctx *fasthttp.RequestCtx) {
	path := strings.Trim(string(ctx.Path()), "/")
	parts := strings.Split(path, "/")
	method := string(ctx.Method())

	switch {
	case method == fasthttp.MethodPost && path == "sessions":
		a.startSession(ctx)
	case method == fasthttp.MethodPost && path == "sessions/restore":
		a.restoreSession(ctx)
	case method == fasthttp.MethodGet && len(parts) == 2 && parts[0] == "sessions":
		a.sessionRecord(ctx, parts[1])
	case method == fasthttp.MethodPost && len(parts) == 3 && parts[0] == "sessions" && parts[2] == "answers":
		a.submitAnswer(ctx, parts[1])
	case method == fasthttp.MethodPost && len(parts) == 3 && parts[0] == "sessions" && parts[2] == "calculate":
		a.calculate(ctx, parts[1])
	case method == fasthttp.MethodGet && len(parts) == 3 && parts[0] == "rulepacks" && parts[2] == "status":
		a.packStatus(ctx, parts[1])
	default:
		writeError(ctx, fasthttp.StatusNotFound, "no such route")
	}
}

func (a *API) startSession(ctx *fasthttp.RequestCtx) {
	var req startRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if state := a.registry.Status(req.TaxYear); state != model.PackOK {
		writeError(ctx, fasthttp.StatusConflict,
			"rule pack for "+strconv.Itoa(req.TaxYear)+" is "+string(state))
		return
	}

	s := a.interview.Start(req.TaxYear)
	a.store.Put(s)
	a.log.Info("session started",
		zap.String("session_id", s.SessionID),
		zap.Int("tax_year", req.TaxYear))

	writeJSON(ctx, fasthttp.StatusCreated, questionResponse{
		SessionID: s.SessionID,
		Question:  a.interview.CurrentQuestion(s),
	})
}

func (a *API) submitAnswer(ctx *fasthttp.RequestCtx, id string) {
	var req answerRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var resp questionResponse
	err := a.store.With(id, func(s *model.Session) error {
		next, err := a.interview.Submit(s, req.Answer)
		resp = questionResponse{SessionID: s.SessionID, Complete: s.Complete(), Question: next}
		return err
	})

	var notFound *interview.ErrSessionNotFound
	var invalid *answers.ValidationError
	var done *interview.ErrSessionComplete
	switch {
	case err == nil:
		writeJSON(ctx, fasthttp.StatusOK, resp)
	case errors.As(err, &notFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.As(err, &invalid):
		// recoverable: same question stays current, reason travels back
		resp.Error = invalid.Reason
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, resp)
	case errors.As(err, &done):
		writeError(ctx, fasthttp.StatusConflict, err.Error())
	default:
		a.log.Error("answer submission failed", zap.String("session_id", id), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

func (a *API) sessionRecord(ctx *fasthttp.RequestCtx, id string) {
	var rec *model.SessionRecord
	err := a.store.With(id, func(s *model.Session) error {
		rec = a.interview.Record(s)
		return nil
	})
	if err != nil {
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, rec)
}

func (a *API) restoreSession(ctx *fasthttp.RequestCtx) {
	var rec model.SessionRecord
	if err := json.Unmarshal(ctx.PostBody(), &rec); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	s, err := a.interview.Restore(&rec)
	if err != nil {
		a.log.Warn("session restore rejected", zap.String("session_id", rec.SessionID), zap.Error(err))
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error())
		return
	}
	a.store.Put(s)
	writeJSON(ctx, fasthttp.StatusOK, questionResponse{
		SessionID: s.SessionID,
		Complete:  s.Complete(),
		Question:  a.interview.CurrentQuestion(s),
	})
}

func (a *API) calculate(ctx *fasthttp.RequestCtx, id string) {
	var result *model.CalculationResult
	err := a.store.With(id, func(s *model.Session) error {
		// the registry gate is mandatory: no pack, no numbers
		pack, err := a.registry.Load(s.TaxYear)
		if err != nil {
			return err
		}
		result = taxcalc.Evaluate(profile.Build(s), pack)
		return nil
	})

	var notFound *interview.ErrSessionNotFound
	var unavailable *rulepack.PackUnavailableError
	var unsupported *rulepack.UnsupportedYearError
	switch {
	case err == nil:
		writeJSON(ctx, fasthttp.StatusOK, result)
	case errors.As(err, &notFound):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.As(err, &unavailable), errors.As(err, &unsupported):
		writeError(ctx, fasthttp.StatusConflict, err.Error())
	default:
		a.log.Error("calculation failed", zap.String("session_id", id), zap.Error(err))
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
	}
}

func (a *API) packStatus(ctx *fasthttp.RequestCtx, yearStr string) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid year: "+yearStr)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, statusResponse{Year: year, State: a.registry.Status(year)})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	body, _ := json.Marshal(v)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}
