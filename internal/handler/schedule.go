// Package handler exposes the scheduling engine over HTTP using
// chi routing.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shiftboard/engine/internal/notify"
	"github.com/shiftboard/engine/pkg/calendarmodel"
	apperr "github.com/shiftboard/engine/pkg/errors"
	"github.com/shiftboard/engine/pkg/logger"
	"github.com/shiftboard/engine/pkg/model"
	"github.com/shiftboard/engine/pkg/scheduler/orchestrator"
	"github.com/shiftboard/engine/pkg/store"
)

// ScheduleHandler exposes run-a-month and read-a-month over HTTP.
type ScheduleHandler struct {
	orchestrator *orchestrator.Orchestrator
	schedules    store.ScheduleStore
	holidays     []model.MonthDay
	notifier     *notify.Notifier
}

// NewScheduleHandler builds a ScheduleHandler. holidays is the fixed
// dd/mm set from SchedulerConfig, used to build the CalendarModel for
// every request. notifier may be a disabled (zero-value) Notifier.
func NewScheduleHandler(orch *orchestrator.Orchestrator, schedules store.ScheduleStore, holidays []model.MonthDay, notifier *notify.Notifier) *ScheduleHandler {
	return &ScheduleHandler{orchestrator: orch, schedules: schedules, holidays: holidays, notifier: notifier}
}

// Routes mounts the handler's endpoints under r.
func (h *ScheduleHandler) Routes(r chi.Router) {
	r.Post("/schedule/generate", h.Generate)
	r.Get("/schedule/{year}/{month}", h.Show)
}

// generateRequest is the run request body: the roster month plus an
// optional reproducibility seed.
type generateRequest struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Seed  int64 `json:"seed,omitempty"`
}

// generateResponse mirrors orchestrator.RunResult over the wire.
type generateResponse struct {
	RunID           string   `json:"runId"`
	Score           int      `json:"score"`
	Violations      []string `json:"violations,omitempty"`
	Generations     int      `json:"generations"`
	ResidualNonZero bool     `json:"residualNonZero"`
}

// Generate runs one end-to-end scheduling pass for the requested
// month and persists the result.
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Wrap(err, apperr.CodeInvalidInput, "decoding request body"))
		return
	}
	if req.Year == 0 || req.Month < 1 || req.Month > 12 {
		respondError(w, apperr.InvalidInput("month", "year must be set and month must be 1-12"))
		return
	}

	month := calendarmodel.Build(req.Year, time.Month(req.Month), h.holidays)

	result, err := h.orchestrator.Run(r.Context(), orchestrator.RunRequest{
		Month: month,
		Seed:  req.Seed,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	monthLabel := fmt.Sprintf("%04d-%02d", req.Year, req.Month)
	if notifyErr := h.notifier.NotifyRunComplete(monthLabel, result); notifyErr != nil {
		logger.Error().Err(notifyErr).Msg("posting run-complete notification")
	}

	respondJSON(w, http.StatusOK, generateResponse{
		RunID:           result.RunID.String(),
		Score:           result.Fitness.Score,
		Violations:      result.Violations,
		Generations:     result.Generations,
		ResidualNonZero: result.ResidualNonZero,
	})
}

// scheduleCell is one (day, shiftCode) entry in the Show response.
type scheduleCell struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

// showResponse groups an employee's assigned cells for a month.
type showResponse struct {
	EmployeeID string         `json:"employeeId"`
	Cells      []scheduleCell `json:"cells"`
}

// Show returns the persisted schedule for a given (year, month).
func (h *ScheduleHandler) Show(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		respondError(w, apperr.InvalidInput("year", "must be an integer"))
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		respondError(w, apperr.InvalidInput("month", "must be an integer 1-12"))
		return
	}

	month := calendarmodel.Build(year, time.Month(monthNum), h.holidays)
	schedule, err := h.schedules.LoadForMonth(r.Context(), month)
	if err != nil {
		respondError(w, apperr.StorageFailure("schedule", err))
		return
	}

	out := make([]showResponse, 0, len(schedule.EmployeeIDs()))
	for _, empID := range schedule.EmployeeIDs() {
		idx := schedule.IndexOf(empID)
		var cells []scheduleCell
		for day := 0; day < schedule.Days(); day++ {
			code := schedule.GetByIndex(idx, day)
			if code == model.Off {
				continue
			}
			cells = append(cells, scheduleCell{Date: month.ISODate(day), Shift: string(code)})
		}
		out = append(out, showResponse{EmployeeID: empID, Cells: cells})
	}

	respondJSON(w, http.StatusOK, out)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperr.GetHTTPStatus(err))
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    apperr.GetCode(err),
		"message": err.Error(),
	})
}
