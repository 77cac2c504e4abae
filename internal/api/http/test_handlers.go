package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/careerbridge/assessment/internal/assessment"
	auth "github.com/careerbridge/assessment/internal/auth/middleware"
	"github.com/careerbridge/assessment/internal/eventlog"
	"github.com/careerbridge/assessment/internal/gateway"
	"github.com/careerbridge/assessment/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetOrCreateTestHandler returns the caller's per-section completion
// flags plus any persisted partial responses, creating nothing until
// progress is actually saved.
func GetOrCreateTestHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		overview := gateway.TestOverview{
			UserID:   userID,
			Sections: map[assessment.Section]gateway.SectionOverview{},
		}
		for _, section := range assessment.Sections {
			sec := gateway.SectionOverview{Status: "not_started"}
			if _, err := st.GetResult(r.Context(), userID, section); err == nil {
				sec.Status = "submitted"
			} else if snap, err := st.GetSnapshot(r.Context(), userID, section); err == nil {
				sec.Status = "in_progress"
				sec.Snapshot = &gateway.Snapshot{
					Responses:    snap.Responses,
					CurrentIndex: snap.CurrentIndex,
				}
			}
			overview.Sections[section] = sec
		}
		writeJSON(w, overview)
	}
}

// SaveProgressHandler upserts the (user, section) snapshot. Last
// writer wins; the client treats this as fire-and-forget.
func SaveProgressHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		section, ok := sectionParam(w, r)
		if !ok {
			return
		}
		var snap gateway.Snapshot
		if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json", nil)
			return
		}
		if _, err := st.GetResult(r.Context(), userID, section); err == nil {
			writeErr(w, http.StatusConflict, "section already submitted", nil)
			return
		}
		err := st.SaveSnapshot(r.Context(), store.Snapshot{
			UserID:       userID,
			Section:      section,
			Responses:    snap.Responses,
			CurrentIndex: snap.CurrentIndex,
			UpdatedAt:    time.Now().Unix(),
		})
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "save failed", nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ValidateSectionHandler runs the completeness check server-side, as
// an optional pre-submission probe.
func ValidateSectionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		section, ok := sectionParam(w, r)
		if !ok {
			return
		}
		bank, err := assessment.BankFor(section)
		if err != nil {
			writeErr(w, http.StatusNotFound, err.Error(), nil)
			return
		}
		var req struct {
			Responses map[string]assessment.Answer `json:"responses"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json", nil)
			return
		}
		writeJSON(w, assessment.ValidateSnapshot(bank, req.Responses))
	}
}

// SubmitHandler validates, scores, and stores the authoritative
// result. Re-submitting a finished section returns the stored result
// unchanged.
func SubmitHandler(st store.Store, events *eventlog.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		section, ok := sectionParam(w, r)
		if !ok {
			return
		}
		bank, err := assessment.BankFor(section)
		if err != nil {
			writeErr(w, http.StatusNotFound, err.Error(), nil)
			return
		}

		if prev, err := st.GetResult(r.Context(), userID, section); err == nil {
			writeJSON(w, toSubmitted(prev))
			return
		}

		var req struct {
			Responses        map[string]assessment.Answer `json:"responses"`
			TimeSpentMinutes int                          `json:"time_spent_minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json", nil)
			return
		}

		rs := assessment.NewResponseSet(bank)
		rs.Restore(req.Responses)
		if v := assessment.Validate(bank, rs); !v.IsValid {
			fe := make([]gateway.FieldError, 0, len(v.Missing))
			for i, id := range v.Missing {
				fe = append(fe, gateway.FieldError{QuestionID: id, Message: v.Errors[i]})
			}
			writeErr(w, http.StatusUnprocessableEntity, "incomplete responses", fe)
			return
		}

		report, err := assessment.Aggregate(bank, rs)
		if err != nil {
			writeErr(w, http.StatusUnprocessableEntity, err.Error(), nil)
			return
		}

		res := store.Result{
			ID:               uuid.NewString(),
			UserID:           userID,
			Section:          section,
			Report:           report,
			TimeSpentMinutes: req.TimeSpentMinutes,
			CompletionPct:    100 * rs.Progress(),
			Status:           "submitted",
			SubmittedAt:      time.Now().Unix(),
		}
		if err := st.PutResult(r.Context(), res); err != nil {
			writeErr(w, http.StatusInternalServerError, "store result", nil)
			return
		}
		// a submitted section's snapshot is dead weight
		if err := st.DeleteSnapshot(r.Context(), userID, section); err != nil {
			log.Printf("delete snapshot %s/%s: %v", userID, section, err)
		}
		if events != nil {
			data, _ := json.Marshal(res)
			if err := events.Append(r.Context(), eventlog.Event{
				Type:     eventlog.TypeSectionSubmitted,
				Key:      userID + "|" + string(section),
				DataJSON: string(data),
			}); err != nil {
				log.Printf("event append: %v", err)
			}
		}
		writeJSON(w, toSubmitted(res))
	}
}

func GetResultHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		section, ok := sectionParam(w, r)
		if !ok {
			return
		}
		res, err := st.GetResult(r.Context(), userID, section)
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "no result", nil)
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "load result", nil)
			return
		}
		writeJSON(w, toSubmitted(res))
	}
}

func toSubmitted(r store.Result) gateway.SubmittedResult {
	return gateway.SubmittedResult{
		ID:               r.ID,
		Section:          r.Section,
		Report:           r.Report,
		CompletionPct:    r.CompletionPct,
		Status:           r.Status,
		TimeSpentMinutes: r.TimeSpentMinutes,
		SubmittedAt:      time.Unix(r.SubmittedAt, 0).UTC(),
	}
}

func sectionParam(w http.ResponseWriter, r *http.Request) (assessment.Section, bool) {
	section := assessment.Section(chi.URLParam(r, "section"))
	if _, err := assessment.BankFor(section); err != nil {
		writeErr(w, http.StatusNotFound, err.Error(), nil)
		return "", false
	}
	return section, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string, fieldErrs []gateway.FieldError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":        msg,
		"field_errors": fieldErrs,
	})
}
