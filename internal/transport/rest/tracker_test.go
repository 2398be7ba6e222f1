package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/striketrack/backend/internal/domain"
	"github.com/striketrack/backend/internal/tracker"
)

type trackerServiceMock struct {
	boards    []tracker.UserDashboard
	summaries []domain.UserSummary
	report    string
	err       error

	gotStrike *tracker.AddStrikeInput
}

func (m *trackerServiceMock) Dashboard(context.Context) ([]tracker.UserDashboard, []domain.UserSummary, error) {
	return m.boards, m.summaries, m.err
}

func (m *trackerServiceMock) AddStrike(_ context.Context, in tracker.AddStrikeInput) error {
	m.gotStrike = &in
	return m.err
}

func (m *trackerServiceMock) SendReport(context.Context) (string, error) {
	return m.report, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrackerHandler_Dashboard(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		boards: []tracker.UserDashboard{{UserID: "alice", Name: "Alice"}},
	}
	h := NewTrackerHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tracker", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].UserID != "alice" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestTrackerHandler_Summary_IncludesLeaders(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{
		summaries: []domain.UserSummary{
			{UserID: "alice", Total: 3},
			{UserID: "bob", Total: 1},
		},
	}
	h := NewTrackerHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp summaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Leaders) != 1 || resp.Leaders[0] != "alice" {
		t.Errorf("leaders = %v, want [alice]", resp.Leaders)
	}
}

func TestTrackerHandler_AddStrike(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{}
	h := NewTrackerHandler(svc, discardLogger())

	body := `{"user_id":"alice","goal_type":"daily","goal":"run","period":"2025-10-20","comments":"overslept"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/strikes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.AddStrike(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.gotStrike == nil {
		t.Fatal("AddStrike was not called")
	}
	if svc.gotStrike.UserID != "alice" || svc.gotStrike.GoalType != domain.GoalTypeDaily {
		t.Errorf("AddStrike input = %+v", svc.gotStrike)
	}
}

func TestTrackerHandler_AddStrike_BadBody(t *testing.T) {
	t.Parallel()

	h := NewTrackerHandler(&trackerServiceMock{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/strikes", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.AddStrike(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTrackerHandler_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", domain.NewValidationError("goal", "is required"), http.StatusBadRequest},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"conflict", domain.ErrAlreadyExists, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &trackerServiceMock{err: tt.err}
			h := NewTrackerHandler(svc, discardLogger())

			rec := httptest.NewRecorder()
			h.Dashboard(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tracker", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestTrackerHandler_Report(t *testing.T) {
	t.Parallel()

	svc := &trackerServiceMock{report: "27-Oct (02 PM)\nAlice: 2 [rain]"}
	h := NewTrackerHandler(svc, discardLogger())

	rec := httptest.NewRecorder()
	h.Report(rec, httptest.NewRequest(http.MethodPost, "/api/v1/report", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp reportResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Report, "27-Oct") {
		t.Errorf("report = %q", resp.Report)
	}
}
