package dashboard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/referral-portal/internal/export"
	"github.com/magabrotheeeer/referral-portal/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Summary(ctx context.Context, filter models.SummaryFilter) ([]models.StaffCount, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]models.StaffCount)
	return rows, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 10, 0, 0, 0, time.Local)
}

func TestSummary(t *testing.T) {
	rows := []models.StaffCount{{Name: "Somchai", Count: 3}, {Name: "Nok", Count: 1}}

	tests := []struct {
		name         string
		query        string
		defaultToday bool
		wantFilter   models.SummaryFilter
		mockRows     []models.StaffCount
		mockErr      error
		wantBody     string
	}{
		{
			name:       "no filters",
			wantFilter: models.SummaryFilter{},
			mockRows:   rows,
			wantBody:   `[{"name":"Somchai","count":3},{"name":"Nok","count":1}]`,
		},
		{
			name:       "filters forwarded unmodified",
			query:      "?date=2024-01-01&month=2024-01",
			wantFilter: models.SummaryFilter{Date: "2024-01-01", Month: "2024-01"},
			mockRows:   rows[:1],
			wantBody:   `[{"name":"Somchai","count":3}]`,
		},
		{
			name:       "malformed filter still forwarded",
			query:      "?date=yesterday",
			wantFilter: models.SummaryFilter{Date: "yesterday"},
			mockRows:   []models.StaffCount{},
			wantBody:   `[]`,
		},
		{
			name:       "upstream error degrades to empty list",
			query:      "?month=2024-02",
			wantFilter: models.SummaryFilter{Month: "2024-02"},
			mockErr:    errors.New("registry unavailable"),
			wantBody:   `[]`,
		},
		{
			name:         "staff defaults to today",
			defaultToday: true,
			wantFilter:   models.SummaryFilter{Date: "2024-03-09"},
			mockRows:     rows,
			wantBody:     `[{"name":"Somchai","count":3},{"name":"Nok","count":1}]`,
		},
		{
			name:         "staff month filter keeps date empty",
			query:        "?month=2024-03",
			defaultToday: true,
			wantFilter:   models.SummaryFilter{Month: "2024-03"},
			mockRows:     nil,
			wantBody:     `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Summary", mock.Anything, tt.wantFilter).Return(tt.mockRows, tt.mockErr).Once()

			h := New(newNoopLogger(), svc, export.New(""), Options{
				FilePrefix:   "Admin",
				DefaultToday: tt.defaultToday,
				Now:          fixedNow,
			})

			rec := httptest.NewRecorder()
			h.Summary(rec, httptest.NewRequest(http.MethodGet, "/admin/api/summary"+tt.query, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestExport_XLSX(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, models.SummaryFilter{Month: "2024-03"}).
		Return([]models.StaffCount{{Name: "Somchai", Count: 3}}, nil).Once()

	h := New(newNoopLogger(), svc, export.New(""), Options{FilePrefix: "Admin", Now: fixedNow})

	rec := httptest.NewRecorder()
	h.Export(export.FormatXLSX)(rec, httptest.NewRequest(http.MethodGet, "/admin/export.xlsx?month=2024-03", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatXLSX.ContentType(), rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Admin-Summary-2024-03-09.xlsx"`, rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"name", "count"}, {"Somchai", "3"}}, got)
	svc.AssertExpectations(t)
}

func TestExport_StaffCSVDefaultsToToday(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, models.SummaryFilter{Date: "2024-03-09"}).
		Return([]models.StaffCount{}, nil).Once()

	h := New(newNoopLogger(), svc, export.New(""), Options{FilePrefix: "Staff", DefaultToday: true, Now: fixedNow})

	rec := httptest.NewRecorder()
	h.Export(export.FormatCSV)(rec, httptest.NewRequest(http.MethodGet, "/staff/export.csv", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Staff-Summary-2024-03-09.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "name,count\n", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestExport_UpstreamError(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, models.SummaryFilter{}).Return(nil, errors.New("down")).Once()

	h := New(newNoopLogger(), svc, export.New(""), Options{FilePrefix: "Admin", Now: fixedNow})

	rec := httptest.NewRecorder()
	h.Export(export.FormatPDF)(rec, httptest.NewRequest(http.MethodGet, "/admin/export.pdf", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"registry unavailable"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestChart(t *testing.T) {
	tests := []struct {
		name     string
		kind     export.ChartKind
		opts     Options
		url      string
		filter   models.SummaryFilter
		mockRows []models.StaffCount
		mockErr  error
		want     string
	}{
		{
			name:     "admin bar",
			kind:     export.ChartBar,
			opts:     Options{Now: fixedNow},
			url:      "/admin/chart/bar.svg?month=2024-03",
			filter:   models.SummaryFilter{Month: "2024-03"},
			mockRows: []models.StaffCount{{Name: "Somchai", Count: 3}},
			want:     "Somchai",
		},
		{
			name:     "staff pie defaults to today",
			kind:     export.ChartPie,
			opts:     Options{DefaultToday: true, Now: fixedNow},
			url:      "/staff/chart/pie.svg",
			filter:   models.SummaryFilter{Date: "2024-03-09"},
			mockRows: []models.StaffCount{{Name: "Nok", Count: 2}, {Name: "Somchai", Count: 1}},
			want:     "Nok",
		},
		{
			name:    "service error draws empty chart",
			kind:    export.ChartBar,
			opts:    Options{Now: fixedNow},
			url:     "/admin/chart/bar.svg",
			filter:  models.SummaryFilter{},
			mockErr: errors.New("down"),
			want:    export.NoDataText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("Summary", mock.Anything, tt.filter).Return(tt.mockRows, tt.mockErr).Once()

			h := New(newNoopLogger(), svc, export.New(""), tt.opts)
			rec := httptest.NewRecorder()
			h.Chart(tt.kind)(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "<svg")
			assert.Contains(t, rec.Body.String(), tt.want)
			svc.AssertExpectations(t)
		})
	}
}

func TestChart_UnknownKind(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, models.SummaryFilter{}).
		Return([]models.StaffCount{{Name: "Nok", Count: 1}}, nil).Once()

	h := New(newNoopLogger(), svc, export.New(""), Options{Now: fixedNow})
	rec := httptest.NewRecorder()
	h.Chart(export.ChartKind("line"))(rec, httptest.NewRequest(http.MethodGet, "/admin/chart/line.svg", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
