package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/erate-atlas/pkg/models/api"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Search(
	ctx context.Context,
	term, stateFilter string,
	limit int,
) ([]domain.OrganizationSummary, error) {
	args := m.Called(ctx, term, stateFilter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationSummary), args.Error(1)
}

type mockHistoryRunner struct {
	mock.Mock
}

func (m *mockHistoryRunner) Run(
	ctx context.Context,
	organization string,
	thresholds domain.Thresholds,
) (*domain.HistoryReport, error) {
	args := m.Called(ctx, organization, thresholds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryReport), args.Error(1)
}

type mockStateRunner struct {
	mock.Mock
}

func (m *mockStateRunner) Run(
	ctx context.Context,
	state, year string,
	thresholds domain.Thresholds,
) (*domain.StateReport, error) {
	args := m.Called(ctx, state, year, thresholds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StateReport), args.Error(1)
}

func setupHandler(resolver *mockResolver, history *mockHistoryRunner, state *mockStateRunner) *Handler {
	profile := config.Default()
	return NewHandler(resolver, history, state, &profile)
}

func TestSearchOrganizations(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*mockResolver)
		expectedStatus int
		expectedBody   []api.OrganizationSummary
	}{
		{
			name: "successful response",
			url:  "/api/v1/organizations?q=tulsa",
			setupMock: func(m *mockResolver) {
				m.On("Search", mock.Anything, "tulsa", "", 50).Return(
					[]domain.OrganizationSummary{
						{Name: "TULSA SCHOOL DISTRICT", State: "OK", FundingYears: []string{"2023", "2024"}},
					},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody: []api.OrganizationSummary{
				{Name: "TULSA SCHOOL DISTRICT", State: "OK", FundingYears: []string{"2023", "2024"}},
			},
		},
		{
			name: "state filter and limit forwarded",
			url:  "/api/v1/organizations?q=lincoln&state=NE&limit=5",
			setupMock: func(m *mockResolver) {
				m.On("Search", mock.Anything, "lincoln", "NE", 5).Return(
					[]domain.OrganizationSummary{},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []api.OrganizationSummary{},
		},
		{
			name:           "missing search term",
			url:            "/api/v1/organizations",
			setupMock:      func(m *mockResolver) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "source failure",
			url:  "/api/v1/organizations?q=tulsa",
			setupMock: func(m *mockResolver) {
				m.On("Search", mock.Anything, "tulsa", "", 50).Return(
					nil,
					fmt.Errorf("upstream unavailable"),
				)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(mockResolver)
			tt.setupMock(resolver)
			handler := setupHandler(resolver, new(mockHistoryRunner), new(mockStateRunner))

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			handler.SearchOrganizations(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response []api.OrganizationSummary
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBody, response)
			}

			resolver.AssertExpectations(t)
		})
	}
}

func TestGetHistoryReport(t *testing.T) {
	defaults := config.Default()

	tests := []struct {
		name           string
		organization   string
		url            string
		setupMock      func(*mockHistoryRunner)
		expectedStatus int
	}{
		{
			name:         "successful response",
			organization: "TULSA SCHOOL DISTRICT",
			url:          "/api/v1/reports/history/TULSA%20SCHOOL%20DISTRICT",
			setupMock: func(m *mockHistoryRunner) {
				thresholds := domain.Thresholds{
					School: defaults.SchoolThreshold,
					SKU:    defaults.SKUThreshold,
				}
				m.On("Run", mock.Anything, "TULSA SCHOOL DISTRICT", thresholds).Return(
					&domain.HistoryReport{
						Organization:  "TULSA SCHOOL DISTRICT",
						YearsWithData: []string{"2024"},
						GrandTotal:    120000,
						Found:         true,
					},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:         "sku threshold override",
			organization: "TULSA SCHOOL DISTRICT",
			url:          "/api/v1/reports/history/TULSA%20SCHOOL%20DISTRICT?sku-threshold=5000",
			setupMock: func(m *mockHistoryRunner) {
				thresholds := domain.Thresholds{
					School: defaults.SchoolThreshold,
					SKU:    5000,
				}
				m.On("Run", mock.Anything, "TULSA SCHOOL DISTRICT", thresholds).Return(
					&domain.HistoryReport{Organization: "TULSA SCHOOL DISTRICT"},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid threshold",
			organization:   "TULSA SCHOOL DISTRICT",
			url:            "/api/v1/reports/history/TULSA%20SCHOOL%20DISTRICT?sku-threshold=abc",
			setupMock:      func(m *mockHistoryRunner) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:         "run failure",
			organization: "TULSA SCHOOL DISTRICT",
			url:          "/api/v1/reports/history/TULSA%20SCHOOL%20DISTRICT",
			setupMock: func(m *mockHistoryRunner) {
				m.On("Run", mock.Anything, "TULSA SCHOOL DISTRICT", mock.Anything).Return(
					nil,
					fmt.Errorf("fetch failed"),
				)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := new(mockHistoryRunner)
			tt.setupMock(history)
			handler := setupHandler(new(mockResolver), history, new(mockStateRunner))

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			ctx := chi.NewRouteContext()
			ctx.URLParams.Add("organization", tt.organization)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))

			handler.GetHistoryReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response api.HistoryReport
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.organization, response.Organization)
			}

			history.AssertExpectations(t)
		})
	}
}

func TestGetStateReport(t *testing.T) {
	defaults := config.Default()

	tests := []struct {
		name           string
		state          string
		year           string
		url            string
		setupMock      func(*mockStateRunner)
		expectedStatus int
	}{
		{
			name:  "successful response",
			state: "OK",
			year:  "2024",
			url:   "/api/v1/reports/state/OK/2024",
			setupMock: func(m *mockStateRunner) {
				thresholds := domain.Thresholds{
					School: defaults.SchoolThreshold,
					SKU:    defaults.SKUThreshold,
				}
				m.On("Run", mock.Anything, "OK", "2024", thresholds).Return(
					&domain.StateReport{State: "OK", Year: "2024", Found: true},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "threshold overrides",
			state: "OK",
			year:  "2024",
			url:   "/api/v1/reports/state/OK/2024?school-threshold=100000&sku-threshold=25000",
			setupMock: func(m *mockStateRunner) {
				thresholds := domain.Thresholds{School: 100000, SKU: 25000}
				m.On("Run", mock.Anything, "OK", "2024", thresholds).Return(
					&domain.StateReport{State: "OK", Year: "2024"},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid state",
			state:          "OKLA",
			year:           "2024",
			url:            "/api/v1/reports/state/OKLA/2024",
			setupMock:      func(m *mockStateRunner) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid year",
			state:          "OK",
			year:           "twenty",
			url:            "/api/v1/reports/state/OK/twenty",
			setupMock:      func(m *mockStateRunner) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "run failure",
			state: "OK",
			year:  "2024",
			url:   "/api/v1/reports/state/OK/2024",
			setupMock: func(m *mockStateRunner) {
				m.On("Run", mock.Anything, "OK", "2024", mock.Anything).Return(
					nil,
					fmt.Errorf("fetch failed"),
				)
			},
			expectedStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := new(mockStateRunner)
			tt.setupMock(state)
			handler := setupHandler(new(mockResolver), new(mockHistoryRunner), state)

			req := httptest.NewRequest("GET", tt.url, nil)
			rec := httptest.NewRecorder()

			ctx := chi.NewRouteContext()
			ctx.URLParams.Add("state", tt.state)
			ctx.URLParams.Add("year", tt.year)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))

			handler.GetStateReport(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response api.StateReport
				err := json.NewDecoder(rec.Body).Decode(&response)
				assert.NoError(t, err)
				assert.Equal(t, tt.state, response.State)
			}

			state.AssertExpectations(t)
		})
	}
}
