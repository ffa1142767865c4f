package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/erate-atlas/pkg/models/api"
	"github.com/de-tools/erate-atlas/pkg/models/domain"
	"github.com/de-tools/erate-atlas/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	resolver := new(mockResolver)
	history := new(mockHistoryRunner)
	state := new(mockStateRunner)
	profile := config.Default()

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Resolver: resolver,
			History:  history,
			State:    state,
			Profile:  &profile,
		},
	})
	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	defaultThresholds := domain.Thresholds{
		School: profile.SchoolThreshold,
		SKU:    profile.SKUThreshold,
	}

	tests := []struct {
		name           string
		path           string
		setupMocks     func()
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name: "SearchOrganizations",
			path: "/api/v1/organizations?q=tulsa&state=OK",
			setupMocks: func() {
				resolver.On("Search", mock.Anything, "tulsa", "OK", 50).
					Return([]domain.OrganizationSummary{
						{Name: "TULSA SCHOOL DISTRICT", State: "OK", FundingYears: []string{"2024"}},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: []api.OrganizationSummary{
				{Name: "TULSA SCHOOL DISTRICT", State: "OK", FundingYears: []string{"2024"}},
			},
			parseResponse: unmarshalResponse[[]api.OrganizationSummary](),
		},
		{
			name: "GetHistoryReport",
			path: "/api/v1/reports/history/TULSA%20SCHOOL%20DISTRICT",
			setupMocks: func() {
				history.On("Run", mock.Anything, "TULSA SCHOOL DISTRICT", defaultThresholds).
					Return(&domain.HistoryReport{
						Organization:  "TULSA SCHOOL DISTRICT",
						YearsWithData: []string{"2024"},
						GrandTotal:    120000,
						Found:         true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.HistoryReport{
				Organization:  "TULSA SCHOOL DISTRICT",
				YearsWithData: []string{"2024"},
				GrandTotal:    120000,
				Found:         true,
			},
			parseResponse: unmarshalResponse[api.HistoryReport](),
		},
		{
			name: "GetStateReport",
			path: "/api/v1/reports/state/OK/2024?school-threshold=100000",
			setupMocks: func() {
				thresholds := domain.Thresholds{School: 100000, SKU: profile.SKUThreshold}
				state.On("Run", mock.Anything, "OK", "2024", thresholds).
					Return(&domain.StateReport{
						State:       "OK",
						Year:        "2024",
						RecordCount: 3,
						GrandTotal:  450000,
						Found:       true,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expected: api.StateReport{
				State:       "OK",
				Year:        "2024",
				RecordCount: 3,
				GrandTotal:  450000,
				Found:       true,
			},
			parseResponse: unmarshalResponse[api.StateReport](),
		},
		{
			name:           "SearchOrganizations_MissingTerm",
			path:           "/api/v1/organizations",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "missing query parameter q\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
		{
			name:           "GetStateReport_InvalidState",
			path:           "/api/v1/reports/state/OKLA/2024",
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
			expected:       "state must be a two-letter code\n",
			parseResponse: func(data []byte) (interface{}, error) {
				return string(data), nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Get(testServer.URL + tc.path)
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err, "Failed to read response body")

			actual, err := tc.parseResponse(body)
			require.NoError(t, err, "Failed to parse response")

			assert.Equal(t, tc.expected, actual)
		})
	}
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var response T
		err := json.Unmarshal(data, &response)
		return response, err
	}
}
