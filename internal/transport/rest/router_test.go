package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pediatric-triage/internal/catalog"
	"pediatric-triage/internal/classifier"
	"pediatric-triage/internal/common/logger"
	"pediatric-triage/internal/common/observability"
	"pediatric-triage/internal/llm"
	"pediatric-triage/internal/models"
	"pediatric-triage/internal/redflags"
	"pediatric-triage/internal/triage"
)

func newTestRouter(t *testing.T, model llm.Model, origins ...string) http.Handler {
	t.Helper()
	log := logger.NewTestLogger(t)
	svc := triage.NewService(catalog.Default(), redflags.NewEngine(), classifier.New(model, log), observability.NewNoop(), log)
	return NewRouter(&Container{
		Catalog:        catalog.Default(),
		Triage:         svc,
		Logger:         log,
		AllowedOrigins: origins,
		MetricsPath:    "/metrics",
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestQuestions(t *testing.T) {
	rec := do(t, newTestRouter(t, &llm.Fake{}), http.MethodGet, "/questions", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var body map[string]map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 6)
	assert.Equal(t, "radio", body["Critical Red-Flags"]["Q22"]["type"])
	assert.True(t, strings.HasPrefix(rec.Body.String(), `{"General":{"Q1":`))
}

func TestTriage_Endpoint(t *testing.T) {
	tests := []struct {
		name       string
		model      *llm.Fake
		body       string
		wantStatus int
		wantLevel  models.Level
		wantConf   string
		wantTexts  []string
		wantCalls  int
	}{
		{
			name:       "rule override",
			model:      &llm.Fake{},
			body:       `{"answers": {"Q22": "Yes"}, "language": "en"}`,
			wantStatus: http.StatusOK,
			wantLevel:  models.LevelRed,
			wantConf:   models.ConfidenceRuleOverride,
			wantTexts:  []string{},
		},
		{
			name:       "model verdict in malayalam",
			model:      &llm.Fake{Response: `{"triage_level":"GREEN","reasoning":"Mild.","confidence":"High","home_advice":["FLUIDS","UNKNOWN_KEY"]}`},
			body:       `{"answers": {"Q1": 8, "Q4": "Yes"}, "language": "ml"}`,
			wantStatus: http.StatusOK,
			wantLevel:  models.LevelGreen,
			wantConf:   "High",
			wantTexts:  []string{"വെള്ളം, ഇളനീർ തുടങ്ങിയ പാനീയങ്ങൾ ധാരാളം നൽകുക."},
			wantCalls:  1,
		},
		{
			name:       "model garbage falls back",
			model:      &llm.Fake{Response: "sorry"},
			body:       `{"answers": {"Q1": 8}, "language": "xx"}`,
			wantStatus: http.StatusOK,
			wantLevel:  models.LevelYellow,
			wantConf:   models.ConfidenceLow,
			wantTexts:  []string{},
			wantCalls:  1,
		},
		{
			name:       "language omitted",
			model:      &llm.Fake{Response: `{"triage_level":"YELLOW","reasoning":"x","confidence":"Medium","home_advice":["REST"]}`},
			body:       `{"answers": {"Q7": "Yes"}}`,
			wantStatus: http.StatusOK,
			wantLevel:  models.LevelYellow,
			wantConf:   "Medium",
			wantTexts:  []string{"Ensure the child gets adequate rest."},
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestRouter(t, tt.model), http.MethodPost, "/triage", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			for _, key := range []string{"triage_level", "reasoning", "confidence", "home_advice", "advice_texts"} {
				assert.Contains(t, resp, key)
			}
			assert.NotNil(t, resp["home_advice"])

			var verdict models.TriageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &verdict))
			assert.Equal(t, tt.wantLevel, verdict.TriageLevel)
			assert.Equal(t, tt.wantConf, verdict.Confidence)
			assert.Equal(t, tt.wantTexts, verdict.AdviceTexts)
			assert.Equal(t, tt.wantCalls, tt.model.Calls())
		})
	}
}

func TestTriage_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"answers": `},
		{"empty body", ``},
		{"answers missing", `{"language": "en"}`},
		{"boolean answer", `{"answers": {"Q3": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &llm.Fake{}
			rec := do(t, newTestRouter(t, model), http.MethodPost, "/triage", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "INVALID_REQUEST", body["code"])
			assert.NotEmpty(t, body["message"])
			assert.Equal(t, 0, model.Calls())
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, &llm.Fake{})

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	_ = do(t, router, http.MethodPost, "/triage", `{"answers": {"Q21": "Yes"}}`)
	rec = do(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "triage_rule_overrides_total")
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	newTestRouter(t, &llm.Fake{}).ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t, &llm.Fake{}, "http://localhost:8501")

	req := httptest.NewRequest(http.MethodOptions, "/triage", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:8501", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/questions", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
