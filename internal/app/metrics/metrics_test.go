package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/":                         "/",
		"/healthz":                  "/healthz",
		"/api/users":                "/api/users",
		"/api/users/abc":            "/api/users/{id}",
		"/api/users/abc/logs":       "/api/users/{id}/logs",
		"/api/users/abc/exercises/": "/api/users/{id}/exercises",
		"/api/other/thing":          "/api/other",
	}
	for raw, want := range cases {
		assert.Equal(t, want, canonicalPath(raw), raw)
	}
}

func TestInstrumentHandler_UsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(InstrumentHandler)
	router.HandleFunc("/api/users/{id}/logs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := httpRequests.WithLabelValues(http.MethodGet, "/api/users/{id}/logs", "404")
	before := testutil.ToFloat64(counter)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/xyz/logs", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestDomainCounters(t *testing.T) {
	users := testutil.ToFloat64(usersCreated)
	exercises := testutil.ToFloat64(exercisesLogged)

	RecordUserCreated()
	RecordExerciseLogged(30)
	RecordLogQuery(3)

	assert.Equal(t, users+1, testutil.ToFloat64(usersCreated))
	assert.Equal(t, exercises+1, testutil.ToFloat64(exercisesLogged))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordUserCreated()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exercise_tracker_users_created_total")
}
