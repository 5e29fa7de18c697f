package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wolfpack/fitness-hub/internal/config"
	"wolfpack/fitness-hub/internal/repository/memory"
	"wolfpack/fitness-hub/internal/seed"
	"wolfpack/fitness-hub/internal/service"
	"wolfpack/fitness-hub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			Expiration: time.Hour,
			CookieName: "fitness_session",
		},
		RateLimit: config.RateLimitConfig{PerMinute: 6000, Burst: 100},
		CORS:      config.CORSConfig{AllowOrigins: []string{"*"}},
	}

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	apparel := memory.NewApparelRepository(store)
	workouts := memory.NewWorkoutRepository(store)
	achievements := memory.NewAchievementRepository(store)
	challenges := memory.NewChallengeRepository(store)
	integrations := memory.NewIntegrationRepository(store)
	preferences := memory.NewPreferenceRepository(store)
	recommendations := memory.NewRecommendationRepository(store)

	logger := zap.NewNop()
	require.NoError(t, seed.Achievements(context.Background(), achievements, logger))
	require.NoError(t, seed.Challenges(context.Background(), challenges, logger))

	svcs := Services{
		Auth:           service.NewAuthService(users, cfg.JWT.Secret, cfg.JWT.Expiration),
		User:           service.NewUserService(users, apparel, nil),
		Workout:        service.NewWorkoutService(users, apparel, workouts, achievements, logger),
		Apparel:        service.NewApparelService(apparel),
		Achievement:    service.NewAchievementService(achievements),
		Challenge:      service.NewChallengeService(challenges, users, logger),
		Integration:    service.NewIntegrationService(integrations),
		Preference:     service.NewPreferenceService(preferences),
		Recommendation: service.NewRecommendationService(recommendations, preferences, apparel),
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	router := gin.New()
	SetupRoutes(router, cfg, svcs, hub, logger)
	return router
}

func doRequest(router *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "fitness_session" {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func registerUser(t *testing.T, router *gin.Engine, username string) *http.Cookie {
	t.Helper()
	rec := doRequest(router, http.MethodPost, "/api/register",
		`{"username":"`+username+`","password":"secret-pass-1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/register",
		`{"username":"wolf","password":"secret-pass-1","email":"wolf@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionCookie(t, rec)

	body := decodeBody(t, rec)
	assert.Equal(t, "wolf", body["username"])
	assert.NotEmpty(t, body["qrCode"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "secret-pass-1")

	// Duplicate username is rejected.
	rec = doRequest(router, http.MethodPost, "/api/register",
		`{"username":"wolf","password":"secret-pass-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Wrong password fails closed.
	rec = doRequest(router, http.MethodPost, "/api/login",
		`{"username":"wolf","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/login",
		`{"username":"wolf","password":"secret-pass-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	// Username too short.
	rec := doRequest(router, http.MethodPost, "/api/register",
		`{"username":"ab","password":"secret-pass-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Password too short.
	rec = doRequest(router, http.MethodPost, "/api/register",
		`{"username":"wolf","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/user", "/api/workouts", "/api/apparel", "/api/achievements"} {
		rec := doRequest(router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	// A garbage bearer token is rejected too.
	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileWithSessionCookie(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerUser(t, router, "wolf")

	rec := doRequest(router, http.MethodGet, "/api/user", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "wolf", body["username"])
	assert.Equal(t, float64(1), body["level"])
}

func TestLeaderboardIsPublicAndPrivacyFiltered(t *testing.T) {
	router := newTestRouter(t)
	registerUser(t, router, "visible")
	hiddenCookie := registerUser(t, router, "hidden")

	rec := doRequest(router, http.MethodPut, "/api/user/privacy",
		`{"shareWorkouts":true,"shareAchievements":true,"showInLeaderboard":false}`, hiddenCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// No session required for the leaderboard.
	rec = doRequest(router, http.MethodGet, "/api/leaderboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "visible", entries[0]["username"])
	assert.NotContains(t, rec.Body.String(), "email")
	assert.NotContains(t, rec.Body.String(), "qrCode")
}

func TestScanDisambiguation(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerUser(t, router, "wolf")

	rec := doRequest(router, http.MethodPost, "/api/apparel",
		`{"name":"Trail Shoes","type":"shoes"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	apparelQR, _ := decodeBody(t, rec)["qrCode"].(string)
	require.NotEmpty(t, apparelQR)

	rec = doRequest(router, http.MethodGet, "/api/user/qrcode", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	userQR, _ := decodeBody(t, rec)["qrCode"].(string)
	require.NotEmpty(t, userQR)

	rec = doRequest(router, http.MethodPost, "/api/scan",
		`{"qrCode":"`+apparelQR+`"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apparel", decodeBody(t, rec)["type"])

	rec = doRequest(router, http.MethodPost, "/api/scan",
		`{"qrCode":"`+userQR+`"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user", decodeBody(t, rec)["type"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = doRequest(router, http.MethodPost, "/api/scan",
		`{"qrCode":"FITNESS-UNKNOWN"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWorkoutUpdatesApparelStats(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerUser(t, router, "wolf")

	rec := doRequest(router, http.MethodPost, "/api/apparel",
		`{"name":"Compression Shirt","type":"shirt"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["id"])

	rec = doRequest(router, http.MethodPost, "/api/workouts",
		`{"type":"Running","duration":40,"calories":300,"apparelId":1}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(10), decodeBody(t, rec)["progress"])

	rec = doRequest(router, http.MethodGet, "/api/apparel/1/stats", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)
	assert.Equal(t, float64(1), stats["totalWorkouts"])
	assert.Equal(t, float64(40), stats["totalDuration"])
	assert.Equal(t, float64(300), stats["totalCalories"])

	rec = doRequest(router, http.MethodGet, "/api/user", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(8), decodeBody(t, rec)["points"])

	// Another user cannot read this garment.
	otherCookie := registerUser(t, router, "intruder")
	rec = doRequest(router, http.MethodGet, "/api/apparel/1", "", otherCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChallengeJoinAndProgress(t *testing.T) {
	router := newTestRouter(t)

	// The catalog is public.
	rec := doRequest(router, http.MethodGet, "/api/challenges", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var challenges []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &challenges))
	require.Len(t, challenges, 3)

	cookie := registerUser(t, router, "wolf")

	rec = doRequest(router, http.MethodPost, "/api/challenges/2/join", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Joining twice returns the same enrollment.
	rec = doRequest(router, http.MethodPost, "/api/challenges/2/join", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/challenges/99/join", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/user/challenges",
		`{"challengeId":2,"progress":40}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(40), decodeBody(t, rec)["progress"])

	// Progress updates on an unjoined challenge are rejected.
	rec = doRequest(router, http.MethodPost, "/api/user/challenges",
		`{"challengeId":1,"progress":10}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/user/challenges", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var joined []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &joined))
	require.Len(t, joined, 1)
}

func TestAvatarRoutesWithoutStorage(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerUser(t, router, "wolf")

	rec := doRequest(router, http.MethodPost, "/api/user/avatar",
		`{"contentType":"image/png"}`, cookie)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/user/avatar", "", cookie)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/user/avatar", "", cookie)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestRecommendationLifecycle(t *testing.T) {
	router := newTestRouter(t)
	cookie := registerUser(t, router, "wolf")

	rec := doRequest(router, http.MethodPost, "/api/user/preferences",
		`{"fitnessLevel":"intermediate","workoutPreference":"cardio","fitnessGoal":"endurance","workoutDuration":45,"workoutFrequency":3}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/workout-recommendations/generate", "", cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Cardio Blast", body["title"])
	assert.Equal(t, float64(450), body["caloriesBurn"])

	rec = doRequest(router, http.MethodPost, "/api/workout-recommendations/1/complete", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["isCompleted"])

	// Another user's session cannot touch it.
	otherCookie := registerUser(t, router, "other")
	rec = doRequest(router, http.MethodGet, "/api/workout-recommendations/1", "", otherCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPingAndMetricsExposed(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
