package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bugboard/config"
	"bugboard/models"
	"bugboard/routes"
)

var testDBCounter int64

// newTestApp wires the full route table against a fresh in-memory
// SQLite database, so handlers run exactly as in production minus the
// postgres server.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = config.Config{
		Environment:   "test",
		JWTSecret:     "test-secret",
		RateLimitAuth: 1000,
		CORSOrigin:    "*",
	}

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on",
		atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))

	config.DB = db

	app := fiber.New()
	routes.SetupRoutes(app, db)
	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createTeam(t *testing.T, db *gorm.DB, name string) models.Team {
	t.Helper()
	team := models.Team{
		Name:        name,
		Description: name + " description",
		Repository:  "https://github.com/org/" + name,
	}
	require.NoError(t, db.Create(&team).Error)
	return team
}

type authResponse struct {
	User  models.User  `json:"user"`
	Team  *models.Team `json:"team"`
	Token string       `json:"token"`
}

func registerUser(t *testing.T, app *fiber.App, email string, role models.UserRole, teamID *uint) authResponse {
	t.Helper()

	payload := map[string]interface{}{
		"email":    email,
		"password": "secret123",
		"role":     string(role),
	}
	if teamID != nil {
		payload["teamID"] = *teamID
	}

	resp := doRequest(t, app, http.MethodPost, "/api/users/register", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out authResponse
	decodeBody(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out
}
