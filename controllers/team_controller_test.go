package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bugboard/models"
)

func TestListTeamsPublicReducedProjection(t *testing.T) {
	app, db := newTestApp(t)
	createTeam(t, db, "alpha")
	createTeam(t, db, "beta")

	// No token needed
	resp := doRequest(t, app, http.MethodGet, "/api/teams/no-secrets", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []map[string]interface{}
	decodeBody(t, resp, &teams)
	require.Len(t, teams, 2)
	for _, team := range teams {
		assert.Contains(t, team, "id")
		assert.Contains(t, team, "name")
		assert.NotContains(t, team, "description")
		assert.NotContains(t, team, "repository")
	}
}

func TestListTeams(t *testing.T) {
	app, db := newTestApp(t)
	createTeam(t, db, "alpha")
	out := registerUser(t, app, "tester@example.com", models.RoleTester, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/teams/", out.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var teams []models.Team
	decodeBody(t, resp, &teams)
	require.Len(t, teams, 1)
	assert.Equal(t, "alpha", teams[0].Name)
	assert.Equal(t, "https://github.com/org/alpha", teams[0].Repository)
}

func TestGetTeamWithMembers(t *testing.T) {
	app, db := newTestApp(t)
	team := createTeam(t, db, "alpha")
	member := registerUser(t, app, "member@example.com", models.RoleTeamMember, &team.ID)

	resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/teams/%d", team.ID), member.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Team
	decodeBody(t, resp, &got)
	assert.Equal(t, team.Name, got.Name)
	require.Len(t, got.Members, 1)
	assert.Equal(t, member.User.ID, got.Members[0].User.ID)
	assert.Equal(t, "member@example.com", got.Members[0].User.Email)
}

func TestGetTeamNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	out := registerUser(t, app, "tester@example.com", models.RoleTester, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/teams/42", out.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJoinTeam(t *testing.T) {
	app, db := newTestApp(t)
	team := createTeam(t, db, "alpha")
	out := registerUser(t, app, "tester@example.com", models.RoleTester, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/teams/join", out.Token, map[string]interface{}{
		"teamId": team.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var membership models.TeamMember
	require.NoError(t, db.Where("user_id = ? AND team_id = ?", out.User.ID, team.ID).First(&membership).Error)

	// Joining twice is rejected
	resp = doRequest(t, app, http.MethodPost, "/api/teams/join", out.Token, map[string]interface{}{
		"teamId": team.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinUnknownTeam(t *testing.T) {
	app, _ := newTestApp(t)
	out := registerUser(t, app, "tester@example.com", models.RoleTester, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/teams/join", out.Token, map[string]interface{}{
		"teamId": 9999,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
