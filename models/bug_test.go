package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BugStatus
		ok       bool
	}{
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusResolved, true},
		{StatusOpen, StatusClosed, true},
		{StatusInProgress, StatusResolved, true},
		{StatusInProgress, StatusClosed, true},
		{StatusResolved, StatusClosed, true},

		// No backward moves, no self-transitions
		{StatusInProgress, StatusOpen, false},
		{StatusResolved, StatusInProgress, false},
		{StatusClosed, StatusResolved, false},
		{StatusClosed, StatusClosed, false},
		{StatusOpen, StatusOpen, false},

		// Unknown values never pass
		{StatusOpen, BugStatus("wontfix"), false},
		{BugStatus(""), StatusClosed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "resolved", "closed"} {
		got, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, BugStatus(s), got)
	}

	_, err := ParseStatus("IN_PROGRESS")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseSeverity(t *testing.T) {
	for _, s := range []string{"low", "medium", "high", "critical"} {
		got, err := ParseSeverity(s)
		assert.NoError(t, err)
		assert.Equal(t, BugSeverity(s), got)
	}

	_, err := ParseSeverity("blocker")
	assert.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestParseRole(t *testing.T) {
	for _, s := range []string{"tester", "team_member"} {
		got, err := ParseRole(s)
		assert.NoError(t, err)
		assert.Equal(t, UserRole(s), got)
	}

	// The old integer encodings don't round-trip as strings either
	for _, s := range []string{"0", "1", "PM", "TST", ""} {
		_, err := ParseRole(s)
		assert.ErrorIs(t, err, ErrInvalidRole)
	}
}

func TestPasswordHashing(t *testing.T) {
	var u User
	assert.NoError(t, u.SetPassword("secret123"))
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("Secret123"))
}
