package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{"2025-10-15", true},
		{"2020-02-29", true},
		{"2025-02-29", false}, // not a real date
		{"2025-13-01", false},
		{"2025-10-5", false},
		{"2025/10/15", false},
		{"", false},
		{"2025-10-15T00:00:00", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDateKey(tt.key), "key %q", tt.key)
	}
}

func TestIsWeekKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want bool
	}{
		{"2025-W42", true},
		{"2025-W01", true},
		{"2020-W53", true},
		{"2025-W00", false},
		{"2025-W54", false},
		{"2025-W5", false},
		{"2025-42", false},
		{"", false},
		{"2025-W42x", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsWeekKey(tt.key), "key %q", tt.key)
	}
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Alice", User{ID: "u1", Name: "Alice"}.DisplayName())
	assert.Equal(t, "u1", User{ID: "u1"}.DisplayName())
}

func TestGoalTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, GoalTypeDaily.Valid())
	assert.True(t, GoalTypeWeekly.Valid())
	assert.False(t, GoalType("monthly").Valid())
}
