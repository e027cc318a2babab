package points_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"taskVault/internal/models/task"
	"taskVault/internal/points"
)

// TestForIntensity тестирует фиксированную таблицу очков
func TestForIntensity(t *testing.T) {
	tests := []struct {
		intensity task.Intensity
		expected  int
	}{
		{task.IntensitySmall, 5},
		{task.IntensityMedium, 10},
		{task.IntensityBig, 20},
		{task.IntensityGiant, 40},
		{task.IntensityOptional, 2},
		{task.Intensity("unknown"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.intensity), func(t *testing.T) {
			assert.Equal(t, tt.expected, points.ForIntensity(tt.intensity))
		})
	}
}

// TestLevelFor тестирует расчёт уровня
func TestLevelFor(t *testing.T) {
	tests := []struct {
		points   int
		expected int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, points.LevelFor(tt.points), "points=%d", tt.points)
	}
}

// TestLevelProgressPercent тестирует процент внутри уровня
func TestLevelProgressPercent(t *testing.T) {
	// начало нового уровня — 0%
	assert.Equal(t, 0, points.LevelProgressPercent(100))
	assert.Equal(t, 50, points.LevelProgressPercent(150))
	assert.Equal(t, 0, points.LevelProgressPercent(0))
	assert.Equal(t, 99, points.LevelProgressPercent(199))

	// диапазон [0, 100] на произвольных значениях
	for p := 0; p <= 500; p += 7 {
		percent := points.LevelProgressPercent(p)
		assert.GreaterOrEqual(t, percent, 0)
		assert.LessOrEqual(t, percent, 100)
	}
}

// TestRemainingXP тестирует остаток до следующего уровня
func TestRemainingXP(t *testing.T) {
	assert.Equal(t, 100, points.RemainingXP(0))
	assert.Equal(t, 1, points.RemainingXP(99))
	assert.Equal(t, 100, points.RemainingXP(100))
	assert.Equal(t, 50, points.RemainingXP(150))
}

// TestCompletedOn тестирует сравнение календарных дней
func TestCompletedOn(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, points.CompletedOn("2025-03-10T08:00:00Z", now))
	assert.False(t, points.CompletedOn("2025-03-09T23:59:59Z", now))
	assert.False(t, points.CompletedOn("", now))
}

// TestStreakMaintained тестирует правило вчера-или-сегодня
func TestStreakMaintained(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		last     string
		expected bool
	}{
		{"today", "2025-03-10T01:00:00Z", true},
		{"yesterday", "2025-03-09T23:00:00Z", true},
		{"two days ago", "2025-03-08T23:00:00Z", false},
		{"tomorrow is not a streak source", "2025-03-11T00:00:00Z", false},
		{"never completed", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, points.StreakMaintained(tt.last, now))
		})
	}
}

// TestEarnedOn тестирует сумму очков за день
func TestEarnedOn(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	completed := []*task.Task{
		{ID: "1", Intensity: task.IntensityBig, CompletedAt: "2025-03-10T09:00:00Z"},
		{ID: "2", Intensity: task.IntensitySmall, CompletedAt: "2025-03-10T12:00:00Z"},
		{ID: "3", Intensity: task.IntensityGiant, CompletedAt: "2025-03-09T12:00:00Z"},
		{ID: "4", Intensity: task.IntensityMedium},
	}

	assert.Equal(t, 25, points.EarnedOn(completed, now))
	assert.Equal(t, 0, points.EarnedOn(nil, now))
}
