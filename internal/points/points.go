// Package points — чистые функции игровой механики: очки за
// интенсивность, уровни, серии по календарным дням. Никакого скрытого
// состояния: текущий момент всегда передаётся параметром.
package points

import (
	"strings"
	"time"

	"taskVault/internal/models/task"
)

// PerLevel — порог очков на уровень
const PerLevel = 100

// таблица фиксирована и не настраивается
var byIntensity = map[task.Intensity]int{
	task.IntensitySmall:    5,
	task.IntensityMedium:   10,
	task.IntensityBig:      20,
	task.IntensityGiant:    40,
	task.IntensityOptional: 2,
}

func ForIntensity(intensity task.Intensity) int {
	return byIntensity[intensity]
}

func ForTask(t *task.Task) int {
	return ForIntensity(t.Intensity)
}

func LevelFor(points int) int {
	level := points/PerLevel + 1
	if level < 1 {
		level = 1
	}
	return level
}

// LevelProgressPercent — процент очков внутри полосы текущего уровня,
// целый, с округлением вниз
func LevelProgressPercent(points int) int {
	levelStart := (LevelFor(points) - 1) * PerLevel
	percent := (points - levelStart) * 100 / PerLevel
	if percent > 100 {
		percent = 100
	}
	return percent
}

// RemainingXP — сколько очков осталось до порога следующего уровня
func RemainingXP(points int) int {
	return LevelFor(points)*PerLevel - points
}

// dayOf — календарный день ISO-метки, часть до 'T'
func dayOf(timestamp string) string {
	day, _, _ := strings.Cut(timestamp, "T")
	return day
}

func isoDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CompletedOn: день lastCompletion совпадает с днём now
func CompletedOn(lastCompletion string, now time.Time) bool {
	if lastCompletion == "" {
		return false
	}
	return dayOf(lastCompletion) == isoDay(now)
}

// StreakMaintained: день lastCompletion — сегодня или вчера
func StreakMaintained(lastCompletion string, now time.Time) bool {
	if lastCompletion == "" {
		return false
	}

	day := dayOf(lastCompletion)
	return day == isoDay(now) || day == isoDay(now.AddDate(0, 0, -1))
}

// EarnedOn — сумма очков задач, завершённых в день now
func EarnedOn(completedTasks []*task.Task, now time.Time) int {
	today := isoDay(now)

	sum := 0
	for _, t := range completedTasks {
		if t.CompletedAt != "" && dayOf(t.CompletedAt) == today {
			sum += ForTask(t)
		}
	}
	return sum
}
