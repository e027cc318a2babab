package task

import (
	"strings"
	"time"
)

// Task хранится как JSON; все временные метки — строки ISO (RFC3339),
// dueDate/startDate — "2006-01-02", dueTime/startTime — "15:04".
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     string          `json:"dueDate,omitempty"`
	DueTime     string          `json:"dueTime,omitempty"`
	StartDate   string          `json:"startDate,omitempty"`
	StartTime   string          `json:"startTime,omitempty"`
	Priority    Priority        `json:"priority"`
	Intensity   Intensity       `json:"intensity"`
	Category    string          `json:"category"`
	ColorTag    string          `json:"colorTag,omitempty"`
	Reminder    string          `json:"reminder,omitempty"`
	Repeat      Repeat          `json:"repeat,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	Status      Status          `json:"status,omitempty"`
	CreatedAt   string          `json:"createdAt"`
	Completed   bool            `json:"completed"`
	CompletedAt string          `json:"completedAt,omitempty"`
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Intensity string
type Priority string
type Repeat string
type Status string

const IntensitySmall Intensity = "small"
const IntensityMedium Intensity = "medium"
const IntensityBig Intensity = "big"
const IntensityGiant Intensity = "giant"
const IntensityOptional Intensity = "optional"

const PriorityHigh Priority = "high"
const PriorityMedium Priority = "medium"
const PriorityLow Priority = "low"

const RepeatNone Repeat = "none"
const RepeatDaily Repeat = "daily"
const RepeatWeekly Repeat = "weekly"
const RepeatMonthly Repeat = "monthly"
const RepeatYearly Repeat = "yearly"

const StatusScheduled Status = "scheduled"
const StatusInProgress Status = "in-progress"
const StatusCompleted Status = "completed"
const StatusOverdue Status = "overdue"
const StatusMissed Status = "missed"

func ValidIntensity(i Intensity) bool {
	switch i {
	case IntensitySmall, IntensityMedium, IntensityBig, IntensityGiant, IntensityOptional:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// DueAt собирает дедлайн из dueDate и dueTime. Без dueTime дедлайн —
// конец дня. Возвращает false, если dueDate не задана или не парсится.
func (t *Task) DueAt() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}

	if t.DueTime != "" {
		due, err := time.ParseInLocation("2006-01-02 15:04", t.DueDate+" "+t.DueTime, time.Local)
		if err == nil {
			return due, true
		}
	}

	day, err := time.ParseInLocation("2006-01-02", t.DueDate, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(24*time.Hour - time.Second), true
}

// EffectiveStatus — производный статус. Хранимое поле Status является
// справочным и никогда не решает, завершена ли задача: полномочие на
// завершение только у пары Completed/CompletedAt.
func (t *Task) EffectiveStatus(now time.Time) Status {
	if t.Completed {
		return StatusCompleted
	}

	if due, ok := t.DueAt(); ok && due.Before(now) {
		return StatusOverdue
	}

	if t.Status != "" && t.Status != StatusCompleted {
		return t.Status
	}
	return StatusScheduled
}

// ChecklistProgress возвращает число выполненных пунктов и общее число
func (t *Task) ChecklistProgress() (done, total int) {
	for _, item := range t.Checklist {
		if item.Completed {
			done++
		}
	}
	return done, len(t.Checklist)
}

// Clone — глубокая копия: слайсы не разделяются с оригиналом
func (t *Task) Clone() *Task {
	copied := *t

	if t.Tags != nil {
		copied.Tags = append([]string(nil), t.Tags...)
	}
	if t.Checklist != nil {
		copied.Checklist = append([]ChecklistItem(nil), t.Checklist...)
	}
	return &copied
}

// CompletedDay — календарный день завершения (часть до 'T')
func (t *Task) CompletedDay() string {
	day, _, _ := strings.Cut(t.CompletedAt, "T")
	return day
}
