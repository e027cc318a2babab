package service

import (
	"taskVault/internal/models/task"
)

// TaskOption — функция обновления одного поля задачи; UpdateTask
// применяет их к найденной задаче по очереди
type TaskOption func(*task.Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(t *task.Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(t *task.Task) {
		t.Description = description
	}
}

func WithDueDate(dueDate, dueTime string) TaskOption {
	return func(t *task.Task) {
		t.DueDate = dueDate
		t.DueTime = dueTime
	}
}

func WithStartDate(startDate, startTime string) TaskOption {
	return func(t *task.Task) {
		t.StartDate = startDate
		t.StartTime = startTime
	}
}

func WithPriority(priority task.Priority) TaskOption {
	if !task.ValidPriority(priority) {
		return nil
	}
	return func(t *task.Task) {
		t.Priority = priority
	}
}

func WithIntensity(intensity task.Intensity) TaskOption {
	if !task.ValidIntensity(intensity) {
		return nil
	}
	return func(t *task.Task) {
		t.Intensity = intensity
	}
}

func WithCategory(categoryID string) TaskOption {
	return func(t *task.Task) {
		t.Category = categoryID
	}
}

func WithColorTag(colorTag string) TaskOption {
	return func(t *task.Task) {
		t.ColorTag = colorTag
	}
}

func WithReminder(reminder string) TaskOption {
	return func(t *task.Task) {
		t.Reminder = reminder
	}
}

func WithRepeat(repeat task.Repeat) TaskOption {
	return func(t *task.Task) {
		t.Repeat = repeat
	}
}

func WithTags(tags []string) TaskOption {
	return func(t *task.Task) {
		t.Tags = tags
	}
}

func WithStatus(status task.Status) TaskOption {
	return func(t *task.Task) {
		t.Status = status
	}
}
