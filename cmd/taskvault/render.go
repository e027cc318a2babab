package main

import (
	"fmt"
	"time"

	"taskVault/internal/models/task"
	"taskVault/internal/points"
)

// TaskView — представление задачи для вывода; статус всегда производный
type TaskView struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Priority  string   `json:"priority"`
	Intensity string   `json:"intensity"`
	Points    int      `json:"points"`
	Category  string   `json:"category"`
	DueDate   string   `json:"dueDate,omitempty"`
	DueTime   string   `json:"dueTime,omitempty"`
	Checklist string   `json:"checklist,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

func renderTask(t *task.Task) TaskView {
	view := TaskView{
		ID:        t.ID,
		Title:     t.Title,
		Status:    string(t.EffectiveStatus(time.Now())),
		Priority:  string(t.Priority),
		Intensity: string(t.Intensity),
		Points:    points.ForTask(t),
		Category:  t.Category,
		DueDate:   t.DueDate,
		DueTime:   t.DueTime,
		Tags:      t.Tags,
	}

	if done, total := t.ChecklistProgress(); total > 0 {
		view.Checklist = fmt.Sprintf("%d/%d", done, total)
	}
	return view
}

func renderTasks(tasks []*task.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = renderTask(t)
	}
	return views
}

func printTaskDetail(t *task.Task) {
	view := renderTask(t)

	fmt.Printf("%s  [%s]\n", view.ID, view.Status)
	fmt.Printf("Название: %s\n", view.Title)
	if t.Description != "" {
		fmt.Printf("Описание: %s\n", t.Description)
	}
	fmt.Printf("Категория: %s, приоритет: %s, интенсивность: %s (+%d)\n",
		view.Category, view.Priority, view.Intensity, view.Points)
	if view.DueDate != "" {
		line := "Дедлайн: " + view.DueDate
		if view.DueTime != "" {
			line += " " + view.DueTime
		}
		fmt.Println(line)
	}
	if t.Reminder != "" {
		fmt.Printf("Напоминание: за %s мин.\n", t.Reminder)
	}
	if len(view.Tags) > 0 {
		fmt.Printf("Теги: %v\n", view.Tags)
	}
	if t.Completed {
		fmt.Printf("Завершена: %s\n", t.CompletedAt)
	}
	for _, item := range t.Checklist {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %s  (%s)\n", mark, item.Text, item.ID)
	}
}

func printTasks(tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Println("Задач нет")
		return
	}

	for _, t := range tasks {
		view := renderTask(t)

		line := fmt.Sprintf("%s  [%s] %s (%s, +%d)", view.ID, view.Status, view.Title, view.Intensity, view.Points)
		if view.DueDate != "" {
			line += "  до " + view.DueDate
			if view.DueTime != "" {
				line += " " + view.DueTime
			}
		}
		if view.Checklist != "" {
			line += "  чек-лист " + view.Checklist
		}
		fmt.Println(line)
	}
}
