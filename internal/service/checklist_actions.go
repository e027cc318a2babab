package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models/task"
)

// Операции над чек-листом активной задачи. Устаревшие id задачи или
// пункта — тихие no-op.

func (s *AppService) AddChecklistItem(ctx context.Context, taskID, text string) (*task.ChecklistItem, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewValidationError("text", "пункт чек-листа не может быть пустым")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, taskID)
	if ind < 0 {
		logger.Info("Service: Задача для чек-листа не найдена", zap.String("task_id", taskID))
		return nil, nil
	}

	item := task.ChecklistItem{
		ID:        uuid.New().String(),
		Text:      text,
		Completed: false,
	}
	s.tasks[ind].Checklist = append(s.tasks[ind].Checklist, item)
	s.persistTasks(ctx)

	return &item, nil
}

func (s *AppService) UpdateChecklistItem(ctx context.Context, taskID string, item task.ChecklistItem) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, taskID)
	if ind < 0 {
		return
	}

	checklist := s.tasks[ind].Checklist
	for i := range checklist {
		if checklist[i].ID == item.ID {
			checklist[i] = item
			s.persistTasks(ctx)
			return
		}
	}
}

func (s *AppService) ToggleChecklistItem(ctx context.Context, taskID, itemID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, taskID)
	if ind < 0 {
		return
	}

	checklist := s.tasks[ind].Checklist
	for i := range checklist {
		if checklist[i].ID == itemID {
			checklist[i].Completed = !checklist[i].Completed
			s.persistTasks(ctx)
			return
		}
	}
}

func (s *AppService) RemoveChecklistItem(ctx context.Context, taskID, itemID string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, taskID)
	if ind < 0 {
		return
	}

	checklist := s.tasks[ind].Checklist
	for i := range checklist {
		if checklist[i].ID == itemID {
			s.tasks[ind].Checklist = append(checklist[:i], checklist[i+1:]...)
			s.persistTasks(ctx)
			return
		}
	}
}
