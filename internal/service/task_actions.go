package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models/task"
	"taskVault/internal/points"
)

// AddTask проверяет обязательные поля на границе конструирования,
// присваивает id и createdAt и кладёт задачу в активную коллекцию
func (s *AppService) AddTask(ctx context.Context, draft *task.Task) (*task.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, NewValidationError("title", "название не может быть пустым")
	}
	if !task.ValidIntensity(draft.Intensity) {
		return nil, NewValidationError("intensity", "неизвестная интенсивность")
	}
	if !task.ValidPriority(draft.Priority) {
		return nil, NewValidationError("priority", "неизвестный приоритет")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	newTask := draft.Clone()
	newTask.ID = uuid.New().String()
	newTask.CreatedAt = s.nowISO()
	newTask.Completed = false
	newTask.CompletedAt = ""

	s.tasks = append(s.tasks, newTask)
	s.persistTasks(ctx)

	logger.ActionInfo("add_task", "Service: Задача добавлена",
		zap.String("task_id", newTask.ID),
		zap.String("intensity", string(newTask.Intensity)))

	return newTask.Clone(), nil
}

// UpdateTask применяет опции к активной задаче. Устаревший id — тихий
// no-op, по контракту обработки ошибок
func (s *AppService) UpdateTask(ctx context.Context, id string, options ...TaskOption) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, id)
	if ind < 0 {
		logger.Info("Service: Задача для обновления не найдена", zap.String("task_id", id))
		return
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s.tasks[ind])
	}
	s.persistTasks(ctx)
}

// DeleteTask убирает задачу из её коллекции и возвращает снимок для
// отмены; nil — задача не найдена
func (s *AppService) DeleteTask(ctx context.Context, id string) *task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if ind := indexByID(s.tasks, id); ind >= 0 {
		removed := s.tasks[ind]
		s.tasks = append(s.tasks[:ind], s.tasks[ind+1:]...)
		s.persistTasks(ctx)

		logger.ActionInfo("delete_task", "Service: Задача удалена", zap.String("task_id", id))
		return removed
	}

	if ind := indexByID(s.completed, id); ind >= 0 {
		removed := s.completed[ind]
		s.completed = append(s.completed[:ind], s.completed[ind+1:]...)
		s.persistCompleted(ctx)

		logger.ActionInfo("delete_task", "Service: Завершённая задача удалена", zap.String("task_id", id))
		return removed
	}

	logger.Info("Service: Задача для удаления не найдена", zap.String("task_id", id))
	return nil
}

// RestoreTask — обратная сторона DeleteTask: возвращает снимок в ту
// коллекцию, которой он принадлежал. Прогресс не трогается
func (s *AppService) RestoreTask(ctx context.Context, snapshot *task.Task) {
	if snapshot == nil {
		return
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if snapshot.Completed {
		s.completed = append(s.completed, snapshot)
		s.persistCompleted(ctx)
	} else {
		s.tasks = append(s.tasks, snapshot)
		s.persistTasks(ctx)
	}

	logger.ActionInfo("restore_task", "Service: Задача восстановлена", zap.String("task_id", snapshot.ID))
}

// CompleteTask переносит задачу из активной коллекции в завершённую и
// начисляет очки. Серию продвигает только первое завершение за
// календарный день. Возвращает начисленные очки; 0 — задача не найдена
func (s *AppService) CompleteTask(ctx context.Context, id string) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.tasks, id)
	if ind < 0 {
		logger.Info("Service: Задача для завершения не найдена", zap.String("task_id", id))
		return 0
	}

	lastCompletion := s.progress.LastTaskCompletionDate
	earned := s.moveToCompletedLocked(ind)
	s.applyEarnedLocked(earned, lastCompletion)

	s.persistTasks(ctx)
	s.persistCompleted(ctx)
	s.persistProgress(ctx)

	logger.ActionInfo("complete_task", "Service: Задача завершена",
		zap.String("task_id", id),
		zap.Int("points", earned),
		zap.Int("level", s.progress.Level),
		zap.Int("streak", s.progress.Streak))

	return earned
}

// CompleteTasks — массовое завершение: очки суммируются в одну запись
// прогресса, правило серии применяется один раз относительно даты до
// начала пакета
func (s *AppService) CompleteTasks(ctx context.Context, ids []string) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	lastCompletion := s.progress.LastTaskCompletionDate

	total := 0
	moved := 0
	for _, id := range ids {
		ind := indexByID(s.tasks, id)
		if ind < 0 {
			logger.Info("Service: Задача для завершения не найдена", zap.String("task_id", id))
			continue
		}
		total += s.moveToCompletedLocked(ind)
		moved++
	}

	if moved == 0 {
		return 0
	}

	s.applyEarnedLocked(total, lastCompletion)

	s.persistTasks(ctx)
	s.persistCompleted(ctx)
	s.persistProgress(ctx)

	logger.ActionInfo("complete_tasks", "Service: Пакетное завершение",
		zap.Int("moved", moved),
		zap.Int("points", total),
		zap.Int("streak", s.progress.Streak))

	return total
}

// UncompleteTask возвращает задачу в активную коллекцию и снимает её
// очки (не ниже нуля). Серия намеренно не корректируется
func (s *AppService) UncompleteTask(ctx context.Context, id string) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := indexByID(s.completed, id)
	if ind < 0 {
		logger.Info("Service: Завершённая задача не найдена", zap.String("task_id", id))
		return 0
	}

	restored := s.completed[ind]
	s.completed = append(s.completed[:ind], s.completed[ind+1:]...)

	restored.Completed = false
	restored.CompletedAt = ""
	s.tasks = append(s.tasks, restored)

	earned := points.ForTask(restored)
	newPoints := s.progress.Points - earned
	if newPoints < 0 {
		newPoints = 0
	}
	s.progress.Points = newPoints
	s.progress.Level = points.LevelFor(newPoints)

	s.persistTasks(ctx)
	s.persistCompleted(ctx)
	s.persistProgress(ctx)

	logger.ActionInfo("uncomplete_task", "Service: Задача возвращена в активные",
		zap.String("task_id", id),
		zap.Int("points", earned))

	return earned
}

// moveToCompletedLocked переносит задачу по индексу в завершённые и
// возвращает её очки; вызывается под замком
func (s *AppService) moveToCompletedLocked(ind int) int {
	completed := s.tasks[ind]
	s.tasks = append(s.tasks[:ind], s.tasks[ind+1:]...)

	completed.Completed = true
	completed.CompletedAt = s.nowISO()
	s.completed = append(s.completed, completed)

	return points.ForTask(completed)
}

// applyEarnedLocked — шаги начисления: очки, уровень, серия, дата
func (s *AppService) applyEarnedLocked(earned int, lastCompletion string) {
	now := s.now()

	newPoints := s.progress.Points + earned
	streak := s.progress.Streak

	if !points.CompletedOn(lastCompletion, now) {
		if points.StreakMaintained(lastCompletion, now) {
			streak++
		} else {
			streak = 1
		}
	}

	s.progress.Points = newPoints
	s.progress.Level = points.LevelFor(newPoints)
	s.progress.Streak = streak
	s.progress.LastTaskCompletionDate = s.nowISO()
}

func indexByID(tasks []*task.Task, id string) int {
	for ind, t := range tasks {
		if t.ID == id {
			return ind
		}
	}
	return -1
}
