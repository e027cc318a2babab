// Package service — оркестратор состояния приложения: держит состояние
// в памяти, зовёт репозитории и движок очков в ответ на действия
// пользователя. Сначала синхронно меняется память (интерфейс видит
// изменение сразу), затем состояние сохраняется; отказ сохранения
// логируется и не возвращается вызывающему, кроме случаев, где контракт
// действия требует видимого отказа (удаление занятой категории, импорт).
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models"
	"taskVault/internal/models/task"
	"taskVault/internal/points"
)

type Repository interface {
	GetProfile(ctx context.Context) *models.ProfileData
	SaveProfile(ctx context.Context, profile *models.ProfileData) error
	GetTasks(ctx context.Context) []*task.Task
	SaveTasks(ctx context.Context, tasks []*task.Task) error
	GetCompletedTasks(ctx context.Context) []*task.Task
	SaveCompletedTasks(ctx context.Context, tasks []*task.Task) error
	GetProgress(ctx context.Context) models.ProgressData
	SaveProgress(ctx context.Context, progress models.ProgressData) error
	GetCategories(ctx context.Context) []models.Category
	SaveCategories(ctx context.Context, categories []models.Category) error
	GetSettings(ctx context.Context) models.Settings
	SaveSettings(ctx context.Context, settings models.Settings) error
	HasOnboarded(ctx context.Context) bool
	SetOnboarded(ctx context.Context, onboarded bool) error
	ClearAll(ctx context.Context) error
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) error
}

type AppService struct {
	mtx  sync.Mutex
	repo Repository
	now  func() time.Time

	profile    *models.ProfileData
	tasks      []*task.Task
	completed  []*task.Task
	progress   models.ProgressData
	settings   models.Settings
	categories []models.Category
	onboarded  bool
}

type Option func(*AppService)

// WithClock подменяет источник времени — для тестов серий и дедлайнов
func WithClock(now func() time.Time) Option {
	return func(s *AppService) {
		s.now = now
	}
}

func New(ctx context.Context, repo Repository, options ...Option) *AppService {
	s := &AppService{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	s.reload(ctx)
	return s
}

// reload перечитывает всё состояние из репозиториев
func (s *AppService) reload(ctx context.Context) {
	s.profile = s.repo.GetProfile(ctx)
	s.tasks = s.repo.GetTasks(ctx)
	s.completed = s.repo.GetCompletedTasks(ctx)
	s.progress = s.repo.GetProgress(ctx)
	s.settings = s.repo.GetSettings(ctx)
	s.categories = s.repo.GetCategories(ctx)
	s.onboarded = s.repo.HasOnboarded(ctx)
}

func (s *AppService) nowISO() string {
	return s.now().UTC().Format(time.RFC3339)
}

// --- сохранение: лучшее из возможного, отказ только в лог ---

func (s *AppService) persistTasks(ctx context.Context) {
	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		logger.Warn("Service: Не удалось сохранить активные задачи", zap.Error(err))
	}
}

func (s *AppService) persistCompleted(ctx context.Context) {
	if err := s.repo.SaveCompletedTasks(ctx, s.completed); err != nil {
		logger.Warn("Service: Не удалось сохранить завершённые задачи", zap.Error(err))
	}
}

func (s *AppService) persistProgress(ctx context.Context) {
	if err := s.repo.SaveProgress(ctx, s.progress); err != nil {
		logger.Warn("Service: Не удалось сохранить прогресс", zap.Error(err))
	}
}

func (s *AppService) persistCategories(ctx context.Context) {
	if err := s.repo.SaveCategories(ctx, s.categories); err != nil {
		logger.Warn("Service: Не удалось сохранить категории", zap.Error(err))
	}
}

// --- чтение состояния ---

func (s *AppService) Onboarded() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.onboarded
}

func (s *AppService) Profile() *models.ProfileData {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.profile == nil {
		return nil
	}
	copied := *s.profile
	return &copied
}

func (s *AppService) Tasks() []*task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return cloneTasks(s.tasks)
}

func (s *AppService) CompletedTasks() []*task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return cloneTasks(s.completed)
}

func (s *AppService) Progress() models.ProgressData {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.progress
}

func (s *AppService) Settings() models.Settings {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.settings
}

func (s *AppService) Categories() []models.Category {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *AppService) PointsEarnedToday() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return points.EarnedOn(s.completed, s.now())
}

func (s *AppService) LevelProgressPercent() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return points.LevelProgressPercent(s.progress.Points)
}

func (s *AppService) RemainingXP() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return points.RemainingXP(s.progress.Points)
}

// TasksOn — задачи обеих коллекций с dueDate на указанный день
// (данные для календаря, date в формате 2006-01-02)
func (s *AppService) TasksOn(date string) []*task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	res := []*task.Task{}
	for _, t := range s.tasks {
		if t.DueDate == date {
			res = append(res, t.Clone())
		}
	}
	for _, t := range s.completed {
		if t.DueDate == date {
			res = append(res, t.Clone())
		}
	}
	return res
}

// DueToday — активные задачи с дедлайном сегодня (местный день)
func (s *AppService) DueToday() []*task.Task {
	return s.TasksOnActive(s.now().Format("2006-01-02"))
}

// TasksOnActive — только активные задачи на день
func (s *AppService) TasksOnActive(date string) []*task.Task {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	res := []*task.Task{}
	for _, t := range s.tasks {
		if t.DueDate == date {
			res = append(res, t.Clone())
		}
	}
	return res
}

// --- профиль, настройки, онбординг ---

func (s *AppService) SaveUserProfile(ctx context.Context, profile models.ProfileData) error {
	if strings.TrimSpace(profile.FullName) == "" {
		return NewValidationError("fullName", "имя не может быть пустым")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.profile = &profile
	if err := s.repo.SaveProfile(ctx, s.profile); err != nil {
		logger.Warn("Service: Не удалось сохранить профиль", zap.Error(err))
	}
	return nil
}

func (s *AppService) UpdateSettings(ctx context.Context, settings models.Settings) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.settings = settings
	if err := s.repo.SaveSettings(ctx, settings); err != nil {
		logger.Warn("Service: Не удалось сохранить настройки", zap.Error(err))
	}
}

func (s *AppService) MarkOnboarded(ctx context.Context) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.onboarded = true
	if err := s.repo.SetOnboarded(ctx, true); err != nil {
		logger.Warn("Service: Не удалось сохранить флаг онбординга", zap.Error(err))
	}
}

func cloneTasks(tasks []*task.Task) []*task.Task {
	res := make([]*task.Task, len(tasks))
	for i, t := range tasks {
		res[i] = t.Clone()
	}
	return res
}
