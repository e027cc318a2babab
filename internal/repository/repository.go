// Package repository — типизированные аксессоры поверх storage.Store:
// по одной коллекции на сущность, фиксированные имена, фиксированные
// значения по умолчанию.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models"
	"taskVault/internal/models/task"
	"taskVault/internal/storage"
)

const colProfile = "first-projects-profile"
const colTasks = "first-projects-tasks"
const colCompletedTasks = "first-projects-completed-tasks"
const colProgress = "first-projects-progress"
const colCategories = "first-projects-categories"
const colSettings = "first-projects-settings"
const colOnboarded = "first-projects-onboarded"

func collectionNames() []string {
	return []string{
		colProfile,
		colTasks,
		colCompletedTasks,
		colProgress,
		colCategories,
		colSettings,
		colOnboarded,
	}
}

type ClearableStore interface {
	storage.Store
	ClearAll(ctx context.Context, collections []string) error
}

type Repos struct {
	store ClearableStore
}

func New(store ClearableStore) *Repos {
	return &Repos{store: store}
}

// load читает коллекцию в out. Отсутствие и битый JSON равнозначны
// «нет значения»: вызывающий подставляет значение по умолчанию.
func (r *Repos) load(ctx context.Context, collection string, out any) bool {
	value, err := r.store.Get(ctx, collection)
	if err != nil {
		return false
	}

	if err := json.Unmarshal(value, out); err != nil {
		logger.Warn("Repository: Повреждённое значение в коллекции, берём значение по умолчанию",
			zap.String("collection", collection),
			zap.Error(err))
		return false
	}
	return true
}

func (r *Repos) save(ctx context.Context, collection string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("сериализация коллекции %s: %w", collection, err)
	}

	if err := r.store.Put(ctx, collection, data); err != nil {
		return fmt.Errorf("сохранение коллекции %s: %w", collection, err)
	}
	return nil
}

func (r *Repos) GetProfile(ctx context.Context) *models.ProfileData {
	var profile models.ProfileData
	if !r.load(ctx, colProfile, &profile) {
		return nil
	}
	return &profile
}

func (r *Repos) SaveProfile(ctx context.Context, profile *models.ProfileData) error {
	return r.save(ctx, colProfile, profile)
}

func (r *Repos) GetTasks(ctx context.Context) []*task.Task {
	tasks := []*task.Task{}
	r.load(ctx, colTasks, &tasks)
	return tasks
}

func (r *Repos) SaveTasks(ctx context.Context, tasks []*task.Task) error {
	return r.save(ctx, colTasks, tasks)
}

func (r *Repos) GetCompletedTasks(ctx context.Context) []*task.Task {
	tasks := []*task.Task{}
	r.load(ctx, colCompletedTasks, &tasks)
	return tasks
}

func (r *Repos) SaveCompletedTasks(ctx context.Context, tasks []*task.Task) error {
	return r.save(ctx, colCompletedTasks, tasks)
}

func (r *Repos) GetProgress(ctx context.Context) models.ProgressData {
	progress := models.DefaultProgress()
	r.load(ctx, colProgress, &progress)
	return progress
}

func (r *Repos) SaveProgress(ctx context.Context, progress models.ProgressData) error {
	return r.save(ctx, colProgress, progress)
}

func (r *Repos) GetCategories(ctx context.Context) []models.Category {
	categories := []models.Category{}
	if !r.load(ctx, colCategories, &categories) {
		return models.DefaultCategories()
	}
	return categories
}

// SaveCategories перезаписывает коллекцию целиком, без слияния
func (r *Repos) SaveCategories(ctx context.Context, categories []models.Category) error {
	return r.save(ctx, colCategories, categories)
}

func (r *Repos) GetSettings(ctx context.Context) models.Settings {
	settings := models.DefaultSettings()
	r.load(ctx, colSettings, &settings)
	return settings
}

func (r *Repos) SaveSettings(ctx context.Context, settings models.Settings) error {
	return r.save(ctx, colSettings, settings)
}

func (r *Repos) HasOnboarded(ctx context.Context) bool {
	var onboarded bool
	r.load(ctx, colOnboarded, &onboarded)
	return onboarded
}

func (r *Repos) SetOnboarded(ctx context.Context, onboarded bool) error {
	return r.save(ctx, colOnboarded, onboarded)
}

// ClearAll вычищает каждую коллекцию. Операция не атомарна: отказ на
// середине оставляет часть коллекций — см. тест на частичный сбой.
func (r *Repos) ClearAll(ctx context.Context) error {
	if err := r.store.ClearAll(ctx, collectionNames()); err != nil {
		return fmt.Errorf("очистка хранилища: %w", err)
	}
	return nil
}
