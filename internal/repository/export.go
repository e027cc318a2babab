package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"taskVault/internal/models"
	"taskVault/internal/models/task"
)

// ExportDocument — единый JSON-документ со всем состоянием приложения
type ExportDocument struct {
	Profile        *models.ProfileData  `json:"profile"`
	Tasks          []*task.Task         `json:"tasks"`
	CompletedTasks []*task.Task         `json:"completedTasks"`
	Progress       *models.ProgressData `json:"progress"`
	Categories     []models.Category    `json:"categories"`
	Settings       *models.Settings     `json:"settings"`
	Onboarded      bool                 `json:"onboarded"`
}

func (r *Repos) Export(ctx context.Context) ([]byte, error) {
	progress := r.GetProgress(ctx)
	settings := r.GetSettings(ctx)

	doc := ExportDocument{
		Profile:        r.GetProfile(ctx),
		Tasks:          r.GetTasks(ctx),
		CompletedTasks: r.GetCompletedTasks(ctx),
		Progress:       &progress,
		Categories:     r.GetCategories(ctx),
		Settings:       &settings,
		Onboarded:      r.HasOnboarded(ctx),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация экспорта: %w", err)
	}
	return data, nil
}

// importDocument различает отсутствующее поле и присутствующее: пишутся
// только присутствующие — импорт является частичным слиянием
type importDocument struct {
	Profile        json.RawMessage `json:"profile"`
	Tasks          json.RawMessage `json:"tasks"`
	CompletedTasks json.RawMessage `json:"completedTasks"`
	Progress       json.RawMessage `json:"progress"`
	Categories     json.RawMessage `json:"categories"`
	Settings       json.RawMessage `json:"settings"`
	Onboarded      json.RawMessage `json:"onboarded"`
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// Import принимает формат Export. Весь разбор выполняется до первой
// записи: ошибка парсинга прерывает импорт, не тронув хранилище. Отказ
// сохранения на середине не откатывается — известное слабое место.
func (r *Repos) Import(ctx context.Context, data []byte) error {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("разбор импортируемого документа: %w", err)
	}

	var profile models.ProfileData
	var tasks, completedTasks []*task.Task
	var progress models.ProgressData
	var categories []models.Category
	var settings models.Settings
	var onboarded bool

	fields := []struct {
		raw json.RawMessage
		out any
	}{
		{doc.Profile, &profile},
		{doc.Tasks, &tasks},
		{doc.CompletedTasks, &completedTasks},
		{doc.Progress, &progress},
		{doc.Categories, &categories},
		{doc.Settings, &settings},
		{doc.Onboarded, &onboarded},
	}
	for _, field := range fields {
		if !present(field.raw) {
			continue
		}
		if err := json.Unmarshal(field.raw, field.out); err != nil {
			return fmt.Errorf("разбор импортируемого документа: %w", err)
		}
	}

	if present(doc.Profile) {
		if err := r.SaveProfile(ctx, &profile); err != nil {
			return err
		}
	}
	if present(doc.Tasks) {
		if err := r.SaveTasks(ctx, tasks); err != nil {
			return err
		}
	}
	if present(doc.CompletedTasks) {
		if err := r.SaveCompletedTasks(ctx, completedTasks); err != nil {
			return err
		}
	}
	if present(doc.Progress) {
		if err := r.SaveProgress(ctx, progress); err != nil {
			return err
		}
	}
	if present(doc.Categories) {
		if err := r.SaveCategories(ctx, categories); err != nil {
			return err
		}
	}
	if present(doc.Settings) {
		if err := r.SaveSettings(ctx, settings); err != nil {
			return err
		}
	}
	if present(doc.Onboarded) {
		if err := r.SetOnboarded(ctx, onboarded); err != nil {
			return err
		}
	}

	return nil
}
