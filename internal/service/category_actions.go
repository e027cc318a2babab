package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models"
)

func (s *AppService) AddCategory(ctx context.Context, name, color string) (models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return models.Category{}, NewValidationError("name", "название категории не может быть пустым")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	category := models.Category{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}
	s.categories = append(s.categories, category)
	s.persistCategories(ctx)

	logger.ActionInfo("add_category", "Service: Категория добавлена", zap.String("category_id", category.ID))
	return category, nil
}

func (s *AppService) UpdateCategory(ctx context.Context, category models.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return NewValidationError("name", "название категории не может быть пустым")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == category.ID {
			s.categories[i] = category
			s.persistCategories(ctx)
			return nil
		}
	}

	logger.Info("Service: Категория для обновления не найдена", zap.String("category_id", category.ID))
	return nil
}

// DeleteCategory отклоняет удаление, пока на категорию ссылается хоть
// одна задача — активная или завершённая. Никакого каскада
func (s *AppService) DeleteCategory(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	inUse := 0
	for _, t := range s.tasks {
		if t.Category == id {
			inUse++
		}
	}
	for _, t := range s.completed {
		if t.Category == id {
			inUse++
		}
	}

	if inUse > 0 {
		logger.Warn("Service: Отказ в удалении занятой категории",
			zap.String("category_id", id),
			zap.Int("task_count", inUse))
		return NewCategoryInUse(id, inUse)
	}

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.persistCategories(ctx)

			logger.ActionInfo("delete_category", "Service: Категория удалена", zap.String("category_id", id))
			return nil
		}
	}

	logger.Info("Service: Категория для удаления не найдена", zap.String("category_id", id))
	return nil
}
