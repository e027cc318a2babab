package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models"
)

// ResetAll чистит все коллекции и возвращает состояние к значениям по
// умолчанию: пустые списки, нулевой прогресс, стандартные категории,
// флаг онбординга снят. Операция затрагивает несколько коллекций и не
// атомарна; память сбрасывается даже при частичном отказе хранилища
func (s *AppService) ResetAll(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	err := s.repo.ClearAll(ctx)

	s.profile = nil
	s.tasks = nil
	s.completed = nil
	s.progress = models.DefaultProgress()
	s.settings = models.DefaultSettings()
	s.categories = models.DefaultCategories()
	s.onboarded = false

	if err != nil {
		logger.Error("Service: Сброс данных завершился с ошибками хранилища", err)
		return fmt.Errorf("сброс данных: %w", err)
	}

	logger.ActionInfo("reset_all", "Service: Все данные сброшены")
	return nil
}

func (s *AppService) ExportData(ctx context.Context) ([]byte, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	data, err := s.repo.Export(ctx)
	if err != nil {
		logger.Error("Service: Экспорт не удался", err)
		return nil, fmt.Errorf("экспорт данных: %w", err)
	}

	logger.ActionInfo("export", "Service: Данные экспортированы", zap.Int("bytes", len(data)))
	return data, nil
}

// ImportData — частичное слияние поверх текущего состояния; ошибка
// разбора отклоняет импорт до каких-либо записей. После успешного
// импорта состояние в памяти перечитывается из репозиториев
func (s *AppService) ImportData(ctx context.Context, data []byte) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.repo.Import(ctx, data); err != nil {
		logger.Error("Service: Импорт отклонён", err)
		return NewImportError(err)
	}

	s.reload(ctx)

	logger.ActionInfo("import", "Service: Данные импортированы", zap.Int("bytes", len(data)))
	return nil
}
