package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskVault/internal/config"
	"taskVault/internal/logger"
	"taskVault/internal/repository"
	"taskVault/internal/service"
	"taskVault/internal/storage"
	"taskVault/internal/worker"
)

type App struct {
	config    *config.Config
	store     *storage.Tiered
	repos     *repository.Repos
	service   *service.AppService
	worker    *worker.ReminderWorker
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {

	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	// Основной уровень — SQLite; если он не открылся, работаем только на
	// резервном уровне в памяти: отказ хранилища не фатален
	tiers := []storage.Store{}
	sqlite, err := storage.NewSQLiteStore(a.config.Storage.Path)
	if err != nil {
		logger.Warn("Основное хранилище недоступно, работаем в памяти",
			zap.String("path", a.config.Storage.Path),
			zap.Error(err))
	} else {
		tiers = append(tiers, sqlite)
	}
	tiers = append(tiers, storage.NewMemoryStore())

	a.store = storage.NewTiered(tiers...)
	a.shutdowns = append(a.shutdowns, func() {
		if err := a.store.Close(); err != nil {
			logger.Warn("Ошибка закрытия хранилища", zap.Error(err))
		}
	})

	a.repos = repository.New(a.store)
	a.service = service.New(ctx, a.repos)

	if a.config.Reminder.Enabled {
		a.worker = worker.NewReminderWorker(a.service, worker.LogNotifier{}, &a.config.Reminder.Interval)
	}

	logger.Info("Приложение инициализировано")
	return nil
}

func (a *App) Service() *service.AppService {
	return a.service
}

// RunWorker блокируется до отмены контекста; nil-worker — сразу выход
func (a *App) RunWorker(ctx context.Context) {
	if a.worker == nil {
		logger.Info("Сканер напоминаний отключён настройками")
		return
	}
	a.worker.Start(ctx)
}

// Shutdown выполняет накопленные функции завершения в обратном порядке
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
