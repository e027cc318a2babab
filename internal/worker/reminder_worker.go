package worker

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"taskVault/internal/logger"
	"taskVault/internal/models"
	"taskVault/internal/models/task"
)

// TaskSource — доступ только на чтение: сканер напоминаний никогда не
// меняет состояние задач и прогресса
type TaskSource interface {
	Tasks() []*task.Task
	Settings() models.Settings
}

type Notifier interface {
	Notify(ctx context.Context, t *task.Task, minutesBefore int)
}

type ReminderWorker struct {
	source   TaskSource
	notifier Notifier
	interval time.Duration
	now      func() time.Time
	sent     map[string]struct{} // задача+смещение+день, только на время жизни процесса
}

func NewReminderWorker(source TaskSource, notifier Notifier, interval *time.Duration) *ReminderWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = time.Minute
	} else {
		intervalToSet = *interval
	}

	return &ReminderWorker{
		source:   source,
		notifier: notifier,
		interval: intervalToSet,
		now:      time.Now,
		sent:     make(map[string]struct{}),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Сканер напоминаний останавливается")
			return
		}
	}
}

// Check просматривает активные задачи и шлёт уведомления тем, что вошли
// в окно напоминания: от (дедлайн - смещение) до дедлайна
func (w *ReminderWorker) Check(ctx context.Context) {
	start := w.now()

	settings := w.source.Settings()
	if !settings.EnableReminders {
		return
	}

	tasks := w.source.Tasks()
	notified := 0

	for _, t := range tasks {
		due, ok := t.DueAt()
		if !ok || due.Before(start) {
			continue
		}

		for _, offset := range w.offsetsFor(t, settings) {
			notifyAt := due.Add(-time.Duration(offset) * time.Minute)
			if start.Before(notifyAt) {
				continue
			}

			key := t.ID + "|" + strconv.Itoa(offset) + "|" + start.Format("2006-01-02")
			if _, already := w.sent[key]; already {
				continue
			}

			w.notifier.Notify(ctx, t, offset)
			w.sent[key] = struct{}{}
			notified++
		}
	}

	logger.Info("Worker: Завершение сканирования напоминаний",
		zap.Duration("ms", time.Since(start)),
		zap.Int("checked", len(tasks)),
		zap.Int("notified", notified),
	)
}

// offsetsFor — смещение самой задачи плюс общие смещения из настроек
func (w *ReminderWorker) offsetsFor(t *task.Task, settings models.Settings) []int {
	offsets := []int{}

	if t.Reminder != "" {
		minutes, err := strconv.Atoi(t.Reminder)
		if err != nil {
			logger.Warn("Worker: Непонятное смещение напоминания",
				zap.String("task_id", t.ID),
				zap.String("reminder", t.Reminder))
		} else {
			offsets = append(offsets, minutes)
		}
	}

	offsets = append(offsets, settings.NotificationTimes...)
	return offsets
}

// LogNotifier пишет уведомление в журнал; настоящий канал доставки —
// забота внешнего слоя
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, t *task.Task, minutesBefore int) {
	logger.Info("Worker: Напоминание о задаче",
		zap.String("task_id", t.ID),
		zap.String("title", t.Title),
		zap.Int("minutes_before", minutesBefore),
	)
}
