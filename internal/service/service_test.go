package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskVault/internal/logger"
	"taskVault/internal/models"
	"taskVault/internal/models/task"
	"taskVault/internal/repository"
	"taskVault/internal/service"
	"taskVault/internal/storage"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// fakeClock — управляемый источник времени для правил серии
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func newFixture() (*repository.Repos, *fakeClock) {
	repos := repository.New(storage.NewTiered(storage.NewMemoryStore()))
	clock := &fakeClock{now: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)}
	return repos, clock
}

func newService(repos *repository.Repos, clock *fakeClock) *service.AppService {
	return service.New(context.Background(), repos, service.WithClock(clock.Now))
}

func activeTask(id, title string, intensity task.Intensity) *task.Task {
	return &task.Task{
		ID:        id,
		Title:     title,
		Intensity: intensity,
		Priority:  task.PriorityMedium,
		Category:  "work",
		CreatedAt: "2025-03-01T10:00:00Z",
	}
}

// TestAppService_AddTask тестирует валидацию и создание задачи
func TestAppService_AddTask(t *testing.T) {
	tests := []struct {
		name        string
		draft       *task.Task
		expectError bool
	}{
		{
			name:  "success - valid task",
			draft: &task.Task{Title: "Report", Intensity: task.IntensityBig, Priority: task.PriorityHigh},
		},
		{
			name:        "error - empty title",
			draft:       &task.Task{Title: "   ", Intensity: task.IntensityBig, Priority: task.PriorityHigh},
			expectError: true,
		},
		{
			name:        "error - unknown intensity",
			draft:       &task.Task{Title: "Report", Intensity: "huge", Priority: task.PriorityHigh},
			expectError: true,
		},
		{
			name:        "error - unknown priority",
			draft:       &task.Task{Title: "Report", Intensity: task.IntensityBig, Priority: "urgent"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repos, clock := newFixture()
			svc := newService(repos, clock)

			created, err := svc.AddTask(ctx, tt.draft)

			if tt.expectError {
				require.Error(t, err)

				var businessErr *service.BusinessError
				require.ErrorAs(t, err, &businessErr)
				assert.Equal(t, "VALIDATION_ERROR", businessErr.Code)
				assert.Empty(t, svc.Tasks())
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.NotEmpty(t, created.CreatedAt)
			assert.False(t, created.Completed)

			// задача видна в памяти и в хранилище
			require.Len(t, svc.Tasks(), 1)
			require.Len(t, repos.GetTasks(ctx), 1)
		})
	}
}

// TestAppService_CompleteUncompleteScenario тестирует полный круг:
// завершение даёт очки и переносит задачу, возврат снимает очки
func TestAppService_CompleteUncompleteScenario(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Report", task.IntensityBig)}))

	svc := newService(repos, clock)

	earned := svc.CompleteTask(ctx, "t1")
	assert.Equal(t, 20, earned)

	// задача переехала в завершённые
	assert.Empty(t, svc.Tasks())
	completed := svc.CompletedTasks()
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Completed)
	assert.Equal(t, "2025-03-10T15:00:00Z", completed[0].CompletedAt)

	progress := svc.Progress()
	assert.Equal(t, 20, progress.Points)
	assert.Equal(t, 1, progress.Level)
	assert.Equal(t, 1, progress.Streak)

	// возврат восстанавливает очки в точности
	returned := svc.UncompleteTask(ctx, "t1")
	assert.Equal(t, 20, returned)

	assert.Empty(t, svc.CompletedTasks())
	active := svc.Tasks()
	require.Len(t, active, 1)
	assert.False(t, active[0].Completed)
	assert.Empty(t, active[0].CompletedAt)

	progress = svc.Progress()
	assert.Equal(t, 0, progress.Points)
	assert.Equal(t, 1, progress.Level)

	// состояние дошло и до хранилища
	assert.Len(t, repos.GetTasks(ctx), 1)
	assert.Empty(t, repos.GetCompletedTasks(ctx))
	assert.Equal(t, 0, repos.GetProgress(ctx).Points)
}

// TestAppService_PointsFlooredAtZero тестирует нижнюю границу очков
func TestAppService_PointsFlooredAtZero(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()

	done := activeTask("t1", "Done", task.IntensityGiant)
	done.Completed = true
	done.CompletedAt = "2025-03-09T10:00:00Z"
	require.NoError(t, repos.SaveCompletedTasks(ctx, []*task.Task{done}))
	require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{Points: 5, Level: 1, Streak: 1}))

	svc := newService(repos, clock)

	returned := svc.UncompleteTask(ctx, "t1")
	assert.Equal(t, 40, returned)

	progress := svc.Progress()
	assert.Equal(t, 0, progress.Points)
	assert.Equal(t, 1, progress.Level)
}

// TestAppService_LevelUp тестирует пересчёт уровня при каждом изменении очков
func TestAppService_LevelUp(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Big one", task.IntensityGiant)}))
	require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{Points: 90, Level: 1, Streak: 2, LastTaskCompletionDate: "2025-03-09T10:00:00Z"}))

	svc := newService(repos, clock)

	svc.CompleteTask(ctx, "t1")

	progress := svc.Progress()
	assert.Equal(t, 130, progress.Points)
	assert.Equal(t, 2, progress.Level)

	svc.UncompleteTask(ctx, "t1")
	progress = svc.Progress()
	assert.Equal(t, 90, progress.Points)
	assert.Equal(t, 1, progress.Level)
}

// TestAppService_StreakRules тестирует правила серии по календарным дням
func TestAppService_StreakRules(t *testing.T) {
	tests := []struct {
		name           string
		lastCompletion string
		streakBefore   int
		expectedStreak int
	}{
		{
			name:           "yesterday - streak continues",
			lastCompletion: "2025-03-09T22:00:00Z",
			streakBefore:   4,
			expectedStreak: 5,
		},
		{
			name:           "today already - streak unchanged",
			lastCompletion: "2025-03-10T08:00:00Z",
			streakBefore:   4,
			expectedStreak: 4,
		},
		{
			name:           "three days ago - streak resets",
			lastCompletion: "2025-03-07T08:00:00Z",
			streakBefore:   9,
			expectedStreak: 1,
		},
		{
			name:           "first completion ever",
			lastCompletion: "",
			streakBefore:   0,
			expectedStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repos, clock := newFixture()
			require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Report", task.IntensitySmall)}))
			require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{
				Points:                 50,
				Level:                  1,
				Streak:                 tt.streakBefore,
				LastTaskCompletionDate: tt.lastCompletion,
			}))

			svc := newService(repos, clock)
			svc.CompleteTask(ctx, "t1")

			progress := svc.Progress()
			assert.Equal(t, tt.expectedStreak, progress.Streak)
			assert.Equal(t, "2025-03-10T15:00:00Z", progress.LastTaskCompletionDate)
		})
	}
}

// TestAppService_SecondCompletionSameDay тестирует, что серию двигает
// только первое завершение за день
func TestAppService_SecondCompletionSameDay(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{
		activeTask("t1", "First", task.IntensitySmall),
		activeTask("t2", "Second", task.IntensitySmall),
	}))
	require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{
		Points: 0, Level: 1, Streak: 3, LastTaskCompletionDate: "2025-03-09T20:00:00Z",
	}))

	svc := newService(repos, clock)

	svc.CompleteTask(ctx, "t1")
	assert.Equal(t, 4, svc.Progress().Streak)

	clock.now = clock.now.Add(2 * time.Hour)
	svc.CompleteTask(ctx, "t2")
	assert.Equal(t, 4, svc.Progress().Streak)
	assert.Equal(t, 10, svc.Progress().Points)
}

// TestAppService_BulkCompletion тестирует пакетное завершение: одна
// запись прогресса, максимум один шаг серии на весь пакет
func TestAppService_BulkCompletion(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{
		activeTask("t1", "A", task.IntensitySmall),
		activeTask("t2", "B", task.IntensityMedium),
		activeTask("t3", "C", task.IntensityBig),
	}))
	require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{
		Points: 0, Level: 1, Streak: 2, LastTaskCompletionDate: "2025-03-09T20:00:00Z",
	}))

	svc := newService(repos, clock)

	earned := svc.CompleteTasks(ctx, []string{"t1", "t2", "t3", "ghost"})
	assert.Equal(t, 35, earned)

	progress := svc.Progress()
	assert.Equal(t, 35, progress.Points)
	assert.Equal(t, 3, progress.Streak)

	assert.Empty(t, svc.Tasks())
	assert.Len(t, svc.CompletedTasks(), 3)
}

// TestAppService_UncompleteKeepsStreak фиксирует принятую асимметрию:
// возврат задачи не корректирует серию
func TestAppService_UncompleteKeepsStreak(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Report", task.IntensityBig)}))
	require.NoError(t, repos.SaveProgress(ctx, models.ProgressData{
		Points: 0, Level: 1, Streak: 6, LastTaskCompletionDate: "2025-03-09T20:00:00Z",
	}))

	svc := newService(repos, clock)

	svc.CompleteTask(ctx, "t1")
	require.Equal(t, 7, svc.Progress().Streak)

	svc.UncompleteTask(ctx, "t1")
	assert.Equal(t, 7, svc.Progress().Streak)
}

// TestAppService_StaleIDsAreNoOps тестирует тихие no-op на устаревших id
func TestAppService_StaleIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	svc := newService(repos, clock)

	assert.Equal(t, 0, svc.CompleteTask(ctx, "ghost"))
	assert.Equal(t, 0, svc.UncompleteTask(ctx, "ghost"))
	assert.Nil(t, svc.DeleteTask(ctx, "ghost"))
	svc.UpdateTask(ctx, "ghost", service.WithTitle("New"))

	assert.Empty(t, svc.Tasks())
	assert.Empty(t, svc.CompletedTasks())
	assert.Equal(t, models.DefaultProgress(), svc.Progress())
}

// TestAppService_DeleteRestore тестирует удаление со снимком для отмены
func TestAppService_DeleteRestore(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	done := activeTask("t2", "Done", task.IntensitySmall)
	done.Completed = true
	done.CompletedAt = "2025-03-09T10:00:00Z"
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Active", task.IntensityBig)}))
	require.NoError(t, repos.SaveCompletedTasks(ctx, []*task.Task{done}))

	svc := newService(repos, clock)

	// активная задача
	snapshot := svc.DeleteTask(ctx, "t1")
	require.NotNil(t, snapshot)
	assert.Empty(t, svc.Tasks())

	svc.RestoreTask(ctx, snapshot)
	assert.Len(t, svc.Tasks(), 1)

	// завершённая задача возвращается в завершённые
	snapshot = svc.DeleteTask(ctx, "t2")
	require.NotNil(t, snapshot)
	assert.Empty(t, svc.CompletedTasks())

	svc.RestoreTask(ctx, snapshot)
	require.Len(t, svc.CompletedTasks(), 1)
	assert.True(t, svc.CompletedTasks()[0].Completed)

	// удаление не трогает прогресс
	assert.Equal(t, models.DefaultProgress(), svc.Progress())
}

// TestAppService_MembershipInvariant тестирует инвариант: задача всегда
// ровно в одной из двух коллекций после любой последовательности действий
func TestAppService_MembershipInvariant(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	svc := newService(repos, clock)

	created, err := svc.AddTask(ctx, &task.Task{Title: "Report", Intensity: task.IntensityBig, Priority: task.PriorityHigh})
	require.NoError(t, err)
	id := created.ID

	assertExactlyOne := func() {
		t.Helper()

		inActive := 0
		for _, at := range svc.Tasks() {
			if at.ID == id {
				inActive++
			}
		}
		inCompleted := 0
		for _, ct := range svc.CompletedTasks() {
			if ct.ID == id {
				inCompleted++
			}
		}
		assert.Equal(t, 1, inActive+inCompleted)
	}

	assertExactlyOne()
	svc.CompleteTask(ctx, id)
	assertExactlyOne()
	svc.UncompleteTask(ctx, id)
	assertExactlyOne()
	svc.CompleteTask(ctx, id)
	assertExactlyOne()

	snapshot := svc.DeleteTask(ctx, id)
	require.NotNil(t, snapshot)
	assert.Empty(t, svc.Tasks())
	assert.Empty(t, svc.CompletedTasks())
}

// TestAppService_UpdateTask тестирует обновление через опции
func TestAppService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "Old", task.IntensitySmall)}))

	svc := newService(repos, clock)

	svc.UpdateTask(ctx, "t1",
		service.WithTitle("New"),
		service.WithIntensity(task.IntensityGiant),
		service.WithDueDate("2025-03-12", "18:00"),
		service.WithPriority("urgent"), // невалидная опция игнорируется
	)

	updated := svc.Tasks()[0]
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, task.IntensityGiant, updated.Intensity)
	assert.Equal(t, "2025-03-12", updated.DueDate)
	assert.Equal(t, task.PriorityMedium, updated.Priority)

	// изменение дошло до хранилища
	assert.Equal(t, "New", repos.GetTasks(ctx)[0].Title)
}

// TestAppService_Checklist тестирует операции над чек-листом
func TestAppService_Checklist(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{activeTask("t1", "With list", task.IntensityMedium)}))

	svc := newService(repos, clock)

	item, err := svc.AddChecklistItem(ctx, "t1", "step one")
	require.NoError(t, err)
	require.NotNil(t, item)

	_, err = svc.AddChecklistItem(ctx, "t1", "  ")
	assert.Error(t, err)

	missing, err := svc.AddChecklistItem(ctx, "ghost", "step")
	require.NoError(t, err)
	assert.Nil(t, missing)

	svc.ToggleChecklistItem(ctx, "t1", item.ID)
	done, total := svc.Tasks()[0].ChecklistProgress()
	assert.Equal(t, 1, done)
	assert.Equal(t, 1, total)

	svc.ToggleChecklistItem(ctx, "t1", item.ID)
	done, _ = svc.Tasks()[0].ChecklistProgress()
	assert.Equal(t, 0, done)

	svc.RemoveChecklistItem(ctx, "t1", item.ID)
	_, total = svc.Tasks()[0].ChecklistProgress()
	assert.Equal(t, 0, total)
}

// TestAppService_PointsEarnedToday тестирует сумму очков за сегодня
func TestAppService_PointsEarnedToday(t *testing.T) {
	ctx := context.Background()
	repos, clock := newFixture()
	require.NoError(t, repos.SaveTasks(ctx, []*task.Task{
		activeTask("t1", "A", task.IntensityBig),
		activeTask("t2", "B", task.IntensitySmall),
	}))

	svc := newService(repos, clock)
	assert.Equal(t, 0, svc.PointsEarnedToday())

	svc.CompleteTask(ctx, "t1")
	svc.CompleteTask(ctx, "t2")
	assert.Equal(t, 25, svc.PointsEarnedToday())

	// назавтра сумма за день обнуляется
	clock.now = clock.now.AddDate(0, 0, 1)
	assert.Equal(t, 0, svc.PointsEarnedToday())
}
