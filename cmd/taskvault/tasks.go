package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskVault/internal/models/task"
	"taskVault/internal/service"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Добавить задачу",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			description, _ := cmd.Flags().GetString("description")
			dueDate, _ := cmd.Flags().GetString("due")
			dueTime, _ := cmd.Flags().GetString("at")
			priority, _ := cmd.Flags().GetString("priority")
			intensity, _ := cmd.Flags().GetString("intensity")
			category, _ := cmd.Flags().GetString("category")
			reminder, _ := cmd.Flags().GetString("reminder")
			repeat, _ := cmd.Flags().GetString("repeat")
			tags, _ := cmd.Flags().GetStringSlice("tags")

			draft := &task.Task{
				Title:       args[0],
				Description: description,
				DueDate:     dueDate,
				DueTime:     dueTime,
				Priority:    task.Priority(priority),
				Intensity:   task.Intensity(intensity),
				Category:    category,
				Reminder:    reminder,
				Repeat:      task.Repeat(repeat),
				Tags:        tags,
			}

			created, err := a.Service().AddTask(cmd.Context(), draft)
			if err != nil {
				return err
			}

			fmt.Printf("Задача добавлена: %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringP("description", "d", "", "Описание")
	cmd.Flags().String("due", "", "Дедлайн, формат 2006-01-02")
	cmd.Flags().String("at", "", "Время дедлайна, формат 15:04")
	cmd.Flags().StringP("priority", "p", "medium", "Приоритет (high, medium, low)")
	cmd.Flags().StringP("intensity", "i", "medium", "Интенсивность (small, medium, big, giant, optional)")
	cmd.Flags().StringP("category", "c", "other", "Идентификатор категории")
	cmd.Flags().String("reminder", "", "Напоминание, минут до дедлайна")
	cmd.Flags().String("repeat", "", "Повтор (none, daily, weekly, monthly, yearly)")
	cmd.Flags().StringSlice("tags", nil, "Теги")

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Показать задачи",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			svc := a.Service()

			completed, _ := cmd.Flags().GetBool("completed")
			today, _ := cmd.Flags().GetBool("today")
			date, _ := cmd.Flags().GetString("date")
			asJSON, _ := cmd.Flags().GetBool("json")

			var tasks []*task.Task
			switch {
			case completed:
				tasks = svc.CompletedTasks()
			case today:
				tasks = svc.DueToday()
			case date != "":
				tasks = svc.TasksOn(date)
			default:
				tasks = svc.Tasks()
			}

			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(renderTasks(tasks))
			}

			printTasks(tasks)
			return nil
		},
	}

	cmd.Flags().Bool("completed", false, "Завершённые задачи")
	cmd.Flags().Bool("today", false, "Активные задачи на сегодня")
	cmd.Flags().String("date", "", "Задачи на день, формат 2006-01-02")
	cmd.Flags().BoolP("json", "j", false, "Вывод в JSON")

	return cmd
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Показать задачу целиком",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			svc := a.Service()

			var found *task.Task
			for _, t := range append(svc.Tasks(), svc.CompletedTasks()...) {
				if t.ID == args[0] {
					found = t
					break
				}
			}
			if found == nil {
				fmt.Println("Задача не найдена")
				return nil
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return json.NewEncoder(os.Stdout).Encode(found)
			}

			printTaskDetail(found)
			return nil
		},
	}

	cmd.Flags().BoolP("json", "j", false, "Вывод в JSON")
	return cmd
}

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Обновить поля активной задачи",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			options := []service.TaskOption{}

			if cmd.Flags().Changed("title") {
				title, _ := cmd.Flags().GetString("title")
				options = append(options, service.WithTitle(title))
			}
			if cmd.Flags().Changed("description") {
				description, _ := cmd.Flags().GetString("description")
				options = append(options, service.WithDescription(description))
			}
			if cmd.Flags().Changed("due") || cmd.Flags().Changed("at") {
				dueDate, _ := cmd.Flags().GetString("due")
				dueTime, _ := cmd.Flags().GetString("at")
				options = append(options, service.WithDueDate(dueDate, dueTime))
			}
			if cmd.Flags().Changed("priority") {
				priority, _ := cmd.Flags().GetString("priority")
				options = append(options, service.WithPriority(task.Priority(priority)))
			}
			if cmd.Flags().Changed("intensity") {
				intensity, _ := cmd.Flags().GetString("intensity")
				options = append(options, service.WithIntensity(task.Intensity(intensity)))
			}
			if cmd.Flags().Changed("category") {
				category, _ := cmd.Flags().GetString("category")
				options = append(options, service.WithCategory(category))
			}
			if cmd.Flags().Changed("reminder") {
				reminder, _ := cmd.Flags().GetString("reminder")
				options = append(options, service.WithReminder(reminder))
			}

			a.Service().UpdateTask(cmd.Context(), args[0], options...)
			fmt.Println("Готово")
			return nil
		},
	}

	cmd.Flags().String("title", "", "Название")
	cmd.Flags().StringP("description", "d", "", "Описание")
	cmd.Flags().String("due", "", "Дедлайн, формат 2006-01-02")
	cmd.Flags().String("at", "", "Время дедлайна, формат 15:04")
	cmd.Flags().StringP("priority", "p", "", "Приоритет")
	cmd.Flags().StringP("intensity", "i", "", "Интенсивность")
	cmd.Flags().StringP("category", "c", "", "Идентификатор категории")
	cmd.Flags().String("reminder", "", "Напоминание, минут до дедлайна")

	return cmd
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [id]...",
		Short: "Завершить одну или несколько задач",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			var earned int
			if len(args) == 1 {
				earned = a.Service().CompleteTask(cmd.Context(), args[0])
			} else {
				earned = a.Service().CompleteTasks(cmd.Context(), args)
			}

			if earned == 0 {
				fmt.Println("Ни одна задача не завершена")
				return nil
			}

			progress := a.Service().Progress()
			fmt.Printf("+%d очков. Уровень %d, серия %d дн.\n", earned, progress.Level, progress.Streak)
			return nil
		},
	}
}

func uncompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomplete [id]",
		Short: "Вернуть задачу в активные",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			earned := a.Service().UncompleteTask(cmd.Context(), args[0])
			if earned == 0 {
				fmt.Println("Задача не найдена среди завершённых")
				return nil
			}

			fmt.Printf("-%d очков, задача снова активна\n", earned)
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить задачу (снимок для отмены печатается в stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			removed := a.Service().DeleteTask(cmd.Context(), args[0])
			if removed == nil {
				fmt.Println("Задача не найдена")
				return nil
			}

			snapshot, err := json.Marshal(removed)
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr, "Задача удалена. Для отмены: taskvault restore < снимок")
			fmt.Println(string(snapshot))
			return nil
		},
	}
}

func restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Восстановить удалённую задачу из снимка (stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("чтение снимка: %w", err)
			}

			var snapshot task.Task
			if err := json.Unmarshal(data, &snapshot); err != nil {
				return fmt.Errorf("разбор снимка: %w", err)
			}

			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			a.Service().RestoreTask(cmd.Context(), &snapshot)
			fmt.Println("Задача восстановлена")
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Чек-лист задачи",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add [task-id] [text]",
		Short: "Добавить пункт",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			item, err := a.Service().AddChecklistItem(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Println("Задача не найдена")
				return nil
			}
			fmt.Printf("Пункт добавлен: %s\n", item.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle [task-id] [item-id]",
		Short: "Переключить пункт",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			a.Service().ToggleChecklistItem(cmd.Context(), args[0], args[1])
			fmt.Println("Готово")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove [task-id] [item-id]",
		Short: "Удалить пункт",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			a.Service().RemoveChecklistItem(cmd.Context(), args[0], args[1])
			fmt.Println("Готово")
			return nil
		},
	})

	return cmd
}
