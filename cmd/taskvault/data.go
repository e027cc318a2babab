package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskVault/internal/models"
)

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Категории задач",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Показать категории",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			for _, c := range a.Service().Categories() {
				fmt.Printf("%s  %s  %s\n", c.ID, c.Name, c.Color)
			}
			return nil
		},
	})

	addCategory := &cobra.Command{
		Use:   "add [name]",
		Short: "Добавить категорию",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			color, _ := cmd.Flags().GetString("color")
			category, err := a.Service().AddCategory(cmd.Context(), args[0], color)
			if err != nil {
				return err
			}
			fmt.Printf("Категория добавлена: %s\n", category.ID)
			return nil
		},
	}
	addCategory.Flags().String("color", "#9B87F5", "Цвет, hex")
	cmd.AddCommand(addCategory)

	renameCategory := &cobra.Command{
		Use:   "rename [id] [name]",
		Short: "Переименовать категорию",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			color, _ := cmd.Flags().GetString("color")
			for _, c := range a.Service().Categories() {
				if c.ID == args[0] {
					updated := models.Category{ID: c.ID, Name: args[1], Color: c.Color}
					if color != "" {
						updated.Color = color
					}
					return a.Service().UpdateCategory(cmd.Context(), updated)
				}
			}
			fmt.Println("Категория не найдена")
			return nil
		},
	}
	renameCategory.Flags().String("color", "", "Новый цвет, hex")
	cmd.AddCommand(renameCategory)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete [id]",
		Short: "Удалить категорию (отклоняется, если есть задачи)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			if err := a.Service().DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Готово")
			return nil
		},
	})

	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Профиль пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			profile := a.Service().Profile()
			if profile == nil {
				fmt.Println("Профиль не настроен: taskvault profile set --name \"Имя\"")
				return nil
			}

			fmt.Printf("Имя: %s\n", profile.FullName)
			if profile.Username != "" {
				fmt.Printf("Логин: %s\n", profile.Username)
			}
			if profile.Bio != "" {
				fmt.Printf("О себе: %s\n", profile.Bio)
			}
			return nil
		},
	}

	setProfile := &cobra.Command{
		Use:   "set",
		Short: "Заполнить профиль (завершает онбординг)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			name, _ := cmd.Flags().GetString("name")
			username, _ := cmd.Flags().GetString("username")
			bio, _ := cmd.Flags().GetString("bio")

			profile := models.ProfileData{
				FullName: name,
				Username: username,
				Bio:      bio,
			}
			if err := a.Service().SaveUserProfile(cmd.Context(), profile); err != nil {
				return err
			}

			a.Service().MarkOnboarded(cmd.Context())
			fmt.Println("Профиль сохранён")
			return nil
		},
	}
	setProfile.Flags().String("name", "", "Полное имя")
	setProfile.Flags().String("username", "", "Логин")
	setProfile.Flags().String("bio", "", "О себе")
	cmd.AddCommand(setProfile)

	return cmd
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Настройки",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			current := a.Service().Settings()
			changed := false

			if cmd.Flags().Changed("theme") {
				theme, _ := cmd.Flags().GetString("theme")
				current.Theme = models.Theme(theme)
				changed = true
			}
			if cmd.Flags().Changed("reminders") {
				reminders, _ := cmd.Flags().GetBool("reminders")
				current.EnableReminders = reminders
				changed = true
			}
			if cmd.Flags().Changed("notify") {
				notify, _ := cmd.Flags().GetIntSlice("notify")
				current.NotificationTimes = notify
				changed = true
			}

			if changed {
				a.Service().UpdateSettings(cmd.Context(), current)
				fmt.Println("Настройки обновлены")
				return nil
			}

			fmt.Printf("Тема: %s (тёмная: %v)\n", current.Theme, current.DarkModeEnabled(time.Now()))
			fmt.Printf("Напоминания: %v, общие смещения: %v\n", current.EnableReminders, current.NotificationTimes)
			return nil
		},
	}

	cmd.Flags().String("theme", "", "Тема (light, dark, auto)")
	cmd.Flags().Bool("reminders", true, "Включить напоминания")
	cmd.Flags().IntSlice("notify", nil, "Общие смещения напоминаний, минуты")

	return cmd
}

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Очки, уровень и серия",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			svc := a.Service()
			progress := svc.Progress()

			fmt.Printf("Очки: %d (сегодня +%d)\n", progress.Points, svc.PointsEarnedToday())
			fmt.Printf("Уровень: %d (%d%%, до следующего %d XP)\n",
				progress.Level, svc.LevelProgressPercent(), svc.RemainingXP())
			fmt.Printf("Серия: %d дн.\n", progress.Streak)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Выгрузить все данные одним JSON-документом в stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			data, err := a.Service().ExportData(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Println(string(data))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Импортировать документ экспорта (файл или stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error

			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(os.Stdin)
			}
			if err != nil {
				return fmt.Errorf("чтение документа: %w", err)
			}

			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			if err := a.Service().ImportData(cmd.Context(), data); err != nil {
				return err
			}

			fmt.Println("Данные импортированы")
			return nil
		},
	}
}

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Сбросить все данные",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				return fmt.Errorf("сброс удаляет все данные; подтвердите флагом --yes")
			}

			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			if err := a.Service().ResetAll(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Все данные сброшены")
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Подтверждение сброса")
	return cmd
}

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Следить за напоминаниями до прерывания",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := initApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Shutdown()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.RunWorker(ctx)
			return nil
		},
	}
}
