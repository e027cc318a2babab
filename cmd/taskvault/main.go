package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskVault/internal/app"
	"taskVault/internal/config"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskvault",
		Short:   "TaskVault — локальный персональный менеджер задач",
		Version: Version,
	}

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(uncompleteCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(restoreCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initApp собирает приложение для одного запуска команды;
// вызывающий обязан дернуть Shutdown
func initApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("загрузка конфигурации: %w", err)
	}

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		return nil, fmt.Errorf("инициализация приложения: %w", err)
	}
	return a, nil
}
