package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/SketchShifter/workshelf_backend/internal/config"
	"github.com/SketchShifter/workshelf_backend/internal/logger"
	"github.com/SketchShifter/workshelf_backend/internal/mock"
	"github.com/SketchShifter/workshelf_backend/internal/repository"
	"github.com/SketchShifter/workshelf_backend/internal/server"
	"github.com/SketchShifter/workshelf_backend/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	envFiles := func() []string {
		if envFile == "" {
			return nil
		}
		return []string{envFile}
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := fx.New(server.Module(envFiles()...))
			if err := app.Err(); err != nil {
				return err
			}
			// SIGINT / SIGTERM まで待機し、停止フックを実行する
			app.Run()
			return nil
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), services.Version)
		},
	}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample users and works",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, envFiles())
		},
	}

	root := &cobra.Command{
		Use:          "workshelf",
		Short:        "Artwork catalog REST backend",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	root.AddCommand(serve, seed, version)

	return root
}

func runSeed(cmd *cobra.Command, envFiles []string) error {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	db, err := config.InitDB(cfg, l)
	if err != nil {
		return err
	}
	defer func() { _ = config.CloseDB(db) }()

	auth := services.NewAuthService(repository.NewUserRepository(db), cfg)
	works := services.NewWorkService(repository.NewWorkRepository(db), l)

	n, err := mock.Seed(cmd.Context(), auth, works)
	if err != nil {
		return err
	}
	l.Info("seed completed", zap.Int("works", n))
	return nil
}
