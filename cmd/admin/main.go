package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"personnel-api/internal/core/auth"
	"personnel-api/internal/core/config"
	"personnel-api/internal/core/logger"
	"personnel-api/internal/repo"
	"personnel-api/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type env struct {
	users   *service.UserService
	cleanup func()
}

// setup 与 api 进程共用同一份配置和存储
func setup(ctx context.Context, cfgPath string) (*env, error) {
	_ = godotenv.Load()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	// memory 存储随进程退出丢失
	if !repo.Persistent(cfg.DB.Driver) {
		return nil, fmt.Errorf("db.driver %q is not persistent; set admin.email/admin.password for the api process instead", cfg.DB.Driver)
	}
	log, flush := logger.New(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{})
	r, closeRepo, err := repo.Open(ctx, cfg.DB, log)
	if err != nil {
		flush()
		return nil, fmt.Errorf("open user store: %w", err)
	}
	return &env{
		users: service.NewUserService(r, log),
		cleanup: func() {
			closeRepo()
			flush()
		},
	}, nil
}

func rootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Personnel API maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	root.AddCommand(seedCmd(&cfgPath), listCmd(&cfgPath))
	return root
}

// seedCmd 创建第一个管理员；create 只允许管理员调用，空库只能从这里起步
func seedCmd(cfgPath *string) *cobra.Command {
	var in struct {
		name, surname, email, password string
	}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an activated administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := auth.WithCaller(cmd.Context(), auth.System())
			e, err := setup(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer e.cleanup()

			created, err := e.users.EnsureAdmin(ctx, service.AdminSeed{
				Email:    in.email,
				Password: in.password,
				Name:     in.name,
				Surname:  in.surname,
			})
			if err != nil {
				return err
			}
			if !created {
				return fmt.Errorf("user with email %s already exists", in.email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created\n", in.email)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.name, "name", "Admin", "first name")
	cmd.Flags().StringVar(&in.surname, "surname", "Admin", "surname")
	cmd.Flags().StringVar(&in.email, "email", "", "login email")
	cmd.Flags().StringVar(&in.password, "password", "", "password (at least 9 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func listCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every stored user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := auth.WithCaller(cmd.Context(), auth.System())
			e, err := setup(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer e.cleanup()

			users, err := e.users.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s %s\tadmin=%t\tactivated=%t\n",
					u.ID, u.Email, u.Name, u.Surname, u.IsAdmin, u.IsActivated)
			}
			return nil
		},
	}
}
