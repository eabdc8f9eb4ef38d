package main

import (
	"context"
	"fmt"
	"os"

	"hospital-management-api/cmd/bootstrap"
	"hospital-management-api/config"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-management-api",
		Short: "Hospital management REST API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createSuperUserCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if migrateFirst {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				if err := database.MigrateUp(cfg.DB); err != nil {
					return err
				}
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				logrus.Errorf("Failed to initialize application: %v", err)
				return err
			}

			return app.Run()
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateUp(cfg.DB)
		},
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg.DB, steps)
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")

	cmd.AddCommand(upCmd, downCmd)
	return cmd
}

func createSuperUserCmd() *cobra.Command {
	var req dto.CreateSuperUserRequest

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an active superuser admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("SUPERUSER_PASSWORD")
			}

			app, err := bootstrap.New()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Container.Validator.Validate(&req); err != nil {
				return fmt.Errorf("invalid superuser: %v", app.Container.Validator.FormatValidationErrors(err))
			}

			user, err := app.Container.AdminUsecase.CreateSuperUser(context.Background(), &req)
			if err != nil {
				return err
			}

			fmt.Printf("Superuser %s created (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Username, "username", "", "login name")
	cmd.Flags().StringVar(&req.Name, "name", "", "display name")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, defaults to $SUPERUSER_PASSWORD")

	return cmd
}
