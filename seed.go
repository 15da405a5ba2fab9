package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/msomdec/spartan-directory/internal/config"
	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
	"github.com/msomdec/spartan-directory/internal/repository/sqlite"
)

func seedCommand() *cobra.Command {
	var (
		out      string
		count    int
		seed     uint64
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a dataset file and optionally create an account",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				slog.Error("failed to load config", "error", err)
				os.Exit(1)
			}
			setupLogging(cfg)

			if err := directory.Save(out, directory.Generate(newRNG(seed), count)); err != nil {
				slog.Error("failed to write dataset", "error", err)
				os.Exit(1)
			}
			slog.Info("dataset written", "path", out, "records", count)

			if email != "" {
				if err := seedAccount(cfg, name, email, password); err != nil {
					slog.Error("failed to create account", "error", err)
					os.Exit(1)
				}
				slog.Info("account created", "email", email)
			}
		},
	}

	cmd.Flags().StringVar(&out, "out", "spartans.json", "dataset output path")
	cmd.Flags().IntVar(&count, "count", directory.DatasetSize, "number of records to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "RNG seed, 0 for random")
	cmd.Flags().StringVar(&name, "name", "Admin", "account display name")
	cmd.Flags().StringVar(&email, "email", "", "account email, empty to skip account creation")
	cmd.Flags().StringVar(&password, "password", "", "account password")

	return cmd
}

func seedAccount(cfg config.Config, name, email, password string) error {
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		return err
	}

	return db.Accounts().Create(ctx, &domain.Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "Admin",
	})
}
