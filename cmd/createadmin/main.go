package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/contact-funnel/internal/auth"
	"github.com/spec-kit/contact-funnel/internal/config"
	"github.com/spec-kit/contact-funnel/internal/domain"
	"github.com/spec-kit/contact-funnel/internal/persistence"
	"github.com/spec-kit/contact-funnel/internal/repository"
)

// createadmin provisions an admin account out of band: it creates the
// user when the email is unknown, or promotes an existing account.
func main() {
	var (
		email    = flag.String("email", "", "admin email address")
		password = flag.String("password", "", "admin password")
		name     = flag.String("name", "Admin", "admin display name")
	)
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zap.NewNop()
	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	if err := ensureDatabase(pg); err != nil {
		log.Fatalf("%v", err)
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	msg, err := provision(ctx, users, strings.ToLower(*email), *name, hash)
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(msg)
}

// ensureDatabase rejects a missing pool up front so the CLI fails with a
// clear message instead of dereferencing a nil pool later.
func ensureDatabase(pg *persistence.Postgres) error {
	if pg.PoolHandle() == nil {
		return errors.New("POSTGRES_DSN must be set to manage admin accounts")
	}
	return nil
}

func provision(ctx context.Context, users repository.UserRepository, email, name, hash string) (string, error) {
	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		existing.IsAdmin = true
		existing.PasswordHash = hash
		if err := users.Update(ctx, existing); err != nil {
			return "", fmt.Errorf("failed to promote user: %w", err)
		}
		return fmt.Sprintf("promoted %s to admin", existing.Email), nil
	case errors.Is(err, pgx.ErrNoRows):
		user := &domain.User{
			FullName:     name,
			Email:        email,
			PasswordHash: hash,
			IsAdmin:      true,
		}
		if err := users.Create(ctx, user); err != nil {
			return "", fmt.Errorf("failed to create admin: %w", err)
		}
		return fmt.Sprintf("created admin %s (%s)", user.Email, user.ID), nil
	default:
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
}
