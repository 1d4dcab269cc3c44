// Command create_admin provisions an operator account in the admin_users
// table. Usage:
//
//	go run ./scripts/create_admin -email admin@example.com -password s3cret
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/masknetdesign/mercado-online/internal/config"
	"github.com/masknetdesign/mercado-online/internal/database"
	"github.com/masknetdesign/mercado-online/internal/gateway"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	email := flag.String("email", "", "operator e-mail address")
	password := flag.String("password", "", "operator password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create_admin -email <email> -password <password>")
		os.Exit(1)
	}

	if err := run(*email, *password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(email, password string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	hash, err := gateway.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, uuid.NewString(), email, hash)
	if err != nil {
		return fmt.Errorf("failed to upsert admin user: %w", err)
	}

	fmt.Printf("admin user %s provisioned\n", email)
	return nil
}
