package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/stemsi/cbity-backend/internal/authn"
	"github.com/stemsi/cbity-backend/internal/config"
	"github.com/stemsi/cbity-backend/internal/database"
	"github.com/stemsi/cbity-backend/internal/localstore"
	"github.com/stemsi/cbity-backend/internal/logger"
	"github.com/stemsi/cbity-backend/internal/model"
	"github.com/stemsi/cbity-backend/internal/repository"
	"golang.org/x/term"
)

const minPasswordLength = 8

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "create-admin", Stderr: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Provisioning never issues sessions, so no Redis and no persisted store.
	auth := authn.NewService(pool, nil, localstore.NewMemoryStore(), authn.NewLogMailer(log), cfg, log)
	store := repository.NewStore(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Super Administrator ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		return
	}
	password := string(bytePassword)
	if len(password) < minPasswordLength {
		fmt.Printf("Error: Password must be at least %d characters\n", minPasswordLength)
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────

	// The credential is confirmed up front; there is no verification mail.
	cred, err := auth.CreateConfirmedUser(ctx, email, password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create credential")
	}

	existing, err := store.GetUser(ctx, cred.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up profile")
	}
	if existing != nil {
		fmt.Printf("\nPassword updated for existing %s '%s' (%s)\n", existing.Role, existing.Name, existing.Email)
		return
	}

	admin, err := store.CreateUser(ctx, &model.User{
		ID:          cred.ID,
		Email:       email,
		Name:        name,
		Role:        model.RoleSuperAdmin,
		Permissions: []string{"all"},
		Status:      model.StatusActive,
	})
	if err != nil {
		log.Fatal().Err(err).Str("credential_id", cred.ID).Msg("Failed to create profile")
	}

	fmt.Printf("\nSuccess! Super admin '%s' (%s) created with ID: %s\n", admin.Name, admin.Email, admin.ID)
}
