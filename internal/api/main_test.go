package api

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/om-khorwal/NotesFlow/internal/auth"
	"github.com/om-khorwal/NotesFlow/internal/config"
	"github.com/om-khorwal/NotesFlow/internal/database"
	"github.com/om-khorwal/NotesFlow/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testServer *Server
var testUser *models.User
var testUserToken string

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:14-alpine",
		postgres.WithDatabase("test_api_db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		),
	)
	if err != nil {
		log.Fatalf("Could not start postgres: %s", err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("Could not get connection string: %s", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	schema, err := os.ReadFile("../../db/init.sql")
	if err != nil {
		log.Fatalf("Could not read schema file: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	store := database.NewStore(pool)
	cfg := &config.Config{
		AppHost: "http://localhost:8080",
		JWT:     config.JWTConfig{Secret: "api_test_secret", ExpirationDays: 7},
	}
	testServer = NewServer(cfg, store)

	hashedPassword, _ := auth.HashPassword("password")
	testUser, err = store.CreateUser(ctx, database.CreateUserParams{
		Username:     "api_test_user",
		Email:        "api_test_user@example.com",
		PasswordHash: hashedPassword,
	})
	if err != nil {
		log.Fatalf("Could not create test user: %s", err)
	}
	if _, err := store.CreateProfile(ctx, testUser.ID); err != nil {
		log.Fatalf("Could not create test profile: %s", err)
	}

	testUserToken, err = auth.GenerateJWT(testUser.ID, cfg.JWT.Secret, cfg.TokenTTL())
	if err != nil {
		log.Fatalf("Could not generate token: %s", err)
	}

	os.Exit(m.Run())
}
