package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chatboard/config"
	"chatboard/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

const usage = `
Chatboard - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all up migrations
  down        Apply all down migrations in reverse order
  status      Show database connection status and table sizes
  seed-dev    Seed development users and a chat

Flags:
  -migrations string   Path to migrations directory (default from MIGRATIONS_DIR)
  -password string     Password for seeded users (default "Password@123")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed-dev
  go run cmd/migrate/main.go down
`

func main() {
	cfg := config.LoadConfig()

	migrationsDir := flag.String("migrations", cfg.MigrationsDir, "Path to migrations directory")
	password := flag.String("password", database.DefaultSeedConfig().Password, "Password for seeded users")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer pool.Close()

	switch command {
	case "up":
		runMigrations(ctx, pool, *migrationsDir, true)
	case "down":
		runMigrations(ctx, pool, *migrationsDir, false)
	case "status":
		showStatus(ctx, pool)
	case "seed-dev":
		runSeedDevelopment(ctx, pool, *password)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsDir string, up bool) {
	direction := "down"
	if up {
		direction = "up"
	}
	log.Printf("Running migrations %s...", direction)

	if err := database.ApplyMigrations(ctx, pool, migrationsDir, up); err != nil {
		log.Fatalf("Migration %s failed: %v", direction, err)
	}

	log.Printf("Migrations %s completed successfully", direction)
}

func showStatus(ctx context.Context, pool *pgxpool.Pool) {
	if err := database.HealthCheck(ctx, pool); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Database connection: OK")

	for _, table := range []string{"users", "chats", "messages"} {
		exists, err := database.TableExists(ctx, pool, table)
		if err != nil {
			log.Printf("Error checking table %s: %v", table, err)
			continue
		}
		if !exists {
			log.Printf("Table %-10s does not exist", table)
			continue
		}
		count, err := database.TableCount(ctx, pool, table)
		if err != nil {
			log.Printf("Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("Table %-10s exists (%d rows)", table, count)
	}
}

func runSeedDevelopment(ctx context.Context, pool *pgxpool.Pool, password string) {
	log.Println("Seeding database (development mode)...")

	seedCfg := database.DefaultSeedConfig()
	seedCfg.Password = password

	result, err := database.Seed(ctx, pool, seedCfg)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seed Summary:")
	log.Printf("   - Users: %d", len(result.Users))
	log.Printf("   - Chat: %s (%s)", result.Chat.Chatname, result.Chat.ID)
	log.Printf("   - Messages: %d", len(result.Messages))
}
