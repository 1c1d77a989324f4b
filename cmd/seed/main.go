package main

import (
	"context"
	stderrors "errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapp/internal/config"
	"todoapp/internal/db"
	"todoapp/internal/model"
	"todoapp/internal/repository"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "password"
)

var demoTodos = []string{
	"buy milk",
	"write a todo app",
	"walk the dog",
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Todo{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	todoRepo := repository.NewTodoRepository(gormDB)

	user, err := seedUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}

	created, err := seedTodos(ctx, todoRepo, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed todos: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Demo user: %s / %s", demoEmail, demoPassword)
	log.Printf("  - Todos created: %d", created)
}

// seedUser returns the demo user, creating it on first run.
func seedUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		log.Printf("Demo user already exists: %s", demoEmail)
		return existing, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Created demo user: %s", demoEmail)
	return user, nil
}

// seedTodos creates the sample todos for the demo user, skipping ones
// that already exist from a previous run.
func seedTodos(ctx context.Context, repo repository.TodoRepository, ownerID uuid.UUID) (int, error) {
	existing, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, t := range existing {
		present[t.Text] = true
	}

	created := 0
	for _, text := range demoTodos {
		if present[text] {
			continue
		}
		todo := &model.Todo{
			ID:     uuid.New(),
			Text:   text,
			UserID: ownerID,
		}
		if err := repo.Create(ctx, todo); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
