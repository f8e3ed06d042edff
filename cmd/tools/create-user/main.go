package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fabienpiette/recipe_finder/internal/auth"
	"github.com/fabienpiette/recipe_finder/internal/database"
	"github.com/fabienpiette/recipe_finder/internal/models"
	"github.com/fabienpiette/recipe_finder/internal/repositories"
)

func main() {
	if len(os.Args) < 5 {
		fmt.Println("Usage: create-user <database_path> <username> <email> <password>")
		fmt.Println("Creates a registered user, running migrations first if needed")
		os.Exit(1)
	}

	dbPath, username, email, password := os.Args[1], os.Args[2], os.Args[3], os.Args[4]

	if err := auth.ValidatePassword(password); err != nil {
		log.Fatalf("Invalid password: %v", err)
	}

	db, err := database.Initialize(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	hasher := auth.NewPasswordHasher()
	passwordHash, err := hasher.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = repositories.NewUserRepository(db.DB).Create(context.Background(), user)
	if errors.Is(err, models.ErrUserAlreadyExists) {
		fmt.Printf("User %q or email %q already exists\n", username, email)
		return
	}
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created with id %d\n", user.ID)
	fmt.Printf("   Username: %s\n", user.Username)
	fmt.Printf("   Email:    %s\n", user.Email)
}
