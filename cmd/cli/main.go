package main

import (
	"filevault-backend/config"
	"filevault-backend/internal/database"
	"filevault-backend/internal/models"
	"filevault-backend/internal/repository"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// Command flags
	createUser = flag.Bool("create", false, "Create a new user")
	deleteUser = flag.Bool("delete", false, "Delete a user")
	listUsers  = flag.Bool("list-users", false, "List all users")
	listFiles  = flag.Bool("list-files", false, "List all file records")

	// User data flags
	email    = flag.String("email", "", "User's email")
	password = flag.String("password", "", "User's password")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := database.Initialize(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	userRepo := repository.NewUserRepository(database.GetDB())
	fileRepo := repository.NewFileRepository(database.GetDB())

	switch {
	case *createUser:
		return handleCreateUser(userRepo)
	case *deleteUser:
		return handleDeleteUser(userRepo)
	case *listUsers:
		return handleListUsers(userRepo)
	case *listFiles:
		return handleListFiles(fileRepo)
	default:
		flag.Usage()
		return nil
	}
}

func handleCreateUser(repo *repository.UserRepository) error {
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}

	existing, err := repo.GetUserByEmail(*email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("user %s already exists", *email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     *email,
		Password:  string(hashed),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.CreateUser(user); err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}

func handleDeleteUser(repo *repository.UserRepository) error {
	if *email == "" {
		return fmt.Errorf("email is required")
	}

	user, err := repo.GetUserByEmail(*email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", *email)
	}

	if err := repo.DeleteUser(user.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted user %s\n", *email)
	return nil
}

func handleListUsers(repo *repository.UserRepository) error {
	users, err := repo.GetAllUsers()
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%s  %s  created %s\n", u.ID, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("%d user(s)\n", len(users))
	return nil
}

func handleListFiles(repo *repository.FileRepository) error {
	fileList, total, err := repo.List(1000, 0)
	if err != nil {
		return err
	}

	for _, f := range fileList {
		fmt.Printf("%d  %s  %s  %d bytes\n", f.ID, f.OriginalName, f.StoredName, f.Size)
	}
	fmt.Printf("%d of %d file record(s)\n", len(fileList), total)
	return nil
}
