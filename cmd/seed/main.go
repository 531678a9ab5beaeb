package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quill/internal/config"
	"quill/internal/db"
	"quill/internal/model"
	"quill/internal/repository"
)

// seedPassword is shared by all demo accounts.
const seedPassword = "password123"

type seedUser struct {
	name  string
	email string
	posts []seedPost
}

type seedPost struct {
	title     string
	content   string
	published bool
}

var seedUsers = []seedUser{
	{
		name:  "Ada Wordsmith",
		email: "ada@example.com",
		posts: []seedPost{
			{title: "Hello, world", content: "First published post on the demo blog.", published: true},
			{title: "Unfinished thoughts", content: "This one is still a draft.", published: false},
		},
	},
	{
		name:  "Ben Scribbler",
		email: "ben@example.com",
		posts: []seedPost{
			{title: "On writing less", content: "Short posts read better.", published: true},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	created, skipped := 0, 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByEmail(ctx, su.email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up %s: %v", su.email, err)
		}
		if existing != nil {
			log.Printf("User %s already present, skipping", su.email)
			skipped++
			continue
		}

		user := &model.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}

		for _, sp := range su.posts {
			post := &model.Post{
				Title:     sp.title,
				Content:   sp.content,
				Published: sp.published,
				AuthorID:  user.ID,
			}
			if err := postRepo.Create(ctx, post); err != nil {
				log.Fatalf("Failed to create post %q: %v", sp.title, err)
			}
		}
		created++
	}

	log.Printf("Seed complete: %d users created, %d skipped (login password: %q)", created, skipped, seedPassword)
}
