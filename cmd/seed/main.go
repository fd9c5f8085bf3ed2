package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"go-blog-api/config"
	"go-blog-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s password=%s\n", id, username, password)

	posts := []struct {
		title, summary, content string
	}{
		{"Hello world", "First post", "Welcome to the blog."},
		{"Second thoughts", "Another post", "More words about nothing in particular."},
	}
	for _, p := range posts {
		if _, err := db.Exec(`
			INSERT INTO posts (title, summary, content, author_id)
			VALUES ($1, $2, $3, $4)
		`, p.title, p.summary, p.content, id); err != nil {
			log.Fatalf("failed to seed post %q: %v", p.title, err)
		}
	}
	fmt.Printf("seeded %d posts\n", len(posts))
}
