package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/oggyb/pawmatch/internal/auth"
	"github.com/oggyb/pawmatch/internal/config"
	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/repository"
	"github.com/oggyb/pawmatch/internal/seed"
)

// Prints a bearer token for a seeded account. Clients send it as "authorization: Bearer <token>".
func main() {
	email := flag.String("email", seed.Email(1), "account email")
	password := flag.String("password", seed.Password, "account password")
	flag.Parse()

	cfg := config.New()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	token, err := auth.Login(context.Background(), repository.NewProfileRepository(database), auth.NewTokens(cfg), *email, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Println(token)
}
