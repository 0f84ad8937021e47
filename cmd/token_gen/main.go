package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"openpilotlog/nightlog/internal/auth"
)

func main() {
	subject := flag.String("subject", "admin", "token subject, logged with every admin action")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("ADMIN_TOKEN_SECRET")
	if secret == "" {
		log.Fatal("ADMIN_TOKEN_SECRET is not set")
	}

	token, err := auth.NewTokenService([]byte(secret)).Issue(*subject, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println("New admin token:", token)
}
