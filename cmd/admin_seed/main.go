// Command admin_seed prints a bcrypt hash of the admin password in the form
// expected by the server's environment.
package main

import (
	"fmt"
	"log"
	"os"

	"casacalc/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	password := os.Getenv("ADMIN_PASSWORD")
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set in environment or passed as the first argument")
	}
	if len(password) < 12 {
		log.Fatal("admin password must be at least 12 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}
