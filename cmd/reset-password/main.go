package main

import (
	"flag"
	"log"

	"go-dealer-stock/internal/repository"
	"go-dealer-stock/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Resets a dealer's password from the command line. Useful when a dealer is
// locked out and there is no email recovery flow.
func main() {
	email := flag.String("email", "", "dealer email")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("usage: reset-password -email <email> -password <new password>")
	}

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	dealerRepo := repository.NewDealerRepo(db)

	// 3. Find Dealer
	dealer, err := dealerRepo.FindByEmail(*email)
	if err != nil {
		log.Fatalf("Dealer %s not found in database: %v", *email, err)
	}

	// 4. Hash new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update
	if err := dealerRepo.UpdatePassword(dealer.ID, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *email)
}
