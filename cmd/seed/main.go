// Command main runs the database seeder for Resonate.
package main

import (
	"flag"
	"log"

	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numSongs := flag.Int("songs", 100, "Number of songs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast dev mode)")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d songs, clean=%v\n", *numUsers, *numSongs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumSongs:    *numSongs,
		ShouldClean: *shouldClean,
		Factory: seed.SeedOptions{
			SkipBcrypt: *skipBcrypt,
			DryRun:     *dryRun,
		},
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All demo users have the password: password123")
}
