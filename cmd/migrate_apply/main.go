package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"durak_server/internal/db"
	"durak_server/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations instead of listing them")
	dir := flag.String("dir", "internal/migrations", "migrations directory")
	flag.Parse()

	_ = godotenv.Load()

	if !*apply {
		names, err := db.MigrationFiles(*dir)
		if err != nil {
			logger.Fatal("list migrations", "error", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	pool := db.Connect(dsn)
	defer pool.Close()

	applied, err := db.ApplyMigrations(context.Background(), pool, *dir)
	if err != nil {
		logger.Fatal("apply migrations", "error", err)
	}
	for _, name := range applied {
		fmt.Printf("applied %s\n", name)
	}
}
