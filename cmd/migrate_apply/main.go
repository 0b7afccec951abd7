package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	"todo_webapp/internal/repository"
)

// Prints the tasks schema for the configured database, or applies it with -apply.
func main() {
	apply := flag.Bool("apply", false, "apply migration")
	flag.Parse()

	cfg := config.Load()

	target, err := db.Parse(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	schema, err := repository.Schema(target.Dialect)
	if err != nil {
		log.Fatal(err)
	}

	if !*apply {
		fmt.Printf("-- %s\n%s;\n", target.Dialect, schema)
		return
	}

	// Open runs the migration after connecting.
	store, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	defer store.Close()

	fmt.Printf("applied tasks schema to %s\n", target.Dialect)
}
