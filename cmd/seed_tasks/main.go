package main

import (
	"context"
	"flag"
	"log"

	"todo_webapp/internal/config"
	"todo_webapp/internal/db"
	"todo_webapp/internal/domain"
	"todo_webapp/internal/service"
)

var sampleTitles = []string{
	"Buy milk",
	"Write the weekly report",
	"Call the plumber",
	"Water the plants",
}

func main() {
	done := flag.Int("done", 1, "mark this many of the seeded tasks completed")
	flag.Parse()

	cfg := config.Load()

	store, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	svc := service.NewTaskService(store, nil)
	ctx := context.Background()

	completed := true
	for i, title := range sampleTitles {
		t, err := svc.Create(ctx, title)
		if err != nil {
			log.Fatalf("create task %q failed: %v", title, err)
		}
		if i < *done {
			if _, err := svc.Update(ctx, t.ID, domain.TaskPatch{Completed: &completed}); err != nil {
				log.Fatalf("complete task %d failed: %v", t.ID, err)
			}
		}
		log.Printf("task created id=%d title=%q\n", t.ID, t.Title)
	}

	tasks, err := svc.List(ctx)
	if err != nil {
		log.Fatalf("list tasks failed: %v", err)
	}
	log.Printf("store now holds %d tasks\n", len(tasks))
}
