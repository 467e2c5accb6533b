package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/planify/config"
	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/internal/domain/entity"
	"github.com/oksasatya/planify/internal/infrastructure/store"
	"github.com/oksasatya/planify/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	ctx := context.Background()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	email := "demo@planify.dev"
	password := "password123"
	name := "Demo User"

	auth := application.NewAuthService(st.Users, helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.AppName), nil, logger)
	user, err := auth.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: password})
	switch {
	case errors.Is(err, application.ErrDuplicateEmail):
		fmt.Printf("user %s already exists, nothing to seed\n", email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", user.ID, email, password)

	projects := application.NewProjectService(st.Projects, st.Tasks, nil, logger, nil, "")
	tasks := application.NewTaskService(st.Tasks, st.Projects, st.Users, logger)

	pinned := true
	p, err := projects.Create(ctx, user.ID, application.ProjectInput{
		Title:       "Site Redesign",
		Description: "New landing page and dashboard",
		TechStack:   []string{"React", "Go"},
		Pinned:      &pinned,
	})
	if err != nil {
		log.Fatalf("failed to seed project: %v", err)
	}

	done := entity.StatusDone
	seeds := []application.TaskInput{
		{ProjectID: p.ID, Title: "Wireframes", Status: &done},
		{ProjectID: p.ID, Title: "Component library"},
		{ProjectID: p.ID, Title: "API integration"},
		{ProjectID: p.ID, Title: "Launch checklist"},
	}
	for _, in := range seeds {
		if _, err := tasks.Create(ctx, user.ID, in); err != nil {
			log.Fatalf("failed to seed task %q: %v", in.Title, err)
		}
	}
	fmt.Printf("seeded project %s with %d tasks\n", p.ID, len(seeds))
}
