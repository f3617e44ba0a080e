// Command seed populates a development environment with a demo account and
// sample content. Safe to run against LocalStack; do not point it at prod.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/notekeep-api/internal/config"
	"github.com/notekeep-api/internal/domain"
	"github.com/notekeep-api/internal/infrastructure/dynamo"
	"github.com/notekeep-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx := context.Background()

	client := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	users := dynamo.NewUserRepo(client, cfg.DynamoTables.Users)
	notes := dynamo.NewNoteRepo(client, cfg.DynamoTables.Notes)
	categories := dynamo.NewCategoryRepo(client, cfg.DynamoTables.Categories)
	tags := dynamo.NewTagRepo(client, cfg.DynamoTables.Tags)
	tasks := dynamo.NewTaskRepo(client, cfg.DynamoTables.Tasks)
	projects := dynamo.NewProjectRepo(client, cfg.DynamoTables.Projects)
	templates := dynamo.NewTemplateRepo(client, cfg.DynamoTables.Templates)
	journal := dynamo.NewJournalRepo(client, cfg.DynamoTables.JournalEntries)
	articles := dynamo.NewArticleRepo(client, cfg.DynamoTables.Articles)

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	hashStr := string(hash)

	demo := &domain.User{
		UserID:        id.New(),
		Name:          "Demo User",
		Email:         "demo@notekeep.local",
		PasswordHash:  &hashStr,
		EmailVerified: &now,
		AuthProvider:  domain.ProviderCredentials,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if existing, err := users.GetByEmail(ctx, demo.Email); err == nil {
		log.Printf("demo user already exists (%s), reusing", existing.UserID)
		demo = existing
	} else if err := users.Put(ctx, demo); err != nil {
		log.Fatalf("seed user: %v", err)
	}

	categoryNames := []struct{ name, color string }{
		{"Work", "#2563eb"},
		{"Personal", "#16a34a"},
		{"Ideas", "#f59e0b"},
	}
	categoryIDs := make([]string, 0, len(categoryNames))
	for _, c := range categoryNames {
		cat := &domain.Category{
			CategoryID: id.New(),
			UserID:     demo.UserID,
			Name:       c.name,
			Color:      c.color,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := categories.Put(ctx, cat); err != nil {
			log.Fatalf("seed category %s: %v", c.name, err)
		}
		categoryIDs = append(categoryIDs, cat.CategoryID)
	}

	tagNames := []struct{ name, color string }{
		{"golang", "#00add8"},
		{"reading", "#8b5cf6"},
		{"urgent", "#dc2626"},
		{"recipes", "#ea580c"},
		{"travel", "#0891b2"},
	}
	tagIDs := make([]string, 0, len(tagNames))
	for _, tg := range tagNames {
		if existing, err := tags.GetByName(ctx, tg.name); err == nil {
			tagIDs = append(tagIDs, existing.TagID)
			continue
		}
		t := &domain.Tag{
			TagID:     id.New(),
			Name:      tg.name,
			Color:     tg.color,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tags.Put(ctx, t); err != nil {
			log.Fatalf("seed tag %s: %v", tg.name, err)
		}
		tagIDs = append(tagIDs, t.TagID)
	}

	sampleNotes := []struct {
		title, content, status string
		category               int
		tags                   []int
	}{
		{"Meeting notes 2026-08-24", "Discussed the Q3 roadmap.", domain.NoteStatusPublished, 0, []int{2}},
		{"Weekend trip packing list", "Tent, stove, headlamp.", domain.NoteStatusDraft, 1, []int{4}},
		{"Error handling patterns", "Wrap sentinel errors, match with errors.Is.", domain.NoteStatusPublished, 2, []int{0}},
		{"Sourdough starter log", "Day 4: doubled in six hours.", domain.NoteStatusDraft, 1, []int{3}},
		{"Archived brainstorm", "Old ideas from last year.", domain.NoteStatusArchived, 2, nil},
	}
	for _, n := range sampleNotes {
		noteTags := []string{}
		for _, i := range n.tags {
			noteTags = append(noteTags, tagIDs[i])
		}
		catID := categoryIDs[n.category]
		if err := notes.Put(ctx, &domain.Note{
			NoteID:     id.New(),
			UserID:     demo.UserID,
			Title:      n.title,
			Content:    n.content,
			Status:     n.status,
			CategoryID: &catID,
			TagIDs:     noteTags,
			CreatedAt:  now,
			UpdatedAt:  now,
		}); err != nil {
			log.Fatalf("seed note %s: %v", n.title, err)
		}
	}

	proj := &domain.Project{
		ProjectID:   id.New(),
		UserID:      demo.UserID,
		Name:        "Home renovation",
		Description: "Kitchen and hallway",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := projects.Put(ctx, proj); err != nil {
		log.Fatalf("seed project: %v", err)
	}
	due := now.AddDate(0, 0, 14)
	for _, title := range []string{"Get contractor quotes", "Order cabinets", "Pick paint colors"} {
		if err := tasks.Put(ctx, &domain.Task{
			TaskID:    id.New(),
			UserID:    demo.UserID,
			ProjectID: &proj.ProjectID,
			Title:     title,
			DueDate:   &due,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			log.Fatalf("seed task %s: %v", title, err)
		}
	}

	if err := templates.Put(ctx, &domain.Template{
		TemplateID: id.New(),
		UserID:     demo.UserID,
		Name:       "Daily standup",
		Content:    "## Yesterday\n\n## Today\n\n## Blockers\n",
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		log.Fatalf("seed template: %v", err)
	}

	mood := "good"
	if err := journal.Put(ctx, &domain.JournalEntry{
		EntryID:   id.New(),
		UserID:    demo.UserID,
		Date:      now.Format("2006-01-02"),
		Content:   "Seeded the development environment.",
		Mood:      &mood,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("seed journal entry: %v", err)
	}

	if err := articles.Put(ctx, &domain.Article{
		ArticleID: id.New(),
		UserID:    demo.UserID,
		Title:     "Getting started",
		Content:   "Welcome to your knowledge base.",
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		log.Fatalf("seed article: %v", err)
	}

	log.Printf("seed complete: demo@notekeep.local / Demo1234 (user %s)", demo.UserID)
}
