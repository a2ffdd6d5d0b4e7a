package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acucogn/site/internal/model"
)

// demoArticle is a seed row; Age is subtracted from the seed time.
type demoArticle struct {
	Title     string
	Excerpt   string
	Category  string
	Author    string
	Content   string
	Published bool
	Age       time.Duration
}

var demoArticles = []demoArticle{
	{
		Title:     "How Retrieval-Augmented Chatbots Cut Support Costs",
		Excerpt:   "Grounding a chatbot in your own documents answers more tickets with fewer escalations.",
		Category:  "Chatbots",
		Author:    "Priya Raman",
		Published: true,
		Age:       2 * 24 * time.Hour,
		Content: `## Why retrieval matters
Large language models are fluent, but they do not know **your** products.
Retrieval-augmented generation looks up relevant passages first and hands them to the model.
### What we measure
**Deflection rate**: share of conversations resolved without a human.
**Answer accuracy**: graded weekly against a fixed question set.
**Latency**: time to first token, kept under two seconds.
## Getting started
Start with the twenty questions your team answers most often.`,
	},
	{
		Title:     "A Practical Checklist for Your First GenAI Pilot",
		Excerpt:   "Scope, data, evaluation and rollout: the four decisions that make or break a pilot.",
		Category:  "Generative AI",
		Author:    "Marcus Lee",
		Published: true,
		Age:       9 * 24 * time.Hour,
		Content: `## Pick one workflow
Pilots fail when they try to automate a department. Pick **one** workflow with a clear owner.
### The checklist
**Scope**: one team, one process, one success metric.
**Data**: confirm access and retention rules before writing code.
**Evaluation**: agree on a test set with the business owner.
**Rollout**: ship to five users, then fifty.`,
	},
	{
		Title:     "Agentic AI for Appointment Scheduling",
		Excerpt:   "What changes when the assistant can act on calendars instead of only answering questions.",
		Category:  "Agentic AI",
		Author:    "Sofia Alvarez",
		Published: true,
		Age:       21 * 24 * time.Hour,
		Content: `## From answers to actions
An agent can check availability, propose slots and book them once the patient confirms.
Guardrails keep **every** write behind an explicit confirmation step.`,
	},
	{
		Title:     "Draft: Evaluating Voice Assistants",
		Excerpt:   "Work in progress.",
		Category:  "Chatbots",
		Author:    "Priya Raman",
		Published: false,
		Age:       time.Hour,
		Content:   "## Not ready\nThis article is not published yet.",
	},
}

// Seed inserts demo articles when blog_posts is empty.
func Seed(ctx context.Context, db *sqlx.DB) error {
	repo := NewArticleRepository(db)

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("articles already exist, skipping seed", "count", n)
		return nil
	}

	now := time.Now().UTC()
	for _, d := range demoArticles {
		a := &model.Article{
			ID:        uuid.NewString(),
			Title:     d.Title,
			Excerpt:   d.Excerpt,
			Content:   d.Content,
			Category:  d.Category,
			Author:    d.Author,
			Published: d.Published,
			CreatedAt: now.Add(-d.Age),
		}
		if err := repo.Insert(ctx, a); err != nil {
			return fmt.Errorf("seeding %q: %w", d.Title, err)
		}
	}

	slog.Info("demo articles seeded", "count", len(demoArticles))
	return nil
}
