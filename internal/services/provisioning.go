package services

import (
	"context"
	"fmt"
	"log/slog"
)

// CategoryConfig describes a default category and whether it counts as a
// need or a want in the spending split.
type CategoryConfig struct {
	Name string
	Kind string
}

// Category kinds
const (
	KindNeed    = "need"
	KindWant    = "want"
	KindNeutral = "neutral"
)

// DefaultCategories returns the categories provisioned on first start. The
// set is a starting point; users can record transactions against any
// category name.
func DefaultCategories() []CategoryConfig {
	return []CategoryConfig{
		{Name: "Rent", Kind: KindNeed},
		{Name: "Mortgage", Kind: KindNeed},
		{Name: "Utilities", Kind: KindNeed},
		{Name: "Groceries", Kind: KindNeed},
		{Name: "Insurance", Kind: KindNeed},
		{Name: "Healthcare", Kind: KindNeed},
		{Name: "Transport", Kind: KindNeed},
		{Name: "Childcare", Kind: KindNeed},
		{Name: "Entertainment", Kind: KindWant},
		{Name: "Dining Out", Kind: KindWant},
		{Name: "Travel", Kind: KindWant},
		{Name: "Shopping", Kind: KindWant},
		{Name: "Subscriptions", Kind: KindWant},
		{Name: "Hobbies", Kind: KindWant},
		{Name: "Salary", Kind: KindNeutral},
		{Name: "Investments", Kind: KindNeutral},
		{Name: "Uncategorized", Kind: KindNeutral},
	}
}

// ProvisionCategories inserts the given categories. It is idempotent:
// existing rows are left untouched.
func ProvisionCategories(ctx context.Context, store CategoryStore, categories []CategoryConfig) error {
	before, err := store.GetCategoryCount(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}

	for _, c := range categories {
		if err := store.UpsertCategory(ctx, c.Name, c.Kind); err != nil {
			return fmt.Errorf("provision category %q: %w", c.Name, err)
		}
	}

	after, err := store.GetCategoryCount(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}

	slog.InfoContext(ctx, "Categories provisioned",
		"existing", before,
		"total", after,
		"added", after-before)

	return nil
}
