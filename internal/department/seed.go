package department

import (
	"context"

	"github.com/google/uuid"
)

// Defaults mirror the organization's original department set. Seeding is
// get-or-create, so renames done through the API survive restarts.
var defaults = []struct {
	Name       string
	CodePrefix string
}{
	{"HR", "NIMH"},
	{"Developer", "NIMD"},
	{"Sales", "NIMS"},
	{"Marketing", "NIMM"},
}

func SeedDefaults(ctx context.Context, repo Repository) error {
	for _, d := range defaults {
		dept := &Department{
			ID:         uuid.New(),
			Name:       d.Name,
			CodePrefix: d.CodePrefix,
		}
		if err := repo.EnsureExists(ctx, dept); err != nil {
			return err
		}
	}
	return nil
}
