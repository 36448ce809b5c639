package domain

import "context"

type Repository interface {
	Insert(ctx context.Context, org Organization) error
	// Update writes only the provided columns and reports how many rows
	// were affected.
	Update(ctx context.Context, orgID string, updates map[string]any) (int64, error)
	Get(ctx context.Context, orgID string) (*Organization, error)
	List(ctx context.Context) ([]Organization, error)
	// SeedSettings inserts defaults, silently skipping rows that already
	// exist.
	SeedSettings(ctx context.Context, settings []Setting) error
	ListUsers(ctx context.Context, orgID string) ([]User, error)
}
