package domain

import "context"

type Repository interface {
	ListDefinitions(ctx context.Context) ([]FeatureDefinition, error)
	// EffectiveForKeys resolves effective values for every organization,
	// restricted to the given feature keys.
	EffectiveForKeys(ctx context.Context, keys []string) ([]EffectiveValue, error)
}
