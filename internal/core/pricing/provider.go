package pricing

import "context"

// Provider abstracts where pricing comes from, so aggregation can be
// tested against a fixed table and a remote source can be slotted in
// later without touching callers.
type Provider interface {
	GetPricing(ctx context.Context, modelName string) (ModelPricing, error)
	GetAllPricings(ctx context.Context) (map[string]ModelPricing, error)
}

// DefaultProvider serves the static pricing table.
type DefaultProvider struct{}

// NewDefaultProvider creates a provider backed by the static table.
func NewDefaultProvider() Provider {
	return &DefaultProvider{}
}

func (p *DefaultProvider) GetPricing(ctx context.Context, modelName string) (ModelPricing, error) {
	return GetPricing(modelName), nil
}

func (p *DefaultProvider) GetAllPricings(ctx context.Context) (map[string]ModelPricing, error) {
	return GetAllPricings(), nil
}
