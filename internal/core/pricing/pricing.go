package pricing

// ModelPricing defines per-million-token pricing for a model.
type ModelPricing struct {
	Input  float64 // USD per million input tokens
	Output float64 // USD per million output tokens
}

// modelPricingMap stores pricing for the models that show up in session
// logs. Extend as needed.
var modelPricingMap = map[string]ModelPricing{
	"gpt-5.3-codex":             {Input: 2.00, Output: 8.00},
	"gpt-4.1":                   {Input: 2.00, Output: 8.00},
	"gpt-4.1-mini":              {Input: 0.40, Output: 1.60},
	"gpt-4.1-nano":              {Input: 0.10, Output: 0.40},
	"gpt-4o":                    {Input: 2.50, Output: 10.00},
	"gpt-4o-mini":               {Input: 0.15, Output: 0.60},
	"claude-opus-4-6":           {Input: 15.00, Output: 75.00},
	"claude-sonnet-4-6":         {Input: 3.00, Output: 15.00},
	"claude-haiku-4-5-20251001": {Input: 0.80, Output: 4.00},
	"o3":                        {Input: 2.00, Output: 8.00},
	"o4-mini":                   {Input: 1.10, Output: 4.40},
}

// DefaultPricing is used for models missing from the table.
var DefaultPricing = ModelPricing{Input: 3.00, Output: 12.00}

// GetPricing returns the pricing for a model, falling back to
// DefaultPricing for unknown models.
func GetPricing(modelName string) ModelPricing {
	if p, ok := modelPricingMap[modelName]; ok {
		return p
	}
	return DefaultPricing
}

// Estimate computes the USD cost of a token pair under p.
func Estimate(inputTokens, outputTokens int, p ModelPricing) float64 {
	return (float64(inputTokens)*p.Input + float64(outputTokens)*p.Output) / 1_000_000
}

// GetAllPricings returns a copy of the pricing table.
func GetAllPricings() map[string]ModelPricing {
	result := make(map[string]ModelPricing, len(modelPricingMap))
	for k, v := range modelPricingMap {
		result[k] = v
	}
	return result
}
