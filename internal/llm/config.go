// Package llm wraps the generative model provider behind a small client
// interface with tiered model selection.
package llm

// ModelTier names a capability level rather than a concrete model, so
// call sites stay stable when the underlying model is swapped.
type ModelTier string

const (
	// TierFlash handles fast one-shot tasks: resume ranking, roasting,
	// extraction.
	TierFlash ModelTier = "flash"
	// TierPro handles conversational reasoning: interview turns and
	// final evaluations.
	TierPro ModelTier = "pro"
)

// Provider identifies the backing LLM vendor.
type Provider string

const (
	// ProviderGemini uses Google Gemini.
	ProviderGemini Provider = "gemini"
)

// Config maps tiers to provider model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig is the configuration used when callers pass nil.
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig pins the current Gemini model per tier.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFlash: "gemini-2.5-flash",
			TierPro:   "gemini-2.5-pro",
		},
	}
}

// GetModel resolves a tier to its model name, falling back to the flash
// model for unconfigured tiers.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierFlash]; ok {
		return model
	}
	return ""
}

// WithModel copies the config with one tier overridden, leaving the
// receiver untouched.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		models[k] = v
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
