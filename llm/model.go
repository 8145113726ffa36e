package llm

import "strings"

// Model is one row of the provider table. Everything the gateway needs to
// call a model is data here, there are no per provider code paths.
type Model struct {
	// ID is the provider qualified identifier, for example
	// "anthropic/claude-sonnet-4". It goes on responses and records.
	ID string `yaml:"id" validate:"required"`
	// BaseURL points at an OpenAI compatible endpoint, without the
	// /chat/completions suffix.
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// KeyEnv names the environment variable holding the API key.
	KeyEnv string `yaml:"api_key_env"`
	// InputUSD and OutputUSD are the posted rates per million tokens.
	InputUSD  float64 `yaml:"input_usd_per_1m" validate:"gte=0"`
	OutputUSD float64 `yaml:"output_usd_per_1m" validate:"gte=0"`
	// Vision marks models that accept image parts.
	Vision bool `yaml:"vision,omitempty"`
	// PromptCache marks models honoring a shared prefix cache key.
	PromptCache bool `yaml:"prompt_cache,omitempty"`
}

// Name returns the wire model name, the part after the provider prefix.
func (m Model) Name() string {
	if _, name, ok := strings.Cut(m.ID, "/"); ok {
		return name
	}
	return m.ID
}

// Cost prices a completion using the model's rate table.
func (m Model) Cost(inputTokens, outputTokens int64) float64 {
	return float64(inputTokens)/1e6*m.InputUSD + float64(outputTokens)/1e6*m.OutputUSD
}

const (
	openaiBase    = "https://api.openai.com/v1"
	anthropicBase = "https://api.anthropic.com/v1"
	googleBase    = "https://generativelanguage.googleapis.com/v1beta/openai"
)

// DefaultChains returns the built-in model map: an ordered fallback chain per
// tier. Configuration may replace any chain, rates follow the providers'
// public price lists.
func DefaultChains() map[Tier][]Model {
	var (
		flash = Model{
			ID: "google/gemini-2.0-flash", BaseURL: googleBase, KeyEnv: "GEMINI_API_KEY",
			InputUSD: 0.10, OutputUSD: 0.40, Vision: true, PromptCache: true,
		}
		mini = Model{
			ID: "openai/gpt-4o-mini", BaseURL: openaiBase, KeyEnv: "OPENAI_API_KEY",
			InputUSD: 0.15, OutputUSD: 0.60, Vision: true, PromptCache: true,
		}
		haiku = Model{
			ID: "anthropic/claude-3-5-haiku", BaseURL: anthropicBase, KeyEnv: "ANTHROPIC_API_KEY",
			InputUSD: 0.80, OutputUSD: 4.00, PromptCache: true,
		}
		gpt4o = Model{
			ID: "openai/gpt-4o", BaseURL: openaiBase, KeyEnv: "OPENAI_API_KEY",
			InputUSD: 2.50, OutputUSD: 10.00, Vision: true, PromptCache: true,
		}
		sonnet = Model{
			ID: "anthropic/claude-sonnet-4", BaseURL: anthropicBase, KeyEnv: "ANTHROPIC_API_KEY",
			InputUSD: 3.00, OutputUSD: 15.00, Vision: true, PromptCache: true,
		}
		opus = Model{
			ID: "anthropic/claude-opus-4", BaseURL: anthropicBase, KeyEnv: "ANTHROPIC_API_KEY",
			InputUSD: 15.00, OutputUSD: 75.00, Vision: true, PromptCache: true,
		}
	)
	return map[Tier][]Model{
		TierFast:     {flash, mini, haiku},
		TierStandard: {gpt4o, sonnet, flash},
		TierPremium:  {opus, sonnet, gpt4o},
		TierVision:   {gpt4o, sonnet, flash},
	}
}
