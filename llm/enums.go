// Package llm is the single entry point for model calls: tier routing,
// response caching, provider fallback, retry with backoff and cost
// accounting. Callers never talk to a provider SDK, they describe the call
// and the gateway picks the model. Providers are rows in a table, all of
// them speak the OpenAI compatible chat completions wire format.
package llm

// Model capability tier. Each tier names an ordered fallback chain of models.
// ENUM(fast, standard, premium, vision)
type Tier int
