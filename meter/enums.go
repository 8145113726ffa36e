// Package meter enforces what a caller's subscription allows: request rates,
// the monthly generation allowance, model tiers, entity counts and output
// formats. Every check runs before the expensive stage it guards, so a
// refused request never costs a model call or a render.
package meter

// Subscription plan a caller is metered under.
// ENUM(free, pro, business, enterprise)
type Plan int
