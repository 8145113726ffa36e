package common

import "fmt"

// Warning kinds. Warnings never fail a generation, they travel with the
// result, get logged and end up on the generation record.
const (
	WarnTextOverflow           = "text-overflow"
	WarnUniformScaling         = "uniform-scaling"
	WarnLabelTruncated         = "label-truncated"
	WarnPromptCacheUnavailable = "prompt-cache-unavailable"
	WarnEntityDedup            = "entity-dedup"
	WarnRefPruned              = "ref-pruned"
	WarnCostBudget             = "cost-budget"
	WarnBrandMaterial          = "brand-material"
)

// Warning describes a non-fatal condition the pipeline worked around.
type Warning struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

func (w Warning) String() string {
	return w.Kind + ": " + w.Detail
}

// Warnings accumulates findings across pipeline stages.
type Warnings []Warning

// Add appends a formatted warning.
func (w *Warnings) Add(kind, format string, args ...any) {
	*w = append(*w, Warning{Kind: kind, Detail: fmt.Sprintf(format, args...)})
}

// Has reports whether any warning of the given kind was recorded.
func (w Warnings) Has(kind string) bool {
	for _, warn := range w {
		if warn.Kind == kind {
			return true
		}
	}
	return false
}

// Strings flattens warnings for logging and persistence.
func (w Warnings) Strings() []string {
	if len(w) == 0 {
		return nil
	}
	res := make([]string, 0, len(w))
	for _, warn := range w {
		res = append(res, warn.String())
	}
	return res
}
