package meter

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"infogen/common"
	"infogen/llm"
	"infogen/store"
)

// Limits is one plan's row in the table. A GenerationsPerMonth below zero
// lifts the monthly cap, a rate of zero or less lifts that window's bound.
type Limits struct {
	GenerationsPerMonth   int64                 `yaml:"generations_per_month"`
	MaxEntitiesPerDiagram int                   `yaml:"max_entities_per_diagram" validate:"min=1"`
	AllowedModelTiers     []llm.Tier            `yaml:"allowed_model_tiers" validate:"min=1"`
	AllowedOutputFormats  []common.OutputFormat `yaml:"allowed_output_formats" validate:"min=1"`
	ArtifactTTLHours      int                   `yaml:"artifact_ttl_hours" validate:"min=1"`
	RatePerMinute         int64                 `yaml:"rate_per_minute"`
	RatePerDay            int64                 `yaml:"rate_per_day"`
}

// AllowsTier reports whether the plan may call models of the given tier.
func (l Limits) AllowsTier(t llm.Tier) bool {
	return slices.Contains(l.AllowedModelTiers, t)
}

// AllowsFormat reports whether the plan may render the given output format.
func (l Limits) AllowsFormat(f common.OutputFormat) bool {
	return slices.Contains(l.AllowedOutputFormats, f)
}

// ArtifactTTL is how long the plan keeps rendered artifacts around.
func (l Limits) ArtifactTTL() time.Duration {
	return time.Duration(l.ArtifactTTLHours) * time.Hour
}

// DefaultPlans is the built-in plan table, used when configuration does not
// override a plan. Free mirrors the entry product: ten slides a month,
// editable output only, no premium models.
func DefaultPlans() map[Plan]Limits {
	allFormats := []common.OutputFormat{common.OutputFormatSlide, common.OutputFormatSvg, common.OutputFormatRaster}
	return map[Plan]Limits{
		PlanFree: {
			GenerationsPerMonth:   10,
			MaxEntitiesPerDiagram: 10,
			AllowedModelTiers:     []llm.Tier{llm.TierFast, llm.TierStandard},
			AllowedOutputFormats:  []common.OutputFormat{common.OutputFormatSlide},
			ArtifactTTLHours:      24,
			RatePerMinute:         5,
			RatePerDay:            50,
		},
		PlanPro: {
			GenerationsPerMonth:   200,
			MaxEntitiesPerDiagram: 12,
			AllowedModelTiers:     []llm.Tier{llm.TierFast, llm.TierStandard, llm.TierPremium},
			AllowedOutputFormats:  allFormats,
			ArtifactTTLHours:      72,
			RatePerMinute:         20,
			RatePerDay:            500,
		},
		PlanBusiness: {
			GenerationsPerMonth:   1000,
			MaxEntitiesPerDiagram: 15,
			AllowedModelTiers:     []llm.Tier{llm.TierFast, llm.TierStandard, llm.TierPremium, llm.TierVision},
			AllowedOutputFormats:  allFormats,
			ArtifactTTLHours:      168,
			RatePerMinute:         60,
			RatePerDay:            2000,
		},
		PlanEnterprise: {
			GenerationsPerMonth:   -1,
			MaxEntitiesPerDiagram: 15,
			AllowedModelTiers:     []llm.Tier{llm.TierFast, llm.TierStandard, llm.TierPremium, llm.TierVision},
			AllowedOutputFormats:  allFormats,
			ArtifactTTLHours:      720,
			RatePerMinute:         120,
			RatePerDay:            10000,
		},
	}
}

// MonthlyCounter is the slice of the record store the quota check reads.
type MonthlyCounter interface {
	MonthlyCount(ctx context.Context, caller string, t time.Time) (int64, error)
}

// Options configures a Meter. Zero values mean: built-in plan table, private
// in-process cache, no monthly quota enforcement.
type Options struct {
	Plans   map[Plan]Limits
	Cache   store.Cache
	Records MonthlyCounter
	Log     *zap.Logger
}

// Meter answers whether a request may proceed under its caller's plan. Safe
// for concurrent use.
type Meter struct {
	plans   atomic.Pointer[map[Plan]Limits]
	cache   store.Cache
	records MonthlyCounter
	log     *zap.Logger

	now func() time.Time
}

func New(opts Options) *Meter {
	m := &Meter{
		cache:   opts.Cache,
		records: opts.Records,
		log:     opts.Log,
		now:     time.Now,
	}
	if m.cache == nil {
		m.cache = store.NewMemory()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.Reload(opts.Plans)
	return m
}

// Reload swaps the plan table. Plans missing from the new table keep their
// built-in defaults, so partial configuration never strands a caller.
func (m *Meter) Reload(plans map[Plan]Limits) {
	merged := DefaultPlans()
	for plan, lim := range plans {
		merged[plan] = lim
	}
	m.plans.Store(&merged)
}

// LimitsFor returns the plan's row. Unknown plans are treated as free.
func (m *Meter) LimitsFor(plan Plan) Limits {
	table := *m.plans.Load()
	if lim, ok := table[plan]; ok {
		return lim
	}
	return table[PlanFree]
}

// CheckQuota refuses the request once the caller has used up the plan's
// monthly generation allowance.
func (m *Meter) CheckQuota(ctx context.Context, caller string, plan Plan) error {
	lim := m.LimitsFor(plan)
	if lim.GenerationsPerMonth < 0 || m.records == nil {
		return nil
	}
	used, err := m.records.MonthlyCount(ctx, caller, m.now())
	if err != nil {
		return common.WrapError(common.KindInternalError, err, "counting generations for %s", caller)
	}
	if used >= lim.GenerationsPerMonth {
		return common.NewError(common.KindQuotaExceeded,
			"plan %s allows %d generations per month, %d already used", plan, lim.GenerationsPerMonth, used)
	}
	return nil
}

// CheckTier refuses model tiers the plan does not buy. Runs before any
// gateway call so a refusal never costs tokens.
func (m *Meter) CheckTier(plan Plan, tier llm.Tier) error {
	if m.LimitsFor(plan).AllowsTier(tier) {
		return nil
	}
	return common.NewError(common.KindPlanForbidsTier, "plan %s does not include %s models", plan, tier)
}

// CheckEntities refuses briefs larger than the plan allows.
func (m *Meter) CheckEntities(plan Plan, entities int) error {
	lim := m.LimitsFor(plan)
	if entities <= lim.MaxEntitiesPerDiagram {
		return nil
	}
	return common.NewError(common.KindPlanLimitExceeded,
		"diagram has %d entities, plan %s allows %d", entities, plan, lim.MaxEntitiesPerDiagram)
}

// Formats filters the requested output formats down to what the plan may
// render, keeping the request order. An empty request means everything the
// plan offers.
func (m *Meter) Formats(plan Plan, requested []common.OutputFormat) []common.OutputFormat {
	lim := m.LimitsFor(plan)
	if len(requested) == 0 {
		return slices.Clone(lim.AllowedOutputFormats)
	}
	var out []common.OutputFormat
	for _, f := range requested {
		if lim.AllowsFormat(f) && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
