package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/amazon-ion/ion-go/ion"
	"go.uber.org/zap"

	"infogen/common"
	"infogen/store"
)

// Request describes one completion call.
type Request struct {
	System      string
	User        string
	Tier        Tier
	Caller      string
	JSON        bool
	Images      [][]byte
	Temperature float64
	MaxTokens   int
	SkipCache   bool
}

// Response is what every gateway call returns, cached or live. Cache hits
// carry the original token counts but always zero cost.
type Response struct {
	Content      string
	Model        string
	InputTokens  int64
	OutputTokens int64
	CostUSD      float64
	LatencyMS    int64
	CacheHit     bool
	Warnings     common.Warnings
}

// cacheEntry is the Ion encoded shape of a cached completion.
type cacheEntry struct {
	Content      string `ion:"content"`
	Model        string `ion:"model"`
	InputTokens  int64  `ion:"in"`
	OutputTokens int64  `ion:"out"`
}

// costRetention keeps daily cost counters around long enough for a rolling
// 30 day view.
const costRetention = 30 * 24 * time.Hour

// Options configures a Gateway. The zero value works: default chains, an in
// process cache, one hour response TTL and no budget alarm.
type Options struct {
	Chains    map[Tier][]Model
	Cache     store.Cache
	CacheTTL  time.Duration
	BudgetUSD float64
	Client    *http.Client
	Log       *zap.Logger
}

// Gateway routes completion calls through tiered model chains with response
// caching and per caller cost accounting. Safe for concurrent use.
type Gateway struct {
	chains atomic.Pointer[map[Tier][]Model]
	cache  store.Cache
	ttl    time.Duration
	budget float64
	client *http.Client
	log    *zap.Logger

	getenv func(string) string
	sleep  func(ctx context.Context, d time.Duration) error
	now    func() time.Time
}

func New(opts Options) *Gateway {
	g := &Gateway{
		cache:  opts.Cache,
		ttl:    opts.CacheTTL,
		budget: opts.BudgetUSD,
		client: opts.Client,
		log:    opts.Log,
		getenv: os.Getenv,
		sleep:  sleepCtx,
		now:    time.Now,
	}
	if g.cache == nil {
		g.cache = store.NewMemory()
	}
	if g.ttl <= 0 {
		g.ttl = time.Hour
	}
	if g.client == nil {
		g.client = &http.Client{Timeout: callTimeout}
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	chains := opts.Chains
	if chains == nil {
		chains = DefaultChains()
	}
	g.chains.Store(&chains)
	return g
}

// Reload swaps the model map. Calls already in flight keep the chains they
// started with.
func (g *Gateway) Reload(chains map[Tier][]Model) {
	g.chains.Store(&chains)
}

// Complete runs the request down the tier's model chain: cache lookup, then
// per model up to three tries backing off on rate limits, skipping to the
// next model on unavailability, transport failures and malformed responses.
func (g *Gateway) Complete(ctx context.Context, req *Request) (*Response, error) {
	chain := (*g.chains.Load())[req.Tier]
	if len(chain) == 0 {
		return nil, common.NewError(common.KindInternalError, "no models configured for tier %s", req.Tier)
	}

	cacheable := !req.SkipCache && len(req.Images) == 0
	key := cacheKey(req.Tier, req.System, req.User)
	if cacheable {
		if resp, ok := g.lookup(ctx, key); ok {
			g.log.Debug("completion served from cache", zap.String("model", resp.Model))
			return resp, nil
		}
	}

	var last error
	for _, m := range chain {
		if len(req.Images) > 0 && !m.Vision {
			last = fmt.Errorf("model %s: no image support", m.ID)
			continue
		}
		resp, err := g.tryModel(ctx, m, req)
		if err == nil {
			g.settle(ctx, req, resp, cacheable, key)
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, common.WrapError(common.KindTimeout, err, "completion abandoned at model %s", m.ID)
		}
		last = err
		g.log.Debug("model failed, moving down the chain", zap.String("model", m.ID), zap.Error(err))
	}
	return nil, common.WrapError(common.KindAllModelsFailed, last, "tier %s exhausted after %d models", req.Tier, len(chain))
}

// tryModel gives one model up to maxTries attempts. Only rate limit answers
// are worth waiting for, anything else fails the model right away.
func (g *Gateway) tryModel(ctx context.Context, m Model, req *Request) (*Response, error) {
	var last error
	for try := 0; try < maxTries; try++ {
		if try > 0 {
			if err := g.sleep(ctx, time.Second<<(try-1)); err != nil {
				return nil, err
			}
		}
		resp, err := g.call(ctx, m, req)
		if err == nil {
			return resp, nil
		}
		last = err
		if !errors.Is(err, errRateLimited) {
			break
		}
	}
	return nil, last
}

// lookup returns a cached completion when present and readable.
func (g *Gateway) lookup(ctx context.Context, key string) (*Response, bool) {
	started := time.Now()
	data, ok, err := g.cache.Get(ctx, key)
	if err != nil {
		g.log.Warn("completion cache lookup failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var ent cacheEntry
	if err := ion.Unmarshal(data, &ent); err != nil {
		g.log.Warn("cached completion is unreadable, ignoring", zap.Error(err))
		return nil, false
	}
	return &Response{
		Content:      ent.Content,
		Model:        ent.Model,
		InputTokens:  ent.InputTokens,
		OutputTokens: ent.OutputTokens,
		LatencyMS:    time.Since(started).Milliseconds(),
		CacheHit:     true,
	}, true
}

// settle caches the completion and books its cost. Both are best effort, a
// broken cache never fails a successful completion.
func (g *Gateway) settle(ctx context.Context, req *Request, resp *Response, cacheable bool, key string) {
	if cacheable {
		data, err := ion.MarshalBinary(cacheEntry{
			Content:      resp.Content,
			Model:        resp.Model,
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
		})
		if err == nil {
			err = g.cache.Set(ctx, key, data, g.ttl)
		}
		if err != nil {
			g.log.Warn("completion cache write failed", zap.Error(err))
		}
	}
	if resp.CostUSD <= 0 || req.Caller == "" {
		return
	}
	total, err := g.cache.IncrFloat(ctx, costKey(req.Caller, g.now()), resp.CostUSD, costRetention)
	if err != nil {
		g.log.Warn("cost counter update failed", zap.String("caller", req.Caller), zap.Error(err))
		return
	}
	if g.budget > 0 && total >= g.budget && total-resp.CostUSD < g.budget {
		resp.Warnings.Add(common.WarnCostBudget, "caller %s crossed the daily cost budget of $%.2f", req.Caller, g.budget)
		g.log.Warn("daily cost budget crossed",
			zap.String("caller", req.Caller), zap.Float64("total-usd", total), zap.Float64("budget-usd", g.budget))
	}
}

// DailyCost reads the caller's booked spend for one day.
func (g *Gateway) DailyCost(ctx context.Context, caller string, day time.Time) (float64, error) {
	data, ok, err := g.cache.Get(ctx, costKey(caller, day))
	if err != nil || !ok {
		return 0, err
	}
	var total float64
	if _, err := fmt.Sscanf(string(data), "%g", &total); err != nil {
		return 0, fmt.Errorf("cost counter %s is not numeric: %w", costKey(caller, day), err)
	}
	return total, nil
}

// cacheKey derives the completion cache key. The 0x1e separators keep
// (system, user) pairs with shifted boundaries from colliding.
func cacheKey(tier Tier, system, user string) string {
	h := sha256.New()
	h.Write([]byte(tier.String()))
	h.Write([]byte{0x1e})
	h.Write([]byte(system))
	h.Write([]byte{0x1e})
	h.Write([]byte(user))
	return "llm:" + hex.EncodeToString(h.Sum(nil))
}

func costKey(caller string, day time.Time) string {
	return "cost:" + caller + ":" + day.UTC().Format("2006-01-02")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
