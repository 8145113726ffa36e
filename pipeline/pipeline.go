// Package pipeline drives a generation request end to end: admission,
// brand preprocessing, reasoning, layout, rendering, artifact persistence
// and the audit record. Everything behind it is injected, so the whole run
// is testable without a network or a disk.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"infogen/brand"
	"infogen/brief"
	"infogen/common"
	"infogen/layout"
	"infogen/llm"
	"infogen/measure"
	"infogen/meter"
	"infogen/reason"
	"infogen/render/pptx"
	"infogen/render/raster"
	"infogen/render/svg"
	"infogen/store"
)

// totalBudget caps one generation end to end. Stages carry their own
// shorter deadlines under it.
const totalBudget = 45 * time.Second

// recordWriteTimeout bounds the audit write after the budget is spent.
const recordWriteTimeout = 2 * time.Second

// Reasoner is the slice of the reasoning service the pipeline calls.
type Reasoner interface {
	Extract(ctx context.Context, in reason.Inputs) (*reason.Result, error)
}

// Request is one generation ask, transport free.
type Request struct {
	Prompt  string
	Caller  string
	Plan    meter.Plan
	Formats []common.OutputFormat
	// TypeHint is the caller's diagram type request, empty for auto.
	TypeHint string
	// EntityCountHint sizes the diagram before reasoning when the caller
	// already knows how many blocks to expect.
	EntityCountHint int
	// Lang is a BCP 47 tag, empty means detect from the prompt.
	Lang       string
	Palette    []string
	Logo       []byte
	Stylesheet []byte
	Template   []byte
	// Reference carries optional reference images for vision models.
	Reference [][]byte
	SkipCache bool
}

// Output is one rendered artifact together with its signed reference.
type Output struct {
	Format common.OutputFormat
	Name   string
	Ref    string
	Data   []byte
}

// Result is everything a completed generation produced.
type Result struct {
	ID       string
	Brief    *brief.Brief
	Layout   *layout.Layout
	Tier     llm.Tier
	Lang     string
	Response *llm.Response
	Outputs  []Output
	Warnings common.Warnings
	Elapsed  time.Duration
}

// Options configures a Pipeline. Reasoner and Meter are required, nil
// Records or Artifacts simply skip persistence of the respective kind.
type Options struct {
	Reasoner  Reasoner
	Brands    *brand.Extractor
	Meter     *meter.Meter
	Measurer  *measure.Measurer
	Artifacts *store.Artifacts
	Records   *store.Records
	Log       *zap.Logger
}

// Pipeline owns the stage components. Build one and share it, every stage
// is safe for concurrent use.
type Pipeline struct {
	reasoner  Reasoner
	brands    *brand.Extractor
	meter     *meter.Meter
	measurer  *measure.Measurer
	artifacts *store.Artifacts
	records   *store.Records
	log       *zap.Logger

	now func() time.Time
}

func New(opts Options) *Pipeline {
	p := &Pipeline{
		reasoner:  opts.Reasoner,
		brands:    opts.Brands,
		meter:     opts.Meter,
		measurer:  opts.Measurer,
		artifacts: opts.Artifacts,
		records:   opts.Records,
		log:       opts.Log,
		now:       time.Now,
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.brands == nil {
		p.brands = brand.NewExtractor(p.log)
	}
	if p.meter == nil {
		p.meter = meter.New(meter.Options{Log: p.log})
	}
	if p.measurer == nil {
		p.measurer = measure.New()
	}
	return p
}

// Close releases the record store. Call it once the pipeline is done for.
func (p *Pipeline) Close() error {
	if p.records == nil {
		return nil
	}
	return p.records.Close()
}

// renderers maps each output format to its renderer. They share nothing
// mutable, so the fan-out runs them concurrently.
var renderers = map[common.OutputFormat]func(*layout.Layout) ([]byte, error){
	common.OutputFormatSlide:  pptx.Render,
	common.OutputFormatSvg:    svg.Render,
	common.OutputFormatRaster: raster.Render,
}

// Generate runs one request through all stages. A generation record is
// written no matter how the run ends, carrying the failure kind when it
// does not complete.
func (p *Pipeline) Generate(ctx context.Context, req *Request) (*Result, error) {
	started := p.now()
	res := &Result{ID: newID()}
	rec := store.Record{
		ID:        res.ID,
		Caller:    req.Caller,
		CreatedAt: started.UTC(),
		Prompt:    TruncatePrompt(req.Prompt, maxRecordPrompt),
		Lang:      req.Lang,
	}

	log := p.log.With(zap.String("id", res.ID), zap.String("caller", req.Caller))
	log.Info("Generation starting", zap.Stringer("plan", req.Plan))

	ctx, cancel := context.WithTimeout(ctx, totalBudget)
	defer cancel()

	err := p.generate(ctx, req, res, &rec, log)

	res.Elapsed = p.now().Sub(started)
	rec.WallMS = res.Elapsed.Milliseconds()
	if err != nil {
		rec.Status = store.StatusFailed
		rec.FailKind = common.KindOf(err).String()
		rec.FailMsg = err.Error()
	} else {
		rec.Status = store.StatusCompleted
	}
	p.persist(ctx, rec, log)

	for _, w := range res.Warnings {
		log.Warn("Generation warning", zap.String("kind", w.Kind), zap.String("detail", w.Detail))
	}
	if err != nil {
		log.Error("Generation failed",
			zap.Duration("elapsed", res.Elapsed), zap.Stringer("kind", common.KindOf(err)), zap.Error(err))
		return nil, err
	}
	log.Info("Generation completed",
		zap.Duration("elapsed", res.Elapsed),
		zap.Stringer("type", res.Brief.DiagramType),
		zap.Stringer("tier", res.Tier),
		zap.String("model", res.Response.Model),
		zap.Bool("cache_hit", res.Response.CacheHit),
		zap.Float64("cost_usd", res.Response.CostUSD),
		zap.Int("outputs", len(res.Outputs)))
	return res, nil
}

func (p *Pipeline) generate(ctx context.Context, req *Request, res *Result, rec *store.Record, log *zap.Logger) error {
	// admission first, the cheapest checks guard the expensive stages
	if err := p.meter.Allow(ctx, req.Caller, req.Plan); err != nil {
		return err
	}
	if err := p.meter.CheckQuota(ctx, req.Caller, req.Plan); err != nil {
		return err
	}

	preset, warns, err := p.brands.Extract(brand.Inputs{
		Palette:    req.Palette,
		Stylesheet: req.Stylesheet,
		Logo:       req.Logo,
		Template:   req.Template,
	})
	if err != nil {
		return err
	}
	res.Warnings = append(res.Warnings, warns...)

	lang := req.Lang
	if lang == "" {
		lang = DetectLanguage(req.Prompt).String()
	}
	res.Lang = lang
	rec.Lang = lang

	// the tier is known before any model call, so plan gating cannot cost
	// anything
	tier := llm.Classify(llm.Signals{
		Prompt:      req.Prompt,
		Hint:        brief.DetectDiagramType(req.TypeHint, req.Prompt),
		HasHint:     req.TypeHint != "",
		EntityCount: req.EntityCountHint,
		HasImages:   len(req.Reference) > 0,
	})
	res.Tier = tier
	rec.Tier = tier.String()
	if err := p.meter.CheckTier(req.Plan, tier); err != nil {
		return err
	}
	if req.EntityCountHint > 0 {
		if err := p.meter.CheckEntities(req.Plan, req.EntityCountHint); err != nil {
			return err
		}
	}

	in := reason.Inputs{
		Prompt:    req.Prompt,
		Tier:      tier,
		Caller:    req.Caller,
		Hint:      req.TypeHint,
		Lang:      lang,
		Images:    req.Reference,
		SkipCache: req.SkipCache,
	}
	if preset != nil {
		in.Palette = preset.Colors
		in.Font = preset.Font
	}
	rr, err := p.reasoner.Extract(ctx, in)
	if err != nil {
		return err
	}
	res.Brief = rr.Brief
	res.Response = rr.Response
	res.Warnings = append(res.Warnings, rr.Warnings...)

	rec.DiagramType = rr.Brief.DiagramType.String()
	rec.Model = rr.Response.Model
	rec.InputTokens = rr.Response.InputTokens
	rec.OutputTokens = rr.Response.OutputTokens
	rec.CostUSD = rr.Response.CostUSD
	rec.CacheHit = rr.Response.CacheHit
	rec.EntityCount = int64(len(rr.Brief.Entities))

	if err := p.meter.CheckEntities(req.Plan, len(rr.Brief.Entities)); err != nil {
		return err
	}

	lay, warns := layout.Solve(rr.Brief, p.measurer)
	res.Warnings = append(res.Warnings, warns...)
	if problems := lay.Validate(); len(problems) > 0 {
		return common.NewError(common.KindLayoutUnsatisfiable,
			"layout violates invariants: %s", strings.Join(problems, "; "))
	}
	res.Layout = lay

	formats := p.meter.Formats(req.Plan, req.Formats)
	if len(formats) == 0 {
		log.Info("No requested format is allowed by the plan, skipping renderers")
		return nil
	}
	outs, err := p.render(ctx, lay, rr.Brief, formats, p.meter.LimitsFor(req.Plan).ArtifactTTL())
	if err != nil {
		return err
	}
	res.Outputs = outs
	for _, out := range outs {
		rec.Formats = append(rec.Formats, out.Format.String())
	}
	return nil
}

// render fans the layout out to one renderer per format, then persists the
// results. Renderer panics are contained, a single flaky encoder must not
// take the process down.
func (p *Pipeline) render(ctx context.Context, lay *layout.Layout, b *brief.Brief, formats []common.OutputFormat, ttl time.Duration) ([]Output, error) {
	outs := make([]Output, len(formats))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for i, f := range formats {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					errs = multierr.Append(errs, fmt.Errorf("renderer %s panicked: %v", f, r))
					mu.Unlock()
				}
			}()
			data, err := renderers[f](lay)
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("render %s: %w", f, err))
				mu.Unlock()
				return
			}
			outs[i] = Output{Format: f, Name: artifactName(b, f), Data: data}
		}()
	}
	wg.Wait()
	if errs != nil {
		return nil, common.WrapError(common.KindInternalError, errs, "rendering failed")
	}

	if p.artifacts == nil {
		return outs, nil
	}
	for i := range outs {
		ref, err := p.artifacts.Put(ctx, outs[i].Name, outs[i].Data, ttl)
		if err != nil {
			return nil, common.WrapError(common.KindInternalError, err, "unable to store artifact %s", outs[i].Name)
		}
		outs[i].Ref = ref
	}
	return outs, nil
}

// persist writes the audit row. The write gets its own small deadline so an
// exhausted generation budget cannot swallow the record.
func (p *Pipeline) persist(ctx context.Context, rec store.Record, log *zap.Logger) {
	if p.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordWriteTimeout)
	defer cancel()
	if err := p.records.Append(ctx, rec); err != nil {
		log.Error("Generation record write failed", zap.Error(err))
	}
}

// artifactName derives the content addressed file name: a slug of the brief
// title plus the head of the input hash. The hash covers the brief (theme
// included), the solver version and the format, so identical inputs land on
// identical names and a retry overwrites instead of piling up.
func artifactName(b *brief.Brief, format common.OutputFormat) string {
	payload, _ := json.Marshal(b)
	h := sha256.New()
	h.Write(payload)
	h.Write([]byte{0x1e})
	fmt.Fprintf(h, "v%d", layout.SolverVersion)
	h.Write([]byte{0x1e})
	h.Write([]byte(format.String()))
	sum := hex.EncodeToString(h.Sum(nil))

	name := slug.Make(b.Title)
	if name == "" {
		name = "diagram"
	}
	return name + "-" + sum[:8] + format.Ext()
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// timestamp ordering lost, uniqueness kept
		return uuid.NewString()
	}
	return id.String()
}
