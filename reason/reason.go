// Package reason builds the model conversation that turns a prompt into a
// validated Brief. It speaks only to the gateway, never to a provider.
package reason

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"go.uber.org/zap"

	"infogen/brief"
	"infogen/common"
	"infogen/llm"
)

//go:embed system.tmpl
var systemTmpl string

//go:embed user.tmpl
var userTmpl string

const (
	// stageTimeout bounds the whole reasoning stage including the retry.
	stageTimeout = 20 * time.Second
	// maxAttempts is one initial call plus one correction round.
	maxAttempts = 2
	// Extraction wants focused answers, not creative ones.
	temperature = 0.3
	maxTokens   = 4096
)

// Completer is the slice of the gateway the reasoning stage needs.
type Completer interface {
	Complete(ctx context.Context, req *llm.Request) (*llm.Response, error)
}

// archetypeDoc documents one diagram type for the system prompt. The Rules
// line encodes the entity shape the matching layout solver expects.
type archetypeDoc struct {
	Name    string
	Purpose string
	Signals string
	Rules   string
}

var archetypeDocs = []archetypeDoc{
	{
		Name:    brief.DiagramTypeMarketecture.String(),
		Purpose: "Layered product or platform architecture built from labeled blocks arranged in horizontal rows.",
		Signals: "architecture, platform, ecosystem, business units, capability map",
		Rules:   "group entities into layers row by row; model spanning concerns such as security, governance or an AI layer as layers with position \"cross-cutting\"",
	},
	{
		Name:    brief.DiagramTypeProcessFlow.String(),
		Purpose: "Sequential steps read left to right.",
		Signals: "process, workflow, steps, procedure, how to",
		Rules:   "list entities in step order; consecutive steps connect automatically, add connections only for extra paths",
	},
	{
		Name:    brief.DiagramTypeTechStack.String(),
		Purpose: "Technology stack as full width rows.",
		Signals: "stack, tech stack, runs on, built on",
		Rules:   "list entities from the foundation upward: infrastructure first, user facing applications last",
	},
	{
		Name:    brief.DiagramTypeComparison.String(),
		Purpose: "Side by side columns.",
		Signals: "comparison, versus, vs, pros and cons, side by side",
		Rules:   "model each column as a layer whose entity_ids are its rows top to bottom; when rows answer shared criteria, set every row entity's group to its criterion name",
	},
	{
		Name:    brief.DiagramTypeTimeline.String(),
		Purpose: "Milestones along a horizontal axis.",
		Signals: "timeline, roadmap, milestones, history, evolution",
		Rules:   "list entities in chronological order and put the date or period in description",
	},
	{
		Name:    brief.DiagramTypeOrgStructure.String(),
		Purpose: "Reporting hierarchy drawn as a tree.",
		Signals: "org chart, team structure, reporting lines, who reports to whom",
		Rules:   "set each entity's group to the id of its manager; exactly one entity, the root, keeps group empty",
	},
	{
		Name:    brief.DiagramTypeValueChain.String(),
		Purpose: "Overlapping chevron stages forming one value stream.",
		Signals: "value chain, end to end, stages, stream",
		Rules:   "list stages in order, no connections needed",
	},
	{
		Name:    brief.DiagramTypeHubSpoke.String(),
		Purpose: "Central hub with satellites around it.",
		Signals: "hub and spoke, central, radiating, surrounded by",
		Rules:   "the first entity is the hub, the rest are spokes",
	},
}

// Inputs carries everything the pipeline knows before asking a model.
type Inputs struct {
	Prompt string
	Tier   llm.Tier
	Caller string
	// Hint is the caller's diagram type request, empty when none was made.
	Hint string
	// Lang is the BCP 47 tag of the detected prompt language.
	Lang string
	// Palette lists extracted brand colors, highest priority first.
	Palette []string
	// Font is the brand font family when one was extracted.
	Font      string
	Images    [][]byte
	SkipCache bool
}

// Result pairs the extracted brief with the gateway response that produced
// it, so the pipeline can account tokens and cost.
type Result struct {
	Brief    *brief.Brief
	Response *llm.Response
	Warnings common.Warnings
}

// Service renders the prompts and drives the parse-validate-retry loop.
type Service struct {
	gw     Completer
	log    *zap.Logger
	system string
	user   *template.Template
}

type userValues struct {
	Prompt   string
	Hint     string
	Palette  []string
	Font     string
	Lang     string
	Feedback []string
}

// New renders the static system prompt once so every request shares the same
// prefix and provider side prompt caches stay warm.
func New(gw Completer, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}
	funcMap := sprig.FuncMap()

	st, err := template.New("system").Funcs(funcMap).Parse(systemTmpl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse system template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := st.Execute(buf, struct{ Archetypes []archetypeDoc }{archetypeDocs}); err != nil {
		return nil, fmt.Errorf("unable to render system prompt: %w", err)
	}

	ut, err := template.New("user").Funcs(funcMap).Parse(userTmpl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse user template: %w", err)
	}
	return &Service{gw: gw, log: log, system: strings.TrimSpace(buf.String()), user: ut}, nil
}

// Extract asks the model for a Brief and validates the answer. One retry
// with the validation findings appended, then BriefRejected.
func (s *Service) Extract(ctx context.Context, in Inputs) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, stageTimeout)
	defer cancel()

	res := &Result{}
	var feedback []string
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		user, err := s.renderUser(in, feedback)
		if err != nil {
			return nil, common.WrapError(common.KindInternalError, err, "rendering user prompt")
		}
		resp, err := s.gw.Complete(ctx, &llm.Request{
			System:      s.system,
			User:        user,
			Tier:        in.Tier,
			Caller:      in.Caller,
			JSON:        true,
			Images:      in.Images,
			Temperature: temperature,
			MaxTokens:   maxTokens,
			SkipCache:   in.SkipCache,
		})
		if err != nil {
			return nil, err
		}
		res.Warnings = append(res.Warnings, resp.Warnings...)

		b, err := brief.Parse(resp.Content)
		if err != nil {
			feedback = []string{err.Error()}
			s.log.Debug("model answer failed to parse",
				zap.Int("attempt", attempt), zap.String("model", resp.Model), zap.Error(err))
			continue
		}
		if problems := brief.Validate(b); len(problems) > 0 {
			feedback = problems
			s.log.Debug("brief failed validation",
				zap.Int("attempt", attempt), zap.String("model", resp.Model), zap.Strings("problems", problems))
			continue
		}

		brief.Normalize(b, &res.Warnings)
		res.Brief = b
		res.Response = resp
		return res, nil
	}
	return nil, common.NewError(common.KindBriefRejected,
		"model output failed validation after %d attempts: %s", maxAttempts, strings.Join(feedback, "; "))
}

func (s *Service) renderUser(in Inputs, feedback []string) (string, error) {
	buf := new(bytes.Buffer)
	err := s.user.Execute(buf, userValues{
		Prompt:   in.Prompt,
		Hint:     in.Hint,
		Palette:  in.Palette,
		Font:     in.Font,
		Lang:     in.Lang,
		Feedback: feedback,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// SystemPrompt exposes the rendered shared prefix, mostly for debugging.
func (s *Service) SystemPrompt() string {
	return s.system
}
