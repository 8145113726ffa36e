package reason

import (
	"context"
	"strings"
	"testing"

	"infogen/brief"
	"infogen/common"
	"infogen/llm"
)

// stubGateway plays back scripted contents, one per call, the last repeating.
type stubGateway struct {
	contents []string
	err      error
	seen     []*llm.Request
}

func (s *stubGateway) Complete(_ context.Context, req *llm.Request) (*llm.Response, error) {
	s.seen = append(s.seen, req)
	if s.err != nil {
		return nil, s.err
	}
	idx := len(s.seen) - 1
	if idx >= len(s.contents) {
		idx = len(s.contents) - 1
	}
	return &llm.Response{
		Content: s.contents[idx], Model: "stub/model",
		InputTokens: 900, OutputTokens: 300, CostUSD: 0.0042, LatencyMS: 12,
	}, nil
}

const validBrief = `{
  "title": "Platform Overview",
  "diagram_type": "marketecture",
  "entities": [
    {"id": "app", "label": "Applications"},
    {"id": "data", "label": "Data Services"}
  ]
}`

func newService(t *testing.T, gw Completer) *Service {
	t.Helper()
	s, err := New(gw, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestExtractHappyPath(t *testing.T) {
	gw := &stubGateway{contents: []string{validBrief}}
	s := newService(t, gw)

	res, err := s.Extract(context.Background(), Inputs{
		Prompt: "show our platform", Tier: llm.TierPremium, Caller: "acme",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Brief.Title != "Platform Overview" {
		t.Errorf("Title = %q", res.Brief.Title)
	}
	if res.Brief.DiagramType != brief.DiagramTypeMarketecture {
		t.Errorf("DiagramType = %v", res.Brief.DiagramType)
	}
	if res.Brief.SchemaVersion != brief.SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", res.Brief.SchemaVersion, brief.SchemaVersion)
	}
	// Normalize must have filled the theme.
	if res.Brief.Theme.Primary == "" || res.Brief.Theme.FontFamily == "" {
		t.Errorf("theme not defaulted: %+v", res.Brief.Theme)
	}
	if res.Response == nil || res.Response.Model != "stub/model" {
		t.Errorf("Response = %+v, want the gateway response", res.Response)
	}

	if len(gw.seen) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gw.seen))
	}
	req := gw.seen[0]
	if !req.JSON {
		t.Error("request did not ask for JSON output")
	}
	if req.Tier != llm.TierPremium || req.Caller != "acme" {
		t.Errorf("tier/caller = %v/%q not forwarded", req.Tier, req.Caller)
	}
	if req.System != s.SystemPrompt() {
		t.Error("system prompt differs from the shared prefix")
	}
	if req.User != "show our platform" {
		t.Errorf("user prompt = %q, want the bare prompt", req.User)
	}
}

func TestExtractRetriesWithFeedback(t *testing.T) {
	gw := &stubGateway{contents: []string{`{"title": "Empty", "diagram_type": "timeline", "entities": []}`, validBrief}}
	s := newService(t, gw)

	res, err := s.Extract(context.Background(), Inputs{Prompt: "p", Tier: llm.TierFast})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Brief.Title != "Platform Overview" {
		t.Errorf("Title = %q, want the corrected brief", res.Brief.Title)
	}
	if len(gw.seen) != 2 {
		t.Fatalf("gateway calls = %d, want 2", len(gw.seen))
	}
	retry := gw.seen[1].User
	if !strings.Contains(retry, "failed validation") {
		t.Errorf("retry prompt lacks the validation preamble: %q", retry)
	}
	if !strings.Contains(retry, "no entities defined") {
		t.Errorf("retry prompt lacks the finding: %q", retry)
	}
}

func TestExtractRejectsAfterTwoFailures(t *testing.T) {
	gw := &stubGateway{contents: []string{"this is not json"}}
	s := newService(t, gw)

	_, err := s.Extract(context.Background(), Inputs{Prompt: "p", Tier: llm.TierFast})
	if err == nil {
		t.Fatal("Extract() = nil error on persistent garbage")
	}
	if kind := common.KindOf(err); kind != common.KindBriefRejected {
		t.Errorf("KindOf(err) = %v, want %v", kind, common.KindBriefRejected)
	}
	if len(gw.seen) != 2 {
		t.Errorf("gateway calls = %d, want 2", len(gw.seen))
	}
}

func TestExtractPassesGatewayErrorThrough(t *testing.T) {
	gw := &stubGateway{err: common.NewError(common.KindAllModelsFailed, "everything is down")}
	s := newService(t, gw)

	_, err := s.Extract(context.Background(), Inputs{Prompt: "p", Tier: llm.TierFast})
	if err == nil {
		t.Fatal("Extract() = nil error when the gateway fails")
	}
	if kind := common.KindOf(err); kind != common.KindAllModelsFailed {
		t.Errorf("KindOf(err) = %v, want %v", kind, common.KindAllModelsFailed)
	}
	if len(gw.seen) != 1 {
		t.Errorf("gateway calls = %d, want 1 (no retry above the gateway)", len(gw.seen))
	}
}

func TestUserPromptComposition(t *testing.T) {
	gw := &stubGateway{contents: []string{validBrief}}
	s := newService(t, gw)

	_, err := s.Extract(context.Background(), Inputs{
		Prompt:  "compare build vs buy",
		Hint:    "comparison",
		Palette: []string{"#0073e6", "#1a1a2e"},
		Font:    "Inter",
		Lang:    "de",
		Tier:    llm.TierFast,
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	user := gw.seen[0].User
	for _, want := range []string{
		"compare build vs buy",
		"Requested diagram type: comparison.",
		"#0073e6, #1a1a2e",
		"Brand font family: Inter.",
		"language: de",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
	if strings.Contains(user, "failed validation") {
		t.Error("first attempt carries validation feedback")
	}
}

func TestSystemPromptCoversEveryArchetype(t *testing.T) {
	s := newService(t, &stubGateway{contents: []string{validBrief}})
	system := s.SystemPrompt()

	for _, doc := range archetypeDocs {
		if !strings.Contains(system, doc.Name+":") {
			t.Errorf("system prompt missing archetype %s", doc.Name)
		}
	}
	for _, want := range []string{
		"Never reference stock imagery",
		"same language as the user's prompt",
		"Only return valid JSON",
		"infrastructure first",
		"group to the id of its manager",
		"the first entity is the hub",
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}
