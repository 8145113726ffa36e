package store

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"infogen/common"
)

func testStore(t *testing.T) *Artifacts {
	t.Helper()
	s, err := NewArtifacts(t.TempDir(), NewSigner([]byte("test-key")))
	if err != nil {
		t.Fatalf("NewArtifacts() error = %v", err)
	}
	return s
}

func TestArtifactName(t *testing.T) {
	name := ArtifactName("Cloud Migration Roadmap!", common.OutputFormatSvg, []byte("<svg/>"))
	if !strings.HasPrefix(name, "cloud-migration-roadmap-") {
		t.Errorf("ArtifactName() = %q, want slugged title prefix", name)
	}
	if !strings.HasSuffix(name, ".svg") {
		t.Errorf("ArtifactName() = %q, want .svg suffix", name)
	}
	// Same content, same name.
	if again := ArtifactName("Cloud Migration Roadmap!", common.OutputFormatSvg, []byte("<svg/>")); again != name {
		t.Errorf("ArtifactName() = %q and %q for identical content", name, again)
	}
	if other := ArtifactName("Cloud Migration Roadmap!", common.OutputFormatSvg, []byte("<svg>x</svg>")); other == name {
		t.Error("ArtifactName() identical for different content")
	}
}

func TestArtifactsPutWriteOnce(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	name := ArtifactName("Roadmap", common.OutputFormatSvg, []byte("<svg/>"))
	ref1, err := s.Put(ctx, name, []byte("<svg/>"), time.Hour)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	ref2, err := s.Put(ctx, name, []byte("<svg/>"), 2*time.Hour)
	if err != nil {
		t.Fatalf("Put() again error = %v", err)
	}
	if ref1 != ref2 {
		t.Errorf("second Put() = %q, want the original reference %q", ref2, ref1)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 1 {
		t.Errorf("List() = %v, want exactly one file", names)
	}
}

func TestArtifactsPutRejectsUnsafeNames(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	for _, name := range []string{"", "../escape.svg", "nested/dir.svg"} {
		_, err := s.Put(ctx, name, []byte("x"), time.Hour)
		if kind := common.KindOf(err); kind != common.KindInputInvalid {
			t.Errorf("Put(%q) kind = %v, want %v", name, kind, common.KindInputInvalid)
		}
	}
}

func TestArtifactsReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	data := []byte("%PDF-not-really")
	ref, err := s.Put(ctx, ArtifactName("Quarterly Review", common.OutputFormatSlide, data), data, time.Hour)
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Read(ctx, ref)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Read() = %q, want %q", got, data)
	}
}

func TestArtifactsListNaturalOrder(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	for _, title := range []string{"Gen 10", "Gen 2", "Gen 1"} {
		if _, err := s.Put(ctx, ArtifactName(title, common.OutputFormatSvg, []byte(title)), []byte(title), time.Hour); err != nil {
			t.Fatalf("Put(%s) error = %v", title, err)
		}
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	for i, prefix := range []string{"gen-1-", "gen-2-", "gen-10-"} {
		if !strings.HasPrefix(names[i], prefix) {
			t.Errorf("List()[%d] = %q, want prefix %q", i, names[i], prefix)
		}
	}
}

func TestArtifactsSweep(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)

	if _, err := s.Put(ctx, ArtifactName("stale", common.OutputFormatSvg, []byte("old")), []byte("old"), -time.Hour); err != nil {
		t.Fatalf("Put(stale) error = %v", err)
	}
	if _, err := s.Put(ctx, ArtifactName("fresh", common.OutputFormatSvg, []byte("new")), []byte("new"), time.Hour); err != nil {
		t.Fatalf("Put(fresh) error = %v", err)
	}

	removed, err := s.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
	names, _ := s.List()
	if len(names) != 1 || !strings.HasPrefix(names[0], "fresh-") {
		t.Errorf("List() after sweep = %v, want only the fresh artifact", names)
	}
}

func TestSignerVerify(t *testing.T) {
	signer := NewSigner([]byte("secret"))
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	ref := signer.Sign("diagram-abc123.svg", now.Add(time.Hour))

	name, err := signer.Verify(ref, now)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if name != "diagram-abc123.svg" {
		t.Errorf("Verify() = %q, want diagram-abc123.svg", name)
	}

	if _, err := signer.Verify(ref, now.Add(2*time.Hour)); err == nil {
		t.Error("Verify() of expired reference = nil, want error")
	}
	if _, err := signer.Verify(strings.Replace(ref, "diagram", "other", 1), now); err == nil {
		t.Error("Verify() of retargeted reference = nil, want error")
	}
	if _, err := NewSigner([]byte("wrong")).Verify(ref, now); err == nil {
		t.Error("Verify() with wrong key = nil, want error")
	}
	_, err = signer.Verify("garbage", now)
	if err == nil {
		t.Fatal("Verify(garbage) = nil, want error")
	}
	if kind := common.KindOf(err); kind != common.KindInputInvalid {
		t.Errorf("KindOf(verify error) = %v, want %v", kind, common.KindInputInvalid)
	}
}
