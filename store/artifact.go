package store

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/maruel/natural"

	"infogen/common"
)

// Artifact is one rendered output ready for storage.
type Artifact struct {
	Name        string
	Format      common.OutputFormat
	ContentType string
	Data        []byte
}

// ArtifactName derives a stable file name from rendered bytes: the slugged
// title plus the first eight hex digits of the content hash. Identical
// content under the same title always maps to the same name. The pipeline
// addresses its outputs by what produced them instead; this is the naming
// for ad hoc writes with no brief behind them.
func ArtifactName(title string, format common.OutputFormat, data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s-%x%s", slug.Make(title), sum[:4], format.Ext())
}

// Artifacts is the filesystem artifact store. Files are content-addressed
// and write-once; the modification time carries the expiry so TTLs survive
// restarts without a side table.
type Artifacts struct {
	root   string
	signer *Signer
	now    func() time.Time
}

// NewArtifacts roots the store at storageURL, accepting either a file:// URL
// or a bare directory path.
func NewArtifacts(storageURL string, signer *Signer) (*Artifacts, error) {
	root := strings.TrimPrefix(storageURL, "file://")
	if root == "" {
		return nil, common.NewError(common.KindInputInvalid, "artifact storage url is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Artifacts{root: root, signer: signer, now: time.Now}, nil
}

// Put stores the artifact under name and returns a signed reference valid
// for ttl. Names come from the caller so addressing stays a pipeline policy;
// writing an existing name is a no-op and the reference keeps the original
// expiry.
func (s *Artifacts) Put(ctx context.Context, name string, data []byte, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) {
		return "", common.NewError(common.KindInputInvalid, "artifact name %q is not flat", name)
	}
	path := filepath.Join(s.root, name)

	if fi, err := os.Stat(path); err == nil {
		return s.signer.Sign(name, fi.ModTime()), nil
	}

	expiry := s.now().Add(ttl)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Chtimes(path, expiry, expiry); err != nil {
		return "", err
	}
	return s.signer.Sign(name, expiry), nil
}

// Read resolves a signed reference and returns the artifact bytes.
func (s *Artifacts) Read(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.signer.Verify(ref, s.now())
	if err != nil {
		return nil, err
	}
	// References never escape the store root.
	if name != filepath.Base(name) {
		return nil, common.NewError(common.KindInputInvalid, "artifact name %q is not flat", name)
	}
	return os.ReadFile(filepath.Join(s.root, name))
}

// List returns stored artifact names in natural order, so generation-2
// sorts before generation-10.
func (s *Artifacts) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// Sweep removes artifacts past their expiry and reports how many went.
func (s *Artifacts) Sweep(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, err
	}

	now := s.now()
	removed := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if e.IsDir() {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if fi.ModTime().Before(now) {
			if err := os.Remove(filepath.Join(s.root, e.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
