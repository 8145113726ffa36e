package brand

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"infogen/common"
	"infogen/utils/images"
)

const (
	// logoSampleDim caps the pixel grid fed to clustering.
	logoSampleDim = 500
	// logoClusters is the number of dominant colors pulled from a logo.
	logoClusters = 5
	// logoMaxIterations bounds the clustering loop; logos settle in a
	// handful of rounds.
	logoMaxIterations = 20
)

// FromLogo extracts the dominant colors of a logo image. The image is
// composited on white, scaled down, and clustered; cluster centroids come
// back largest first, so the lead color is the one covering the most area.
func (x *Extractor) FromLogo(data []byte) (*Preset, error) {
	img, err := x.decodeLogo(data)
	if err != nil {
		return nil, common.WrapError(common.KindInputInvalid, err, "reading logo")
	}

	img = compositeOnWhite(img)
	img = imaging.Fit(img, logoSampleDim, logoSampleDim, imaging.Lanczos)

	samples := samplePixels(img)
	filtered := filterExtremePixels(samples)
	// A logo drawn entirely in white and black keeps nothing after the
	// filter; clustering the raw pixels at least yields its grays.
	if len(filtered) < logoClusters*10 {
		filtered = samples
	}

	centroids, sizes := cluster(filtered, logoClusters, logoMaxIterations)

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return sizes[order[a]] > sizes[order[b]] })

	seen := make(map[string]bool, len(centroids))
	var colors []string
	for _, i := range order {
		hex := fmt.Sprintf("%02x%02x%02x",
			roundChannel(centroids[i][0]), roundChannel(centroids[i][1]), roundChannel(centroids[i][2]))
		if seen[hex] {
			continue
		}
		seen[hex] = true
		colors = append(colors, hex)
	}

	return &Preset{Colors: capColors(colors), Source: SourceLogo}, nil
}

// decodeLogo sniffs the payload and decodes it into pixels. The magic byte
// matcher knows raster formats only, so SVG is recognized by its markup and
// rasterized.
func (x *Extractor) decodeLogo(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		if svgMarkup(data) {
			return images.RasterizeSVG(data, logoSampleDim, logoSampleDim)
		}
		return nil, errors.New("unrecognized logo format")
	}
	x.log.Debug("Decoding logo", zap.String("type", kind.Extension), zap.Int("bytes", len(data)))

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s logo: %w", kind.Extension, err)
	}
	return img, nil
}

// svgMarkup reports whether the payload opens with SVG markup, directly or
// behind an XML declaration.
func svgMarkup(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(head, []byte("<svg"))
}

// compositeOnWhite flattens transparency the way the slide background
// would: transparent logo regions count as white, not as black.
func compositeOnWhite(img image.Image) image.Image {
	if opq, ok := img.(interface{ Opaque() bool }); ok && opq.Opaque() {
		return img
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, img.Bounds(), img, img.Bounds().Min, draw.Over)
	return dst
}

// samplePixels flattens the image into RGB triples.
func samplePixels(img image.Image) [][3]float64 {
	b := img.Bounds()
	samples := make([][3]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			samples = append(samples, [3]float64{float64(r >> 8), float64(g >> 8), float64(bl >> 8)})
		}
	}
	return samples
}

// filterExtremePixels drops near-white and near-black pixels so paper and
// outline strokes do not dominate the clusters.
func filterExtremePixels(samples [][3]float64) [][3]float64 {
	kept := make([][3]float64, 0, len(samples))
	for _, s := range samples {
		r, g, b := uint8(s[0]), uint8(s[1]), uint8(s[2])
		if nearWhite(r, g, b) || nearBlack(r, g, b) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

// cluster runs plain k-means over the samples. The first k distinct sample
// values seed the centroids, which is deterministic and keeps the seeds
// apart on the flat color fills logos are made of; when the image holds
// fewer distinct colors than k, k shrinks to match. Returns the centroids
// and the number of samples assigned to each.
func cluster(samples [][3]float64, k, maxIterations int) ([][3]float64, []int) {
	if len(samples) == 0 {
		return nil, nil
	}

	centroids := make([][3]float64, 0, k)
	seen := make(map[[3]float64]bool, k)
	for _, s := range samples {
		if seen[s] {
			continue
		}
		seen[s] = true
		centroids = append(centroids, s)
		if len(centroids) == k {
			break
		}
	}
	k = len(centroids)

	assign := make([]int, len(samples))
	sizes := make([]int, k)
	for range maxIterations {
		changed := false
		for i, s := range samples {
			best, bestDist := 0, distSq(s, centroids[0])
			for c := 1; c < k; c++ {
				if d := distSq(s, centroids[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		sums := make([][3]float64, k)
		clear(sizes)
		for i, s := range samples {
			c := assign[i]
			sums[c][0] += s[0]
			sums[c][1] += s[1]
			sums[c][2] += s[2]
			sizes[c]++
		}
		for c := range k {
			// An emptied cluster keeps its old centroid.
			if sizes[c] == 0 {
				continue
			}
			n := float64(sizes[c])
			centroids[c] = [3]float64{sums[c][0] / n, sums[c][1] / n, sums[c][2] / n}
		}
		if !changed {
			break
		}
	}
	return centroids, sizes
}

func distSq(a, b [3]float64) float64 {
	dr, dg, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dr*dr + dg*dg + db*db
}

func roundChannel(v float64) int {
	return int(math.Min(255, math.Max(0, math.Round(v))))
}
