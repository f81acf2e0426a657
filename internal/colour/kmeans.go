package colour

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"sort"
	"time"
)

// KMeansExtractor implements colour extraction using k-means clustering.
type KMeansExtractor struct {
	maxIterations int
	convergence   float64
	maxSamples    int
	seed          *int64
}

// NewKMeansExtractor creates a new KMeansExtractor with default settings.
// A nil seed gives a different clustering on every run.
func NewKMeansExtractor(seed *int64) *KMeansExtractor {
	return &KMeansExtractor{
		maxIterations: 20,
		convergence:   2.0,
		maxSamples:    2000,
		seed:          seed,
	}
}

// Extract extracts colours from an image using k-means clustering.
// Colours are returned ordered by weight (cluster size), largest first.
func (e *KMeansExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 {
		return nil, fmt.Errorf("color count must be at least 1, got %d", count)
	}
	if count > MaxColourCount {
		return nil, fmt.Errorf("color count too large: %d (maximum: %d)", count, MaxColourCount)
	}

	pixels := e.samplePixels(img)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// Count unique colours first.
	uniqueColors := make([]RGB, 0, len(pixels))
	counts := make(map[RGB]int)
	for _, p := range pixels {
		rgb := ToRGB(p)
		if counts[rgb] == 0 {
			uniqueColors = append(uniqueColors, rgb)
		}
		counts[rgb]++
	}

	// If we want at least as many colours as exist, return all of them.
	if count >= len(uniqueColors) {
		weights := make([]float64, len(uniqueColors))
		for i, rgb := range uniqueColors {
			weights[i] = float64(counts[rgb]) / float64(len(pixels))
		}
		return sortedByWeight(uniqueColors, weights), nil
	}

	rng := e.newRand()
	centroids, weights := e.kmeans(rng, pixels, count)

	colors := make([]RGB, len(centroids))
	for i, c := range centroids {
		colors[i] = RGB{
			R: uint8(math.Round(clamp255(c.R))),
			G: uint8(math.Round(clamp255(c.G))),
			B: uint8(math.Round(clamp255(c.B))),
		}
	}

	return sortedByWeight(colors, weights), nil
}

func (e *KMeansExtractor) newRand() *rand.Rand {
	if e.seed != nil {
		return rand.New(rand.NewSource(*e.seed)) // #nosec G404 - clustering, not security
	}
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 - clustering, not security
}

// sortedByWeight builds a palette ordered by descending weight. Ties keep
// their original order so a seeded run stays reproducible.
func sortedByWeight(colors []RGB, weights []float64) *Palette {
	idx := make([]int, len(colors))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return weights[idx[a]] > weights[idx[b]]
	})

	out := make([]color.Color, len(colors))
	outWeights := make([]float64, len(colors))
	for i, j := range idx {
		out[i] = colors[j]
		outWeights[i] = weights[j]
	}
	return NewPaletteWithWeights(out, outWeights)
}

func clamp255(v float64) float64 {
	return math.Max(0, math.Min(255, v))
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels samples pixels from the image.
// For large images, we sample a subset on a regular grid.
func (e *KMeansExtractor) samplePixels(img image.Image) []color.Color {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	totalPixels := width * height

	if totalPixels <= e.maxSamples {
		pixels := make([]color.Color, 0, totalPixels)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				pixels = append(pixels, img.At(x, y))
			}
		}
		return pixels
	}

	step := max(int(math.Sqrt(float64(totalPixels)/float64(e.maxSamples))), 1)

	pixels := make([]color.Color, 0, e.maxSamples)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, img.At(x, y))
			if len(pixels) >= e.maxSamples {
				return pixels
			}
		}
	}

	return pixels
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func (e *KMeansExtractor) kmeans(rng *rand.Rand, pixels []color.Color, k int) ([]point3D, []float64) {
	points := make([]point3D, len(pixels))
	for i, c := range pixels {
		rgb := ToRGB(c)
		points[i] = point3D{
			R: float64(rgb.R),
			G: float64(rgb.G),
			B: float64(rgb.B),
		}
	}

	centroids := e.initializeCentroidsKMeansPlusPlus(rng, points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < e.maxIterations; iter++ {
		changed := 0
		for i, point := range points {
			nearest := e.findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of assignments moved: converged.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := e.recalculateCentroids(rng, points, assignments, k)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		avgMovement := totalMovement / float64(k)

		centroids = newCentroids

		if avgMovement < e.convergence {
			break
		}
	}

	weights := make([]float64, k)
	for _, assignment := range assignments {
		weights[assignment]++
	}

	totalPixels := float64(len(assignments))
	for i := range weights {
		weights[i] /= totalPixels
	}

	return centroids, weights
}

// initializeCentroidsKMeansPlusPlus initializes centroids using k-means++.
func (e *KMeansExtractor) initializeCentroidsKMeansPlusPlus(rng *rand.Rand, points []point3D, k int) []point3D {
	if len(points) == 0 || k == 0 {
		return []point3D{}
	}

	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.Intn(len(points))])

	for len(centroids) < k {
		distances := make([]float64, len(points))
		totalDistance := 0.0

		for i, point := range points {
			minDist := math.MaxFloat64
			for _, centroid := range centroids {
				if dist := point.distance(centroid); dist < minDist {
					minDist = dist
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Every point sits on a centroid; nudge the last one.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * totalDistance
		cumulative := 0.0
		for i, dist := range distances {
			cumulative += dist
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func (e *KMeansExtractor) findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0

	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest
}

// recalculateCentroids recalculates centroid positions based on assigned points.
func (e *KMeansExtractor) recalculateCentroids(rng *rand.Rand, points []point3D, assignments []int, k int) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		cluster := assignments[i]
		sums[cluster].R += point.R
		sums[cluster].G += point.G
		sums[cluster].B += point.B
		counts[cluster]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] > 0 {
			centroids[i] = point3D{
				R: sums[i].R / float64(counts[i]),
				G: sums[i].G / float64(counts[i]),
				B: sums[i].B / float64(counts[i]),
			}
		} else {
			// Empty cluster: reseed from a random point.
			centroids[i] = points[rng.Intn(len(points))]
		}
	}

	return centroids
}
