package space

import (
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/delaunay"

	"github.com/talgya/cellspace/internal/entropy"
)

// Property keys written by the Voronoi builder. The engine itself never
// reads them; they exist for rendering and model logic.
const (
	PropCentroid = "centroid" // [2]float64, the cell's generating point
	PropPolygon  = "polygon"  // [][2]float64, region vertices in angular order
)

// VoronoiConfig holds the knobs for point-derived topologies.
type VoronoiConfig struct {
	// Capacity bounds occupants per cell; 0 means no bound.
	Capacity int
	// Seed feeds the space's random source when Rand is nil.
	Seed int64
	// Rand, when set, is used instead of building a source from Seed.
	Rand *entropy.Source
}

// Voronoi is a cell space derived from a set of 2-D points: one cell per
// point, with two cells adjacent iff their points share an edge in the
// Delaunay triangulation (equivalently, their Voronoi regions touch). Each
// cell stores its generating point and region polygon in Properties.
type Voronoi struct {
	*Space
}

// NewVoronoi builds a Voronoi space from at least three non-collinear
// points. Cells are keyed by point index via NodeCoord. A degenerate point
// set is fatal; there is no partially built space.
func NewVoronoi(points [][2]float64, cfg VoronoiConfig) (*Voronoi, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 points, got %d", ErrInvalidArgument, len(points))
	}
	capacity, err := normalizeCapacity(cfg.Capacity)
	if err != nil {
		return nil, err
	}

	pts := make([]delaunay.Point, len(points))
	for i, p := range points {
		pts[i] = delaunay.Point{X: p[0], Y: p[1]}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, fmt.Errorf("%w: triangulation failed: %v", ErrInvalidArgument, err)
	}
	if len(tri.Triangles) == 0 {
		return nil, fmt.Errorf("%w: degenerate point set", ErrInvalidArgument)
	}

	s := newSpace(sourceFor(cfg.Rand, cfg.Seed), len(points))
	for i, p := range points {
		cell := s.addCell(NodeCoord(i), capacity)
		cell.Properties[PropCentroid] = p
	}

	// Every triangulation edge is a Voronoi adjacency.
	centers := make([][2]float64, 0, len(tri.Triangles)/3)
	incident := make(map[int][]int, len(points)) // point index -> triangle indices
	for t := 0; t < len(tri.Triangles); t += 3 {
		a, b, c := tri.Triangles[t], tri.Triangles[t+1], tri.Triangles[t+2]
		connectPair(s, a, b)
		connectPair(s, b, c)
		connectPair(s, c, a)

		ti := len(centers)
		centers = append(centers, circumcenter(points[a], points[b], points[c]))
		incident[a] = append(incident[a], ti)
		incident[b] = append(incident[b], ti)
		incident[c] = append(incident[c], ti)
	}

	// The region polygon of a point is the circumcenters of its incident
	// triangles, ordered by angle around the point. Hull points get the
	// finite part of their open region.
	for i, p := range points {
		tris := incident[i]
		poly := make([][2]float64, len(tris))
		for j, ti := range tris {
			poly[j] = centers[ti]
		}
		sort.Slice(poly, func(a, b int) bool {
			return math.Atan2(poly[a][1]-p[1], poly[a][0]-p[0]) <
				math.Atan2(poly[b][1]-p[1], poly[b][0]-p[0])
		})
		s.cells[NodeCoord(i)].Properties[PropPolygon] = poly
	}

	return &Voronoi{Space: s}, nil
}

func connectPair(s *Space, a, b int) {
	ca := s.cells[NodeCoord(a)]
	cb := s.cells[NodeCoord(b)]
	ca.connect(cb)
	cb.connect(ca)
}

// circumcenter returns the center of the circle through three points,
// falling back to the triangle centroid when they are nearly collinear.
func circumcenter(a, b, c [2]float64) [2]float64 {
	ax, ay := a[0], a[1]
	bx, by := b[0]-ax, b[1]-ay
	cx, cy := c[0]-ax, c[1]-ay

	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		return [2]float64{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3}
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return [2]float64{ax + ux, ay + uy}
}
