package gitgraph

import "math"

// Point is a position in diagram space, before margins and orientation
// offsets are applied.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Role tells the renderer how a path point connects to the previous one.
type Role string

const (
	// Start begins a new disconnected sub-path.
	Start Role = "start"
	// Join continues the current sub-path.
	Join Role = "join"
	// End terminates a sub-path at a merge commit.
	End Role = "end"
)

// PathPoint is one vertex of a branch line.
type PathPoint struct {
	Point
	Role Role `json:"role"`
}

// Kind distinguishes regular commits from merge commits.
type Kind string

const (
	KindNormal Kind = "normal"
	KindMerge  Kind = "merge"
)
