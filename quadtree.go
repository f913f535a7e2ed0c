package fizz

import (
	"github.com/akmonengine/fizz/actor"
)

// DefaultMaxLevels is the depth under which the quadtree stops splitting
const DefaultMaxLevels = 5

// Pair represents two bodies that potentially collide
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// Quadtree is a broad-phase spatial index. Each body is stored in the smallest node
// whose bounds strictly contain its AABB; bodies straddling a split line, or outside
// the root bounds, stay in the upper node.
//
// A node owns either zero or four children, allocated together on the first insertion
// that needs them.
type Quadtree struct {
	level     int
	maxLevels int
	bounds    actor.AABB

	bodies []*actor.RigidBody
	nodes  *[4]Quadtree
}

func NewQuadtree(bounds actor.AABB, maxLevels int) *Quadtree {
	return &Quadtree{
		maxLevels: maxLevels,
		bounds:    bounds,
	}
}

func (q *Quadtree) Bounds() actor.AABB {
	return q.bounds
}

// Clear removes every body and drops the children
func (q *Quadtree) Clear() {
	clear(q.bodies)
	q.bodies = q.bodies[:0]
	q.nodes = nil
}

// Insert adds the body to the deepest node that can hold it
func (q *Quadtree) Insert(body *actor.RigidBody) {
	aabb := body.GetAABB()

	if q.level < q.maxLevels {
		quadrants := q.bounds.Quadrants()
		for i, quadrant := range quadrants {
			if !quadrant.Contains(aabb) {
				continue
			}

			if q.nodes == nil {
				q.split(quadrants)
			}
			q.nodes[i].Insert(body)
			return
		}
	}

	q.bodies = append(q.bodies, body)
}

func (q *Quadtree) split(quadrants [4]actor.AABB) {
	q.nodes = new([4]Quadtree)
	for i, quadrant := range quadrants {
		q.nodes[i] = Quadtree{
			level:     q.level + 1,
			maxLevels: q.maxLevels,
			bounds:    quadrant,
		}
	}
}

// Len returns the number of bodies in the tree
func (q *Quadtree) Len() int {
	count := len(q.bodies)
	if q.nodes != nil {
		for i := range q.nodes {
			count += q.nodes[i].Len()
		}
	}

	return count
}

// GetPossibleCollisions returns every pair of bodies that may overlap: the bodies of a
// node are paired together, and with every body below them. Bodies in sibling subtrees
// are strictly apart and never paired.
//
// Each pair is returned once, with the upper body first.
func (q *Quadtree) GetPossibleCollisions() []Pair {
	var pairs []Pair
	q.collectPairs(&pairs)

	return pairs
}

func (q *Quadtree) collectPairs(pairs *[]Pair) {
	for i, bodyA := range q.bodies {
		for _, bodyB := range q.bodies[i+1:] {
			*pairs = append(*pairs, Pair{BodyA: bodyA, BodyB: bodyB})
		}
	}

	if q.nodes == nil {
		return
	}

	for _, bodyA := range q.bodies {
		for i := range q.nodes {
			q.nodes[i].forEach(func(bodyB *actor.RigidBody) {
				*pairs = append(*pairs, Pair{BodyA: bodyA, BodyB: bodyB})
			})
		}
	}

	for i := range q.nodes {
		q.nodes[i].collectPairs(pairs)
	}
}

func (q *Quadtree) forEach(fn func(body *actor.RigidBody)) {
	for _, body := range q.bodies {
		fn(body)
	}

	if q.nodes != nil {
		for i := range q.nodes {
			q.nodes[i].forEach(fn)
		}
	}
}

// Query returns the bodies whose AABB overlaps bounds
func (q *Quadtree) Query(bounds actor.AABB) []*actor.RigidBody {
	var bodies []*actor.RigidBody
	q.query(bounds, &bodies)

	return bodies
}

func (q *Quadtree) query(bounds actor.AABB, bodies *[]*actor.RigidBody) {
	for _, body := range q.bodies {
		if body.GetAABB().Overlaps(bounds) {
			*bodies = append(*bodies, body)
		}
	}

	if q.nodes == nil {
		return
	}

	// Children only hold bodies strictly inside their bounds
	for i := range q.nodes {
		if q.nodes[i].bounds.Overlaps(bounds) {
			q.nodes[i].query(bounds, bodies)
		}
	}
}
