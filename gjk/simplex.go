package gjk

import (
	"fmt"
	"iter"
	"slices"
	"sync"
)

// Simplex is an ordered set of points. Insertion order matters: the most recently
// added point is the last one, which is what the Voronoi region tests rely on.
//
// During GJK it holds 1 to 3 points. EPA reuses it as a growing convex polygon.
type Simplex[T comparable] struct {
	points []T
}

// NewSimplex creates a simplex from the given points, in order
func NewSimplex[T comparable](points ...T) *Simplex[T] {
	s := &Simplex[T]{points: make([]T, 0, max(len(points), 4))}
	s.points = append(s.points, points...)
	return s
}

// SimplexPool recycles simplices between narrow-phase pairs
var SimplexPool = sync.Pool{
	New: func() interface{} {
		return &Simplex[Support]{points: make([]Support, 0, 8)}
	},
}

func (s *Simplex[T]) Reset() {
	s.points = s.points[:0]
}

// Add appends a point at the end of the simplex
func (s *Simplex[T]) Add(point T) {
	s.points = append(s.points, point)
}

// Insert places the point at index, shifting the following points back
func (s *Simplex[T]) Insert(point T, index int) {
	if index < 0 || index > len(s.points) {
		panic(fmt.Sprintf("gjk: insert index %d out of range [0, %d]", index, len(s.points)))
	}
	s.points = slices.Insert(s.points, index, point)
}

// Remove deletes the point at index
func (s *Simplex[T]) Remove(index int) {
	s.checkIndex(index)
	s.points = slices.Delete(s.points, index, index+1)
}

// RemoveValue deletes the first point equal to point, if any
func (s *Simplex[T]) RemoveValue(point T) {
	if i := slices.Index(s.points, point); i != -1 {
		s.points = slices.Delete(s.points, i, i+1)
	}
}

func (s *Simplex[T]) Size() int {
	return len(s.points)
}

func (s *Simplex[T]) At(index int) T {
	s.checkIndex(index)
	return s.points[index]
}

func (s *Simplex[T]) Set(index int, point T) {
	s.checkIndex(index)
	s.points[index] = point
}

// All iterates over the points from the oldest to the most recent
func (s *Simplex[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, point := range s.points {
			if !yield(i, point) {
				return
			}
		}
	}
}

func (s *Simplex[T]) checkIndex(index int) {
	if index < 0 || index >= len(s.points) {
		panic(fmt.Sprintf("gjk: simplex index %d out of range [0, %d)", index, len(s.points)))
	}
}

// mustHaveSize guards the geometric sub-procedures: calling them with the wrong
// number of points is a bug in the algorithm, not a runtime condition.
func (s *Simplex[T]) mustHaveSize(size int, caller string) {
	if len(s.points) != size {
		panic(fmt.Sprintf("gjk: invalid simplex during %s: %d points, want %d", caller, len(s.points), size))
	}
}
