// Package octree implements a read-only spatial index over bounded items that
// answers "which items may this ray touch" queries.
package octree

import (
	"iter"
	"math"

	"github.com/df07/go-octree-raytracer/pkg/core"
)

// Bounded is implemented by anything the octree can index. Items that report
// no bounding box (infinite planes) are tested against every query.
type Bounded interface {
	PartialBoundingBox() (core.AABB, bool)
}

const (
	// Nodes holding this many items or fewer are not split
	maxLeafItems = 8
	// Depth limit; nodes at this depth keep all their items
	maxDepth = 10
	// Traversal stack capacity: each level pushes at most 8 children
	stackCapacity = 8*maxDepth + 1
)

// node is one region of space. Items live in the smallest node whose region
// fully contains their bounding box, so each item is referenced exactly once.
type node[T Bounded] struct {
	bounds   core.AABB
	children [8]*node[T]
	items    []T
}

type entry[T Bounded] struct {
	item   T
	bounds core.AABB
}

// Octree is built once and never mutated afterwards, which makes concurrent
// queries from many render workers safe without locking.
type Octree[T Bounded] struct {
	root      *node[T]
	unbounded []T
	bounds    core.AABB
	count     int
}

// New builds an octree over items. The input slice is not retained.
func New[T Bounded](items []T) *Octree[T] {
	tree := &Octree[T]{count: len(items)}

	entries := make([]entry[T], 0, len(items))
	for _, item := range items {
		box, ok := item.PartialBoundingBox()
		if !ok || !box.IsFinite() {
			tree.unbounded = append(tree.unbounded, item)
			continue
		}

		if len(entries) == 0 {
			tree.bounds = box
		} else {
			tree.bounds = tree.bounds.Union(box)
		}
		entries = append(entries, entry[T]{item: item, bounds: box})
	}

	if len(entries) > 0 {
		tree.root = build(tree.bounds, entries, 0)
	}

	return tree
}

// build recursively distributes entries over the eight octants of bounds
func build[T Bounded](bounds core.AABB, entries []entry[T], depth int) *node[T] {
	n := &node[T]{bounds: bounds}

	if len(entries) <= maxLeafItems || depth >= maxDepth {
		n.items = make([]T, len(entries))
		for i, e := range entries {
			n.items[i] = e.item
		}
		return n
	}

	var buckets [8][]entry[T]
	for _, e := range entries {
		octant := octantFor(bounds, e.bounds)
		if octant < 0 {
			// Straddles a split plane
			n.items = append(n.items, e.item)
			continue
		}
		buckets[octant] = append(buckets[octant], e)
	}

	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		n.children[i] = build(bounds.Octant(i), bucket, depth+1)
	}

	return n
}

// octantFor returns the index of the octant of bounds that fully contains box,
// or -1 if box crosses the center on any axis
func octantFor(bounds, box core.AABB) int {
	center := bounds.Center()
	index := 0
	for axis := 0; axis < 3; axis++ {
		c := center.Component(axis)
		switch {
		case box.Max.Component(axis) <= c:
			// lower half
		case box.Min.Component(axis) >= c:
			index |= 1 << axis
		default:
			return -1
		}
	}
	return index
}

// Intersect returns a lazy sequence of every item whose node is not rejected by
// the ray's slab test. Unbounded items come first.
// The order is traversal order, not distance order, and the sequence may
// contain items the ray misses; callers pick the true nearest hit.
func (o *Octree[T]) Intersect(ray core.Ray) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range o.unbounded {
			if !yield(item) {
				return
			}
		}

		if o.root == nil {
			return
		}

		var buf [stackCapacity]*node[T]
		stack := append(buf[:0], o.root)
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !n.bounds.Hit(ray, 0, math.Inf(1)) {
				continue
			}

			for _, item := range n.items {
				if !yield(item) {
					return
				}
			}

			for _, child := range n.children {
				if child != nil {
					stack = append(stack, child)
				}
			}
		}
	}
}

// Len returns the number of indexed items, bounded or not
func (o *Octree[T]) Len() int {
	return o.count
}

// Bounds returns the union of all finite item bounds. The second value is
// false when the tree holds no bounded items.
func (o *Octree[T]) Bounds() (core.AABB, bool) {
	return o.bounds, o.root != nil
}

// Stats contains statistics about the octree structure
type Stats struct {
	TotalNodes     int
	LeafNodes      int
	MaxDepth       int
	BoundedItems   int
	UnboundedItems int
}

// Stats walks the tree and reports its shape
func (o *Octree[T]) Stats() Stats {
	stats := Stats{UnboundedItems: len(o.unbounded)}
	if o.root != nil {
		collectStats(o.root, 0, &stats)
	}
	return stats
}

// collectStats recursively collects statistics about the tree
func collectStats[T Bounded](n *node[T], depth int, stats *Stats) {
	stats.TotalNodes++
	stats.BoundedItems += len(n.items)
	stats.MaxDepth = max(stats.MaxDepth, depth)

	leaf := true
	for _, child := range n.children {
		if child != nil {
			leaf = false
			collectStats(child, depth+1, stats)
		}
	}
	if leaf {
		stats.LeafNodes++
	}
}
