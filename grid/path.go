package grid

import "container/heap"

// Path finds a shortest 4-way route from start to goal over set cells.
// It returns nil when goal is unreachable or more than maxNodes cells would
// be expanded. A non-positive maxNodes means no limit.
func (g *Grid) Path(start, goal Point, maxNodes int) []Point {
	if !g.Has(start.X, start.Y) || !g.Has(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return []Point{start}
	}

	open := &frontier{}
	heap.Push(open, node{p: start, f: manhattan(start, goal)})
	cameFrom := make(map[Point]Point)
	cost := map[Point]int{start: 0}

	expanded := 0
	for open.Len() > 0 {
		cur := heap.Pop(open).(node)
		if cur.p == goal {
			return walkBack(cameFrom, start, goal)
		}
		if cur.g > cost[cur.p] {
			continue
		}
		expanded++
		if maxNodes > 0 && expanded > maxNodes {
			return nil
		}
		for _, d := range [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			next := Point{X: cur.p.X + d.X, Y: cur.p.Y + d.Y}
			if !g.Has(next.X, next.Y) {
				continue
			}
			tentative := cost[cur.p] + 1
			if prev, seen := cost[next]; seen && tentative >= prev {
				continue
			}
			cost[next] = tentative
			cameFrom[next] = cur.p
			heap.Push(open, node{p: next, g: tentative, f: tentative + manhattan(next, goal)})
		}
	}
	return nil
}

// Connected reports whether every point can reach the first over set cells.
func (g *Grid) Connected(pts []Point) bool {
	for i := 1; i < len(pts); i++ {
		if g.Path(pts[0], pts[i], 0) == nil {
			return false
		}
	}
	return true
}

func walkBack(cameFrom map[Point]Point, start, goal Point) []Point {
	path := []Point{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

type node struct {
	p    Point
	g, f int
}

// frontier is a min-heap of nodes ordered by f.
type frontier []node

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].f < f[j].f }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(node)) }
func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}
