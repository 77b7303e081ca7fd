package feather2d

import (
	"sort"
	"sync"

	"github.com/akmonengine/feather2d/actor"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ============================================================================
// Types
// ============================================================================

// CellKey - coordinates of a cell in 2D space
type CellKey struct {
	X, Y int
}

// Cell - indices of the bodies overlapping a cell
type Cell struct {
	bodyIndices []int
}

// SpatialGrid - uniform grid, hashed into a fixed number of cells, used by the broad phase
type SpatialGrid struct {
	cellSize float32
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid - numCells is rounded up to a power of two
func NewSpatialGrid(cellSize float32, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert - adds a body index to every cell covered by its AABB.
// It also refreshes the AABB cache, which FindPairsParallel then only reads.
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.Body) {
	aabb := body.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			sg.cells[cellIdx].bodyIndices = append(sg.cells[cellIdx].bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].bodyIndices) > 1 {
			sort.Ints(sg.cells[i].bodyIndices)
		}
	}
}

// FindPairs - sequential version, pairs sorted by (A, B)
func (sg *SpatialGrid) FindPairs(bodies []*actor.Body) []ContactPair {
	pairs := make([]ContactPair, 0, len(bodies)/2)

	seen := make([]bool, len(bodies))
	for bodyIdx := range bodies {
		clear(seen)
		sg.visit(bodies, bodyIdx, seen, func(pair ContactPair) {
			pairs = append(pairs, pair)
		})
	}
	sortPairs(pairs)

	return pairs
}

// FindPairsParallel - splits the bodies between workers, the pairs come out of a channel
// in no particular order. Insert must have run for every body first.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.Body, numWorkers int) <-chan ContactPair {
	var wg sync.WaitGroup
	numWorkers = max(1, numWorkers)
	pairsChan := make(chan ContactPair, numWorkers*10)

	bodiesPerWorker := len(bodies) / numWorkers
	if bodiesPerWorker == 0 {
		bodiesPerWorker = 1
	}

	for w := 0; w < numWorkers; w++ {
		startIdx := w * bodiesPerWorker
		endIdx := startIdx + bodiesPerWorker
		if w == numWorkers-1 {
			endIdx = len(bodies)
		}
		if startIdx >= len(bodies) {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			seen := make([]bool, len(bodies))
			for bodyIdx := start; bodyIdx < end; bodyIdx++ {
				clear(seen)
				sg.visit(bodies, bodyIdx, seen, func(pair ContactPair) {
					pairsChan <- pair
				})
			}
		}(startIdx, endIdx)
	}

	go func() {
		wg.Wait()
		close(pairsChan)
	}()

	return pairsChan
}

// visit emits each pair (bodyIdx, other) with other > bodyIdx sharing a cell with bodyIdx,
// once, and only if it passes the broad phase filter.
func (sg *SpatialGrid) visit(bodies []*actor.Body, bodyIdx int, seen []bool, emit func(ContactPair)) {
	bodyA := bodies[bodyIdx]
	aabb := bodyA.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})

			for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
				// Avoid duplicates
				if otherIdx <= bodyIdx || seen[otherIdx] {
					continue
				}
				seen[otherIdx] = true

				if mightCollide(bodyA, bodies[otherIdx]) {
					emit(ContactPair{A: bodyIdx, B: otherIdx})
				}
			}
		}
	}
}

// worldToCell - converts a world position into cell coordinates
func (sg *SpatialGrid) worldToCell(pos mgl32.Vec2) CellKey {
	return CellKey{
		X: int(math32.Floor(pos.X() / sg.cellSize)),
		Y: int(math32.Floor(pos.Y() / sg.cellSize)),
	}
}

// hashCell - hashes a cell to an index of the cells array
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}

func sortPairs(pairs []ContactPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
}
