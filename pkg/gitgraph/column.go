package gitgraph

// allocateColumn picks the lane for a branch about to be appended and raises
// the lane high-water mark.
func (g *Graph) allocateColumn() int {
	var col int
	switch g.policy {
	case ColumnReuse:
		col = g.lowestFreeColumn()
	default:
		for _, b := range g.branches {
			if b.finished {
				break
			}
			col++
		}
	}
	g.maxLane = max(g.maxLane, col)
	return col
}

func (g *Graph) lowestFreeColumn() int {
	held := make(map[int]bool, len(g.branches))
	for _, b := range g.branches {
		if !b.finished {
			held[b.column] = true
		}
	}
	col := 0
	for held[col] {
		col++
	}
	return col
}
