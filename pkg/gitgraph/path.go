package gitgraph

// extendPath appends the path points for c, just added to b.
func (g *Graph) extendPath(b *Branch, c *Commit) {
	point := PathPoint{Point: c.Position(), Role: Join}

	if parent := c.Parent(); parent != nil && len(b.path) == 0 {
		// Fork: start one step ahead of the parent lane and mirror the
		// point onto the parent branch so both lines meet.
		po := parent.Branch().offset
		start := Point{
			X: po.X - g.cursorX + g.tmpl.Commit.SpacingX,
			Y: po.Y - g.cursorY + g.tmpl.Commit.SpacingY,
		}
		b.path = append(b.path, PathPoint{Point: start, Role: Start})
		if pb := b.Parent(); pb != nil {
			pb.path = append(pb.path, PathPoint{Point: start, Role: Join})
		}
	} else if len(b.path) == 0 {
		point.Role = Start
	}
	b.path = append(b.path, point)
}

// mergePath routes src into the merge commit just added to dst and leaves a
// start point so later commits on src begin a new segment.
func (g *Graph) mergePath(src, dst *Branch) {
	tail := Point{
		X: src.offset.X + 2*g.tmpl.Commit.SpacingX - g.cursorX,
		Y: src.offset.Y + 2*g.tmpl.Commit.SpacingY - g.cursorY,
	}
	src.path = append(src.path,
		PathPoint{Point: tail, Role: Join},
		PathPoint{Point: dst.Tip().Position(), Role: End},
		PathPoint{Point: tail, Role: Start},
	)
}
