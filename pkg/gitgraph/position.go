package gitgraph

// place assigns the coordinates of c, a new commit on b that has not been
// appended yet.
func (g *Graph) place(b *Branch, c *Commit) {
	sx, sy := g.tmpl.Commit.SpacingX, g.tmpl.Commit.SpacingY

	// Compact mode pulls the commit back into the previous time slot when
	// the previous commit landed on another branch.
	if g.mode == ModeCompact && len(g.commits) > 0 && len(b.commits) > 0 && c.Kind != KindMerge {
		if last := g.commits[len(g.commits)-1]; last.branchIdx != b.index {
			g.cursorX -= sx
			g.cursorY -= sy
		}
	}

	c.X = b.offset.X - g.cursorX
	c.Y = b.offset.Y - g.cursorY

	// A rewound commit may land on its predecessor; step forward once.
	if prev := b.Tip(); prev != nil && c.X+c.Y == prev.X+prev.Y {
		g.cursorX += sx
		g.cursorY += sy
		c.X = b.offset.X - g.cursorX
		c.Y = b.offset.Y - g.cursorY
	}
}

// advance moves the shared cursor one step past c.
func (g *Graph) advance(c *Commit) {
	g.cursorX += g.tmpl.Commit.SpacingX
	g.cursorY += g.tmpl.Commit.SpacingY
	if c.Detail != nil {
		g.cursorY -= c.Detail.Height - 40
	}
}
