package server

import (
	"context"
	"sync"

	"github.com/matzehuels/gitgraph/pkg/gitgraph"
	"github.com/matzehuels/gitgraph/pkg/observability"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
	"github.com/matzehuels/gitgraph/pkg/store"
)

// session is the live graph of one diagram. Hover state lives on the graph,
// so pointer moves for a diagram are serialized by mu.
type session struct {
	id         string
	scriptHash string

	mu      sync.Mutex
	graph   *gitgraph.Graph
	tooltip gitgraph.Tooltip
}

// HoverResult is the answer to a pointer position.
type HoverResult struct {
	Hovered []gitgraph.HoverEvent `json:"hovered"`
	Entered []gitgraph.HoverEvent `json:"entered,omitempty"`
	Tooltip gitgraph.Tooltip      `json:"tooltip"`
}

// session returns the live graph for d, rebuilding it when the script
// changed since the last call.
func (s *Server) session(ctx context.Context, d *store.Diagram) (*session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[d.ID]
	s.mu.Unlock()
	if ok && sess.scriptHash == d.ScriptHash {
		return sess, nil
	}

	g, err := pipeline.Build(ctx, pipeline.Options{Source: []byte(d.Script)})
	if err != nil {
		return nil, err
	}
	// Offsets used by hit testing come from a render pass.
	pipeline.Snapshot(g)

	sess = &session{id: d.ID, scriptHash: d.ScriptHash, graph: g}
	g.SetTooltipSink(gitgraph.TooltipFunc(func(t gitgraph.Tooltip) { sess.tooltip = t }))

	s.mu.Lock()
	s.sessions[d.ID] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *Server) dropSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// hover hit-tests p and broadcasts a mouseover for every commit entered.
func (s *Server) hover(ctx context.Context, sess *session, p gitgraph.Point) HoverResult {
	sess.mu.Lock()
	var entered []gitgraph.HoverEvent
	sess.graph.SetHoverSink(gitgraph.HoverFunc(func(e gitgraph.HoverEvent) {
		entered = append(entered, e)
	}))
	hovered := sess.graph.Hover(p)
	res := HoverResult{
		Hovered: make([]gitgraph.HoverEvent, 0, len(hovered)),
		Entered: entered,
		Tooltip: sess.tooltip,
	}
	for _, c := range hovered {
		res.Hovered = append(res.Hovered, gitgraph.HoverEvent{
			Author:  c.Author,
			Message: c.Message,
			Date:    c.DateString(),
			Hash:    c.Hash,
		})
	}
	sess.mu.Unlock()

	for _, e := range entered {
		observability.Hover().OnHover(ctx, sess.id, e.Hash)
		s.hub.Broadcast(Message{Type: MessageMouseover, Diagram: sess.id, Data: e})
	}
	return res
}

// pointer answers a websocket pointer message.
func (s *Server) pointer(ctx context.Context, m Message) (Message, error) {
	d, err := s.store.Get(ctx, m.Diagram)
	if err != nil {
		return Message{}, err
	}
	sess, err := s.session(ctx, d)
	if err != nil {
		return Message{}, err
	}
	res := s.hover(ctx, sess, gitgraph.Point{X: m.X, Y: m.Y})
	return Message{Type: MessageTooltip, Diagram: d.ID, Data: res}, nil
}
