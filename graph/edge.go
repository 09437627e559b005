package graph

import (
	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
)

// edgeMarker is the value of both keys of a stored edge.
var edgeMarker = []byte{valueMarker}

// Edge connects two vertices. It is stored twice: once under its outward IID
// rooted at From and once under its inward IID rooted at To.
type Edge struct {
	mgr      *Manager
	category schema.Edge
	from     Vertex
	to       Vertex
	out      *iid.Edge
	in       *iid.Edge
	status   schema.Status
	inferred bool

	committed bool
	deleted   bool
}

func newBufferedEdge(mgr *Manager, category schema.Edge, from, to Vertex, infix iid.Infix, suffix iid.Suffix, inferred bool) *Edge {
	out := iid.NewEdge(from.IID(), infix, to.IID(), suffix)
	return &Edge{
		mgr:      mgr,
		category: category,
		from:     from,
		to:       to,
		out:      out,
		in:       out.Reverse(),
		status:   schema.Buffered,
		inferred: inferred,
	}
}

// newPersistedEdge wraps a stored key seen from either end.
func newPersistedEdge(mgr *Manager, key *iid.Edge, from, to Vertex) *Edge {
	e := &Edge{
		mgr:      mgr,
		category: key.Category(),
		from:     from,
		to:       to,
		status:   schema.Persisted,
	}
	if key.Direction() == schema.Out {
		e.out, e.in = key, key.Reverse()
	} else {
		e.out, e.in = key.Reverse(), key
	}
	return e
}

func (e *Edge) Category() schema.Edge { return e.category }
func (e *Edge) From() Vertex          { return e.from }
func (e *Edge) To() Vertex            { return e.to }
func (e *Edge) Status() schema.Status { return e.status }
func (e *Edge) IsInferred() bool      { return e.inferred }

// OutIID is the key rooted at From.
func (e *Edge) OutIID() *iid.Edge { return e.out }

// InIID is the key rooted at To.
func (e *Edge) InIID() *iid.Edge { return e.in }

// RoleType is set on role player edges only.
func (e *Edge) RoleType() iid.Vertex { return e.out.Infix().RoleType() }

func (e *Edge) Suffix() iid.Suffix { return e.out.Suffix() }

// neighbour returns the far end as seen from the adjacency of direction dir.
func (e *Edge) neighbour(dir schema.Direction) Vertex {
	if dir == schema.In {
		return e.from
	}
	return e.to
}

// Delete removes a buffered edge from both adjacencies, or stages both keys
// of a persisted edge for deletion.
func (e *Edge) Delete() error {
	if e.mgr.closed {
		return ErrTxClosed
	}
	if e.deleted {
		return nil
	}
	e.deleted = true
	if e.status == schema.Buffered {
		e.from.base().outs.buffered().remove(e.out)
		e.to.base().ins.buffered().remove(e.in)
		return nil
	}
	e.mgr.stageDelete(e.out.Bytes())
	e.mgr.stageDelete(e.in.Bytes())
	return nil
}

// commit writes both keys once both ends are written or already stored.
// Until then the edge is left to whichever end commits last.
func (e *Edge) commit(batch kvstore.KVBatch, guard *AttributeGuard) error {
	if e.status == schema.Persisted || e.committed || e.deleted || e.inferred {
		return nil
	}
	if !written(e.from) || !written(e.to) {
		return nil
	}
	if e.category == schema.Has && !guard.Held() {
		return errors.Wrapf(ErrAttributeLockNotHeld, "edge %v", e.out)
	}
	batch.Set(e.out.Bytes(), edgeMarker)
	batch.Set(e.in.Bytes(), edgeMarker)
	e.committed = true
	e.mgr.committedEdges++
	return nil
}

func (e *Edge) String() string {
	return e.out.String()
}
