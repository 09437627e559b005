package graph

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/graph/schema"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/log"
)

// Commit writes the transaction in one batch: staged deletes, buffered
// types, buffered things, edges added to stored vertices, then the marks of
// the id sequences drawn from. An edge is written by the later of its two
// ends, so both vertex keys precede it. The manager is closed afterwards
// whether or not the commit succeeded.
func (m *Manager) Commit() (err error) {
	if m.closed {
		return ErrTxClosed
	}
	defer func() {
		observeCommit(err, m.committedVertices, m.committedEdges)
		m.close()
	}()

	for _, v := range m.buffered {
		if !v.deleted && v.inferred {
			return errors.Wrapf(ErrIllegalOperation, "commit of inferred vertex %v", v.iid)
		}
	}

	batch := m.store.NewKVBatch()
	defer batch.Close()
	for _, key := range m.deletes {
		batch.Delete(key)
	}

	// sequence lock before attribute lock
	if len(m.sequences) > 0 {
		m.db.seqs.Lock()
		defer m.db.seqs.Unlock()
		if err = m.checkLabels(); err != nil {
			return err
		}
	}

	var guard *AttributeGuard
	if m.needsAttributeLock() {
		guard = m.db.attributeLock.Acquire()
		defer guard.Release()
		if err = m.checkAttributes(); err != nil {
			return err
		}
	}

	if err = m.commitVertices(batch, guard); err != nil {
		log.Error("transaction[%s] commit failed: %v", m.id, err)
		return err
	}
	for _, seq := range m.sequences {
		seq.Stage(batch)
	}
	if err = m.store.ExecuteBatch(batch); err != nil {
		log.Error("transaction[%s] write failed: %v", m.id, err)
		return err
	}
	log.Debug("transaction[%s] committed %d vertices, %d edges, %d deletes",
		m.id, m.committedVertices, m.committedEdges, len(m.deletes))
	return nil
}

func (m *Manager) commitVertices(batch kvstore.KVBatch, guard *AttributeGuard) error {
	for _, types := range []bool{true, false} {
		for _, v := range m.buffered {
			if v.iid.IsType() != types {
				continue
			}
			if err := v.Commit(batch, guard); err != nil {
				return err
			}
		}
	}
	for _, v := range m.persisted {
		if err := v.Commit(batch, guard); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) needsAttributeLock() bool {
	for _, v := range m.buffered {
		if !v.deleted && v.Prefix() == schema.Attribute {
			return true
		}
	}
	for _, e := range m.edges {
		if !e.deleted && !e.inferred && e.category == schema.Has {
			return true
		}
	}
	return false
}

// checkAttributes fails when another transaction stored an attribute with the
// same type and value since this one looked. Must run under the lock.
func (m *Manager) checkAttributes() error {
	for _, v := range m.buffered {
		if v.deleted || v.Prefix() != schema.Attribute {
			continue
		}
		index := iid.AttributeIndex(v.iid.Type(), v.payload)
		if m.isHidden(index) {
			continue
		}
		raw, err := m.store.Get(index)
		if err != nil {
			return err
		}
		if raw != nil && !bytes.Equal(raw, v.iid) {
			return errors.Wrapf(ErrDuplicateAttribute, "attribute %v value %q", v.iid.Type(), v.payload)
		}
	}
	return nil
}

// checkLabels fails when another transaction stored a type under one of the
// labels created here. Must run under the sequence lock, which every commit
// creating a type holds.
func (m *Manager) checkLabels() error {
	for label, v := range m.labels {
		if v.deleted {
			continue
		}
		index := iid.TypeIndex(label)
		if m.isHidden(index) {
			continue
		}
		raw, err := m.store.Get(index)
		if err != nil {
			return err
		}
		if raw != nil && !bytes.Equal(raw, v.iid) {
			return errors.Wrapf(ErrLabelTaken, "label %q", label)
		}
	}
	return nil
}

// Rollback discards the transaction. Nothing has been written, so there is
// nothing to undo.
func (m *Manager) Rollback() error {
	if m.closed {
		return ErrTxClosed
	}
	log.Debug("transaction[%s] rollback", m.id)
	m.close()
	return nil
}

func (m *Manager) close() {
	m.closed = true
	m.vertices = nil
	m.buffered = nil
	m.persisted = nil
	m.edges = nil
	m.labels = nil
	m.attributes = nil
	m.deletes = nil
	m.sequences = nil
}
