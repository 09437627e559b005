// Package idgen hands out ids from named sequences. A sequence reserves a
// step of ids at a time in memory; the end of the reservation reaches the
// store only when a caller stages it into a batch. Ids are never reused after
// a restart as long as every write of an id is batched with its mark, though
// gaps may appear.
package idgen

import (
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/tiglabs/baudgraph/graph/iid"
	"github.com/tiglabs/baudgraph/kernel/store/kvstore"
	"github.com/tiglabs/baudgraph/util/encoding"
	"github.com/tiglabs/baudgraph/util/log"
)

const DefaultStep uint64 = 100

var (
	ErrSequenceExhausted = errors.New("id sequence exhausted")
	ErrInvalidMark       = errors.New("invalid sequence mark")
)

type IDGenerator interface {
	GenID() (uint64, error)
}

type Sequence struct {
	lock   sync.Mutex
	loaded bool
	base   uint64
	end    uint64
	store  kvstore.KVStore
	name   string
	key    []byte
	step   uint64
	max    uint64
}

// NewSequence returns the sequence stored under name. Ids are in [1, max].
func NewSequence(store kvstore.KVStore, name string, step, max uint64) *Sequence {
	if step == 0 {
		step = DefaultStep
	}
	if max == 0 {
		max = math.MaxUint64
	}
	return &Sequence{
		store: store,
		name:  name,
		key:   iid.Sequence(name),
		step:  step,
		max:   max,
	}
}

func (s *Sequence) GenID() (uint64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.base == s.end {
		log.Debug("[GENID] sequence[%s] before generate (base %d, end %d)", s.name, s.base, s.end)
		base, end, err := s.generate()
		if err != nil {
			return 0, err
		}
		s.base, s.end = base, end
		log.Debug("[GENID] sequence[%s] after generate (base %d, end %d)", s.name, s.base, s.end)
	}

	s.base++
	return s.base, nil
}

// generate reserves the next step. Only the first reservation reads the
// stored mark; later ones continue from the previous end.
func (s *Sequence) generate() (uint64, uint64, error) {
	mark := s.end
	if !s.loaded {
		raw, err := s.store.Get(s.key)
		if err != nil {
			return 0, 0, err
		}
		if raw != nil {
			if _, mark, err = encoding.DecodeUint64Ascending(raw); err != nil {
				return 0, 0, errors.Wrapf(ErrInvalidMark, "sequence[%s]: %v", s.name, err)
			}
		}
		s.loaded = true
	}
	if mark >= s.max {
		return 0, 0, errors.Wrapf(ErrSequenceExhausted, "sequence[%s] reached %d", s.name, s.max)
	}
	end := s.max
	if s.max-mark > s.step {
		end = mark + s.step
	}
	return mark, end, nil
}

// Stage adds the current reservation end to batch. Marks staged by
// concurrent callers must be executed in the order they were staged, see
// Generators.Lock.
func (s *Sequence) Stage(batch kvstore.KVBatch) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if !s.loaded {
		return
	}
	batch.Set(s.key, encoding.EncodeUint64Ascending(nil, s.end))
}

// Generators keeps one Sequence per name. Callers that stage marks hold
// Lock from staging until their batch is executed, so the stored marks only
// grow.
type Generators struct {
	commit sync.Mutex

	lock  sync.Mutex
	store kvstore.KVStore
	step  uint64
	seqs  map[string]*Sequence
}

func NewGenerators(store kvstore.KVStore, step uint64) *Generators {
	return &Generators{
		store: store,
		step:  step,
		seqs:  make(map[string]*Sequence),
	}
}

func (g *Generators) Lock()   { g.commit.Lock() }
func (g *Generators) Unlock() { g.commit.Unlock() }

// Get returns the named sequence, creating it with the given bound on first
// use.
func (g *Generators) Get(name string, max uint64) *Sequence {
	g.lock.Lock()
	defer g.lock.Unlock()
	if seq, ok := g.seqs[name]; ok {
		return seq
	}
	seq := NewSequence(g.store, name, g.step, max)
	g.seqs[name] = seq
	return seq
}
