// Package memstore is an in-memory registry store. It implements every
// primitive of store.Store plus key creation and deletion, with the same
// sizing and status behavior as the native registry, which makes it the
// reference backend for tests.
package memstore

import (
	"slices"
	"sync"
	"time"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

type node struct {
	name      string
	parent    *node
	children  map[string]*node // by folded name
	order     []string         // folded child names, sorted
	values    map[string]*value
	class     string
	lastWrite time.Time
	deleted   bool
}

type value struct {
	name string
	typ  types.RegType
	data []byte
}

// Store is an in-memory registry tree. Each primitive holds the store lock
// for its duration, so single primitives are atomic.
type Store struct {
	mu       sync.Mutex
	root     *node
	handles  map[store.Handle]*node
	next     store.Handle
	now      func() time.Time
	readOnly bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source for last-write timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithReadOnly makes every mutation fail with STATUS_ACCESS_DENIED.
func WithReadOnly(readOnly bool) Option {
	return func(s *Store) {
		s.readOnly = readOnly
	}
}

// New returns an empty store holding only the root key.
func New(opts ...Option) *Store {
	s := &Store{
		handles: make(map[store.Handle]*node),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.root = s.newNode("", nil)
	return s
}

var _ store.Store = (*Store)(nil)
var _ store.KeyCreator = (*Store)(nil)
var _ store.KeyDeleter = (*Store)(nil)
var _ store.ValueDeleter = (*Store)(nil)

func (s *Store) newNode(name string, parent *node) *node {
	return &node{
		name:      name,
		parent:    parent,
		children:  make(map[string]*node),
		values:    make(map[string]*value),
		lastWrite: s.now(),
	}
}

// lookup walks path from the root.
func (s *Store) lookup(path string) *node {
	n := s.root
	for _, part := range store.SplitPath(path) {
		child, ok := n.children[store.Fold(part)]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (s *Store) open(n *node) store.Handle {
	s.next++
	s.handles[s.next] = n
	return s.next
}

// live returns the node behind h, or the status explaining why there is none.
func (s *Store) live(h store.Handle) (*node, error) {
	n, ok := s.handles[h]
	if !ok {
		return nil, types.StatusInvalidHandle
	}
	if n.deleted {
		return nil, types.StatusKeyDeleted
	}
	return n, nil
}

// OpenKey implements store.Store.
func (s *Store) OpenKey(path string) (store.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.lookup(path)
	if n == nil {
		return 0, types.StatusObjectNameNotFound
	}
	return s.open(n), nil
}

// CloseKey implements store.Store.
func (s *Store) CloseKey(h store.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[h]; !ok {
		return types.StatusInvalidHandle
	}
	delete(s.handles, h)
	return nil
}

// QueryKey implements store.Store.
func (s *Store) QueryKey(h store.Handle, class types.KeyInformationClass, buf []byte) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return 0, err
	}
	switch class {
	case types.KeyFullInformation:
		block, err := n.fullInfo()
		if err != nil {
			return 0, types.StatusUnsuccessful
		}
		return store.Respond(buf, block, format.FullFixedSize)
	case types.KeyBasicInformation:
		block, err := format.EncodeKeyBasic(n.name, n.lastWrite)
		if err != nil {
			return 0, types.StatusUnsuccessful
		}
		return store.Respond(buf, block, format.BasicFixedSize)
	default:
		return 0, types.StatusInvalidParameter
	}
}

// EnumerateKey implements store.Store.
func (s *Store) EnumerateKey(h store.Handle, index uint32, class types.KeyInformationClass, buf []byte) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return 0, err
	}
	if class != types.KeyBasicInformation {
		return 0, types.StatusInvalidParameter
	}
	if int(index) >= len(n.order) {
		return 0, types.StatusNoMoreEntries
	}
	child := n.children[n.order[index]]
	block, err := format.EncodeKeyBasic(child.name, child.lastWrite)
	if err != nil {
		return 0, types.StatusUnsuccessful
	}
	return store.Respond(buf, block, format.BasicFixedSize)
}

// QueryValueKey implements store.Store.
func (s *Store) QueryValueKey(h store.Handle, name string, class types.KeyValueInformationClass, buf []byte) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return 0, err
	}
	if class != types.KeyValuePartialInformation {
		return 0, types.StatusInvalidParameter
	}
	v, ok := n.values[store.Fold(name)]
	if !ok {
		return 0, types.StatusObjectNameNotFound
	}
	return store.Respond(buf, format.EncodeValuePartial(uint32(v.typ), v.data), format.PartialFixedSize)
}

// SetValueKey implements store.Store.
func (s *Store) SetValueKey(h store.Handle, name string, typ types.RegType, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return err
	}
	if s.readOnly {
		return types.StatusAccessDenied
	}
	n.values[store.Fold(name)] = &value{name: name, typ: typ, data: slices.Clone(data)}
	n.lastWrite = s.now()
	return nil
}

// DeleteValueKey implements store.ValueDeleter.
func (s *Store) DeleteValueKey(h store.Handle, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return err
	}
	if s.readOnly {
		return types.StatusAccessDenied
	}
	folded := store.Fold(name)
	if _, ok := n.values[folded]; !ok {
		return types.StatusObjectNameNotFound
	}
	delete(n.values, folded)
	n.lastWrite = s.now()
	return nil
}

// CreateKey implements store.KeyCreator.
func (s *Store) CreateKey(path string) (store.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.root
	for _, part := range store.SplitPath(path) {
		folded := store.Fold(part)
		child, ok := n.children[folded]
		if !ok {
			if s.readOnly {
				return 0, types.StatusAccessDenied
			}
			child = s.newNode(part, n)
			n.children[folded] = child
			i, _ := slices.BinarySearch(n.order, folded)
			n.order = slices.Insert(n.order, i, folded)
			n.lastWrite = s.now()
		}
		n = child
	}
	return s.open(n), nil
}

// DeleteKey implements store.KeyDeleter. The root and keys with subkeys
// cannot be deleted. Open handles to the key see STATUS_KEY_DELETED.
func (s *Store) DeleteKey(h store.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.live(h)
	if err != nil {
		return err
	}
	if s.readOnly {
		return types.StatusAccessDenied
	}
	if n.parent == nil || len(n.children) > 0 {
		return types.StatusCannotDelete
	}
	folded := store.Fold(n.name)
	p := n.parent
	delete(p.children, folded)
	if i, ok := slices.BinarySearch(p.order, folded); ok {
		p.order = slices.Delete(p.order, i, i+1)
	}
	p.lastWrite = s.now()
	n.deleted = true
	return nil
}

// fullInfo encodes the key's KEY_FULL_INFORMATION block.
func (n *node) fullInfo() ([]byte, error) {
	class, err := format.EncodeUTF16LE(n.class)
	if err != nil {
		return nil, err
	}
	info := format.KeyFull{
		LastWrite: n.lastWrite,
		SubKeys:   uint32(len(n.children)),
		Values:    uint32(len(n.values)),
		Class:     class,
	}
	for _, c := range n.children {
		info.MaxNameLen = max(info.MaxNameLen, uint32(format.CodeUnits(c.name)*format.WCharSize))
		info.MaxClassLen = max(info.MaxClassLen, uint32(format.CodeUnits(c.class)*format.WCharSize))
	}
	for _, v := range n.values {
		info.MaxValueNameLen = max(info.MaxValueNameLen, uint32(format.CodeUnits(v.name)*format.WCharSize))
		info.MaxValueDataLen = max(info.MaxValueDataLen, uint32(len(v.data)))
	}
	return format.EncodeKeyFull(info), nil
}

// SetClass sets the class string reported for the key at path.
func (s *Store) SetClass(path, class string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.lookup(path)
	if n == nil {
		return types.StatusObjectNameNotFound
	}
	n.class = class
	return nil
}

// OpenHandles returns the number of handles not yet closed.
func (s *Store) OpenHandles() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}
