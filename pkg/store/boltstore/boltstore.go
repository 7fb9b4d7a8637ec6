// Package boltstore is a persistent registry store kept in a bbolt database
// file. Keys map to nested buckets, values to CBOR records, so the tree
// survives process restarts and single primitives run in one bbolt
// transaction each.
package boltstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

// Store implements store.Store over bbolt. Handles name keys by folded path,
// so a handle to a deleted key sees STATUS_KEY_DELETED until a key with the
// same path is created again.
type Store struct {
	db       *bolt.DB
	logger   *slog.Logger
	now      func() time.Time
	readOnly bool
	noSync   bool
	timeout  time.Duration

	mu      sync.Mutex
	handles map[store.Handle][]string
	next    store.Handle
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for open/close events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the time source for last-write timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithReadOnly opens the database read-only; every mutation fails with
// STATUS_ACCESS_DENIED.
func WithReadOnly(readOnly bool) Option {
	return func(s *Store) {
		s.readOnly = readOnly
	}
}

// WithNoSync disables fsync per transaction.
// Use only for testing; a crash may lose recent writes.
func WithNoSync(noSync bool) Option {
	return func(s *Store) {
		s.noSync = noSync
	}
}

// WithTimeout bounds the wait for the database file lock.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

var (
	_ store.Store        = (*Store)(nil)
	_ store.KeyCreator   = (*Store)(nil)
	_ store.KeyDeleter   = (*Store)(nil)
	_ store.ValueDeleter = (*Store)(nil)
)

// errNoRoot reports a read-only open of a file that was never initialized.
var errNoRoot = errors.New("boltstore: database has no registry root")

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		logger:  slog.Default(),
		now:     time.Now,
		timeout: time.Second,
		handles: make(map[store.Handle][]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout:  s.timeout,
		ReadOnly: s.readOnly,
		NoSync:   s.noSync,
	})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}
	s.db = db

	if err := s.ensureRoot(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Debug("opened registry store", "path", path, "readOnly", s.readOnly)
	return s, nil
}

func (s *Store) ensureRoot() error {
	if s.readOnly {
		return s.db.View(func(tx *bolt.Tx) error {
			if tx.Bucket(rootBucket) == nil {
				return errNoRoot
			}
			return nil
		})
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(rootBucket) != nil {
			return nil
		}
		b, err := tx.CreateBucket(rootBucket)
		if err != nil {
			return fmt.Errorf("creating root bucket: %w", err)
		}
		return s.initKey(b, "")
	})
}

// Close closes the database. Handles still open become invalid.
func (s *Store) Close() error {
	s.mu.Lock()
	open := len(s.handles)
	s.handles = make(map[store.Handle][]string)
	s.mu.Unlock()

	if open > 0 {
		s.logger.Warn("closing registry store with open handles", "handles", open)
	}
	return s.db.Close()
}

// initKey writes the metadata record and child buckets of a new key bucket.
func (s *Store) initKey(b *bolt.Bucket, name string) error {
	meta, err := encodeRecord(keyRecord{Name: name, LastWrite: format.TimeToFiletime(s.now())})
	if err != nil {
		return err
	}
	if err := b.Put(metaKey, meta); err != nil {
		return err
	}
	if _, err := b.CreateBucketIfNotExists(subkeysBucket); err != nil {
		return err
	}
	_, err = b.CreateBucketIfNotExists(valuesBucket)
	return err
}

// touch refreshes the last-write time of a key bucket.
func (s *Store) touch(b *bolt.Bucket) error {
	var rec keyRecord
	if err := decodeRecord(b.Get(metaKey), &rec); err != nil {
		return err
	}
	rec.LastWrite = format.TimeToFiletime(s.now())
	meta, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	return b.Put(metaKey, meta)
}

// walk resolves folded path components to a key bucket, or nil.
func walk(tx *bolt.Tx, parts []string) *bolt.Bucket {
	b := tx.Bucket(rootBucket)
	for _, p := range parts {
		if b == nil {
			return nil
		}
		sub := b.Bucket(subkeysBucket)
		if sub == nil {
			return nil
		}
		b = sub.Bucket([]byte(p))
	}
	return b
}

func foldPath(path string) []string {
	parts := store.SplitPath(path)
	for i, p := range parts {
		parts[i] = store.Fold(p)
	}
	return parts
}

func (s *Store) open(parts []string) store.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.handles[s.next] = parts
	return s.next
}

func (s *Store) pathOf(h store.Handle) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parts, ok := s.handles[h]
	if !ok {
		return nil, types.StatusInvalidHandle
	}
	return parts, nil
}

// view runs fn over the live key bucket behind h in a read transaction.
func (s *Store) view(h store.Handle, fn func(b *bolt.Bucket) error) error {
	parts, err := s.pathOf(h)
	if err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		b := walk(tx, parts)
		if b == nil {
			return types.StatusKeyDeleted
		}
		return fn(b)
	})
}

// update runs fn over the live key bucket behind h in a write transaction.
func (s *Store) update(h store.Handle, fn func(tx *bolt.Tx, b *bolt.Bucket) error) error {
	parts, err := s.pathOf(h)
	if err != nil {
		return err
	}
	if s.readOnly {
		return types.StatusAccessDenied
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := walk(tx, parts)
		if b == nil {
			return types.StatusKeyDeleted
		}
		return fn(tx, b)
	})
}

// OpenKey implements store.Store.
func (s *Store) OpenKey(path string) (store.Handle, error) {
	parts := foldPath(path)
	err := s.db.View(func(tx *bolt.Tx) error {
		if walk(tx, parts) == nil {
			return types.StatusObjectNameNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.open(parts), nil
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
	var (
		need uint32
		resp error
	)
	err := s.view(h, func(b *bolt.Bucket) error {
		var rec keyRecord
		if err := decodeRecord(b.Get(metaKey), &rec); err != nil {
			return fmt.Errorf("decoding key record: %w", err)
		}
		switch class {
		case types.KeyFullInformation:
			block, err := fullInfo(b, rec)
			if err != nil {
				return err
			}
			need, resp = store.Respond(buf, block, format.FullFixedSize)
		case types.KeyBasicInformation:
			block, err := format.EncodeKeyBasic(rec.Name, format.FiletimeToTime(rec.LastWrite))
			if err != nil {
				return err
			}
			need, resp = store.Respond(buf, block, format.BasicFixedSize)
		default:
			return types.StatusInvalidParameter
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return need, resp
}

// fullInfo builds the KEY_FULL_INFORMATION block for key bucket b.
func fullInfo(b *bolt.Bucket, rec keyRecord) ([]byte, error) {
	class, err := format.EncodeUTF16LE(rec.Class)
	if err != nil {
		return nil, err
	}
	info := format.KeyFull{
		LastWrite: format.FiletimeToTime(rec.LastWrite),
		Class:     class,
	}
	subkeys := b.Bucket(subkeysBucket)
	err = subkeys.ForEachBucket(func(k []byte) error {
		var child keyRecord
		if err := decodeRecord(subkeys.Bucket(k).Get(metaKey), &child); err != nil {
			return fmt.Errorf("decoding subkey record: %w", err)
		}
		info.SubKeys++
		info.MaxNameLen = max(info.MaxNameLen, uint32(format.CodeUnits(child.Name)*format.WCharSize))
		info.MaxClassLen = max(info.MaxClassLen, uint32(format.CodeUnits(child.Class)*format.WCharSize))
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = b.Bucket(valuesBucket).ForEach(func(_, v []byte) error {
		var val valueRecord
		if err := decodeRecord(v, &val); err != nil {
			return fmt.Errorf("decoding value record: %w", err)
		}
		info.Values++
		info.MaxValueNameLen = max(info.MaxValueNameLen, uint32(format.CodeUnits(val.Name)*format.WCharSize))
		info.MaxValueDataLen = max(info.MaxValueDataLen, uint32(len(val.Data)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return format.EncodeKeyFull(info), nil
}

// EnumerateKey implements store.Store. Subkeys enumerate in folded-name
// byte order.
func (s *Store) EnumerateKey(h store.Handle, index uint32, class types.KeyInformationClass, buf []byte) (uint32, error) {
	if class != types.KeyBasicInformation {
		return 0, types.StatusInvalidParameter
	}
	var (
		need uint32
		resp error
	)
	err := s.view(h, func(b *bolt.Bucket) error {
		subkeys := b.Bucket(subkeysBucket)
		c := subkeys.Cursor()
		k, _ := c.First()
		for i := uint32(0); k != nil && i < index; i++ {
			k, _ = c.Next()
		}
		if k == nil {
			return types.StatusNoMoreEntries
		}
		var rec keyRecord
		if err := decodeRecord(subkeys.Bucket(k).Get(metaKey), &rec); err != nil {
			return fmt.Errorf("decoding subkey record: %w", err)
		}
		block, err := format.EncodeKeyBasic(rec.Name, format.FiletimeToTime(rec.LastWrite))
		if err != nil {
			return err
		}
		need, resp = store.Respond(buf, block, format.BasicFixedSize)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return need, resp
}

// QueryValueKey implements store.Store.
func (s *Store) QueryValueKey(h store.Handle, name string, class types.KeyValueInformationClass, buf []byte) (uint32, error) {
	if class != types.KeyValuePartialInformation {
		return 0, types.StatusInvalidParameter
	}
	var (
		need uint32
		resp error
	)
	err := s.view(h, func(b *bolt.Bucket) error {
		raw := b.Bucket(valuesBucket).Get([]byte(store.Fold(name)))
		if raw == nil {
			return types.StatusObjectNameNotFound
		}
		var val valueRecord
		if err := decodeRecord(raw, &val); err != nil {
			return fmt.Errorf("decoding value record: %w", err)
		}
		need, resp = store.Respond(buf, format.EncodeValuePartial(val.Type, val.Data), format.PartialFixedSize)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return need, resp
}

// SetValueKey implements store.Store.
func (s *Store) SetValueKey(h store.Handle, name string, typ types.RegType, data []byte) error {
	rec, err := encodeRecord(valueRecord{Name: name, Type: uint32(typ), Data: data})
	if err != nil {
		return fmt.Errorf("encoding value record: %w", err)
	}
	return s.update(h, func(_ *bolt.Tx, b *bolt.Bucket) error {
		if err := b.Bucket(valuesBucket).Put([]byte(store.Fold(name)), rec); err != nil {
			return err
		}
		return s.touch(b)
	})
}

// DeleteValueKey implements store.ValueDeleter.
func (s *Store) DeleteValueKey(h store.Handle, name string) error {
	return s.update(h, func(_ *bolt.Tx, b *bolt.Bucket) error {
		values := b.Bucket(valuesBucket)
		key := []byte(store.Fold(name))
		if values.Get(key) == nil {
			return types.StatusObjectNameNotFound
		}
		if err := values.Delete(key); err != nil {
			return err
		}
		return s.touch(b)
	})
}

// CreateKey implements store.KeyCreator.
func (s *Store) CreateKey(path string) (store.Handle, error) {
	names := store.SplitPath(path)
	parts := foldPath(path)
	if s.readOnly {
		// Opening an existing key is still allowed.
		h, err := s.OpenKey(path)
		if types.AsStatus(err) == types.StatusObjectNameNotFound {
			return 0, types.StatusAccessDenied
		}
		return h, err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(rootBucket)
		for i, p := range parts {
			sub := b.Bucket(subkeysBucket)
			child := sub.Bucket([]byte(p))
			if child == nil {
				var err error
				if child, err = sub.CreateBucket([]byte(p)); err != nil {
					return err
				}
				if err := s.initKey(child, names[i]); err != nil {
					return err
				}
				if err := s.touch(b); err != nil {
					return err
				}
			}
			b = child
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return s.open(parts), nil
}

// DeleteKey implements store.KeyDeleter. The root and keys with subkeys
// cannot be deleted.
func (s *Store) DeleteKey(h store.Handle) error {
	parts, err := s.pathOf(h)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return types.StatusCannotDelete
	}
	return s.update(h, func(tx *bolt.Tx, b *bolt.Bucket) error {
		if k, _ := b.Bucket(subkeysBucket).Cursor().First(); k != nil {
			return types.StatusCannotDelete
		}
		parent := walk(tx, parts[:len(parts)-1])
		if err := parent.Bucket(subkeysBucket).DeleteBucket([]byte(parts[len(parts)-1])); err != nil {
			return err
		}
		return s.touch(parent)
	})
}

// SetClass sets the class string reported for the key at path.
func (s *Store) SetClass(path, class string) error {
	if s.readOnly {
		return types.StatusAccessDenied
	}
	parts := foldPath(path)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := walk(tx, parts)
		if b == nil {
			return types.StatusObjectNameNotFound
		}
		var rec keyRecord
		if err := decodeRecord(b.Get(metaKey), &rec); err != nil {
			return err
		}
		rec.Class = class
		meta, err := encodeRecord(rec)
		if err != nil {
			return err
		}
		return b.Put(metaKey, meta)
	})
}
