package registry

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

// Key is an open key of a store. It is owned by whoever opened it and must be
// closed exactly once, after all operations on it are done.
type Key struct {
	st     store.Store
	h      store.Handle
	path   string
	opts   *options
	closed bool
}

// Open opens the key at path (components separated by '/' or '\').
// A missing key is reported as a not-found error.
func Open(s store.Store, path string, opts ...Option) (*Key, error) {
	o := newOptions(opts)
	path = store.JoinPath(path)
	if err := checkPath(opOpen, path, o.limits); err != nil {
		return nil, err
	}
	h, err := s.OpenKey(path)
	if err != nil {
		if st := types.AsStatus(err); st == types.StatusObjectNameNotFound {
			return nil, notFoundError(opOpen, path, st)
		}
		return nil, storeError(opOpen, path, err, "could not open")
	}
	return &Key{st: s, h: h, path: path, opts: o}, nil
}

// OpenPath opens the key named by the ordered path components parts.
func OpenPath(s store.Store, parts []string, opts ...Option) (*Key, error) {
	return Open(s, store.JoinPath(parts...), opts...)
}

// Create opens the key at path, creating it and any missing ancestors. The
// store must implement store.KeyCreator.
func Create(s store.Store, path string, opts ...Option) (*Key, error) {
	o := newOptions(opts)
	path = store.JoinPath(path)
	c, ok := s.(store.KeyCreator)
	if !ok {
		return nil, &types.Error{Kind: types.ErrKindUnsupported, Op: opCreate, Name: path, Msg: "store cannot create keys"}
	}
	if err := checkPath(opCreate, path, o.limits); err != nil {
		return nil, err
	}
	h, err := c.CreateKey(path)
	if err != nil {
		return nil, storeError(opCreate, path, err, "could not create")
	}
	return &Key{st: s, h: h, path: path, opts: o}, nil
}

// OpenSubkey opens the direct or nested subkey name of k with k's options.
func (k *Key) OpenSubkey(name string) (*Key, error) {
	if k.closed {
		return nil, closedError(opOpen, name)
	}
	return Open(k.st, store.JoinPath(k.path, name), k.inherit())
}

// CreateSubkey creates (or opens) the subkey name of k with k's options.
func (k *Key) CreateSubkey(name string) (*Key, error) {
	if k.closed {
		return nil, closedError(opCreate, name)
	}
	return Create(k.st, store.JoinPath(k.path, name), k.inherit())
}

func (k *Key) inherit() Option {
	return func(o *options) { *o = *k.opts }
}

// Path returns the normalized path the key was opened with.
func (k *Key) Path() string { return k.path }

// Closed reports whether Close (or a successful Delete) has run.
func (k *Key) Closed() bool { return k.closed }

// Close releases the key handle. Closing twice is an error; the handle is
// released only once.
func (k *Key) Close() error {
	if k.closed {
		return closedError(opClose, k.path)
	}
	k.closed = true
	if err := k.st.CloseKey(k.h); err != nil {
		return storeError(opClose, k.path, err, "could not close")
	}
	return nil
}

// Delete deletes the key from the store and closes it. The key must have no
// subkeys, and the store must implement store.KeyDeleter.
func (k *Key) Delete() error {
	if k.closed {
		return closedError(opDelete, k.path)
	}
	d, ok := k.st.(store.KeyDeleter)
	if !ok {
		return &types.Error{Kind: types.ErrKindUnsupported, Op: opDelete, Name: k.path, Msg: "store cannot delete keys"}
	}
	if err := d.DeleteKey(k.h); err != nil {
		return storeError(opDelete, k.path, err, "could not delete")
	}
	return k.Close()
}

func checkPath(op, path string, l types.Limits) error {
	parts := store.SplitPath(path)
	if l.MaxPathDepth > 0 && len(parts) > l.MaxPathDepth {
		return limitError(op, path, fmt.Sprintf("path depth %d exceeds %d", len(parts), l.MaxPathDepth))
	}
	for _, p := range parts {
		if n := format.CodeUnits(p); l.MaxKeyNameLen > 0 && n > l.MaxKeyNameLen {
			return limitError(op, path, fmt.Sprintf("key name %q is %d characters, limit %d", p, n, l.MaxKeyNameLen))
		}
	}
	return nil
}
