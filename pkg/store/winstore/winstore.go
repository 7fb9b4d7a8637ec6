//go:build windows

package winstore

import (
	"errors"
	"io"
	"strings"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/store"
	"github.com/joshuapare/regkit/pkg/types"
)

type openKey struct {
	key  registry.Key
	root registry.Key
	sub  string // path below root, backslash separated
	name string // last component
}

// Store implements store.Store over the Windows registry.
type Store struct {
	access uint32

	mu      sync.Mutex
	handles map[store.Handle]*openKey
	next    store.Handle
}

// Option configures a Store.
type Option func(*Store)

// WithAccess sets the access mask used when opening keys.
func WithAccess(access uint32) Option {
	return func(s *Store) {
		s.access = access
	}
}

var (
	_ store.Store        = (*Store)(nil)
	_ store.KeyCreator   = (*Store)(nil)
	_ store.KeyDeleter   = (*Store)(nil)
	_ store.ValueDeleter = (*Store)(nil)
)

// New returns a Store. Keys open with read and write access by default.
func New(opts ...Option) *Store {
	s := &Store{
		access:  registry.READ | registry.WRITE,
		handles: make(map[store.Handle]*openKey),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var roots = map[string]registry.Key{
	"hklm":                registry.LOCAL_MACHINE,
	"hkey_local_machine":  registry.LOCAL_MACHINE,
	"hkcu":                registry.CURRENT_USER,
	"hkey_current_user":   registry.CURRENT_USER,
	"hkcr":                registry.CLASSES_ROOT,
	"hkey_classes_root":   registry.CLASSES_ROOT,
	"hku":                 registry.USERS,
	"hkey_users":          registry.USERS,
	"hkcc":                registry.CURRENT_CONFIG,
	"hkey_current_config": registry.CURRENT_CONFIG,
	"registry\x00machine": registry.LOCAL_MACHINE,
	"registry\x00user":    registry.USERS,
}

// resolve maps a path onto a predefined root and the remainder below it.
func resolve(path string) (registry.Key, []string, error) {
	parts := store.SplitPath(path)
	if len(parts) >= 2 {
		if root, ok := roots[store.Fold(parts[0])+"\x00"+store.Fold(parts[1])]; ok {
			return root, parts[2:], nil
		}
	}
	if len(parts) >= 1 {
		if root, ok := roots[store.Fold(parts[0])]; ok {
			return root, parts[1:], nil
		}
	}
	return 0, nil, types.StatusObjectNameNotFound
}

// statusOf maps Windows errors onto the store status codes.
func statusOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, registry.ErrNotExist):
		return types.StatusObjectNameNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		return types.StatusAccessDenied
	case errors.Is(err, windows.ERROR_KEY_DELETED):
		return types.StatusKeyDeleted
	case errors.Is(err, windows.ERROR_NO_MORE_ITEMS):
		return types.StatusNoMoreEntries
	case errors.Is(err, windows.ERROR_INVALID_HANDLE):
		return types.StatusInvalidHandle
	default:
		return err
	}
}

func (s *Store) open(k *openKey) store.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.handles[s.next] = k
	return s.next
}

func (s *Store) get(h store.Handle) (*openKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.handles[h]
	if !ok {
		return nil, types.StatusInvalidHandle
	}
	return k, nil
}

func lastName(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// OpenKey implements store.Store.
func (s *Store) OpenKey(path string) (store.Handle, error) {
	root, parts, err := resolve(path)
	if err != nil {
		return 0, err
	}
	sub := strings.Join(parts, `\`)
	k, err := registry.OpenKey(root, sub, s.access)
	if err != nil {
		return 0, statusOf(err)
	}
	return s.open(&openKey{key: k, root: root, sub: sub, name: lastName(parts)}), nil
}

// CloseKey implements store.Store.
func (s *Store) CloseKey(h store.Handle) error {
	s.mu.Lock()
	k, ok := s.handles[h]
	delete(s.handles, h)
	s.mu.Unlock()
	if !ok {
		return types.StatusInvalidHandle
	}
	return statusOf(k.key.Close())
}

func lastWrite(k registry.Key) time.Time {
	info, err := k.Stat()
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// QueryKey implements store.Store. Class strings are not reported.
func (s *Store) QueryKey(h store.Handle, class types.KeyInformationClass, buf []byte) (uint32, error) {
	k, err := s.get(h)
	if err != nil {
		return 0, err
	}
	info, err := k.key.Stat()
	if err != nil {
		return 0, statusOf(err)
	}
	switch class {
	case types.KeyFullInformation:
		block := format.EncodeKeyFull(format.KeyFull{
			LastWrite:       info.ModTime(),
			SubKeys:         info.SubKeyCount,
			MaxNameLen:      info.MaxSubKeyLen * format.WCharSize,
			Values:          info.ValueCount,
			MaxValueNameLen: info.MaxValueNameLen * format.WCharSize,
			MaxValueDataLen: info.MaxValueLen,
		})
		return store.Respond(buf, block, format.FullFixedSize)
	case types.KeyBasicInformation:
		block, err := format.EncodeKeyBasic(k.name, info.ModTime())
		if err != nil {
			return 0, err
		}
		return store.Respond(buf, block, format.BasicFixedSize)
	default:
		return 0, types.StatusInvalidParameter
	}
}

// EnumerateKey implements store.Store.
func (s *Store) EnumerateKey(h store.Handle, index uint32, class types.KeyInformationClass, buf []byte) (uint32, error) {
	if class != types.KeyBasicInformation {
		return 0, types.StatusInvalidParameter
	}
	k, err := s.get(h)
	if err != nil {
		return 0, err
	}
	names, err := k.key.ReadSubKeyNames(int(index) + 1)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, windows.ERROR_NO_MORE_ITEMS) {
		return 0, statusOf(err)
	}
	if int(index) >= len(names) {
		return 0, types.StatusNoMoreEntries
	}
	name := names[index]

	var when time.Time
	if child, err := registry.OpenKey(k.key, name, registry.QUERY_VALUE); err == nil {
		when = lastWrite(child)
		child.Close()
	}
	block, err := format.EncodeKeyBasic(name, when)
	if err != nil {
		return 0, err
	}
	return store.Respond(buf, block, format.BasicFixedSize)
}

// QueryValueKey implements store.Store.
func (s *Store) QueryValueKey(h store.Handle, name string, class types.KeyValueInformationClass, buf []byte) (uint32, error) {
	if class != types.KeyValuePartialInformation {
		return 0, types.StatusInvalidParameter
	}
	k, err := s.get(h)
	if err != nil {
		return 0, err
	}
	n, _, err := k.key.GetValue(name, nil)
	if err != nil {
		return 0, statusOf(err)
	}
	for {
		data := make([]byte, n)
		got, typ, err := k.key.GetValue(name, data)
		if errors.Is(err, registry.ErrShortBuffer) {
			// Value grew between the two reads.
			n = got
			continue
		}
		if err != nil {
			return 0, statusOf(err)
		}
		return store.Respond(buf, format.EncodeValuePartial(typ, data[:got]), format.PartialFixedSize)
	}
}

// advapi32 is loaded lazily; the registry package keeps its raw setter
// unexported.
var (
	modadvapi32        = windows.NewLazySystemDLL("advapi32.dll")
	procRegSetValueExW = modadvapi32.NewProc("RegSetValueExW")
)

// setValue stores data under name with type typ, byte for byte.
func setValue(k registry.Key, name string, typ uint32, data []byte) error {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return types.StatusInvalidParameter
	}
	var ptr *byte
	if len(data) > 0 {
		ptr = &data[0]
	}
	r0, _, _ := procRegSetValueExW.Call(
		uintptr(k),
		uintptr(unsafe.Pointer(p)),
		0,
		uintptr(typ),
		uintptr(unsafe.Pointer(ptr)),
		uintptr(len(data)),
	)
	if r0 != 0 {
		return windows.Errno(r0)
	}
	return nil
}

// SetValueKey implements store.Store. The data is written verbatim, whatever
// typ says about it.
func (s *Store) SetValueKey(h store.Handle, name string, typ types.RegType, data []byte) error {
	k, err := s.get(h)
	if err != nil {
		return err
	}
	return statusOf(setValue(k.key, name, uint32(typ), data))
}

// DeleteValueKey implements store.ValueDeleter.
func (s *Store) DeleteValueKey(h store.Handle, name string) error {
	k, err := s.get(h)
	if err != nil {
		return err
	}
	return statusOf(k.key.DeleteValue(name))
}

// CreateKey implements store.KeyCreator.
func (s *Store) CreateKey(path string) (store.Handle, error) {
	root, parts, err := resolve(path)
	if err != nil {
		return 0, err
	}
	sub := strings.Join(parts, `\`)
	k, _, err := registry.CreateKey(root, sub, s.access)
	if err != nil {
		return 0, statusOf(err)
	}
	return s.open(&openKey{key: k, root: root, sub: sub, name: lastName(parts)}), nil
}

// DeleteKey implements store.KeyDeleter. Predefined roots cannot be deleted.
func (s *Store) DeleteKey(h store.Handle) error {
	k, err := s.get(h)
	if err != nil {
		return err
	}
	if k.sub == "" {
		return types.StatusCannotDelete
	}
	return statusOf(registry.DeleteKey(k.root, k.sub))
}
