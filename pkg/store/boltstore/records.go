package boltstore

import (
	"github.com/fxamacker/cbor/v2"
)

// Bucket layout. The root key is the top-level bucket rootBucket; every key
// bucket holds its metadata under metaKey, its subkeys as nested buckets of
// subkeysBucket (named by folded key name) and its values in valuesBucket
// (keyed by folded value name).
var (
	rootBucket    = []byte("registry")
	metaKey       = []byte("m")
	subkeysBucket = []byte("k")
	valuesBucket  = []byte("v")
)

// keyRecord is the CBOR-encoded metadata of one key.
type keyRecord struct {
	_         struct{} `cbor:",toarray"`
	Name      string
	Class     string
	LastWrite uint64 // FILETIME
}

// valueRecord is the CBOR-encoded form of one value. Name keeps the spelling
// the value was written with.
type valueRecord struct {
	_    struct{} `cbor:",toarray"`
	Name string
	Type uint32
	Data []byte
}

// encMode is deterministic so identical trees produce identical files.
var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func encodeRecord(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

func decodeRecord(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}
