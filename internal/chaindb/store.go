package chaindb

import (
	"fmt"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// chain_db location relative to the node's data directory.
const dbSubPath = "beacon/chain_db"

// Key prefixes partitioning the store into record namespaces.
var (
	BlockPrefix = []byte("blk")
	StatePrefix = []byte("ste")
)

// Iterator yields key/value pairs in ascending key order. Keys are returned
// with the namespace prefix stripped; for both namespaces the remainder is
// the object's root. Key and Value slices are only valid until the next call
// to Next.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Store is a read-only view of the chain database. Implementations must
// support any number of independent prefix-scoped iterators.
type Store interface {
	// NewIterator returns an iterator over all keys sharing the given prefix.
	// The caller must call Release exactly once.
	NewIterator(prefix []byte) Iterator
	Close() error
}

// Open opens the LevelDB chain database under datadir read-only. The store
// must already exist; a missing or corrupt directory is an error before any
// iteration starts.
func Open(datadir string) (Store, error) {
	path := filepath.Join(datadir, filepath.FromSlash(dbSubPath))
	db, err := leveldb.OpenFile(path, &opt.Options{
		ErrorIfMissing: true,
		ReadOnly:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open chain database at %s: %w", path, err)
	}
	return &levelDBStore{db: db}, nil
}

type levelDBStore struct {
	db *leveldb.DB
}

func (s *levelDBStore) NewIterator(prefix []byte) Iterator {
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &prefixIterator{ldbIterator: it, skip: len(prefix)}
}

func (s *levelDBStore) Close() error {
	return s.db.Close()
}

// prefixIterator strips the namespace prefix from yielded keys, mirroring a
// prefix-scoped sub-database view.
type prefixIterator struct {
	ldbIterator
	skip int
}

// ldbIterator is the subset of goleveldb's iterator the store exposes.
type ldbIterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *prefixIterator) Key() []byte {
	k := it.ldbIterator.Key()
	if len(k) < it.skip {
		return k
	}
	return k[it.skip:]
}
