package db

// KVStore represents a key-value storage interface providing basic operations
// for data manipulation and iteration.
type KVStore interface {
	ReadWriter
	NewBatch() Batch
	NewIterator(start, end []byte) (Iterator, error)
	Close() error
}

type Reader interface {
	Get(key []byte) ([]byte, error)
}

type Writer interface {
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// ReadWriter is the view handed to code running inside a transaction.
type ReadWriter interface {
	Reader
	Writer
}

// Batch represents an atomic batch of operations.
// All operations in a batch are performed atomically. Reads made through the
// batch observe its own uncommitted writes. Closing a batch that was never
// committed discards every write made through it.
type Batch interface {
	ReadWriter
	NewIterator(start, end []byte) (Iterator, error)
	Commit() error
	Close() error
}

// Iterator provides sequential access over a range of key-value pairs.
// Iterators must be closed after use.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() ([]byte, error)
	Valid() bool
	Close() error
}
