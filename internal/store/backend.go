package store

import "errors"

// ErrCorrupt marks stored content that could not be decoded.
var ErrCorrupt = errors.New("corrupt task data")

// Backend persists whole snapshots. Read returns an error matching
// fs.ErrNotExist when nothing has been stored yet and ErrCorrupt when the
// stored content cannot be decoded.
type Backend interface {
	Read() (Snapshot, error)
	Write(Snapshot) error
	Close() error
}
