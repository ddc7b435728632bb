// Package journal persists the move log of each board session in BadgerDB.
// The board core never depends on it; the service layer appends a record per
// executed move and serves the log back for display.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/fikuspikuss/chessboard-backend/internal/model"
)

const (
	movePrefix = "moves/"
	seqPrefix  = "seq/"
)

// Journal wraps BadgerDB for persistent move logs.
type Journal struct {
	db *badger.DB
}

// Open opens (or creates) the journal database in dir.
func Open(dir string) (*Journal, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's own logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Append stores record as the next entry in boardID's move log.
func (j *Journal) Append(boardID string, record model.MoveRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return j.db.Update(func(txn *badger.Txn) error {
		seq, err := nextSeq(txn, boardID)
		if err != nil {
			return err
		}
		return txn.Set(moveKey(boardID, seq), data)
	})
}

// Moves returns boardID's move log in append order. An unknown board yields
// an empty log, not an error.
func (j *Journal) Moves(boardID string) ([]model.MoveRecord, error) {
	records := []model.MoveRecord{}

	err := j.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(movePrefix + boardID + "/")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var record model.MoveRecord
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				records = append(records, record)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return records, err
}

// nextSeq reads, increments and writes back the per-board sequence counter
// inside the surrounding transaction.
func nextSeq(txn *badger.Txn, boardID string) (uint64, error) {
	key := []byte(seqPrefix + boardID)

	var seq uint64
	item, err := txn.Get(key)
	switch err {
	case nil:
		err = item.Value(func(val []byte) error {
			seq = binary.BigEndian.Uint64(val)
			return nil
		})
		if err != nil {
			return 0, err
		}
	case badger.ErrKeyNotFound:
		// First move for this board
	default:
		return 0, err
	}

	seq++
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, seq)
	if err := txn.Set(key, buf); err != nil {
		return 0, err
	}
	return seq, nil
}

// moveKey builds a key that sorts lexicographically in append order.
func moveKey(boardID string, seq uint64) []byte {
	key := make([]byte, 0, len(movePrefix)+len(boardID)+9)
	key = append(key, movePrefix...)
	key = append(key, boardID...)
	key = append(key, '/')
	return binary.BigEndian.AppendUint64(key, seq)
}
