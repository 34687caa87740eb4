// Package snapshot records rendered frames into a bbolt database.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/ptlive/renderer"
	bolt "go.etcd.io/bbolt"
)

const bucketFrames = "frames"

var (
	ErrNotFound = errors.New("snapshot: no such frame")
	ErrReadOnly = errors.New("snapshot: recording is read-only")
)

// Recording is an append-only sequence of frames. Sequence numbers start
// at 1.
type Recording struct {
	db       *bolt.DB
	readOnly bool
}

// Open a recording for appending, creating it if needed.
func Open(path string) (*Recording, error) {
	return open(path, false)
}

// Open an existing recording for reading.
func OpenReadOnly(path string) (*Recording, error) {
	return open(path, true)
}

func open(path string, readOnly bool) (*Recording, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening %s: %w", path, err)
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(bucketFrames))
			return err
		})
	} else {
		err = db.View(func(tx *bolt.Tx) error {
			if tx.Bucket([]byte(bucketFrames)) == nil {
				return fmt.Errorf("snapshot: %s is not a recording", path)
			}
			return nil
		})
	}
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Recording{db: db, readOnly: readOnly}, nil
}

// Get the path of the underlying database.
func (r *Recording) Path() string {
	return r.db.Path()
}

// Append a frame and return its sequence number.
func (r *Recording) Append(f renderer.Frame) (uint64, error) {
	if r.readOnly {
		return 0, ErrReadOnly
	}

	data, err := encodeFrame(f)
	if err != nil {
		return 0, err
	}

	var seq uint64
	err = r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketFrames))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	return seq, err
}

// Get the frame with the given sequence number.
func (r *Recording) Get(seq uint64) (renderer.Frame, error) {
	var f renderer.Frame
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketFrames)).Get(marshalSeq(seq))
		if v == nil {
			return ErrNotFound
		}
		var err error
		f, err = decodeFrame(v)
		return err
	})
	return f, err
}

// Iterate the frames with sequence numbers in [from, upto) in order. An upto
// of zero iterates to the end. Iteration stops at the first error returned
// by fn.
func (r *Recording) Iterate(from, upto uint64, fn func(seq uint64, f renderer.Frame) error) error {
	return r.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketFrames)).Cursor()
		for k, v := c.Seek(marshalSeq(from)); k != nil; k, v = c.Next() {
			seq := unmarshalSeq(k)
			if upto != 0 && seq >= upto {
				break
			}
			f, err := decodeFrame(v)
			if err != nil {
				return fmt.Errorf("snapshot: frame %d: %w", seq, err)
			}
			if err = fn(seq, f); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get the number of recorded frames.
func (r *Recording) Count() (int, error) {
	var n int
	err := r.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucketFrames)).Stats().KeyN
		return nil
	})
	return n, err
}

// Get the sequence number the next appended frame will receive.
func (r *Recording) NextSeq() (uint64, error) {
	var seq uint64
	err := r.db.View(func(tx *bolt.Tx) error {
		seq = tx.Bucket([]byte(bucketFrames)).Sequence() + 1
		return nil
	})
	return seq, err
}

func (r *Recording) Name() string {
	return "snapshot"
}

// Consume appends f, allowing a recording to be used as a renderer sink.
func (r *Recording) Consume(f renderer.Frame) error {
	_, err := r.Append(f)
	return err
}

func (r *Recording) Close() error {
	return r.db.Close()
}

func encodeFrame(f renderer.Frame) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, fmt.Errorf("snapshot: encoding frame %d: %w", f.Snapshot.Frame, err)
	}
	return buf.Bytes(), nil
}

func decodeFrame(data []byte) (renderer.Frame, error) {
	var f renderer.Frame
	err := gob.NewDecoder(bytes.NewReader(data)).Decode(&f)
	return f, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
