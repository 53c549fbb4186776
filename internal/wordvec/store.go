package wordvec

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"yashubustudio/topictagger/tagger"
)

var (
	bucketVectors = []byte("vectors")
	bucketMeta    = []byte("meta")
	keyDim        = []byte("dim")
	keyCount      = []byte("count")
)

// Store is a bbolt database of word vectors keyed by word.
type Store struct {
	db *bolt.DB
}

// OpenStore opens (or creates) a vector database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketVectors); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes items in a single transaction. All vectors, including those already
// stored, must share one dimension.
func (s *Store) Put(items []tagger.VectorItem) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		vb := tx.Bucket(bucketVectors)
		mb := tx.Bucket(bucketMeta)
		dim := readInt(mb.Get(keyDim))
		for _, it := range items {
			if dim == 0 {
				dim = len(it.Vector)
			}
			if len(it.Vector) != dim {
				return fmt.Errorf("vector %q: dimension %d, expected %d", it.Label, len(it.Vector), dim)
			}
			if err := vb.Put([]byte(it.Label), encodeVector(it.Vector)); err != nil {
				return err
			}
		}
		if err := mb.Put(keyDim, []byte(strconv.Itoa(dim))); err != nil {
			return err
		}
		count := 0
		if err := vb.ForEach(func(_, _ []byte) error { count++; return nil }); err != nil {
			return err
		}
		return mb.Put(keyCount, []byte(strconv.Itoa(count)))
	})
}

// Items returns every stored vector ordered by word.
func (s *Store) Items() ([]tagger.VectorItem, error) {
	var items []tagger.VectorItem
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVectors).ForEach(func(k, v []byte) error {
			vec, err := decodeVector(v)
			if err != nil {
				return fmt.Errorf("vector %q: %w", k, err)
			}
			items = append(items, tagger.VectorItem{Label: string(k), Vector: vec})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) get(word string) ([]float32, bool, error) {
	var (
		vec []float32
		ok  bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketVectors).Get([]byte(word))
		if v == nil {
			return nil
		}
		var err error
		vec, err = decodeVector(v)
		ok = err == nil
		return err
	})
	return vec, ok, err
}

// Dim returns the stored vector dimension, zero for an empty store.
func (s *Store) Dim() (int, error) {
	var dim int
	err := s.db.View(func(tx *bolt.Tx) error {
		dim = readInt(tx.Bucket(bucketMeta).Get(keyDim))
		return nil
	})
	return dim, err
}

func readInt(v []byte) int {
	n, _ := strconv.Atoi(string(v))
	return n
}

// encodeVector lays out vec as little-endian float32s.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("corrupt vector of %d bytes", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}
