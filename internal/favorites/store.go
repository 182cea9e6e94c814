// Package favorites persists the user's favorite movies and announces every
// change on the notification bus.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/flicks/internal/domain"
	"github.com/mmcdole/flicks/internal/notify"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var (
	bucketFavorites = []byte("favorites")
	keyMovies       = []byte("favoriteMovies")
	keyWriter       = []byte("writer")
)

// backend stores the serialized collection
type backend interface {
	// view calls fn with the stored blob (nil when absent)
	view(fn func(blob []byte) error) error
	// update replaces the blob with fn's result inside one transaction
	update(fn func(blob []byte) ([]byte, error)) error
	// lastWriter returns the id of the instance that wrote last
	lastWriter() (string, error)
}

// Store implements domain.Favorites.
//
// The collection is ordered by insertion and unique by movie ID: adding a
// movie that is already present replaces the stored record in place.
type Store struct {
	backend backend
	bus     *notify.Bus
	logger  *slog.Logger
	path    string

	// Serializes operations; bbolt's file lock is per open file, so two
	// concurrent opens from this process would wait on each other.
	mu sync.Mutex

	coalesce time.Duration
}

// NewStore opens (creating if needed) the favorites database at path.
// The database is opened per operation so several processes can share it.
func NewStore(path string, lockTimeout time.Duration, bus *notify.Bus, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if bus == nil {
		bus = notify.NewBus()
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid favorites path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create favorites directory: %w", err)
	}

	b := &boltBackend{path: path, timeout: lockTimeout, writerID: uuid.NewString()}
	if err := b.init(); err != nil {
		return nil, err
	}

	return &Store{
		backend:  b,
		bus:      bus,
		logger:   logger,
		path:     path,
		coalesce: 50 * time.Millisecond,
	}, nil
}

// NewMemoryStore creates a store without persistence
func NewMemoryStore(bus *notify.Bus) *Store {
	if bus == nil {
		bus = notify.NewBus()
	}
	return &Store{
		backend: &memoryBackend{},
		bus:     bus,
		logger:  slog.Default(),
	}
}

// Bus returns the bus this store publishes on
func (s *Store) Bus() *notify.Bus {
	return s.bus
}

// List returns the favorites in insertion order.
// A missing or unreadable collection reads as empty.
func (s *Store) List() []domain.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	var movies []domain.Movie
	err := s.backend.view(func(blob []byte) error {
		movies = s.decode(blob)
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to read favorites", "error", err)
		return []domain.Movie{}
	}
	return movies
}

// IsFavorite reports whether a movie with id is stored
func (s *Store) IsFavorite(id int) bool {
	return indexOf(s.List(), id) >= 0
}

// Add stores movie, replacing any record with the same ID
func (s *Store) Add(movie domain.Movie) error {
	return s.mutate(func(movies []domain.Movie) []domain.Movie {
		return upsert(movies, movie)
	})
}

// Remove deletes every record with id
func (s *Store) Remove(id int) error {
	return s.mutate(func(movies []domain.Movie) []domain.Movie {
		return without(movies, id)
	})
}

// Toggle removes movie if it is a favorite and adds it otherwise.
// It returns the new favorite state. The check and the write happen in
// the same transaction.
func (s *Store) Toggle(movie domain.Movie) (bool, error) {
	var added bool
	err := s.mutate(func(movies []domain.Movie) []domain.Movie {
		if indexOf(movies, movie.ID) >= 0 {
			added = false
			return without(movies, movie.ID)
		}
		added = true
		return append(movies, movie)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// mutate persists fn's result and then publishes exactly one change
// notification. Nothing is published when the write fails.
func (s *Store) mutate(fn func([]domain.Movie) []domain.Movie) error {
	s.mu.Lock()
	err := s.backend.update(func(blob []byte) ([]byte, error) {
		next := fn(s.decode(blob))
		data, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode favorites: %w", err)
		}
		return data, nil
	})
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("failed to write favorites", "error", err)
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	s.bus.Publish(notify.TopicFavoritesUpdated)
	return nil
}

// decode parses the stored blob. Unreadable data is logged and treated as an
// empty collection; duplicate IDs left by older writers keep the first record.
func (s *Store) decode(blob []byte) []domain.Movie {
	if len(blob) == 0 {
		return []domain.Movie{}
	}

	var movies []domain.Movie
	if err := json.Unmarshal(blob, &movies); err != nil {
		s.logger.Warn("ignoring stored favorites", "error", &domain.StorageError{Key: string(keyMovies), Err: err})
		return []domain.Movie{}
	}

	seen := make(map[int]bool, len(movies))
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	return out
}

func indexOf(movies []domain.Movie, id int) int {
	for i, m := range movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func upsert(movies []domain.Movie, movie domain.Movie) []domain.Movie {
	if i := indexOf(movies, movie.ID); i >= 0 {
		movies[i] = movie
		return movies
	}
	return append(movies, movie)
}

func without(movies []domain.Movie, id int) []domain.Movie {
	out := movies[:0]
	for _, m := range movies {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// === bbolt backend ===

type boltBackend struct {
	path     string
	timeout  time.Duration
	writerID string
}

// open opens the database file. Read-only opens take a shared file lock,
// so readers in several processes do not wait on each other.
func (b *boltBackend) open(readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(b.path, 0600, &bolt.Options{Timeout: b.timeout, ReadOnly: readOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	return db, nil
}

func (b *boltBackend) init() error {
	db, err := b.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFavorites)
		return err
	})
}

func (b *boltBackend) view(fn func(blob []byte) error) error {
	db, err := b.open(true)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketFavorites)
		if bucket == nil {
			return fn(nil)
		}
		// Values are only valid inside the transaction
		return fn(copyBytes(bucket.Get(keyMovies)))
	})
}

func (b *boltBackend) update(fn func(blob []byte) ([]byte, error)) error {
	db, err := b.open(false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketFavorites)
		if err != nil {
			return err
		}
		next, err := fn(copyBytes(bucket.Get(keyMovies)))
		if err != nil {
			return err
		}
		if err := bucket.Put(keyMovies, next); err != nil {
			return err
		}
		return bucket.Put(keyWriter, []byte(b.writerID))
	})
}

func (b *boltBackend) lastWriter() (string, error) {
	db, err := b.open(true)
	if err != nil {
		return "", err
	}
	defer db.Close()

	var writer string
	err = db.View(func(tx *bolt.Tx) error {
		if bucket := tx.Bucket(bucketFavorites); bucket != nil {
			writer = string(bucket.Get(keyWriter))
		}
		return nil
	})
	return writer, err
}

func copyBytes(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

// === memory backend ===

type memoryBackend struct {
	blob []byte
}

func (m *memoryBackend) view(fn func(blob []byte) error) error {
	return fn(copyBytes(m.blob))
}

func (m *memoryBackend) update(fn func(blob []byte) ([]byte, error)) error {
	next, err := fn(copyBytes(m.blob))
	if err != nil {
		return err
	}
	m.blob = next
	return nil
}

func (m *memoryBackend) lastWriter() (string, error) { return "", nil }
