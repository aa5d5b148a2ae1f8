// Package cache implements C3: a persistent, embedded-relational key→record
// store with identity-based invalidation (§4.3). The key is the triple
// (path, mtime, size_bytes); any change to mtime or size invalidates the
// entry.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/halvard/duplifind/core/record"
)

// DefaultPath returns "<home>/.duplicate_finder_cache.db", the default
// cache location named in §6.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cache: resolving home directory: %w", err)
	}
	return filepath.Join(home, ".duplicate_finder_cache.db"), nil
}

// ComputeFunc produces an ImageRecord (or reports an analysis error) for a
// cache miss. It mirrors analyzer.Analyzer.Analyze's return shape so the
// driver can pass that method directly.
type ComputeFunc func(path string) (record.ImageRecord, *record.ErrorRecord)

// Stats summarizes the cache's on-disk state (§4.3 stats()).
type Stats struct {
	TotalEntries int64
	BytesOnDisk  int64
	Path         string
}

// Store is the embedded SQLite-backed analysis cache. Multiple goroutines
// may call GetOrCompute concurrently; writes are serialized through
// writeMu so readers never observe a torn record, per §4.3's concurrency
// contract. Correctness of a scan never depends on the cache: any storage
// error degrades that call to a bypass rather than failing it.
type Store struct {
	db       *sql.DB
	path     string
	writeMu  sync.Mutex
	degraded atomic.Bool
}

// Open creates (or reuses) the SQLite file at path, applying the schema
// and rebuilding it if the stored schema version doesn't match. WAL mode
// is enabled so concurrent readers don't block the single writer queue.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("cache: applying %q: %w", pragma, err)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("cache: creating schema: %w", err)
	}

	var storedVersion string
	err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'schema_version'`).Scan(&storedVersion)
	switch {
	case err == sql.ErrNoRows:
		return s.stampSchemaVersion()
	case err != nil:
		return fmt.Errorf("cache: reading schema_version: %w", err)
	case storedVersion != fmt.Sprint(schemaVersion):
		if _, err := s.db.Exec(`DROP TABLE IF EXISTS image_cache`); err != nil {
			return fmt.Errorf("cache: dropping stale table: %w", err)
		}
		if _, err := s.db.Exec(schemaDDL); err != nil {
			return fmt.Errorf("cache: recreating schema: %w", err)
		}
		return s.stampSchemaVersion()
	default:
		return nil
	}
}

func (s *Store) stampSchemaVersion() error {
	_, err := s.db.Exec(
		`INSERT INTO meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(schemaVersion),
	)
	if err != nil {
		return fmt.Errorf("cache: stamping schema version: %w", err)
	}
	return nil
}

// Degraded reports whether any storage error has forced a cache bypass
// during this Store's lifetime (§7: ScanResult.cache_degraded).
func (s *Store) Degraded() bool {
	return s.degraded.Load()
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetOrCompute implements the atomic cache-or-compute operation from §4.3.
// On a cache hit it refreshes last_access_at and returns the stored
// record. On a miss it calls compute, upserts the result (replacing any
// prior entry for the same path), and returns it. Any storage error
// degrades this call to a bare compute() with no caching, per §4.3/§7.
func (s *Store) GetOrCompute(path string, size int64, mtime time.Time, compute ComputeFunc) (record.ImageRecord, *record.ErrorRecord, bool) {
	key := Key{Path: path, SizeBytes: size, ModTime: mtime}

	if cached, ok := s.lookup(key); ok {
		return cached, nil, true
	}

	rec, errRec := compute(path)
	if errRec != nil && rec.Path == "" {
		// IO failure before a content hash existed: nothing cacheable.
		return rec, errRec, false
	}
	s.upsert(rec)
	return rec, errRec, false
}

// Key is the cache-hit predicate triple (§3 CacheKey).
type Key struct {
	Path      string
	SizeBytes int64
	ModTime   time.Time
}

func (s *Store) lookup(key Key) (record.ImageRecord, bool) {
	row := s.db.QueryRow(`
		SELECT size_bytes, mtime, content_hash, phash, width, height, bit_depth, format_tag, analyzed_at
		FROM image_cache WHERE path = ?`, key.Path)

	var (
		sizeBytes, mtimeUnit, width, height, bitDepth, analyzedAtUnit int64
		contentHash                                                  []byte
		phash                                                        []byte
		formatTag                                                    string
	)
	err := row.Scan(&sizeBytes, &mtimeUnit, &contentHash, &phash, &width, &height, &bitDepth, &formatTag, &analyzedAtUnit)
	if err != nil {
		if err != sql.ErrNoRows {
			s.degraded.Store(true)
		}
		return record.ImageRecord{}, false
	}

	if sizeBytes != key.SizeBytes || mtimeUnit != key.ModTime.UnixNano() {
		return record.ImageRecord{}, false
	}

	if _, err := s.db.Exec(`UPDATE image_cache SET last_access_at = ? WHERE path = ?`, time.Now().UnixNano(), key.Path); err != nil {
		s.degraded.Store(true)
	}

	rec := record.ImageRecord{
		Path:       key.Path,
		SizeBytes:  sizeBytes,
		ModTime:    time.Unix(0, mtimeUnit),
		Width:      int(width),
		Height:     int(height),
		BitDepth:   int(bitDepth),
		FormatTag:  record.FormatTag(formatTag),
		AnalyzedAt: time.Unix(0, analyzedAtUnit),
	}
	copy(rec.ContentHash[:], contentHash)
	if len(phash) == 8 {
		rec.HasPHash = true
		rec.PerceptualHash = record.PerceptualHash(beUint64(phash))
	}
	return rec, true
}

func (s *Store) upsert(rec record.ImageRecord) {
	if rec.Path == "" {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var phash []byte
	if rec.HasPHash {
		phash = uint64ToBE(uint64(rec.PerceptualHash))
	}

	now := time.Now().UnixNano()
	_, err := s.db.Exec(`
		INSERT INTO image_cache (
			path, size_bytes, mtime, content_hash, phash, width, height, bit_depth, format_tag, analyzed_at, last_access_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size_bytes = excluded.size_bytes,
			mtime = excluded.mtime,
			content_hash = excluded.content_hash,
			phash = excluded.phash,
			width = excluded.width,
			height = excluded.height,
			bit_depth = excluded.bit_depth,
			format_tag = excluded.format_tag,
			analyzed_at = excluded.analyzed_at,
			last_access_at = excluded.last_access_at`,
		rec.Path, rec.SizeBytes, rec.ModTime.UnixNano(), rec.ContentHash[:], phash,
		rec.Width, rec.Height, rec.BitDepth, string(rec.FormatTag), rec.AnalyzedAt.UnixNano(), now,
	)
	if err != nil {
		s.degraded.Store(true)
	}
}

// Stats implements §4.3 stats().
func (s *Store) Stats() (Stats, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM image_cache`).Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("cache: counting entries: %w", err)
	}
	var bytesOnDisk int64
	if info, err := os.Stat(s.path); err == nil {
		bytesOnDisk = info.Size()
	}
	return Stats{TotalEntries: count, BytesOnDisk: bytesOnDisk, Path: s.path}, nil
}

// Clear drops all entries (§4.3 clear()).
func (s *Store) Clear() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.db.Exec(`DELETE FROM image_cache`); err != nil {
		return fmt.Errorf("cache: clearing entries: %w", err)
	}
	return nil
}

// CleanupMissing removes entries whose path no longer exists on disk,
// returning the count removed (§4.3 cleanup_missing()).
func (s *Store) CleanupMissing() (int, error) {
	rows, err := s.db.Query(`SELECT path FROM image_cache`)
	if err != nil {
		return 0, fmt.Errorf("cache: listing entries: %w", err)
	}
	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return 0, fmt.Errorf("cache: scanning path: %w", err)
		}
		if _, err := os.Stat(p); os.IsNotExist(err) {
			stale = append(stale, p)
		}
	}
	if err := rows.Close(); err != nil {
		return 0, fmt.Errorf("cache: closing rows: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	for _, p := range stale {
		if _, err := s.db.Exec(`DELETE FROM image_cache WHERE path = ?`, p); err != nil {
			return 0, fmt.Errorf("cache: deleting %s: %w", p, err)
		}
	}
	return len(stale), nil
}

// CleanupStale removes entries with last_access_at older than maxAgeDays
// and compacts the file afterward (§4.3 cleanup_stale()).
func (s *Store) CleanupStale(maxAgeDays int) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -maxAgeDays).UnixNano()

	s.writeMu.Lock()
	result, err := s.db.Exec(`DELETE FROM image_cache WHERE last_access_at < ?`, cutoff)
	if err != nil {
		s.writeMu.Unlock()
		return 0, fmt.Errorf("cache: deleting stale entries: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		s.writeMu.Unlock()
		return 0, fmt.Errorf("cache: counting removed rows: %w", err)
	}
	_, vacErr := s.db.Exec(`VACUUM`)
	s.writeMu.Unlock()
	if vacErr != nil {
		return int(removed), fmt.Errorf("cache: vacuuming after cleanup: %w", vacErr)
	}
	return int(removed), nil
}

func uint64ToBE(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * (7 - i)))
	}
	return b
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}
