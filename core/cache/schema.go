package cache

// schemaVersion is bumped whenever the table layout or the decoder
// contract (which determines what a cached record means) changes. A
// mismatch against the stored value in the meta table drops and rebuilds
// the database (§6 Cache storage layout).
const schemaVersion = 1

const schemaDDL = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS image_cache (
	path          TEXT PRIMARY KEY,
	size_bytes    INTEGER NOT NULL,
	mtime         INTEGER NOT NULL,
	content_hash  BLOB NOT NULL,
	phash         BLOB,
	width         INTEGER NOT NULL,
	height        INTEGER NOT NULL,
	bit_depth     INTEGER NOT NULL,
	format_tag    TEXT NOT NULL,
	analyzed_at   INTEGER NOT NULL,
	last_access_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_image_cache_last_access ON image_cache(last_access_at);
`
