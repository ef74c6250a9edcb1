package texpack

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"
)

// Reader reads textures from a pack.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens a pack read-only.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='textures'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain textures table")
	}

	return &Reader{
		db:   db,
		path: path,
	}, nil
}

// ReadTexture returns the named texture with its PNG data decompressed.
func (r *Reader) ReadTexture(name string) (Entry, error) {
	e := Entry{Name: name}
	var compressed []byte
	var params sql.NullString
	err := r.db.QueryRow(
		"SELECT kind, width, height, cols, rows, seed, params, data FROM textures WHERE name=?",
		name,
	).Scan(&e.Kind, &e.Width, &e.Height, &e.Cols, &e.Rows, &e.Seed, &params, &compressed)

	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to query texture: %w", err)
	}
	e.Params = params.String

	e.Data, err = gzipDecompress(compressed)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to decompress texture %s: %w", name, err)
	}
	return e, nil
}

// List returns every texture ordered by name, without data.
func (r *Reader) List() ([]Entry, error) {
	rows, err := r.db.Query("SELECT name, kind, width, height, cols, rows, seed, params FROM textures ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query textures: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var params sql.NullString
		if err := rows.Scan(&e.Name, &e.Kind, &e.Width, &e.Height, &e.Cols, &e.Rows, &e.Seed, &params); err != nil {
			return nil, fmt.Errorf("failed to scan texture row: %w", err)
		}
		e.Params = params.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating textures: %w", err)
	}
	return out, nil
}

// Metadata reads pack metadata and the texture count.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value.String
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	meta := Metadata{
		Name:        metaMap["name"],
		Description: metaMap["description"],
		Generator:   metaMap["generator"],
		Version:     metaMap["version"],
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM textures").Scan(&meta.Count); err != nil {
		return Metadata{}, fmt.Errorf("failed to count textures: %w", err)
	}
	return meta, nil
}

// Close closes the database connection.
func (r *Reader) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
