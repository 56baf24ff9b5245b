// Package store persists themes and their ordered sections in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/meet-hub2701/azavista-css-designer-backend/internal/theme"
)

// ErrNotFound is returned when a theme or section id does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS themes (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	source_url       TEXT NOT NULL DEFAULT '',
	extracted_html   TEXT NOT NULL DEFAULT '',
	extracted_css    TEXT NOT NULL DEFAULT '',
	extracted_colors TEXT NOT NULL DEFAULT '[]',
	extracted_fonts  TEXT NOT NULL DEFAULT '[]',
	global_styles    TEXT NOT NULL DEFAULT '{}',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sections (
	id             TEXT PRIMARY KEY,
	theme_id       TEXT NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
	name           TEXT NOT NULL,
	type           TEXT NOT NULL,
	css_properties TEXT NOT NULL DEFAULT '{}',
	custom_css     TEXT NOT NULL DEFAULT '',
	html_content   TEXT NOT NULL DEFAULT '',
	order_index    INTEGER NOT NULL DEFAULT 0,
	is_active      INTEGER NOT NULL DEFAULT 1,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sections_theme_order ON sections(theme_id, order_index);
`

// Store wraps the SQLite handle. Safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies pragmas
// and schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateTheme inserts a theme, assigning id and timestamps when unset.
func (s *Store) CreateTheme(ctx context.Context, t *theme.Theme) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	colors, fonts, styles, err := marshalThemeFields(t)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO themes (id, name, description, source_url, extracted_html,
			extracted_css, extracted_colors, extracted_fonts, global_styles,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.SourceURL, t.ExtractedHTML,
		t.ExtractedCSS, colors, fonts, styles,
		t.CreatedAt.Format(time.RFC3339Nano), t.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting theme: %w", err)
	}
	return nil
}

// GetTheme returns the theme with the given id or ErrNotFound.
func (s *Store) GetTheme(ctx context.Context, id string) (*theme.Theme, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, source_url, extracted_html, extracted_css,
			extracted_colors, extracted_fonts, global_styles, created_at, updated_at
		FROM themes WHERE id = ?`, id)
	return scanTheme(row)
}

// ListThemes returns all themes, newest first.
func (s *Store) ListThemes(ctx context.Context) ([]*theme.Theme, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, source_url, extracted_html, extracted_css,
			extracted_colors, extracted_fonts, global_styles, created_at, updated_at
		FROM themes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	defer rows.Close()

	var themes []*theme.Theme
	for rows.Next() {
		t, err := scanTheme(rows)
		if err != nil {
			return nil, err
		}
		themes = append(themes, t)
	}
	return themes, rows.Err()
}

// UpdateTheme overwrites the stored theme, bumping updated_at.
func (s *Store) UpdateTheme(ctx context.Context, t *theme.Theme) error {
	t.UpdatedAt = time.Now().UTC()

	colors, fonts, styles, err := marshalThemeFields(t)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE themes SET name = ?, description = ?, source_url = ?,
			extracted_html = ?, extracted_css = ?, extracted_colors = ?,
			extracted_fonts = ?, global_styles = ?, updated_at = ?
		WHERE id = ?`,
		t.Name, t.Description, t.SourceURL, t.ExtractedHTML, t.ExtractedCSS,
		colors, fonts, styles, t.UpdatedAt.Format(time.RFC3339Nano), t.ID)
	if err != nil {
		return fmt.Errorf("updating theme: %w", err)
	}
	return requireRow(res)
}

// DeleteTheme removes a theme; its sections cascade away with it.
func (s *Store) DeleteTheme(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM themes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting theme: %w", err)
	}
	return requireRow(res)
}

// CreateSection inserts a section, assigning id and timestamps when unset.
func (s *Store) CreateSection(ctx context.Context, sec *theme.Section) error {
	if sec.ID == "" {
		sec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if sec.CreatedAt.IsZero() {
		sec.CreatedAt = now
	}
	sec.UpdatedAt = now

	props, err := json.Marshal(sec.CSSProperties)
	if err != nil {
		return fmt.Errorf("encoding css properties: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sections (id, theme_id, name, type, css_properties,
			custom_css, html_content, order_index, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sec.ID, sec.ThemeID, sec.Name, string(sec.Type), string(props),
		sec.CustomCSS, sec.HTMLContent, sec.Order, boolToInt(sec.IsActive),
		sec.CreatedAt.Format(time.RFC3339Nano), sec.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting section: %w", err)
	}
	return nil
}

// GetSection returns the section with the given id or ErrNotFound.
func (s *Store) GetSection(ctx context.Context, id string) (*theme.Section, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, theme_id, name, type, css_properties, custom_css,
			html_content, order_index, is_active, created_at, updated_at
		FROM sections WHERE id = ?`, id)
	return scanSection(row)
}

// ListSectionsByTheme returns a theme's sections sorted by their explicit
// order field.
func (s *Store) ListSectionsByTheme(ctx context.Context, themeID string) ([]*theme.Section, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, theme_id, name, type, css_properties, custom_css,
			html_content, order_index, is_active, created_at, updated_at
		FROM sections WHERE theme_id = ? ORDER BY order_index`, themeID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer rows.Close()

	var sections []*theme.Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// UpdateSection overwrites the stored section, bumping updated_at.
func (s *Store) UpdateSection(ctx context.Context, sec *theme.Section) error {
	sec.UpdatedAt = time.Now().UTC()

	props, err := json.Marshal(sec.CSSProperties)
	if err != nil {
		return fmt.Errorf("encoding css properties: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sections SET name = ?, type = ?, css_properties = ?,
			custom_css = ?, html_content = ?, order_index = ?, is_active = ?,
			updated_at = ?
		WHERE id = ?`,
		sec.Name, string(sec.Type), string(props), sec.CustomCSS,
		sec.HTMLContent, sec.Order, boolToInt(sec.IsActive),
		sec.UpdatedAt.Format(time.RFC3339Nano), sec.ID)
	if err != nil {
		return fmt.Errorf("updating section: %w", err)
	}
	return requireRow(res)
}

// DeleteSection removes a single section.
func (s *Store) DeleteSection(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTheme(row rowScanner) (*theme.Theme, error) {
	var t theme.Theme
	var colors, fonts, styles, createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.SourceURL,
		&t.ExtractedHTML, &t.ExtractedCSS, &colors, &fonts, &styles,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning theme: %w", err)
	}

	if err := json.Unmarshal([]byte(colors), &t.ExtractedColors); err != nil {
		return nil, fmt.Errorf("decoding colors: %w", err)
	}
	if err := json.Unmarshal([]byte(fonts), &t.ExtractedFonts); err != nil {
		return nil, fmt.Errorf("decoding fonts: %w", err)
	}
	if err := json.Unmarshal([]byte(styles), &t.GlobalStyles); err != nil {
		return nil, fmt.Errorf("decoding global styles: %w", err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &t, nil
}

func scanSection(row rowScanner) (*theme.Section, error) {
	var sec theme.Section
	var typ, props, createdAt, updatedAt string
	var active int

	err := row.Scan(&sec.ID, &sec.ThemeID, &sec.Name, &typ, &props,
		&sec.CustomCSS, &sec.HTMLContent, &sec.Order, &active,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning section: %w", err)
	}

	sec.Type = theme.SectionType(typ)
	sec.IsActive = active != 0
	if err := json.Unmarshal([]byte(props), &sec.CSSProperties); err != nil {
		return nil, fmt.Errorf("decoding css properties: %w", err)
	}
	sec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	sec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &sec, nil
}

func marshalThemeFields(t *theme.Theme) (colors, fonts, styles string, err error) {
	colorsB, err := json.Marshal(emptyIfNil(t.ExtractedColors))
	if err != nil {
		return "", "", "", fmt.Errorf("encoding colors: %w", err)
	}
	fontsB, err := json.Marshal(emptyIfNil(t.ExtractedFonts))
	if err != nil {
		return "", "", "", fmt.Errorf("encoding fonts: %w", err)
	}
	stylesB, err := json.Marshal(t.GlobalStyles)
	if err != nil {
		return "", "", "", fmt.Errorf("encoding global styles: %w", err)
	}
	return string(colorsB), string(fontsB), string(stylesB), nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
