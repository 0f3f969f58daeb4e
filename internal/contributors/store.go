package contributors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"authorlink/internal/config"
)

// Store manages contributor persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the contributor database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "contributors.db"))
}

// OpenPath connects to the contributor database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const contributorColumns = "id, sort_name, display_name, family_name, wikipedia_name, authority_id, superseded_by, created_at, updated_at"

func scanContributor(scanner interface{ Scan(dest ...any) error }) (*Contributor, error) {
	var (
		id            int64
		sortName      sql.NullString
		displayName   sql.NullString
		familyName    sql.NullString
		wikipediaName sql.NullString
		authorityID   sql.NullString
		supersededBy  sql.NullInt64
		createdRaw    string
		updatedRaw    string
	)

	if err := scanner.Scan(
		&id,
		&sortName,
		&displayName,
		&familyName,
		&wikipediaName,
		&authorityID,
		&supersededBy,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	contributor := &Contributor{
		ID:            id,
		SortName:      sortName.String,
		DisplayName:   displayName.String,
		FamilyName:    familyName.String,
		WikipediaName: wikipediaName.String,
		AuthorityID:   authorityID.String,
		SupersededBy:  supersededBy.Int64,
	}
	contributor.CreatedAt = parseTimestamp(createdRaw)
	contributor.UpdatedAt = parseTimestamp(updatedRaw)
	return contributor, nil
}

func parseTimestamp(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}

// Add inserts a new contributor and returns it with its identifier set.
func (s *Store) Add(ctx context.Context, contributor *Contributor) (*Contributor, error) {
	if contributor == nil {
		return nil, errors.New("contributor is nil")
	}
	if strings.TrimSpace(contributor.SortName) == "" && strings.TrimSpace(contributor.DisplayName) == "" {
		return nil, errors.New("contributor needs a sort name or display name")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO contributors (
            sort_name, display_name, family_name, wikipedia_name,
            authority_id, superseded_by, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(contributor.SortName),
		nullableString(contributor.DisplayName),
		nullableString(contributor.FamilyName),
		nullableString(contributor.WikipediaName),
		nullableString(contributor.AuthorityID),
		nullableInt64(contributor.SupersededBy),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contributor: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a contributor by identifier. A missing row returns
// (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Contributor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+contributorColumns+` FROM contributors WHERE id = ?`, id)
	contributor, err := scanContributor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contributor: %w", err)
	}
	return contributor, nil
}

// GetByAuthorityID returns the first live contributor carrying the
// given authority identifier, excluding excludeID. Used to detect that
// a resolution landed on an identity some other record already claims.
func (s *Store) GetByAuthorityID(ctx context.Context, authorityID string, excludeID int64) (*Contributor, error) {
	authorityID = strings.TrimSpace(authorityID)
	if authorityID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+contributorColumns+` FROM contributors
         WHERE authority_id = ? AND id != ? AND superseded_by IS NULL
         ORDER BY id LIMIT 1`,
		authorityID, excludeID,
	)
	contributor, err := scanContributor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by authority id: %w", err)
	}
	return contributor, nil
}

// Update persists changes to an existing contributor.
func (s *Store) Update(ctx context.Context, contributor *Contributor) error {
	if contributor == nil {
		return errors.New("contributor is nil")
	}
	contributor.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE contributors
         SET sort_name = ?, display_name = ?, family_name = ?, wikipedia_name = ?,
             authority_id = ?, superseded_by = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(contributor.SortName),
		nullableString(contributor.DisplayName),
		nullableString(contributor.FamilyName),
		nullableString(contributor.WikipediaName),
		nullableString(contributor.AuthorityID),
		nullableInt64(contributor.SupersededBy),
		contributor.UpdatedAt.Format(time.RFC3339Nano),
		contributor.ID,
	)
	if err != nil {
		return fmt.Errorf("update contributor: %w", err)
	}
	return nil
}

// MergeInto reassigns fromID's contributions to toID and marks fromID
// superseded, in one transaction. Nothing is deleted.
func (s *Store) MergeInto(ctx context.Context, fromID, toID int64) error {
	if fromID == toID {
		return errors.New("cannot merge a contributor into itself")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE contributions SET contributor_id = ? WHERE contributor_id = ?`,
		toID, fromID,
	); err != nil {
		return fmt.Errorf("reassign contributions: %w", err)
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		`UPDATE contributors SET superseded_by = ?, updated_at = ? WHERE id = ?`,
		toID, timestamp, fromID,
	); err != nil {
		return fmt.Errorf("mark superseded: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit merge: %w", err)
	}
	return nil
}

// AddContribution links a contributor to a work title.
func (s *Store) AddContribution(ctx context.Context, contributorID int64, title, role string) (*Contribution, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title cannot be empty")
	}

	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO contributions (contributor_id, title, role, created_at) VALUES (?, ?, ?, ?)`,
		contributorID,
		title,
		nullableString(role),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contribution: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &Contribution{
		ID:            id,
		ContributorID: contributorID,
		Title:         title,
		Role:          role,
		CreatedAt:     parseTimestamp(timestamp),
	}, nil
}

// KnownTitles returns the distinct titles credited to a contributor, in
// insertion order. These are the local works used as matching evidence.
func (s *Store) KnownTitles(ctx context.Context, contributorID int64) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT DISTINCT title FROM contributions WHERE contributor_id = ? ORDER BY id`,
		contributorID,
	)
	if err != nil {
		return nil, fmt.Errorf("query known titles: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return titles, nil
}

// ListUnresolved returns live contributors that have no authority
// identifier yet, oldest first.
func (s *Store) ListUnresolved(ctx context.Context) ([]*Contributor, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+contributorColumns+` FROM contributors
         WHERE authority_id IS NULL AND superseded_by IS NULL
         ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query unresolved: %w", err)
	}
	defer rows.Close()

	var result []*Contributor
	for rows.Next() {
		contributor, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		result = append(result, contributor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributors: %w", err)
	}
	return result, nil
}

// Count returns live and superseded contributor counts.
func (s *Store) Count(ctx context.Context) (live, superseded int64, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT
            COUNT(CASE WHEN superseded_by IS NULL THEN 1 END),
            COUNT(CASE WHEN superseded_by IS NOT NULL THEN 1 END)
         FROM contributors`,
	).Scan(&live, &superseded)
	if err != nil {
		return 0, 0, fmt.Errorf("count contributors: %w", err)
	}
	return live, superseded, nil
}
