package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"reel/internal/logging"
	"reel/internal/project"
)

var (
	// ErrNotFound is returned when no project matches a reference.
	ErrNotFound = errors.New("project not found")
	// ErrDuplicateName is returned when a project name is already taken.
	ErrDuplicateName = errors.New("project name already in use")
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ProjectRecord is one row of the project listing.
type ProjectRecord struct {
	ID           string
	Name         string
	HeadRevision int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Revision describes one saved version of a project.
type Revision struct {
	ProjectID      string
	Number         int
	Note           string
	CreatedAt      time.Time
	Tracks         int
	Clips          int
	DurationFrames int64
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

// resolveID maps a project reference to its id. References match an id
// exactly first, then a name case-insensitively.
func resolveID(ctx context.Context, q querier, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNotFound
	}
	var id string
	err := q.QueryRowContext(ctx,
		"SELECT id FROM projects WHERE id = ? UNION ALL SELECT id FROM projects WHERE name = ? LIMIT 1",
		ref, ref,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("resolve project %q: %w", ref, err)
	}
	return id, nil
}

func nameTaken(ctx context.Context, q querier, name, exceptID string) (bool, error) {
	var count int
	if err := q.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM projects WHERE name = ? AND id <> ?", name, exceptID,
	).Scan(&count); err != nil {
		return false, fmt.Errorf("check project name: %w", err)
	}
	return count > 0, nil
}

func insertRevision(ctx context.Context, tx *sql.Tx, p *project.Project, number int, note, now string) (*Revision, error) {
	data, err := project.Marshal(p)
	if err != nil {
		return nil, err
	}
	summary := p.Summarize()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO revisions (project_id, number, note, document, created_at, track_count, clip_count, duration_frames)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, number, note, string(data), now, summary.Tracks, summary.Clips, summary.Duration,
	); err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}
	return &Revision{
		ProjectID:      p.ID,
		Number:         number,
		Note:           note,
		CreatedAt:      parseTime(now),
		Tracks:         summary.Tracks,
		Clips:          summary.Clips,
		DurationFrames: summary.Duration,
	}, nil
}

// Create stores a new project as revision 1.
func (s *Store) Create(ctx context.Context, p *project.Project, note string) (*Revision, error) {
	if p == nil || strings.TrimSpace(p.ID) == "" {
		return nil, errors.New("create project: project id required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.New("create project: project name required")
	}
	ctx = ensureContext(ctx)

	var rev *Revision
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		taken, err := nameTaken(ctx, tx, p.Name, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		now := s.timestamp()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO projects (id, name, head_revision, created_at, updated_at) VALUES (?, ?, 1, ?, ?)",
			p.ID, p.Name, now, now,
		); err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		rev, err = insertRevision(ctx, tx, p, 1, note, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.WithContext(logging.WithProject(ctx, p.ID), s.logger).Info("project created",
		logging.String("name", p.Name),
	)
	return rev, nil
}

// Save appends a new revision of an existing project and makes it the head.
// A renamed project keeps its id; the new name must still be unique.
func (s *Store) Save(ctx context.Context, p *project.Project, note string) (*Revision, error) {
	if p == nil {
		return nil, errors.New("save project: nil project")
	}
	ctx = ensureContext(ctx)

	var rev *Revision
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var head int
		err := tx.QueryRowContext(ctx, "SELECT head_revision FROM projects WHERE id = ?", p.ID).Scan(&head)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
		}
		if err != nil {
			return fmt.Errorf("read head revision: %w", err)
		}
		taken, err := nameTaken(ctx, tx, p.Name, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: %s", ErrDuplicateName, p.Name)
		}
		now := s.timestamp()
		if _, err := tx.ExecContext(ctx,
			"UPDATE projects SET name = ?, head_revision = ?, updated_at = ? WHERE id = ?",
			p.Name, head+1, now, p.ID,
		); err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		rev, err = insertRevision(ctx, tx, p, head+1, note, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	logging.WithContext(logging.WithProject(ctx, p.ID), s.logger).Debug("project saved",
		logging.Revision(rev.Number),
	)
	return rev, nil
}

// Get returns the listing row for ref.
func (s *Store) Get(ctx context.Context, ref string) (*ProjectRecord, error) {
	ctx = ensureContext(ctx)
	id, err := resolveID(ctx, s.db, ref)
	if err != nil {
		return nil, err
	}
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, head_revision, created_at, updated_at FROM projects WHERE id = ?", id)
	return scanProject(row)
}

// Load decodes the head revision of ref.
func (s *Store) Load(ctx context.Context, ref string) (*project.Project, *Revision, error) {
	return s.LoadRevision(ctx, ref, 0)
}

// LoadRevision decodes revision number of ref. Zero selects the head.
func (s *Store) LoadRevision(ctx context.Context, ref string, number int) (*project.Project, *Revision, error) {
	ctx = ensureContext(ctx)
	id, err := resolveID(ctx, s.db, ref)
	if err != nil {
		return nil, nil, err
	}
	if number <= 0 {
		if err := s.db.QueryRowContext(ctx, "SELECT head_revision FROM projects WHERE id = ?", id).Scan(&number); err != nil {
			return nil, nil, fmt.Errorf("read head revision: %w", err)
		}
	}

	var (
		document string
		rev      Revision
		note     sql.NullString
		created  string
	)
	err = s.db.QueryRowContext(ctx,
		`SELECT project_id, number, note, document, created_at, track_count, clip_count, duration_frames
		 FROM revisions WHERE project_id = ? AND number = ?`, id, number,
	).Scan(&rev.ProjectID, &rev.Number, &note, &document, &created, &rev.Tracks, &rev.Clips, &rev.DurationFrames)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s revision %d", ErrNotFound, ref, number)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read revision: %w", err)
	}
	rev.Note = note.String
	rev.CreatedAt = parseTime(created)

	p, err := project.Unmarshal([]byte(document))
	if err != nil {
		return nil, nil, fmt.Errorf("decode revision %d of %s: %w", number, id, err)
	}
	return p, &rev, nil
}

// List returns every project, most recently updated first.
func (s *Store) List(ctx context.Context) ([]ProjectRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, head_revision, created_at, updated_at FROM projects ORDER BY updated_at DESC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectRecord
	for rows.Next() {
		rec, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// Revisions returns the saved versions of ref, oldest first.
func (s *Store) Revisions(ctx context.Context, ref string) ([]Revision, error) {
	ctx = ensureContext(ctx)
	id, err := resolveID(ctx, s.db, ref)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_id, number, note, created_at, track_count, clip_count, duration_frames
		 FROM revisions WHERE project_id = ? ORDER BY number ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev     Revision
			note    sql.NullString
			created string
		)
		if err := rows.Scan(&rev.ProjectID, &rev.Number, &note, &created, &rev.Tracks, &rev.Clips, &rev.DurationFrames); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		rev.Note = note.String
		rev.CreatedAt = parseTime(created)
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate revisions: %w", err)
	}
	return out, nil
}

// Delete removes ref and all of its revisions.
func (s *Store) Delete(ctx context.Context, ref string) error {
	ctx = ensureContext(ctx)
	var id string
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = resolveID(ctx, tx, ref)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM revisions WHERE project_id = ?", id); err != nil {
			return fmt.Errorf("delete revisions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logging.WithContext(logging.WithProject(ctx, id), s.logger).Info("project deleted")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*ProjectRecord, error) {
	var (
		rec              ProjectRecord
		created, updated string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.HeadRevision, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	rec.CreatedAt = parseTime(created)
	rec.UpdatedAt = parseTime(updated)
	return &rec, nil
}
