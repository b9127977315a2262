package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thoughtwall/thoughtwall/internal/model"
	"github.com/thoughtwall/thoughtwall/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// migrations is an ordered list of SQL migrations.
// Each migration runs exactly once, tracked by schema_version table.
var migrations = []string{
	// Migration 1: Initial schema
	`
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL COLLATE NOCASE,
	email TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	access_token TEXT,
	created_at INTEGER NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_access_token ON users(access_token);

CREATE TABLE IF NOT EXISTS thoughts (
	id TEXT PRIMARY KEY,
	message TEXT NOT NULL,
	category TEXT,
	hearts INTEGER NOT NULL DEFAULT 0,
	user_id TEXT,
	username TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_thoughts_created_at ON thoughts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_thoughts_hearts ON thoughts(hearts DESC);
CREATE INDEX IF NOT EXISTS idx_thoughts_category ON thoughts(category);
CREATE INDEX IF NOT EXISTS idx_thoughts_user_id ON thoughts(user_id);
`,
	// Future migrations go here:
	// Migration 2: `ALTER TABLE ...`,
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return err
	}

	var currentVersion int
	row := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_version`)
	if err := row.Scan(&currentVersion); err != nil {
		return err
	}

	for i := currentVersion; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(`INSERT INTO schema_version (version) VALUES (?)`, i+1); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Store) CreateThought(ctx context.Context, thought *model.Thought) error {
	if thought.ID == "" {
		thought.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO thoughts (id, message, category, hearts, user_id, username, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, thought.ID, thought.Message, nullIfEmpty(thought.Category), thought.Hearts, nullIfEmpty(thought.UserID), nullIfEmpty(thought.Username), thought.CreatedAt.Unix())
	return err
}

func (s *Store) GetThought(ctx context.Context, id string) (model.Thought, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, message, category, hearts, user_id, username, created_at
FROM thoughts
WHERE id = ?
LIMIT 1
`, id)
	return scanThought(row)
}

func (s *Store) ListThoughts(ctx context.Context, opts store.ThoughtListOpts) ([]model.Thought, int, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := clamp(opts.Limit, 1, 100)
	offset := (page - 1) * limit

	where := ""
	var args []any
	if opts.Category != "" {
		where = "WHERE LOWER(category) = LOWER(?)"
		args = append(args, opts.Category)
	}

	order := "created_at DESC"
	if opts.Sort == "hearts" {
		order = "hearts DESC, created_at DESC"
	}

	var total int
	countArgs := append([]any(nil), args...)
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM thoughts %s`, where), countArgs...)
	if err := row.Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
SELECT id, message, category, hearts, user_id, username, created_at
FROM thoughts
%s
ORDER BY %s
LIMIT ? OFFSET ?
`, where, order), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var thoughts []model.Thought
	for rows.Next() {
		thought, err := scanThought(rows)
		if err != nil {
			return nil, 0, err
		}
		thoughts = append(thoughts, thought)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return thoughts, total, nil
}

func (s *Store) UpdateThought(ctx context.Context, id, message, category string) (model.Thought, error) {
	res, err := s.db.ExecContext(ctx, `
UPDATE thoughts SET message = ?, category = ? WHERE id = ?
`, message, nullIfEmpty(category), id)
	if err != nil {
		return model.Thought{}, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.Thought{}, store.ErrNotFound
	}
	return s.GetThought(ctx, id)
}

func (s *Store) IncrementHearts(ctx context.Context, id string) (model.Thought, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE thoughts SET hearts = hearts + 1 WHERE id = ?`, id)
	if err != nil {
		return model.Thought{}, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return model.Thought{}, store.ErrNotFound
	}
	return s.GetThought(ctx, id)
}

func (s *Store) DeleteThought(ctx context.Context, id string) (model.Thought, error) {
	thought, err := s.GetThought(ctx, id)
	if err != nil {
		return model.Thought{}, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM thoughts WHERE id = ?`, id); err != nil {
		return model.Thought{}, err
	}
	return thought, nil
}

func (s *Store) DeleteThoughtsByUser(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM thoughts WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT DISTINCT category FROM thoughts
WHERE category IS NOT NULL AND category != ''
ORDER BY category ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (id, username, email, password_hash, access_token, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, user.ID, user.Username, user.Email, user.PasswordHash, nullIfEmpty(user.AccessToken), user.CreatedAt.Unix())
	if err != nil {
		return mapUserConflict(err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (model.User, error) {
	return s.getUserWhere(ctx, "id = ?", id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

func (s *Store) GetUserByToken(ctx context.Context, token string) (model.User, error) {
	return s.getUserWhere(ctx, "access_token = ?", token)
}

func (s *Store) getUserWhere(ctx context.Context, cond string, arg any) (model.User, error) {
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`
SELECT id, username, email, password_hash, access_token, created_at
FROM users
WHERE %s
LIMIT 1
`, cond), arg)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, username, email, password_hash, access_token, created_at
FROM users
ORDER BY created_at ASC
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (s *Store) SetAccessToken(ctx context.Context, userID, token string) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE users SET access_token = ? WHERE id = ?
`, nullIfEmpty(token), userID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetSiteStats(ctx context.Context) (model.SiteStats, error) {
	var stats model.SiteStats
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)
	if err := row.Scan(&stats.Users); err != nil {
		return stats, err
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(hearts), 0) FROM thoughts`)
	if err := row.Scan(&stats.Thoughts, &stats.Hearts); err != nil {
		return stats, err
	}
	return stats, nil
}

func scanThought(scanner interface{ Scan(dest ...any) error }) (model.Thought, error) {
	var t model.Thought
	var category sql.NullString
	var userID sql.NullString
	var username sql.NullString
	var created int64
	if err := scanner.Scan(&t.ID, &t.Message, &category, &t.Hearts, &userID, &username, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Thought{}, store.ErrNotFound
		}
		return model.Thought{}, err
	}
	if category.Valid {
		t.Category = category.String
	}
	if userID.Valid {
		t.UserID = userID.String
	}
	if username.Valid {
		t.Username = username.String
	}
	t.CreatedAt = time.Unix(created, 0)
	return t, nil
}

func scanUser(scanner interface{ Scan(dest ...any) error }) (model.User, error) {
	var u model.User
	var token sql.NullString
	var created int64
	if err := scanner.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &token, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, store.ErrNotFound
		}
		return model.User{}, err
	}
	if token.Valid {
		u.AccessToken = token.String
	}
	u.CreatedAt = time.Unix(created, 0)
	return u, nil
}

func mapUserConflict(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	if strings.Contains(msg, "users.email") {
		return store.ErrDuplicateEmail
	}
	if strings.Contains(msg, "users.username") {
		return store.ErrDuplicateUsername
	}
	return err
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
