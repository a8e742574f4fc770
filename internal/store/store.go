package store

import (
	"context"
	"database/sql"
	"encoding/json"
	errs "errors"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/trail-tui/internal/engine"
	"github.com/DaanHessen/trail-tui/internal/util"
)

var (
	ErrNoChange = errs.New("no change")
	ErrNotFound = errs.New("not found")
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm     *gorm.DB
	sql      *sql.DB
	postgres bool
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }
func (d *DB) Postgres() bool { return d.postgres }

// Open connects per config: a DATABASE_URL means postgres, otherwise a local
// sqlite file keeps the game fully offline.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	var (
		gdb        *gorm.DB
		err        error
		postgresDB bool
	)
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.DSN != "" {
		gdb, err = gorm.Open(postgres.Open(cfg.DSN), gcfg)
		postgresDB = true
	} else {
		gdb, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gcfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping database")
	}
	db := &DB{gorm: gdb, sql: sdb, postgres: postgresDB}
	if !postgresDB {
		if err := db.ensureLocalSchema(ctx); err != nil {
			return nil, err
		}
	}
	slog.Info("database opened", "postgres", postgresDB)
	return db, nil
}

// ensureLocalSchema bootstraps the sqlite fallback, which never sees the
// migration runner.
func (d *DB) ensureLocalSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed_text TEXT NOT NULL,
			share_code TEXT NOT NULL,
			mode TEXT NOT NULL,
			policy TEXT NOT NULL,
			current_day INTEGER NOT NULL DEFAULT 1,
			ending TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			ended_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS day_records (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES runs(id),
			day_index INTEGER NOT NULL,
			kind TEXT NOT NULL,
			miles REAL NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]'
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS day_records_run_day ON day_records(run_id, day_index)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT PRIMARY KEY REFERENCES runs(id),
			state TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if err := d.gorm.WithContext(ctx).Exec(stmt).Error; err != nil {
			return errors.Wrap(err, "local schema")
		}
	}
	return nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Run is the DB-layer run row.
type Run struct {
	ID         uuid.UUID
	SeedText   string
	ShareCode  string
	Mode       string
	Policy     string
	CurrentDay int
	Ending     string
	Score      int
	CreatedAt  time.Time
	EndedAt    *time.Time
}

// RunRepo persists run lifecycles.
type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, g *engine.GameState, shareCode string) (Run, error) {
	run := Run{
		ID:         uuid.New(),
		SeedText:   g.SeedText,
		ShareCode:  shareCode,
		Mode:       string(g.Mode),
		Policy:     string(g.Policy),
		CurrentDay: g.Day,
		CreatedAt:  time.Now().UTC(),
	}
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO runs(id, seed_text, share_code, mode, policy, current_day, created_at) VALUES (?,?,?,?,?,?,?)`,
		run.ID, run.SeedText, run.ShareCode, run.Mode, run.Policy, run.CurrentDay, run.CreatedAt,
	).Error
	if err != nil {
		return Run{}, errors.Wrap(err, "create run")
	}
	return run, nil
}

func (r *RunRepo) Get(ctx context.Context, id uuid.UUID) (Run, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed_text, share_code, mode, policy, current_day, ending, score, created_at, ended_at FROM runs WHERE id = ?`, id,
	).Row()
	var run Run
	if err := row.Scan(&run.ID, &run.SeedText, &run.ShareCode, &run.Mode, &run.Policy,
		&run.CurrentDay, &run.Ending, &run.Score, &run.CreatedAt, &run.EndedAt); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, ErrNotFound
		}
		return Run{}, errors.Wrap(err, "get run")
	}
	return run, nil
}

// Latest returns the most recently started unfinished run, for "continue".
func (r *RunRepo) Latest(ctx context.Context) (Run, error) {
	row := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed_text, share_code, mode, policy, current_day, ending, score, created_at, ended_at
		 FROM runs WHERE ended_at IS NULL ORDER BY created_at DESC LIMIT 1`,
	).Row()
	var run Run
	if err := row.Scan(&run.ID, &run.SeedText, &run.ShareCode, &run.Mode, &run.Policy,
		&run.CurrentDay, &run.Ending, &run.Score, &run.CreatedAt, &run.EndedAt); err != nil {
		if err == sql.ErrNoRows {
			return Run{}, ErrNotFound
		}
		return Run{}, errors.Wrap(err, "latest run")
	}
	return run, nil
}

func (r *RunRepo) Touch(ctx context.Context, tx *gorm.DB, id uuid.UUID, currentDay int) error {
	return errors.Wrap(tx.Exec(`UPDATE runs SET current_day = ? WHERE id = ?`, currentDay, id).Error, "touch run")
}

// Finish records the ending verdict and final score.
func (r *RunRepo) Finish(ctx context.Context, tx *gorm.DB, id uuid.UUID, ending engine.Ending, score int) error {
	return errors.Wrap(tx.Exec(
		`UPDATE runs SET ending = ?, score = ?, ended_at = ? WHERE id = ?`,
		string(ending), score, time.Now().UTC(), id,
	).Error, "finish run")
}

// DayRepo persists the append-only ledger.
type DayRepo struct{ db *DB }

func NewDayRepo(db *DB) *DayRepo { return &DayRepo{db: db} }

func (d *DayRepo) Insert(ctx context.Context, tx *gorm.DB, runID uuid.UUID, rec engine.DayRecord) error {
	tags, _ := json.Marshal(rec.Tags)
	return errors.Wrap(tx.Exec(
		`INSERT INTO day_records(id, run_id, day_index, kind, miles, tags) VALUES (?,?,?,?,?,?)`,
		uuid.New(), runID, rec.DayIndex, string(rec.Kind), rec.Miles, string(tags),
	).Error, "insert day record")
}

// Ledger reloads a run's records in day order.
func (d *DayRepo) Ledger(ctx context.Context, runID uuid.UUID) ([]engine.DayRecord, error) {
	rows, err := d.db.gorm.WithContext(ctx).Raw(
		`SELECT day_index, kind, miles, tags FROM day_records WHERE run_id = ? ORDER BY day_index`, runID,
	).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "load ledger")
	}
	defer rows.Close()
	var out []engine.DayRecord
	for rows.Next() {
		var (
			rec  engine.DayRecord
			kind string
			tags string
		)
		if err := rows.Scan(&rec.DayIndex, &kind, &rec.Miles, &tags); err != nil {
			return nil, errors.Wrap(err, "scan day record")
		}
		rec.Kind = engine.DayKind(kind)
		if tags != "" && tags != "null" {
			if err := json.Unmarshal([]byte(tags), &rec.Tags); err != nil {
				return nil, errors.Wrap(err, "decode day tags")
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SnapshotRepo stores one resumable state blob per run.
type SnapshotRepo struct{ db *DB }

func NewSnapshotRepo(db *DB) *SnapshotRepo { return &SnapshotRepo{db: db} }

func (s *SnapshotRepo) Save(ctx context.Context, tx *gorm.DB, runID uuid.UUID, g *engine.GameState) error {
	blob, err := g.Snapshot()
	if err != nil {
		return errors.Wrap(err, "serialize snapshot")
	}
	q := `INSERT INTO snapshots(run_id, state, updated_at) VALUES (?,?,?)
		ON CONFLICT (run_id) DO UPDATE SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at`
	return errors.Wrap(tx.Exec(q, runID, string(blob), time.Now().UTC()).Error, "save snapshot")
}

func (s *SnapshotRepo) Load(ctx context.Context, runID uuid.UUID) (*engine.GameState, error) {
	row := s.db.gorm.WithContext(ctx).Raw(`SELECT state FROM snapshots WHERE run_id = ?`, runID).Row()
	var blob string
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "load snapshot")
	}
	g, err := engine.RestoreSnapshot([]byte(blob))
	if err != nil {
		return nil, errors.Wrap(err, "restore snapshot")
	}
	return g, nil
}

// PersistDay writes one completed day atomically: ledger row, snapshot and
// run bookkeeping, plus the final verdict when the day ended the run.
func PersistDay(ctx context.Context, db *DB, runID uuid.UUID, g *engine.GameState, outcome engine.DayOutcome) error {
	runs := NewRunRepo(db)
	days := NewDayRepo(db)
	snaps := NewSnapshotRepo(db)
	return db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := days.Insert(ctx, tx, runID, outcome.Record); err != nil {
			return err
		}
		if err := snaps.Save(ctx, tx, runID, g); err != nil {
			return err
		}
		if err := runs.Touch(ctx, tx, runID, g.Day); err != nil {
			return err
		}
		if outcome.Ended {
			return runs.Finish(ctx, tx, runID, g.Ending, engine.FinalScore(g, g.Ending))
		}
		return nil
	})
}
