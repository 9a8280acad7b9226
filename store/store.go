// Package store 求解记录的 SQLite 存储
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"sea/balance"
	"sea/system"
)

// DB 求解记录数据库
type DB struct {
	conn *sqlx.DB
}

// Run 一次求解
type Run struct {
	ID         string    `db:"id"`
	Model      string    `db:"model"`
	Created    time.Time `db:"created"`
	Bands      int       `db:"bands"`
	Subsystems int       `db:"subsystems"`
	Elapsed    int64     `db:"elapsed_ns"`
}

// Energy 一个子系统在一个频带的模态能量
type Energy struct {
	RunID     string  `db:"run_id"`
	Subsystem string  `db:"subsystem"`
	Band      int     `db:"band"`
	Center    float64 `db:"center"`
	Energy    float64 `db:"energy"`
}

// Open 打开或创建数据库
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("打开数据库: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("初始化数据库: %w", err)
	}
	return db, nil
}

// Close 关闭数据库
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		model TEXT NOT NULL,
		created TIMESTAMP NOT NULL,
		bands INTEGER NOT NULL,
		subsystems INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS energies (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		subsystem TEXT NOT NULL,
		band INTEGER NOT NULL,
		center REAL NOT NULL,
		energy REAL NOT NULL,
		PRIMARY KEY (run_id, subsystem, band)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun 保存一次求解的模态能量，只记录已求解的频带
func (db *DB) SaveRun(ctx context.Context, model string, s *system.System, res *balance.Result) error {
	if res == nil {
		return fmt.Errorf("没有求解结果")
	}
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	run := Run{
		ID:         res.ID.String(),
		Model:      model,
		Created:    time.Now().UTC(),
		Bands:      len(res.Bands),
		Subsystems: len(res.Names),
		Elapsed:    res.Elapsed.Nanoseconds(),
	}
	if _, err := tx.NamedExecContext(ctx, `INSERT INTO runs (id, model, created, bands, subsystems, elapsed_ns)
		VALUES (:id, :model, :created, :bands, :subsystems, :elapsed_ns)`, run); err != nil {
		return fmt.Errorf("保存求解 %s: %w", run.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO energies (run_id, subsystem, band, center, energy)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	centers := s.Frequency().Center
	for i, name := range res.Names {
		for _, f := range res.Bands {
			if _, err := stmt.ExecContext(ctx, run.ID, name, f, centers[f], res.Energy[i][f]); err != nil {
				return fmt.Errorf("保存子系统 %s 频带 %d: %w", name, f, err)
			}
		}
	}
	return tx.Commit()
}

// Runs 全部求解记录，新的在前
func (db *DB) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs,
		"SELECT id, model, created, bands, subsystems, elapsed_ns FROM runs ORDER BY created DESC, id")
	return runs, err
}

// Run 按编号读取求解记录
func (db *DB) Run(ctx context.Context, id uuid.UUID) (*Run, error) {
	var run Run
	err := db.conn.GetContext(ctx, &run,
		"SELECT id, model, created, bands, subsystems, elapsed_ns FROM runs WHERE id = ?", id.String())
	if err != nil {
		return nil, fmt.Errorf("读取求解 %s: %w", id, err)
	}
	return &run, nil
}

// Energies 一次求解的全部模态能量
func (db *DB) Energies(ctx context.Context, id uuid.UUID) ([]Energy, error) {
	var energies []Energy
	err := db.conn.SelectContext(ctx, &energies,
		"SELECT run_id, subsystem, band, center, energy FROM energies WHERE run_id = ? ORDER BY subsystem, band", id.String())
	return energies, err
}

// DeleteRun 删除求解记录
func (db *DB) DeleteRun(ctx context.Context, id uuid.UUID) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, "DELETE FROM energies WHERE run_id = ?", id.String()); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id.String()); err != nil {
		return err
	}
	return tx.Commit()
}
