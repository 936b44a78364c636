package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"power-store/entities"
)

const createActivityTable = `CREATE TABLE IF NOT EXISTS activity_log (
	id         CHAR(36)     NOT NULL PRIMARY KEY,
	at         DATETIME(6)  NOT NULL,
	actor_id   BIGINT       NOT NULL,
	kind       VARCHAR(16)  NOT NULL,
	message    TEXT         NOT NULL,
	INDEX idx_activity_actor (actor_id, at)
)`

const insertActivity = `INSERT INTO activity_log (id, at, actor_id, kind, message) VALUES (?, ?, ?, ?, ?)`

const recentActivity = `SELECT id, at, actor_id, kind, message FROM activity_log ORDER BY at DESC LIMIT ?`

// MySQLActivityLog appends activity entries to the activity_log table.
type MySQLActivityLog struct {
	db *sql.DB
}

// OpenMySQL opens dsn and checks the connection. The DSN needs parseTime=true
// for Recent to scan timestamps.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

func NewMySQLActivityLog(ctx context.Context, db *sql.DB) (*MySQLActivityLog, error) {
	if _, err := db.ExecContext(ctx, createActivityTable); err != nil {
		return nil, fmt.Errorf("create activity_log: %w", err)
	}
	return &MySQLActivityLog{db: db}, nil
}

func (l *MySQLActivityLog) Record(ctx context.Context, a entities.Activity) error {
	_, err := l.db.ExecContext(ctx, insertActivity, a.ID, a.At.UTC(), a.ActorID, string(a.Kind), a.Message)
	if err != nil {
		return fmt.Errorf("insert activity %s: %w", a.ID, err)
	}
	return nil
}

func (l *MySQLActivityLog) Recent(ctx context.Context, limit int) ([]entities.Activity, error) {
	rows, err := l.db.QueryContext(ctx, recentActivity, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []entities.Activity
	for rows.Next() {
		var (
			a    entities.Activity
			kind string
		)
		if err := rows.Scan(&a.ID, &a.At, &a.ActorID, &kind, &a.Message); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind = entities.ActivityKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}
