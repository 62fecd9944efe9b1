package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	se "github.com/ketrez/steward/pkg/errors"
	"github.com/ketrez/steward/pkg/structs"
)

const (
	tableEvents  = "task_events"
	tableDetails = "task_details"

	// postgres unique_violation; a duplicate (task_id, seq) means someone
	// appended ahead of us
	pgUniqueViolation = "23505"
)

// Postgres is a steward database implementation that uses postgres.
type Postgres struct {
	opts *Options
	pool *pgxpool.Pool
}

// NewPostgres returns a new Postgres database connection.
func NewPostgres(opts *Options) (*Postgres, error) {
	opts.SetDefaults()
	opts.URL = strings.Replace(opts.URL, "$"+opts.UsernameEnvVar, os.Getenv(opts.UsernameEnvVar), 1)
	opts.URL = strings.Replace(opts.URL, "$"+opts.PasswordEnvVar, os.Getenv(opts.PasswordEnvVar), 1)
	pool, err := pgxpool.New(context.Background(), opts.URL)
	return &Postgres{pool: pool, opts: opts}, err
}

// Close shuts down the database connection.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// AppendEvents appends the batch to the task's history in a single transaction.
// The expected version is checked inside the transaction and additionally
// enforced by the (task_id, seq) primary key, so two racing appenders cannot
// both succeed.
func (p *Postgres) AppendEvents(ctx context.Context, taskID string, expectedVersion int, events []structs.Event) error {
	if len(events) == 0 {
		return nil
	}

	// build the insert before opening a transaction
	vals, args := []string{}, []interface{}{}
	for i, e := range events {
		kind, payload, err := structs.EncodeEvent(e)
		if err != nil {
			return err
		}
		n := len(args)
		vals = append(vals, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5))
		args = append(args, taskID, expectedVersion+i+1, string(kind), payload, e.Time())
	}
	qstr := fmt.Sprintf(`INSERT INTO %s (task_id, seq, kind, payload, created_at) VALUES %s;`, tableEvents, strings.Join(vals, ","))

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}

	var stored int
	err = tx.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE task_id=$1;`, tableEvents), taskID).Scan(&stored)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}
	if stored != expectedVersion {
		tx.Rollback(ctx)
		return fmt.Errorf("%w expected version %d, stored %d", se.ErrConcurrentWrite, expectedVersion, stored)
	}

	_, err = tx.Exec(ctx, qstr, args...)
	if err != nil {
		tx.Rollback(ctx)
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == pgUniqueViolation {
			return fmt.Errorf("%w %v", se.ErrConcurrentWrite, err)
		}
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		tx.Rollback(ctx)
	}
	return err
}

// History returns the task's events in append order.
func (p *Postgres) History(ctx context.Context, taskID string) (structs.History, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		fmt.Sprintf(`SELECT kind, payload FROM %s WHERE task_id=$1 ORDER BY seq ASC;`, tableEvents), taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := structs.History{}
	for rows.Next() {
		var kind string
		var payload []byte
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, err
		}
		evt, err := structs.DecodeEvent(structs.EventKind(kind), payload)
		if err != nil {
			return nil, err
		}
		history = append(history, evt)
	}
	return history, rows.Err()
}

// UpsertDetails writes the snapshot row for one task. A row that already
// reached a final status is never updated; histories only append, so a write
// arriving at a final row is a fold of some prefix that lost the race.
func (p *Postgres) UpsertDetails(ctx context.Context, d *structs.TaskExecutionDetails) error {
	qstr := fmt.Sprintf(`INSERT INTO %s
	(task_id, task_type, status, submitted_node, started_node, submitted_at, started_at, completed_at, cancelled_at, result, message, info, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (task_id) DO UPDATE SET
	status=EXCLUDED.status, started_node=EXCLUDED.started_node, started_at=EXCLUDED.started_at,
	completed_at=EXCLUDED.completed_at, cancelled_at=EXCLUDED.cancelled_at, result=EXCLUDED.result,
	message=EXCLUDED.message, info=EXCLUDED.info, updated_at=EXCLUDED.updated_at
	WHERE %s.status NOT IN ('%s', '%s', '%s');`,
		tableDetails, tableDetails, structs.COMPLETED, structs.FAILED, structs.CANCELLED)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, qstr,
		d.TaskID, d.TaskType, string(d.Status), d.SubmittedNode, d.StartedNode,
		d.SubmittedAt, d.StartedAt, d.CompletedAt, d.CancelledAt,
		d.Result, d.Message, d.Info, timeNow(),
	)
	return err
}

const detailsColumns = `task_id, task_type, status, submitted_node, started_node, submitted_at, started_at, completed_at, cancelled_at, result, message, info`

func scanDetails(scanner interface{ Scan(dest ...any) error }, d *structs.TaskExecutionDetails) error {
	return scanner.Scan(
		&d.TaskID, &d.TaskType, &d.Status, &d.SubmittedNode, &d.StartedNode,
		&d.SubmittedAt, &d.StartedAt, &d.CompletedAt, &d.CancelledAt,
		&d.Result, &d.Message, &d.Info,
	)
}

// Details returns the snapshot for one task.
func (p *Postgres) Details(ctx context.Context, taskID string) (*structs.TaskExecutionDetails, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE task_id=$1;`, detailsColumns, tableDetails), taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("%w %s", se.ErrNotFound, taskID)
	}
	d := &structs.TaskExecutionDetails{}
	if err := scanDetails(rows, d); err != nil {
		return nil, err
	}
	return d, rows.Err()
}

// ListDetails returns snapshots matching the given query, oldest submission
// first (deterministic for callers that page through).
func (p *Postgres) ListDetails(ctx context.Context, q *structs.Query) ([]*structs.TaskExecutionDetails, error) {
	where, args := toSqlQuery(map[string][]string{
		"task_id": q.TaskIDs,
		"status":  statusToStrings(q.Statuses),
	})
	args = append(args, q.Limit, q.Offset)

	qstr := fmt.Sprintf(`SELECT %s FROM %s %s ORDER BY submitted_at ASC, task_id ASC LIMIT $%d OFFSET $%d;`,
		detailsColumns, tableDetails, where, len(args)-1, len(args),
	)

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, qstr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*structs.TaskExecutionDetails{}
	for rows.Next() {
		d := &structs.TaskExecutionDetails{}
		if err := scanDetails(rows, d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// toSqlQuery converts query data into a SQL where clause & args
func toSqlQuery(in map[string][]string) (string, []interface{}) {
	and := []string{}
	args := []interface{}{}
	for k, v := range in {
		if len(v) == 0 {
			continue
		}
		s, a := toSqlIn(len(args)+1, k, v)
		and = append(and, s)
		args = append(args, a...)
	}
	if len(and) == 0 {
		return "", args
	}
	return fmt.Sprintf("WHERE %s", strings.Join(and, " AND ")), args
}

// toSqlIn converts a list of strings into a SQL IN clause
func toSqlIn(offset int, field string, args []string) (string, []interface{}) {
	vals := []string{}
	ifargs := []interface{}{}
	for i, a := range args {
		vals = append(vals, fmt.Sprintf("$%d", i+offset))
		ifargs = append(ifargs, a)
	}
	return fmt.Sprintf("%s IN (%s)", field, strings.Join(vals, ", ")), ifargs
}

// statusToStrings converts a list of statuses into a list of strings
func statusToStrings(in []structs.Status) []string {
	if len(in) == 0 {
		return nil
	}
	out := []string{}
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

// timeNow returns the current time in unix seconds
func timeNow() int64 {
	return time.Now().Unix()
}
