// Package snapshotrepo stores the final account states of replay runs in PostgreSQL.
package snapshotrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-petr/payments-engine/internal/domain"
	"github.com/go-petr/payments-engine/pkg/dbpkg"
	"github.com/go-petr/payments-engine/pkg/errorspkg"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account state repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account state RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const insertPrefix = `
INSERT INTO
    account_states (run_id, client, available, held, total, locked)
VALUES
`

// PostgreSQL accepts at most 65535 bind parameters per statement.
const (
	columnsPerRow    = 6
	maxRowsPerInsert = 65535 / columnsPerRow
)

type txBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Save stores states under a newly generated run id.
func (r *RepoPGS) Save(ctx context.Context, states []domain.AccountState) error {
	_, err := r.SaveRun(ctx, uuid.New(), states)
	return err
}

// SaveRun stores states under runID and returns runID.
//
// Rows are inserted in batches of at most maxRowsPerInsert. When the repo
// holds a *sql.DB the batches share one transaction, so a run is stored
// entirely or not at all.
func (r *RepoPGS) SaveRun(ctx context.Context, runID uuid.UUID, states []domain.AccountState) (uuid.UUID, error) {
	l := zerolog.Ctx(ctx)

	if len(states) == 0 {
		return runID, nil
	}

	db := r.db

	var tx *sql.Tx

	if b, ok := r.db.(txBeginner); ok {
		var err error

		tx, err = b.BeginTx(ctx, nil)
		if err != nil {
			l.Error().Err(err).Str("run_id", runID.String()).Send()
			return runID, errorspkg.ErrInternal
		}
		defer func() { _ = tx.Rollback() }()

		db = tx
	}

	for start := 0; start < len(states); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(states))

		if err := insertBatch(ctx, db, runID, states[start:end]); err != nil {
			l.Error().Err(err).Str("run_id", runID.String()).Int("offset", start).Send()

			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
				return runID, fmt.Errorf("run %s already stored: %w", runID, errorspkg.ErrInternal)
			}

			return runID, errorspkg.ErrInternal
		}
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			l.Error().Err(err).Str("run_id", runID.String()).Send()
			return runID, errorspkg.ErrInternal
		}
	}

	l.Info().Str("run_id", runID.String()).Int("accounts", len(states)).Msg("account states stored")

	return runID, nil
}

func insertBatch(ctx context.Context, db dbpkg.SQLInterface, runID uuid.UUID, states []domain.AccountState) error {
	var (
		sb   strings.Builder
		args = make([]interface{}, 0, len(states)*columnsPerRow)
	)

	sb.WriteString(insertPrefix)

	for i, s := range states {
		if i > 0 {
			sb.WriteString(",\n")
		}

		n := i * columnsPerRow
		fmt.Fprintf(&sb, "    ($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)

		args = append(args, runID, int32(s.ClientID), s.Available, s.Held, s.Total, s.Locked)
	}

	_, err := db.ExecContext(ctx, sb.String(), args...)

	return err
}

const listQuery = `
SELECT client, available, held, total, locked FROM account_states
WHERE run_id = $1
ORDER BY client
`

// List returns the states stored for runID ordered by client.
func (r *RepoPGS) List(ctx context.Context, runID uuid.UUID) ([]domain.AccountState, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, runID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AccountState{}

	for rows.Next() {
		var (
			s      domain.AccountState
			client int32
		)

		if err := rows.Scan(
			&client,
			&s.Available,
			&s.Held,
			&s.Total,
			&s.Locked,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		s.ClientID = uint16(client)
		items = append(items, s)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
