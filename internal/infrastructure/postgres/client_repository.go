package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/financebi-api/internal/domain"
	"github.com/jhoicas/financebi-api/internal/domain/entity"
	"github.com/jhoicas/financebi-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, company, email, phone, status, total_balance, overdue_amount,
	days_overdue, history, last_update`

// ClientRepo snapshot de clientes en PostgreSQL. El orden de inserción se guarda en position.
type ClientRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewClientRepository construye el adaptador.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool, tx: NewTxRunner(pool)}
}

// List devuelve todos los clientes en orden de inserción.
func (r *ClientRepo) List(ctx context.Context) ([]entity.Client, error) {
	return listClients(ctx, r.pool)
}

// GetByID obtiene un cliente por ID. Devuelve nil, nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// ReplaceAll sustituye el snapshot completo en una sola transacción.
func (r *ClientRepo) ReplaceAll(ctx context.Context, clients []entity.Client) error {
	if err := entity.ValidateAll(clients); err != nil {
		return err
	}

	return r.tx.Run(ctx, func(q Querier) error {
		return replaceClients(ctx, q, clients)
	})
}

func listClients(ctx context.Context, q Querier) ([]entity.Client, error) {
	rows, err := q.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	// Lo que viene de la base también pasa por el invariante de mora.
	if err := entity.ValidateAll(list); err != nil {
		return nil, err
	}
	return list, nil
}

func replaceClients(ctx context.Context, q Querier, clients []entity.Client) error {
	if _, err := q.Exec(ctx, `DELETE FROM clients`); err != nil {
		return fmt.Errorf("delete clients: %w", err)
	}

	batch := &pgx.Batch{}
	for i, c := range clients {
		history, err := json.Marshal(historyOrEmpty(c.History))
		if err != nil {
			return fmt.Errorf("marshal history %s: %w", c.ID, err)
		}
		batch.Queue(`
			INSERT INTO clients (id, position, name, company, email, phone, status, total_balance,
				overdue_amount, days_overdue, history, last_update)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			c.ID, i, c.Name, c.Company, c.Email, c.Phone, string(c.Status), c.TotalBalance,
			c.OverdueAmount, c.DaysOverdue, history, c.LastUpdate,
		)
	}

	br := q.SendBatch(ctx, batch)
	for range clients {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: id duplicado", domain.ErrInvalidClient)
			}
			return fmt.Errorf("insert client: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("insert clients: %w", err)
	}
	return nil
}

func scanClient(row pgx.Row) (entity.Client, error) {
	var (
		c       entity.Client
		status  string
		history []byte
	)
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &status,
		&c.TotalBalance, &c.OverdueAmount, &c.DaysOverdue, &history, &c.LastUpdate)
	if err != nil {
		return entity.Client{}, err
	}
	c.Status = entity.ClientStatus(status)
	if len(history) > 0 {
		if err := json.Unmarshal(history, &c.History); err != nil {
			return entity.Client{}, fmt.Errorf("history de %s: %w", c.ID, err)
		}
	}
	return c, nil
}

func historyOrEmpty(h []entity.PaymentRecord) []entity.PaymentRecord {
	if h == nil {
		return []entity.PaymentRecord{}
	}
	return h
}
