package messages

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/webchat-dev/webchat/internal/dbx"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, senderID int64, content string) (*Message, error) {

	m := &Message{SenderID: senderID, Content: content}

	// Insert and sender lookup run in one transaction so the returned
	// message always carries the display name the row was written under.
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		insert :=
			`INSERT INTO messages (sender_id, content)
			 VALUES ($1, $2)
			 RETURNING id, timestamp
			 `

		if err := tx.QueryRowContext(ctx, insert, senderID, content).Scan(&m.ID, &m.Timestamp); err != nil {
			return err
		}

		lookup := `SELECT username FROM users WHERE id = $1`

		return tx.QueryRowContext(ctx, lookup, senderID).Scan(&m.SenderName)
	})

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return m, nil
}

func (r *PostgresRepository) ListAfter(ctx context.Context, afterID int64) ([]Message, error) {

	query :=
		`SELECT m.id, m.sender_id, u.username, m.content, m.timestamp
		 FROM messages m
		 JOIN users u ON m.sender_id = u.id
		 WHERE m.id > $1
		 ORDER BY m.timestamp ASC, m.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, afterID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	var result []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.SenderName, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, senderID int64) error {

	query := `DELETE FROM messages WHERE id = $1 AND sender_id = $2`

	// Rows affected is deliberately not checked: deleting a nonexistent or
	// foreign message behaves the same as deleting an owned one.
	if _, err := r.db.ExecContext(ctx, query, id, senderID); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}
