package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Tool is one entry in a user's tool library.
type Tool struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	DiameterMM float64 `json:"diameter_mm"`
	Flutes     int     `json:"flutes"`
	StickoutMM float64 `json:"stickout_mm"`
	Coating    string  `json:"coating"`
	Notes      string  `json:"notes"`
}

// Setup is a named snapshot of calculator inputs, stored as the JSON
// request body so the schema does not chase the calculator fields.
type Setup struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Request json.RawMessage `json:"request"`
	Created time.Time       `json:"created"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	CreateTool(ctx context.Context, userID int, t Tool) (int, error)
	ListTools(ctx context.Context, userID int) ([]Tool, error)
	DeleteTool(ctx context.Context, userID, toolID int) error

	CreateSetup(ctx context.Context, userID int, name string, request []byte) (int, error)
	ListSetups(ctx context.Context, userID int) ([]Setup, error)
	GetSetup(ctx context.Context, userID, setupID int) (Setup, error)
	DeleteSetup(ctx context.Context, userID, setupID int) error
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) CreateTool(ctx context.Context, userID int, t Tool) (int, error) {
	var id int
	query := `INSERT INTO tools (user_id, name, diameter_mm, flutes, stickout_mm, coating, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, userID, t.Name, t.DiameterMM, t.Flutes, t.StickoutMM, t.Coating, t.Notes).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListTools(ctx context.Context, userID int) ([]Tool, error) {
	query := `SELECT id, name, diameter_mm, flutes, stickout_mm, coating, notes
		FROM tools WHERE user_id=$1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []Tool
	for rows.Next() {
		var t Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.DiameterMM, &t.Flutes, &t.StickoutMM, &t.Coating, &t.Notes); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func (r *PostgresUserRepository) DeleteTool(ctx context.Context, userID, toolID int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tools WHERE id=$1 AND user_id=$2", toolID, userID)
	return err
}

func (r *PostgresUserRepository) CreateSetup(ctx context.Context, userID int, name string, request []byte) (int, error) {
	var id int
	query := "INSERT INTO setups (user_id, name, request) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, request).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) ListSetups(ctx context.Context, userID int) ([]Setup, error) {
	query := "SELECT id, name, request, created_at FROM setups WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var setups []Setup
	for rows.Next() {
		var s Setup
		if err := rows.Scan(&s.ID, &s.Name, &s.Request, &s.Created); err != nil {
			return nil, err
		}
		setups = append(setups, s)
	}
	return setups, rows.Err()
}

func (r *PostgresUserRepository) GetSetup(ctx context.Context, userID, setupID int) (Setup, error) {
	var s Setup
	query := "SELECT id, name, request, created_at FROM setups WHERE id=$1 AND user_id=$2"
	err := r.db.QueryRowContext(ctx, query, setupID, userID).Scan(&s.ID, &s.Name, &s.Request, &s.Created)
	return s, err
}

func (r *PostgresUserRepository) DeleteSetup(ctx context.Context, userID, setupID int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM setups WHERE id=$1 AND user_id=$2", setupID, userID)
	return err
}
