package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, username, password_hash, name, email, role, is_active, created_at, last_login`

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL.
type AccountRepo struct {
	pool *pgxpool.Pool
}

// NewAccountRepository construye el adaptador de persistencia para cuentas.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// Save inserta o reemplaza completo por ID. Las violaciones de los
// constraints únicos de username/email se traducen al error de duplicado
// del dominio con el campo en conflicto.
func (r *AccountRepo) Save(account *entity.Account) error {
	query := `
		INSERT INTO accounts (id, username, password_hash, name, email, role, is_active, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			role = EXCLUDED.role,
			is_active = EXCLUDED.is_active,
			last_login = EXCLUDED.last_login`
	_, err := r.pool.Exec(context.Background(), query,
		account.ID, account.Username, account.PasswordHash, account.Name, account.Email,
		string(account.Role), account.IsActive, account.CreatedAt, account.LastLogin,
	)
	if err != nil {
		switch constraint := uniqueViolation(err); {
		case strings.Contains(constraint, "username"):
			return domain.Duplicatef("User already exists with username: '%s'", account.Username)
		case strings.Contains(constraint, "email"):
			return domain.Duplicatef("User already exists with email: '%s'", account.Email)
		}
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	return r.queryOne(`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByUsername obtiene una cuenta por username (exacto).
func (r *AccountRepo) GetByUsername(username string) (*entity.Account, error) {
	return r.queryOne(`SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)
}

// GetByEmail obtiene una cuenta por email.
func (r *AccountRepo) GetByEmail(email string) (*entity.Account, error) {
	return r.queryOne(`SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
}

// ExistsByUsername indica si hay una cuenta con ese username.
func (r *AccountRepo) ExistsByUsername(username string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username)
}

// ExistsByEmail indica si hay una cuenta con ese email.
func (r *AccountRepo) ExistsByEmail(email string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email)
}

// Delete elimina una cuenta por ID.
func (r *AccountRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// ListAll devuelve todas las cuentas ordenadas por created_at descendente.
func (r *AccountRepo) ListAll() ([]*entity.Account, error) {
	return r.queryMany(`SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC`)
}

// ListByRole devuelve las cuentas con el rol dado.
func (r *AccountRepo) ListByRole(role entity.Role) ([]*entity.Account, error) {
	return r.queryMany(`SELECT `+accountColumns+` FROM accounts WHERE role = $1 ORDER BY created_at DESC`, string(role))
}

// CountByRole cuenta las cuentas con el rol dado.
func (r *AccountRepo) CountByRole(role entity.Role) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM accounts WHERE role = $1`, string(role)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts by role: %w", err)
	}
	return count, nil
}

// Count cuenta todas las cuentas.
func (r *AccountRepo) Count() (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(), `SELECT COUNT(*) FROM accounts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

// Search busca por substring case-insensitive sobre name y username.
func (r *AccountRepo) Search(query string) ([]*entity.Account, error) {
	sql := `SELECT ` + accountColumns + ` FROM accounts
		WHERE name ILIKE '%' || $1 || '%' OR username ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC`
	return r.queryMany(sql, query)
}

func (r *AccountRepo) queryOne(query string, args ...any) (*entity.Account, error) {
	var a entity.Account
	var role string
	err := r.pool.QueryRow(context.Background(), query, args...).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &role,
		&a.IsActive, &a.CreatedAt, &a.LastLogin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	a.Role = entity.Role(role)
	return &a, nil
}

func (r *AccountRepo) queryMany(query string, args ...any) ([]*entity.Account, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		var role string
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &role,
			&a.IsActive, &a.CreatedAt, &a.LastLogin); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		a.Role = entity.Role(role)
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AccountRepo) exists(query string, arg string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(context.Background(), query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists account: %w", err)
	}
	return exists, nil
}
