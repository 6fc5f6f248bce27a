package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/rbac-api/internal/domain"
	"github.com/jhoicas/rbac-api/internal/domain/entity"
	"github.com/jhoicas/rbac-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación en memoria del puerto AccountRepository.
// Se usa en tests y en modo demo sin base de datos. Como el adaptador de
// PostgreSQL, impone la unicidad de username/email en la escritura.
type AccountRepo struct {
	mu       sync.RWMutex
	accounts map[string]*record
	seq      int64
}

// record guarda la cuenta junto con un secuencial de inserción para
// desempatar el orden cuando dos created_at coinciden.
type record struct {
	account entity.Account
	seq     int64
}

// NewAccountRepository construye el repositorio en memoria vacío.
func NewAccountRepository() *AccountRepo {
	return &AccountRepo{accounts: make(map[string]*record)}
}

// Save inserta o reemplaza completo por ID, rechazando colisiones de
// username/email contra otras cuentas.
func (r *AccountRepo) Save(account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.accounts {
		if id == account.ID {
			continue
		}
		if rec.account.Username == account.Username {
			return domain.Duplicatef("User already exists with username: '%s'", account.Username)
		}
		if rec.account.Email == account.Email {
			return domain.Duplicatef("User already exists with email: '%s'", account.Email)
		}
	}

	seq := r.seq
	if existing, ok := r.accounts[account.ID]; ok {
		seq = existing.seq
	} else {
		r.seq++
	}
	copied := *account
	r.accounts[account.ID] = &record{account: copied, seq: seq}
	return nil
}

// GetByID obtiene una cuenta por ID; (nil, nil) si no existe.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.accounts[id]; ok {
		copied := rec.account
		return &copied, nil
	}
	return nil, nil
}

// GetByUsername obtiene una cuenta por username exacto.
func (r *AccountRepo) GetByUsername(username string) (*entity.Account, error) {
	return r.findFirst(func(a *entity.Account) bool { return a.Username == username })
}

// GetByEmail obtiene una cuenta por email.
func (r *AccountRepo) GetByEmail(email string) (*entity.Account, error) {
	return r.findFirst(func(a *entity.Account) bool { return a.Email == email })
}

// ExistsByUsername indica si hay una cuenta con ese username.
func (r *AccountRepo) ExistsByUsername(username string) (bool, error) {
	a, err := r.GetByUsername(username)
	return a != nil, err
}

// ExistsByEmail indica si hay una cuenta con ese email.
func (r *AccountRepo) ExistsByEmail(email string) (bool, error) {
	a, err := r.GetByEmail(email)
	return a != nil, err
}

// Delete elimina una cuenta por ID (no-op si no existe).
func (r *AccountRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

// ListAll devuelve todas las cuentas ordenadas por created_at descendente.
func (r *AccountRepo) ListAll() ([]*entity.Account, error) {
	return r.collect(func(a *entity.Account) bool { return true })
}

// ListByRole devuelve las cuentas con el rol dado.
func (r *AccountRepo) ListByRole(role entity.Role) ([]*entity.Account, error) {
	return r.collect(func(a *entity.Account) bool { return a.Role == role })
}

// CountByRole cuenta las cuentas con el rol dado.
func (r *AccountRepo) CountByRole(role entity.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, rec := range r.accounts {
		if rec.account.Role == role {
			count++
		}
	}
	return count, nil
}

// Count cuenta todas las cuentas.
func (r *AccountRepo) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.accounts)), nil
}

// Search busca por substring case-insensitive sobre name y username.
func (r *AccountRepo) Search(query string) ([]*entity.Account, error) {
	q := strings.ToLower(query)
	return r.collect(func(a *entity.Account) bool {
		return strings.Contains(strings.ToLower(a.Name), q) ||
			strings.Contains(strings.ToLower(a.Username), q)
	})
}

func (r *AccountRepo) findFirst(match func(*entity.Account) bool) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.accounts {
		if match(&rec.account) {
			copied := rec.account
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AccountRepo) collect(match func(*entity.Account) bool) ([]*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var recs []*record
	for _, rec := range r.accounts {
		if match(&rec.account) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.account.CreatedAt.Equal(b.account.CreatedAt) {
			return a.account.CreatedAt.After(b.account.CreatedAt)
		}
		return a.seq > b.seq
	})
	out := make([]*entity.Account, 0, len(recs))
	for _, rec := range recs {
		copied := rec.account
		out = append(out, &copied)
	}
	return out, nil
}
