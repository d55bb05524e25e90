// Package memory is an in-process storage engine implementing the
// repository interfaces. It backs DB_DRIVER=memory and the test suites.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"staffdesk/internal/adapters/persistence/models"
	"staffdesk/internal/adapters/persistence/repositories"
)

// Store holds every table in maps guarded by a single lock
type Store struct {
	mu sync.RWMutex

	users     map[uint]models.User
	tokens    map[uint]models.PersonalAccessToken
	employees map[uint]models.Employee

	nextUserID     uint
	nextTokenID    uint
	nextEmployeeID uint

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		users:     make(map[uint]models.User),
		tokens:    make(map[uint]models.PersonalAccessToken),
		employees: make(map[uint]models.Employee),
		now:       time.Now,
	}
}

// Users returns the user repository view of the store
func (s *Store) Users() repositories.UserRepository {
	return &userRepository{s: s}
}

// Tokens returns the token repository view of the store
func (s *Store) Tokens() repositories.TokenRepository {
	return &tokenRepository{s: s}
}

// Employees returns the employee repository view of the store
func (s *Store) Employees() repositories.EmployeeRepository {
	return &employeeRepository{s: s}
}

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicateEntry
		}
	}

	r.s.nextUserID++
	now := r.s.now()
	user.ID = r.s.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

type tokenRepository struct {
	s *Store
}

func (r *tokenRepository) Create(ctx context.Context, token *models.PersonalAccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[token.UserID]; !ok {
		return repositories.ErrNotFound
	}
	for _, t := range r.s.tokens {
		if t.TokenHash == token.TokenHash {
			return repositories.ErrDuplicateEntry
		}
	}

	r.s.nextTokenID++
	token.ID = r.s.nextTokenID
	token.CreatedAt = r.s.now()
	r.s.tokens[token.ID] = *token
	return nil
}

func (r *tokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.PersonalAccessToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tokens {
		if t.TokenHash == tokenHash {
			return &t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *tokenRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tokens[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.tokens, id)
	return nil
}

type employeeRepository struct {
	s *Store
}

func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.employees[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTaken(employee.Email, 0) {
		return repositories.ErrDuplicateEntry
	}

	r.s.nextEmployeeID++
	now := r.s.now()
	employee.ID = r.s.nextEmployeeID
	employee.CreatedAt = now
	employee.UpdatedAt = now
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.employees[employee.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	if r.s.emailTaken(employee.Email, employee.ID) {
		return repositories.ErrDuplicateEntry
	}

	employee.CreatedAt = current.CreatedAt
	employee.UpdatedAt = r.s.now()
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.employees, id)
	return nil
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.emailTaken(email, excludeID), nil
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.employees)), nil
}

// emailTaken must be called with the lock held
func (s *Store) emailTaken(email string, excludeID uint) bool {
	for id, e := range s.employees {
		if id != excludeID && e.Email == email {
			return true
		}
	}
	return false
}
