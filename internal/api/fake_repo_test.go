package api

import (
	"context"
	"strings"
	"sync"

	"kodbank/internal/entity"
	"kodbank/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ model.Repository = (*fakeRepository)(nil)

// fakeRepository is an in-memory model.Repository for handler tests.
// It reports the same sentinel errors GORM would after translation.
type fakeRepository struct {
	mu     sync.Mutex
	users  map[string]*entity.DbUser      // keyed by uid
	tokens map[string]*entity.DbUserToken // keyed by tid
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:  make(map[string]*entity.DbUser),
		tokens: make(map[string]*entity.DbUserToken),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *entity.DbUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UID == "" {
		user.UID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = entity.UserRoleCustomer
	}
	clone := *user
	f.users[user.UID] = &clone
	return nil
}

func (f *fakeRepository) GetUserByUsername(ctx context.Context, username string) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetUserByUID(ctx context.Context, uid string) (*entity.DbUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username || strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) CreateUserToken(ctx context.Context, token *entity.DbUserToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token.TID == "" {
		token.TID = uuid.NewString()
	}
	clone := *token
	f.tokens[token.TID] = &clone
	return nil
}

func (f *fakeRepository) GetUserTokenByToken(ctx context.Context, token string) (*entity.DbUserToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.tokens {
		if record.Token == token {
			clone := *record
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) DeleteUserTokenByToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for tid, record := range f.tokens {
		if record.Token == token {
			delete(f.tokens, tid)
		}
	}
	return nil
}

func (f *fakeRepository) DeleteUserTokenByTID(ctx context.Context, tid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tid)
	return nil
}

func (f *fakeRepository) tokenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}
