package stores

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/jaylenwa/goblog/models"
)

// IdentityStore persists user accounts. Accounts are never updated or
// deleted once created.
type IdentityStore interface {
	CreateUser(email, passwordHash, name string) (uint, error)
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

// GormIdentityStore is the MySQL backed IdentityStore.
type GormIdentityStore struct {
	db *gorm.DB
}

// NewGormIdentityStore wraps a gorm connection as an IdentityStore.
func NewGormIdentityStore(db *gorm.DB) *GormIdentityStore {
	return &GormIdentityStore{db: db}
}

func (s *GormIdentityStore) CreateUser(email, passwordHash, name string) (uint, error) {
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *GormIdentityStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormIdentityStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gomysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
