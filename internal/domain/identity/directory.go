package identity

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/IT-Nick/testportal/internal/domain/model"
)

// MockPassword пароль всех демонстрационных пользователей
const MockPassword = "password"

type account struct {
	user model.User
	hash []byte
}

// Directory справочник учетных записей с bcrypt-хешами паролей
type Directory struct {
	accounts map[string]account
}

// NewDirectory создает пустой справочник
func NewDirectory() *Directory {
	return &Directory{accounts: make(map[string]account)}
}

// Add добавляет пользователя, пароль хешируется с cost
func (d *Directory) Add(user model.User, password string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return errors.Wrapf(err, "failed to hash password for %s", user.Email)
	}
	d.accounts[normalize(user.Email)] = account{user: user, hash: hash}
	return nil
}

// Authenticate проверяет почту, пароль и роль
func (d *Directory) Authenticate(email, password string, role model.Role) (model.User, bool) {
	acc, ok := d.accounts[normalize(email)]
	if !ok || acc.user.Role != role {
		return model.User{}, false
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return model.User{}, false
	}
	return acc.user, true
}

// MockUsers демонстрационные пользователи портала
func MockUsers() []model.User {
	return []model.User{
		{ID: "t1", Name: "Professor Smith", Email: "teacher@example.com", Role: model.RoleTeacher},
		{ID: "s1", Name: "John Doe", Email: "student@example.com", Role: model.RoleStudent},
	}
}

// DefaultDirectory справочник с демонстрационными пользователями
func DefaultDirectory(cost int) (*Directory, error) {
	d := NewDirectory()
	for _, u := range MockUsers() {
		if err := d.Add(u, MockPassword, cost); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName имя демонстрационного пользователя по id, иначе сам id
func DisplayName(userID string) string {
	for _, u := range MockUsers() {
		if u.ID == userID {
			return u.Name
		}
	}
	return userID
}
