package auth

import (
	"fmt"

	"github.com/cx-tal-miterani/scenic-airways/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Account is one accepted mock login
type Account struct {
	ID       string
	Username string
	Email    string
	Role     models.Role
	// AnyPassword accepts every password for this username.
	AnyPassword  bool
	passwordHash []byte
}

// Directory is the fixed table of mock accounts Login checks against
type Directory struct {
	accounts map[string]Account
}

// AccountSpec describes an account before its password is hashed
type AccountSpec struct {
	Account
	Password string
}

// NewDirectory hashes each account password with bcrypt at the given cost
func NewDirectory(cost int, specs ...AccountSpec) (*Directory, error) {
	d := &Directory{accounts: make(map[string]Account, len(specs))}
	for _, s := range specs {
		acct := s.Account
		if !acct.AnyPassword {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password for %s: %w", acct.Username, err)
			}
			acct.passwordHash = hash
		}
		d.accounts[acct.Username] = acct
	}
	return d, nil
}

// NewMockDirectory returns the demo accounts: trilogy is the admin, user logs in with any password
func NewMockDirectory(cost int) (*Directory, error) {
	return NewDirectory(cost,
		AccountSpec{
			Account: Account{
				ID:       "admin-1",
				Username: "trilogy",
				Email:    "admin@flights.com",
				Role:     models.RoleAdmin,
			},
			Password: "admin@flights",
		},
		AccountSpec{
			Account: Account{
				ID:          "user-1",
				Username:    "user",
				Email:       "user@flights.com",
				Role:        models.RoleUser,
				AnyPassword: true,
			},
		},
	)
}

// Authenticate returns the account matching the username/password pair
func (d *Directory) Authenticate(username, password string) (Account, error) {
	acct, ok := d.accounts[username]
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	if acct.AnyPassword {
		return acct, nil
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}
