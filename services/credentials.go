// services/credentials.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"gorm.io/gorm"
)

// Session roles
const (
	RoleCustomer      = "customer"
	RoleEmployee      = "employee"
	RoleAdministrator = "administrator"
)

// Principal kinds (which store matched)
const (
	KindCustomer = "customer"
	KindEmployee = "employee"
	KindIdentity = "identity"
)

var (
	// errNoMatch is internal to the dispatcher: the provider holds no record
	// for the identifier, so the next store gets a turn.
	errNoMatch = errors.New("no matching account")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("account locked out")
	ErrTwoFactorRequired  = errors.New("two-factor authentication required")
)

// DisabledAccountError carries which store flagged the account so the
// handler can report the account type on its disabled-account response.
type DisabledAccountError struct {
	AccountType string
}

func (e *DisabledAccountError) Error() string {
	return fmt.Sprintf("%s account is disabled", e.AccountType)
}

// Principal is the request-scoped identity resolved by a successful login.
type Principal struct {
	Kind       string
	ID         string
	Name       string
	Email      string
	NationalID string
	Role       string
}

// CredentialProvider is one identity store the dispatcher can try.
type CredentialProvider interface {
	Name() string
	TryAuthenticate(identifier, password string) (*Principal, error)
}

// LoginDispatcher tries each identity store in a fixed order: customer table
// (by national ID or email), employee table (same), then the generic
// identity store (by username). The first store holding the identifier
// decides the outcome; later stores are never consulted after a match.
type LoginDispatcher struct {
	providers []CredentialProvider
}

func NewLoginDispatcher(db *gorm.DB) *LoginDispatcher {
	return &LoginDispatcher{
		providers: []CredentialProvider{
			&customerProvider{db: db},
			&employeeProvider{db: db},
			&identityProvider{db: db},
		},
	}
}

func (d *LoginDispatcher) Authenticate(identifier, password string) (*Principal, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	for _, provider := range d.providers {
		principal, err := provider.TryAuthenticate(identifier, password)
		if errors.Is(err, errNoMatch) {
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Printf("login: %s %q signed in via %s store", principal.Role, principal.Name, provider.Name())
		return principal, nil
	}

	return nil, ErrInvalidCredentials
}

// verifyStoredPassword checks a submitted password against a stored
// credential. Bcrypt hashes are compared with bcrypt; anything else is a
// legacy plaintext value compared directly and, on success, upgraded via
// the provided callback. A stored hash submitted verbatim as the password
// is rejected.
func verifyStoredPassword(stored, given string, upgrade func(newHash string) error) (bool, error) {
	if utils.IsHashed(stored) {
		return utils.CheckPasswordHash(given, stored), nil
	}
	if stored == "" || stored != given {
		return false, nil
	}
	hashed, err := utils.HashPassword(given)
	if err != nil {
		return false, err
	}
	if err := upgrade(hashed); err != nil {
		// The login itself succeeded; keep the legacy value until next time.
		log.Printf("login: credential upgrade failed: %v", err)
	}
	return true, nil
}

type customerProvider struct {
	db *gorm.DB
}

func (p *customerProvider) Name() string { return "customer" }

func (p *customerProvider) TryAuthenticate(identifier, password string) (*Principal, error) {
	var customer models.Customer
	err := p.db.Where("national_id = ? OR email = ?", identifier, identifier).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoMatch
	}
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(customer.Status, models.CustomerActive) {
		log.Printf("login: customer %q is disabled", customer.Name)
		return nil, &DisabledAccountError{AccountType: KindCustomer}
	}

	ok, err := verifyStoredPassword(customer.Password, password, func(newHash string) error {
		return p.db.Model(&customer).Update("password", newHash).Error
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		Kind:       KindCustomer,
		ID:         fmt.Sprint(customer.ID),
		Name:       customer.Name,
		Email:      customer.Email,
		NationalID: customer.NationalID,
		Role:       RoleCustomer,
	}, nil
}

type employeeProvider struct {
	db *gorm.DB
}

func (p *employeeProvider) Name() string { return "employee" }

func (p *employeeProvider) TryAuthenticate(identifier, password string) (*Principal, error) {
	var employee models.Employee
	err := p.db.Preload("Position").
		Where("national_id = ? OR email = ?", identifier, identifier).
		First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoMatch
	}
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(employee.Status, models.EmployeeActive) {
		log.Printf("login: employee %q is disabled", employee.Name)
		return nil, &DisabledAccountError{AccountType: KindEmployee}
	}

	ok, err := verifyStoredPassword(employee.Password, password, func(newHash string) error {
		return p.db.Model(&employee).Update("password", newHash).Error
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &Principal{
		Kind:       KindEmployee,
		ID:         fmt.Sprint(employee.ID),
		Name:       employee.Name,
		Email:      employee.Email,
		NationalID: employee.NationalID,
		Role:       EmployeeRole(employee.Position.Title),
	}, nil
}

// EmployeeRole maps a position title to a session role: anything with
// "admin" in the title is an administrator.
func EmployeeRole(positionTitle string) string {
	if strings.Contains(strings.ToLower(positionTitle), "admin") {
		return RoleAdministrator
	}
	return RoleEmployee
}

type identityProvider struct {
	db *gorm.DB
}

func (p *identityProvider) Name() string { return "identity" }

func (p *identityProvider) TryAuthenticate(identifier, password string) (*Principal, error) {
	var user models.IdentityUser
	err := p.db.Where("username = ?", identifier).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNoMatch
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, &DisabledAccountError{AccountType: KindIdentity}
	}
	if user.LockedOut {
		return nil, ErrLockedOut
	}

	ok, err := verifyStoredPassword(user.Password, password, func(newHash string) error {
		return p.db.Model(&user).Update("password", newHash).Error
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		return nil, ErrTwoFactorRequired
	}

	now := time.Now()
	p.db.Model(&user).Update("last_login", &now)

	return &Principal{
		Kind:  KindIdentity,
		ID:    user.ID.String(),
		Name:  user.Username,
		Email: user.Email,
		Role:  RoleEmployee,
	}, nil
}
