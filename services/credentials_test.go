package services

import (
	"errors"
	"testing"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hashed
}

func seedLoginCustomer(t *testing.T, db *gorm.DB, nationalID, email, password, status string) *models.Customer {
	t.Helper()
	customer := models.Customer{
		Name:       "Carlos Diaz",
		NationalID: nationalID,
		Email:      email,
		Password:   password,
		Status:     status,
	}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func seedLoginEmployee(t *testing.T, db *gorm.DB, positionTitle, nationalID, email, password, status string) *models.Employee {
	t.Helper()
	position := models.Position{Title: positionTitle}
	require.NoError(t, db.Create(&position).Error)

	employee := models.Employee{
		PositionID: position.ID,
		Name:       "Sara Field",
		NationalID: nationalID,
		Email:      email,
		Password:   password,
		Status:     status,
	}
	require.NoError(t, db.Create(&employee).Error)
	return &employee
}

func TestAuthenticateCustomerByNationalID(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", hashOf(t, "secret123"), models.CustomerActive)

	principal, err := NewLoginDispatcher(db).Authenticate("10000001", "secret123")
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, principal.Kind)
	assert.Equal(t, RoleCustomer, principal.Role)
	assert.Equal(t, "10000001", principal.NationalID)
}

func TestAuthenticateCustomerByEmail(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", hashOf(t, "secret123"), models.CustomerActive)

	principal, err := NewLoginDispatcher(db).Authenticate("carlos@ispnet.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, principal.Kind)
}

func TestAuthenticateRejectsWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", hashOf(t, "secret123"), models.CustomerActive)

	_, err := NewLoginDispatcher(db).Authenticate("10000001", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsUnknownIdentifier(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewLoginDispatcher(db).Authenticate("nobody@ispnet.test", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRejectsEmptyInput(t *testing.T) {
	db := setupTestDB(t)

	dispatcher := NewLoginDispatcher(db)
	_, err := dispatcher.Authenticate("", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = dispatcher.Authenticate("   ", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = dispatcher.Authenticate("carlos@ispnet.test", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDisabledCustomerNeverAuthenticates(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", hashOf(t, "secret123"), models.CustomerInactive)

	_, err := NewLoginDispatcher(db).Authenticate("10000001", "secret123")

	var disabled *DisabledAccountError
	require.True(t, errors.As(err, &disabled))
	assert.Equal(t, KindCustomer, disabled.AccountType)
}

func TestDisabledEmployeeStopsDispatch(t *testing.T) {
	db := setupTestDB(t)
	seedLoginEmployee(t, db, "Field Technician", "20000001", "sara@ispnet.test", hashOf(t, "secret123"), models.EmployeeDisabled)

	// The employee store claimed the identifier, so the outcome is final.
	_, err := NewLoginDispatcher(db).Authenticate("sara@ispnet.test", "secret123")

	var disabled *DisabledAccountError
	require.True(t, errors.As(err, &disabled))
	assert.Equal(t, KindEmployee, disabled.AccountType)
}

func TestCustomerStoreWinsOverEmployeeStore(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "shared@ispnet.test", hashOf(t, "customer-pass"), models.CustomerActive)
	seedLoginEmployee(t, db, "Field Technician", "20000001", "shared@ispnet.test", hashOf(t, "employee-pass"), models.EmployeeActive)

	dispatcher := NewLoginDispatcher(db)

	principal, err := dispatcher.Authenticate("shared@ispnet.test", "customer-pass")
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, principal.Kind)

	// The employee password does not work: the first matching store decides.
	_, err = dispatcher.Authenticate("shared@ispnet.test", "employee-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminTitleGrantsAdministratorRole(t *testing.T) {
	db := setupTestDB(t)
	seedLoginEmployee(t, db, "System Administrator", "20000001", "admin@ispnet.test", hashOf(t, "secret123"), models.EmployeeActive)

	principal, err := NewLoginDispatcher(db).Authenticate("admin@ispnet.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdministrator, principal.Role)

	assert.Equal(t, RoleEmployee, EmployeeRole("Field Technician"))
	assert.Equal(t, RoleAdministrator, EmployeeRole("admin"))
}

func TestLegacyPlaintextPasswordUpgradesOnLogin(t *testing.T) {
	db := setupTestDB(t)
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", "legacy-pass", models.CustomerActive)

	principal, err := NewLoginDispatcher(db).Authenticate("10000001", "legacy-pass")
	require.NoError(t, err)
	assert.Equal(t, KindCustomer, principal.Kind)

	var customer models.Customer
	require.NoError(t, db.Where("national_id = ?", "10000001").First(&customer).Error)
	assert.True(t, utils.IsHashed(customer.Password), "stored credential must be hashed after login")
	assert.True(t, utils.CheckPasswordHash("legacy-pass", customer.Password))
}

func TestStoredHashIsNotAcceptedAsPassword(t *testing.T) {
	db := setupTestDB(t)
	hashed := hashOf(t, "secret123")
	seedLoginCustomer(t, db, "10000001", "carlos@ispnet.test", hashed, models.CustomerActive)

	_, err := NewLoginDispatcher(db).Authenticate("10000001", hashed)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIdentityStoreFallback(t *testing.T) {
	db := setupTestDB(t)
	user := models.IdentityUser{
		Username: "backoffice",
		Email:    "backoffice@ispnet.test",
		Password: "secret123",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	principal, err := NewLoginDispatcher(db).Authenticate("backoffice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, KindIdentity, principal.Kind)
	assert.Equal(t, RoleEmployee, principal.Role)

	var refreshed models.IdentityUser
	require.NoError(t, db.Where("username = ?", "backoffice").First(&refreshed).Error)
	assert.NotNil(t, refreshed.LastLogin)
}

func TestIdentityStoreLockoutAndTwoFactor(t *testing.T) {
	db := setupTestDB(t)

	locked := models.IdentityUser{
		Username:  "locked",
		Email:     "locked@ispnet.test",
		Password:  "secret123",
		IsActive:  true,
		LockedOut: true,
	}
	require.NoError(t, db.Create(&locked).Error)

	twoFactor := models.IdentityUser{
		Username:         "cautious",
		Email:            "cautious@ispnet.test",
		Password:         "secret123",
		IsActive:         true,
		TwoFactorEnabled: true,
	}
	require.NoError(t, db.Create(&twoFactor).Error)

	dispatcher := NewLoginDispatcher(db)

	_, err := dispatcher.Authenticate("locked", "secret123")
	assert.ErrorIs(t, err, ErrLockedOut)

	_, err = dispatcher.Authenticate("cautious", "secret123")
	assert.ErrorIs(t, err, ErrTwoFactorRequired)
}

func TestInactiveIdentityUserIsDisabled(t *testing.T) {
	db := setupTestDB(t)
	user := models.IdentityUser{
		Username: "retired",
		Email:    "retired@ispnet.test",
		Password: "secret123",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&models.IdentityUser{}).
		Where("username = ?", "retired").
		Update("is_active", false).Error)

	_, err := NewLoginDispatcher(db).Authenticate("retired", "secret123")

	var disabled *DisabledAccountError
	require.True(t, errors.As(err, &disabled))
	assert.Equal(t, KindIdentity, disabled.AccountType)
}
