// services/account_guard.go
package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountGuard runs once per authenticated request and forces a sign-out
// when the session's backing customer or employee record has since been
// disabled. The session outlives the record state (the token stays valid
// for hours), so the guard re-checks the store on every request.
type AccountGuard struct {
	db *gorm.DB
}

func NewAccountGuard(db *gorm.DB) *AccountGuard {
	return &AccountGuard{db: db}
}

func (g *AccountGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetString(utils.CtxName))
		email := g.resolveEmail(c, name)
		// the username claim may itself be a national ID
		nationalID := c.GetString(utils.CtxNationalID)
		if nationalID == "" {
			nationalID = name
		}

		if accountType := g.disabledAccountType(email, nationalID); accountType != "" {
			log.Printf("account guard: forcing sign-out of disabled %s (%s)", accountType, email)
			utils.ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":       "Account disabled",
				"accountType": accountType,
			})
			return
		}

		c.Next()
	}
}

// resolveEmail prefers the identity store's record for the username,
// falling back to the session's email claim.
func (g *AccountGuard) resolveEmail(c *gin.Context, username string) string {
	if username != "" {
		var user models.IdentityUser
		err := g.db.Where("username = ?", username).First(&user).Error
		if err == nil {
			return strings.ToLower(strings.TrimSpace(user.Email))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("account guard: identity lookup failed: %v", err)
		}
	}
	return strings.ToLower(strings.TrimSpace(c.GetString(utils.CtxEmail)))
}

// disabledAccountType returns which account type is disabled, or "".
func (g *AccountGuard) disabledAccountType(email, nationalID string) string {
	if email != "" {
		var employee models.Employee
		err := g.db.Where("LOWER(email) = ?", email).First(&employee).Error
		if err == nil && strings.EqualFold(employee.Status, models.EmployeeDisabled) {
			return KindEmployee
		}
	}

	if email != "" || nationalID != "" {
		var customer models.Customer
		err := g.db.Where("national_id = ? OR LOWER(email) = ?", nationalID, email).First(&customer).Error
		if err == nil && strings.EqualFold(customer.Status, models.CustomerInactive) {
			return KindCustomer
		}
	}

	return ""
}
