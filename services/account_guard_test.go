package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ispnet-backend/models"
	"ispnet-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func guardRouter(db *gorm.DB, claims map[string]string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		for key, value := range claims {
			c.Set(key, value)
		}
	})
	r.Use(NewAccountGuard(db).Middleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestAccountGuardPassesActiveCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := models.Customer{
		Name:       "Carlos Diaz",
		NationalID: "10000001",
		Email:      "carlos@ispnet.test",
		Password:   "irrelevant",
		Status:     models.CustomerActive,
	}
	require.NoError(t, db.Create(&customer).Error)

	r := guardRouter(db, map[string]string{
		utils.CtxName:       "Carlos Diaz",
		utils.CtxEmail:      "carlos@ispnet.test",
		utils.CtxNationalID: "10000001",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccountGuardBlocksDisabledCustomer(t *testing.T) {
	db := setupTestDB(t)
	customer := models.Customer{
		Name:       "Carlos Diaz",
		NationalID: "10000001",
		Email:      "carlos@ispnet.test",
		Password:   "irrelevant",
		Status:     models.CustomerInactive,
	}
	require.NoError(t, db.Create(&customer).Error)

	r := guardRouter(db, map[string]string{
		utils.CtxName:       "Carlos Diaz",
		utils.CtxEmail:      "carlos@ispnet.test",
		utils.CtxNationalID: "10000001",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Account disabled")
	assert.Contains(t, w.Body.String(), KindCustomer)
}

func TestAccountGuardBlocksDisabledEmployeeByEmail(t *testing.T) {
	db := setupTestDB(t)
	position := models.Position{Title: "Field Technician"}
	require.NoError(t, db.Create(&position).Error)
	employee := models.Employee{
		PositionID: position.ID,
		Name:       "Sara Field",
		NationalID: "20000001",
		Email:      "Sara@ispnet.test",
		Password:   "irrelevant",
		Status:     models.EmployeeDisabled,
	}
	require.NoError(t, db.Create(&employee).Error)

	// The email claim differs only in case from the stored record.
	r := guardRouter(db, map[string]string{
		utils.CtxName:  "Sara Field",
		utils.CtxEmail: "sara@ispnet.test",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), KindEmployee)
}

func TestAccountGuardResolvesIdentityUsername(t *testing.T) {
	db := setupTestDB(t)

	user := models.IdentityUser{
		Username: "sfield",
		Email:    "sara@ispnet.test",
		Password: "secret123",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	position := models.Position{Title: "Field Technician"}
	require.NoError(t, db.Create(&position).Error)
	employee := models.Employee{
		PositionID: position.ID,
		Name:       "Sara Field",
		NationalID: "20000001",
		Email:      "sara@ispnet.test",
		Password:   "irrelevant",
		Status:     models.EmployeeDisabled,
	}
	require.NoError(t, db.Create(&employee).Error)

	// Session carries only the identity username; the guard follows it to
	// the employee record through the identity store's email.
	r := guardRouter(db, map[string]string{
		utils.CtxName: "sfield",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), KindEmployee)
}

func TestAccountGuardPassesSessionsWithoutBackingRecord(t *testing.T) {
	db := setupTestDB(t)

	r := guardRouter(db, map[string]string{
		utils.CtxName:  "backoffice",
		utils.CtxEmail: "backoffice@ispnet.test",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
