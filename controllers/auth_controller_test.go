package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/healthed-zw/backend/middleware"
	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/utils"
)

func newAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	a := NewAuthController(db)
	r.POST("/api/v1/auth/signup", a.Signup)
	r.POST("/api/v1/auth/login", a.Login)
	r.POST("/api/v1/auth/logout", middleware.AuthRequired(), a.Logout)
	r.GET("/api/v1/auth/me", middleware.AuthRequired(), a.Me)
	return r
}

func TestSignupAndLogin(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Student{RegistrationNumber: "R2024001", Name: "Tariro Moyo"}).Error)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024001",
		"username":   "tariro",
		"password":   "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code, data := decodeEnvelope(t, w)
	require.Equal(t, 0, code)
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "tariro", user["username"])
	assert.Equal(t, models.RoleStudent, user["user_type"])
	assert.Equal(t, "Tariro Moyo", user["name"])

	// password must never be stored in the clear
	var stored models.User
	require.NoError(t, db.Where("username = ?", "tariro").First(&stored).Error)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
	assert.True(t, utils.CheckPassword(stored.PasswordHash, "hunter22"))

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "tariro",
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	code, data = decodeEnvelope(t, w)
	require.Equal(t, 0, code)
	assert.NotEmpty(t, data["token"])
	user = data["user"].(map[string]interface{})
	assert.Equal(t, models.RoleStudent, user["user_type"])
}

func TestSignupUnknownRegistrationNumber(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R9999999",
		"username":   "ghost",
		"password":   "secret1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40004, code)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignupConflicts(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Student{RegistrationNumber: "R2024010", Name: "First"}).Error)
	require.NoError(t, db.Create(&models.Student{RegistrationNumber: "R2024011", Name: "Second"}).Error)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024010", "username": "first", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// same username, different roster entry
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024011", "username": "first", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40005, code)

	// fresh username, already claimed registration number
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024010", "username": "second", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ = decodeEnvelope(t, w)
	assert.Equal(t, 40006, code)
}

func TestSignupRejectsNonStudentRole(t *testing.T) {
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024001",
		"username":   "drmoyo",
		"password":   "secret1",
		"user_type":  "healthcare",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40002, code)
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	hash, err := utils.HashPassword("rightpass")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "chipo", PasswordHash: hash, UserType: models.RoleStudent, RegistrationNumber: "R2024020",
	}).Error)
	r := newAuthRouter(db)

	// wrong password and unknown user are indistinguishable to the client
	for _, body := range []gin.H{
		{"username": "chipo", "password": "wrongpass"},
		{"username": "nobody", "password": "rightpass"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", body, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		code, _ := decodeEnvelope(t, w)
		assert.Equal(t, 40110, code)
	}
}

func TestLoginNormalizesLegacyRole(t *testing.T) {
	db := newTestDB(t)
	hash, err := utils.HashPassword("docpass1")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "drnkomo", PasswordHash: hash, UserType: "Healthcare Professional", FullName: "Dr. Nkomo",
	}).Error)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "drnkomo", "password": "docpass1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	user := data["user"].(map[string]interface{})
	assert.Equal(t, models.RoleHealthcare, user["user_type"])
}

func TestMeAndLogout(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Student{RegistrationNumber: "R2024030", Name: "Rudo"}).Error)
	r := newAuthRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"reg_number": "R2024030", "username": "rudo", "password": "secret1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := decodeEnvelope(t, w)
	bearer := map[string]string{"Authorization": "Bearer " + data["token"].(string)}

	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data = decodeEnvelope(t, w)
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "rudo", user["username"])
	assert.Equal(t, "R2024030", user["registration_number"])

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// no token at all is always rejected
	w = doJSON(t, r, http.MethodGet, "/api/v1/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	code, _ := decodeEnvelope(t, w)
	assert.Equal(t, 40101, code)
}
