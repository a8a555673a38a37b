package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthed-zw/backend/models"
	"github.com/healthed-zw/backend/utils"
)

// AuthController handles signup, login, logout and profile lookup.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type authUserPayload struct {
	Username string `json:"username"`
	UserType string `json:"user_type"`
	Name     string `json:"name"`
}

// Signup registers a student account. Healthcare professionals are
// provisioned directly in the users table and cannot sign up here. The
// registration number must exist in the pre-seeded student roster and must
// not have been claimed already.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		RegNumber string `json:"reg_number" binding:"required"`
		Username  string `json:"username" binding:"required,min=3,max=64"`
		Password  string `json:"password" binding:"required,min=6"`
		UserType  string `json:"user_type"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	if req.UserType != "" && req.UserType != models.RoleStudent {
		utils.Error(ctx, http.StatusBadRequest, 40002, "only students can sign up; healthcare professionals should login with their assigned credentials")
		return
	}

	username := strings.TrimSpace(req.Username)
	regNumber := strings.TrimSpace(req.RegNumber)
	if username == "" || regNumber == "" {
		utils.Error(ctx, http.StatusBadRequest, 40003, "username and registration number cannot be empty")
		return
	}

	var student models.Student
	if err := a.db.Where("registration_number = ?", regNumber).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusBadRequest, 40004, "registration number not found, please contact administration if you believe this is an error")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to validate registration number")
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, 40005, "username already exists, please choose a different username")
		return
	}
	if err := a.db.Where("registration_number = ?", regNumber).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusBadRequest, 40006, "this registration number is already registered, please login instead")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to create user account")
		return
	}

	fullName := student.Name
	if fullName == "" {
		fullName = username
	}
	user := models.User{
		Username:           username,
		PasswordHash:       hash,
		UserType:           models.RoleStudent,
		RegistrationNumber: regNumber,
		FullName:           fullName,
	}

	if err := a.db.Create(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user account")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, models.RoleStudent, tokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user": authUserPayload{
			Username: user.Username,
			UserType: models.RoleStudent,
			Name:     user.FullName,
		},
	})
}

// Login authenticates a user and issues a session token. Role spellings
// found in legacy rows are normalized before they leave the API.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "invalid username or password")
		return
	}

	role := models.NormalizeRole(user.UserType)
	token, err := utils.GenerateToken(user.ID, user.Username, role, tokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to issue token")
		return
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}
	utils.Success(ctx, gin.H{
		"token": token,
		"user": authUserPayload{
			Username: user.Username,
			UserType: role,
			Name:     name,
		},
	})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusBadRequest, 40015, "missing bearer token")
		return
	}
	tokenString := strings.TrimSpace(parts[1])

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "invalid token")
		return
	}

	utils.BlacklistToken(tokenString, claims.ExpiresAt.Time)
	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"user": gin.H{
			"username":            user.Username,
			"user_type":           models.NormalizeRole(user.UserType),
			"name":                user.FullName,
			"registration_number": user.RegistrationNumber,
			"created_at":          user.CreatedAt,
		},
	})
}
