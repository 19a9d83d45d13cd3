package controllers

import (
	"errors"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffLoginRequest represents the staff login request
type StaffLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StaffLogin authenticates a staff member and issues a JWT
func StaffLogin(c *gin.Context) {
	utils.LogInfo("StaffLogin called")
	var req StaffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Processing login request for username: %s", req.Username)

	var staff models.Staff
	if err := config.DB.Where("username = ?", req.Username).First(&staff).Error; err != nil {
		utils.LogError("Staff not found for username: %s: %v", req.Username, err)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(req.Password)); err != nil {
		utils.LogError("Invalid password for staff: %s", staff.Username)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	utils.LogDebug("Password verified for staff: %s", staff.Username)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		utils.LogError("JWT secret not configured")
		utils.InternalServerError(c, "JWT secret not configured", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		utils.LogError("Failed to sign JWT token for staff: %s: %v", staff.Username, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	utils.LogInfo("Staff login successful: %s", staff.Username)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"staff": gin.H{
			"id":       staff.ID,
			"username": staff.Username,
			"email":    staff.Email,
			"role":     staff.Role,
		},
	})
}

// CreateDefaultManager seeds a manager account on first boot so the returns
// desk is usable before any staff administration happens.
func CreateDefaultManager() error {
	var existing models.Staff
	err := config.DB.Where("role = ?", models.StaffRoleManager).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := os.Getenv("DEFAULT_MANAGER_PASSWORD")
	if password == "" {
		password = "changeme"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := models.Staff{
		Username: "manager",
		Email:    os.Getenv("DEFAULT_MANAGER_EMAIL"),
		Password: string(hash),
		Role:     models.StaffRoleManager,
	}
	if err := config.DB.Create(&manager).Error; err != nil {
		return err
	}
	utils.LogInfo("Created default manager account")
	return nil
}
