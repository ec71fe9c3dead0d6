package controllers

import (
	"net/http"

	"github.com/faressmahmoud/DeliciousBites-RMS/middlewares"
	"github.com/faressmahmoud/DeliciousBites-RMS/services"
	"github.com/faressmahmoud/DeliciousBites-RMS/utils"
	"github.com/gin-gonic/gin"
)

// UserController handles staff accounts and sessions.
type UserController struct {
	Staff *services.StaffService
}

func NewUserController(staff *services.StaffService) *UserController {
	return &UserController{Staff: staff}
}

// Register -> POST /staff/register
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.Staff.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Staff registered", user)
}

// Login -> POST /staff/login
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(c, &input) {
		return
	}

	token, user, err := uc.Staff.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
		"user":  user,
	})
}

// Logout -> POST /staff/logout
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetString(middlewares.ContextToken)
	uc.Staff.Logout(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetProfile -> GET /staff/profile
func (uc *UserController) GetProfile(c *gin.Context) {
	id, ok := middlewares.StaffIDFrom(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("unauthorized"))
		return
	}
	user, err := uc.Staff.Profile(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}
