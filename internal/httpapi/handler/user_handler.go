package handler

import (
	"net/http"

	"bookstop/internal/httpapi/dto"
	"bookstop/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the authenticated user's own account. There is no
// public profile surface; every route acts on the token holder.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers account routes. The group must already be
// behind the auth middleware.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.Get)
	router.PUT("", h.EditUsername)
	router.PUT("/password", h.ChangePassword)
	router.DELETE("", h.Delete)
}

// Get returns the current user's profile.
// GET /api/user
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.FromModelToUserResponse(user)})
}

// EditUsername changes the username after re-verifying the password.
// PUT /api/user
func (h *UserHandler) EditUsername(c *gin.Context) {
	var req dto.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.userService.UpdateUsername(currentUserID(c), req.NewUsername, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": dto.FromModelToUserResponse(user)})
}

// ChangePassword swaps the password after verifying the current one.
// PUT /api/user/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.userService.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password updated"})
}

// Delete removes the account and everything hanging off it.
// DELETE /api/user
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.userService.DeleteUser(currentUserID(c), req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "account deleted"})
}
