package handler

import (
	"net/http"

	"github.com/blues/chainstats/internal/auth"
	"github.com/blues/chainstats/internal/logic"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userLogic *logic.UserLogic
}

func NewUserHandler(userLogic *logic.UserLogic) *UserHandler {
	return &UserHandler{userLogic: userLogic}
}

// Register creates a new account. Public endpoint; the account is always
// created active and non-admin.
func (h *UserHandler) Register(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.userLogic.RegisterPublic(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// CreateAccount creates an account on behalf of an admin.
func (h *UserHandler) CreateAccount(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal := auth.CurrentPrincipal(c)

	account, err := h.userLogic.RegisterByAdmin(c.Request.Context(), principal, req.Username, req.Email, req.Password, req.IsActive)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}
