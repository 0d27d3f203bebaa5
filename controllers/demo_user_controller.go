package controllers

import (
	"net/http"

	"catering/services"

	"github.com/gin-gonic/gin"
)

// DemoUserController serves the standalone /api/users sample. It answers
// with bare JSON rather than the ok/data envelope.
type DemoUserController struct {
	Service *services.DemoUserService
}

func NewDemoUserController(s *services.DemoUserService) *DemoUserController {
	return &DemoUserController{Service: s}
}

// GET /api/users
func (ctl *DemoUserController) List(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.Service.List())
}

// POST /api/users
func (ctl *DemoUserController) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": services.ErrUserFieldsRequired.Error()})
		return
	}
	u, err := ctl.Service.Create(req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// NotFound is the fallback for unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}
