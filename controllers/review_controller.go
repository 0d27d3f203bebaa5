package controllers

import (
	"catering/pkg/resp"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Service *services.ReviewService
}

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Service: s}
}

// GET /reviews
func (ctl *ReviewController) List(c *gin.Context) {
	f := services.ReviewFilter{
		Query:  c.Query("q"),
		Rating: c.Query("rating"),
		Sort:   c.DefaultQuery("sort", "newest"),
	}
	items, err := ctl.Service.List(callerOf(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// POST /reviews
func (ctl *ReviewController) Create(c *gin.Context) {
	var req services.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := ctl.Service.Create(callerOf(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, v)
}

// PUT /reviews/:id
func (ctl *ReviewController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := ctl.Service.Update(callerOf(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// DELETE /reviews/:id
func (ctl *ReviewController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.Delete(callerOf(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "review deleted"})
}
