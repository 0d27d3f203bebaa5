package controllers

import (
	"catering/pkg/resp"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *services.PaymentService
}

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Service: s}
}

// GET /payments
func (ctl *PaymentController) List(c *gin.Context) {
	f := services.PaymentFilter{
		Query:  c.Query("q"),
		Status: c.Query("status"),
		Amount: c.Query("amount"),
		Sort:   c.DefaultQuery("sort", "newest"),
	}
	items, err := ctl.Service.List(callerOf(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /payments/:id
func (ctl *PaymentController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	v, err := ctl.Service.Get(callerOf(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /payments
func (ctl *PaymentController) Create(c *gin.Context) {
	var req services.PaymentInput
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

// PUT /payments/:id
func (ctl *PaymentController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.PaymentInput
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

// DELETE /payments/:id
func (ctl *PaymentController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.Delete(callerOf(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "payment deleted"})
}
