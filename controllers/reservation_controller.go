package controllers

import (
	"catering/pkg/resp"
	"catering/rules"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(s *services.ReservationService) *ReservationController {
	return &ReservationController{Service: s}
}

// GET /reservations
func (ctl *ReservationController) List(c *gin.Context) {
	f := services.ReservationFilter{Status: c.Query("status"), Date: c.Query("date")}
	list, err := ctl.Service.List(callerOf(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, list)
}

// GET /reservations/:id
func (ctl *ReservationController) Get(c *gin.Context) {
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

// POST /reservations
func (ctl *ReservationController) Create(c *gin.Context) {
	var req services.ReservationInput
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

// PUT /reservations/:id
func (ctl *ReservationController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.ReservationInput
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

// PATCH /reservations/:id/status
func (ctl *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Status rules.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := ctl.Service.SetStatus(callerOf(c), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /reservations/:id/cancel
func (ctl *ReservationController) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	v, err := ctl.Service.Cancel(callerOf(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// DELETE /reservations/:id
func (ctl *ReservationController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.Delete(callerOf(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "reservation deleted"})
}
