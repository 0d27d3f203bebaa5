package controllers

import (
	"catering/pkg/resp"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type DirectoryController struct {
	Service *services.DirectoryService
}

func NewDirectoryController(s *services.DirectoryService) *DirectoryController {
	return &DirectoryController{Service: s}
}

// GET /clients
func (ctl *DirectoryController) Clients(c *gin.Context) {
	cs, err := ctl.Service.ListClients(callerOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cs)
}

// GET /clients/:id
func (ctl *DirectoryController) Client(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	cl, err := ctl.Service.GetClient(callerOf(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cl)
}

// POST /clients
func (ctl *DirectoryController) CreateClient(c *gin.Context) {
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, services.InputError(err))
		return
	}
	cl, err := ctl.Service.CreateClient(callerOf(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, cl)
}

// PUT /clients/:id
func (ctl *DirectoryController) UpdateClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.ClientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, services.InputError(err))
		return
	}
	cl, err := ctl.Service.UpdateClient(callerOf(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cl)
}

// DELETE /clients/:id
func (ctl *DirectoryController) DeleteClient(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.DeleteClient(callerOf(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "client deleted"})
}

// GET /venues
func (ctl *DirectoryController) Venues(c *gin.Context) {
	vs, err := ctl.Service.ListVenues(callerOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, vs)
}

// GET /venues/:id
func (ctl *DirectoryController) Venue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	v, err := ctl.Service.GetVenue(callerOf(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// POST /venues
func (ctl *DirectoryController) CreateVenue(c *gin.Context) {
	var req services.VenueInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, services.InputError(err))
		return
	}
	v, err := ctl.Service.CreateVenue(callerOf(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, v)
}

// PUT /venues/:id
func (ctl *DirectoryController) UpdateVenue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.VenueInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, services.InputError(err))
		return
	}
	v, err := ctl.Service.UpdateVenue(callerOf(c), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, v)
}

// DELETE /venues/:id
func (ctl *DirectoryController) DeleteVenue(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.DeleteVenue(callerOf(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "venue deleted"})
}
