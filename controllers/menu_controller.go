package controllers

import (
	"strconv"

	"catering/pkg/resp"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(s *services.MenuService) *MenuController {
	return &MenuController{Service: s}
}

func boolQuery(c *gin.Context, key string, def bool) bool {
	v, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// GET /menus
func (ctl *MenuController) List(c *gin.Context) {
	f := services.MenuFilter{
		Query:          c.Query("q"),
		Status:         c.Query("status"),
		Category:       c.Query("category"),
		OnlyAvailable:  boolQuery(c, "onlyAvailable", false),
		ShowOutOfStock: boolQuery(c, "showOutOfStock", true),
	}
	items, err := ctl.Service.List(callerOf(c), f)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /menus/metrics
func (ctl *MenuController) Metrics(c *gin.Context) {
	m, err := ctl.Service.Metrics(callerOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, m)
}

// GET /menus/:id
func (ctl *MenuController) Get(c *gin.Context) {
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

// POST /menus
func (ctl *MenuController) Create(c *gin.Context) {
	var req services.MenuInput
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

// PUT /menus/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req services.MenuInput
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

// DELETE /menus/:id?confirm=true
func (ctl *MenuController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Service.Delete(callerOf(c), id, boolQuery(c, "confirm", false)); err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "menu deleted"})
}
