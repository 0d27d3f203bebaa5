package controllers

import (
	"catering/pkg/resp"
	"catering/services"

	"github.com/gin-gonic/gin"
)

type RuleController struct {
	Service *services.RuleService
}

func NewRuleController(s *services.RuleService) *RuleController {
	return &RuleController{Service: s}
}

// GET /rules
func (ctl *RuleController) Get(c *gin.Context) {
	cfg, err := ctl.Service.Get(callerOf(c))
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, cfg)
}

// PUT /rules
// Fields left out of the body keep their current value.
func (ctl *RuleController) Update(c *gin.Context) {
	caller := callerOf(c)
	cfg, err := ctl.Service.Get(caller)
	if err != nil {
		fail(c, err)
		return
	}
	if err := c.ShouldBindJSON(&cfg); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	saved, err := ctl.Service.Update(c.Request.Context(), caller, cfg)
	if err != nil {
		fail(c, err)
		return
	}
	resp.OK(c, saved)
}
