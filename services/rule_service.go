package services

import (
	"context"

	"catering/rules"
)

// RuleService exposes the live business rules. Saving replaces the persisted
// and the live copy, then notifies subscribers.
type RuleService struct {
	Env *RuleEnv
	// Notify is called after every successful save; nil is allowed.
	Notify func(rules.RuleConfig)
}

func NewRuleService(env *RuleEnv, notify func(rules.RuleConfig)) *RuleService {
	return &RuleService{Env: env, Notify: notify}
}

func (s *RuleService) Get(caller Caller) (rules.RuleConfig, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindRules}, now).Err(); err != nil {
		return rules.RuleConfig{}, err
	}
	return cfg, nil
}

func (s *RuleService) Update(ctx context.Context, caller Caller, cfg rules.RuleConfig) (rules.RuleConfig, error) {
	now := s.Env.Clock.Now()
	if err := s.Env.decide(caller, rules.ActionEditRules, rules.Resource{Kind: rules.KindRules}, now).Err(); err != nil {
		return rules.RuleConfig{}, err
	}
	if err := s.Env.Store.Save(ctx, cfg); err != nil {
		return rules.RuleConfig{}, err
	}
	if s.Notify != nil {
		s.Notify(cfg)
	}
	return cfg, nil
}
