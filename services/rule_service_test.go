package services

import (
	"context"
	"testing"

	"catering/repository"
	"catering/rules"

	"github.com/rs/zerolog"
)

func TestRuleServiceUpdate(t *testing.T) {
	f := newFixture(t)
	var notified []rules.RuleConfig
	svc := NewRuleService(f.env, func(cfg rules.RuleConfig) { notified = append(notified, cfg) })
	ctx := context.Background()

	cfg, err := svc.Get(clientCaller)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != rules.DefaultRuleConfig() {
		t.Fatalf("%+v", cfg)
	}

	cfg.HappyHourDiscount = 0.2
	if _, err := svc.Update(ctx, clientCaller, cfg); !rules.IsPermission(err) {
		t.Fatalf("client edit: %v", err)
	}
	bad := cfg
	bad.DinnerStart = 30
	if _, err := svc.Update(ctx, adminCaller, bad); !rules.IsValidation(err) {
		t.Fatalf("invalid config: %v", err)
	}
	if len(notified) != 0 {
		t.Fatal("notified without a save")
	}

	if _, err := svc.Update(ctx, superCaller, cfg); err != nil {
		t.Fatal(err)
	}
	if len(notified) != 1 || notified[0] != cfg || f.env.Store.Current() != cfg {
		t.Fatalf("live copy %+v", f.env.Store.Current())
	}

	reloaded := rules.NewStore(repository.NewSettingRepository(f.db), "businessRules", zerolog.Nop())
	got, err := reloaded.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("persisted %+v", got)
	}
}

func TestRuleServiceStrictEditor(t *testing.T) {
	f := newFixture(t)
	f.env.Eval = rules.Evaluator{StrictRulesEditor: true}
	svc := NewRuleService(f.env, nil)
	cfg := rules.DefaultRuleConfig()
	cfg.LowStockThreshold = 3

	if _, err := svc.Update(context.Background(), superCaller, cfg); !rules.IsPermission(err) {
		t.Fatalf("strict mode lets superadmin edit: %v", err)
	}
	if _, err := svc.Update(context.Background(), adminCaller, cfg); err != nil {
		t.Fatal(err)
	}
}
