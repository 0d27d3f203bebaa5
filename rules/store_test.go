package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type memBlobs struct {
	data    map[string][]byte
	failPut bool
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	return m.data[key], nil
}

func (m *memBlobs) Put(_ context.Context, key string, value []byte) error {
	if m.failPut {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func TestStoreDefaultsWhenEmpty(t *testing.T) {
	s := NewStore(&memBlobs{data: map[string][]byte{}}, "businessRules", zerolog.Nop())
	cfg, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultRuleConfig() || s.Current() != DefaultRuleConfig() {
		t.Fatalf("got %+v", cfg)
	}
}

func TestStoreSaveReplacesBothCopies(t *testing.T) {
	blobs := &memBlobs{data: map[string][]byte{}}
	s := NewStore(blobs, "businessRules", zerolog.Nop())

	cfg := DefaultRuleConfig()
	cfg.HappyHourDiscount = 0.25
	cfg.OperatingOpen = MustTimeOfDay("10:30")
	if err := s.Save(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if s.Current() != cfg {
		t.Fatal("live copy not replaced")
	}

	fresh := NewStore(blobs, "businessRules", zerolog.Nop())
	got, err := fresh.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("persisted copy %+v", got)
	}
}

func TestStoreRejectsInvalidSave(t *testing.T) {
	blobs := &memBlobs{data: map[string][]byte{}}
	s := NewStore(blobs, "businessRules", zerolog.Nop())

	bad := DefaultRuleConfig()
	bad.HappyHourStart = 25
	bad.MaxGuestsPerReservation = 0
	err := s.Save(context.Background(), bad)
	var v *ValidationError
	if !errors.As(err, &v) || len(v.Issues) != 2 {
		t.Fatalf("err %v", err)
	}
	if s.Current() != DefaultRuleConfig() || len(blobs.data) != 0 {
		t.Fatal("invalid config leaked")
	}

	blobs.failPut = true
	good := DefaultRuleConfig()
	good.LowStockThreshold = 9
	if err := s.Save(context.Background(), good); err == nil {
		t.Fatal("expected persistence error")
	}
	if s.Current().LowStockThreshold != 5 {
		t.Fatal("live copy changed although persistence failed")
	}
}

func TestStoreFallsBackOnBadBlob(t *testing.T) {
	blobs := &memBlobs{data: map[string][]byte{
		"garbled": []byte("{not json"),
		"invalid": []byte(`{"happyHourStart": 40}`),
		"partial": []byte(`{"lowStockThreshold": 8}`),
	}}

	for _, key := range []string{"garbled", "invalid"} {
		cfg, err := NewStore(blobs, key, zerolog.Nop()).Load(context.Background())
		if err != nil || cfg != DefaultRuleConfig() {
			t.Fatalf("%s: %+v %v", key, cfg, err)
		}
	}

	cfg, err := NewStore(blobs, "partial", zerolog.Nop()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultRuleConfig()
	want.LowStockThreshold = 8
	if cfg != want {
		t.Fatalf("partial blob: %+v", cfg)
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	var tod TimeOfDay
	if err := tod.UnmarshalJSON([]byte(`"21:05:00"`)); err != nil {
		t.Fatal(err)
	}
	if tod.String() != "21:05" {
		t.Fatalf("got %s", tod)
	}
	if err := tod.UnmarshalJSON([]byte(`"25:00"`)); err == nil {
		t.Fatal("expected error")
	}
}
