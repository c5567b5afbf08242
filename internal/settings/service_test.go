package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"collections/internal/store"
	"collections/pkg/models"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewService(s, models.DefaultSalary), s
}

func TestParameters_DefaultsWhenNothingStored(t *testing.T) {
	svc, _ := newTestService(t)
	params, err := svc.Parameters(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if params.DSOMethod != models.DSOWeighted || params.TotalWeight() != 100 {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestParameters_MergesPartialDocument(t *testing.T) {
	ctx := context.Background()
	svc, s := newTestService(t)
	if err := s.Put(ctx, store.KeyParameters, []byte(`{"dsoMethod":"countback","dso":{"target":30,"weight":20}}`)); err != nil {
		t.Fatal(err)
	}

	params, err := svc.Parameters(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if params.DSOMethod != models.DSOCountback || params.DSO.Target != 30 {
		t.Fatalf("stored values not applied: %+v", params)
	}
	if params.BonusPolicy != models.BonusContinuous || len(params.BonusRules) != 3 {
		t.Fatalf("missing fields should keep defaults: %+v", params)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	updated, err := svc.Update(ctx, []string{"dsoMethod=simple", "dso.target=40", "dateBasis=dueDate"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DSOMethod != models.DSOSimple || updated.DSO.Target != 40 || updated.DateBasis != models.BasisDueDate {
		t.Fatalf("assignments not applied: %+v", updated)
	}

	reloaded, err := svc.Parameters(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.DSO.Target != 40 {
		t.Fatalf("update not persisted: %+v", reloaded)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	reloaded, _ = svc.Parameters(ctx)
	if reloaded.DSO.Target != models.DefaultParameters().DSO.Target {
		t.Fatalf("reset did not restore defaults")
	}
}

func TestUpdate_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	tests := []struct {
		name        string
		assignments []string
		want        error
	}{
		{"unknown key", []string{"colour=blue"}, ErrUnknownKey},
		{"unknown nested key", []string{"dso.colour=1"}, ErrUnknownKey},
		{"weights off", []string{"dso.weight=25"}, ErrInvalidParameters},
		{"bad method", []string{"dsoMethod=magic"}, ErrInvalidParameters},
		{"wrong type", []string{"dso.target=soon"}, ErrInvalidParameters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, tt.assignments); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	params, _ := svc.Parameters(ctx)
	if params.DSO.Weight != models.DefaultParameters().DSO.Weight {
		t.Fatalf("rejected update was persisted")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(models.DefaultParameters()); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	p := models.DefaultParameters()
	p.CEI.Weight = 20.005
	if err := Validate(p); err != nil {
		t.Fatalf("weights within tolerance should pass: %v", err)
	}

	p = models.DefaultParameters()
	p.ADD.Target = -1
	p.MaxBonusPercent = 120
	p.FiscalYearStart = "02-01"
	err := Validate(p)
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("got %v, want ErrInvalidParameters", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a ValidationError in %v", err)
	}

	p = models.DefaultParameters()
	p.BonusPolicy = models.BonusTiered
	p.BonusRules = nil
	if err := Validate(p); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("tiered without rules should fail, got %v", err)
	}
}

func TestSalaries(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	table, err := svc.Salaries(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if table.For("Sara") != models.DefaultSalary {
		t.Fatalf("got %v", table.For("Sara"))
	}

	if err := svc.SetSalary(ctx, "Sara", 12000); err != nil {
		t.Fatal(err)
	}
	if err := svc.SetDefaultSalary(ctx, 9000); err != nil {
		t.Fatal(err)
	}
	table, _ = svc.Salaries(ctx)
	if table.For("Sara") != 12000 || table.For("Omar") != 9000 {
		t.Fatalf("got %+v", table)
	}

	if err := svc.SetSalary(ctx, "Sara", -1); !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("negative salary: got %v", err)
	}
	if err := svc.SetSalary(ctx, " ", 100); err == nil {
		t.Fatal("empty collector name should be rejected")
	}
}

func TestSchema(t *testing.T) {
	raw, err := Schema()
	if err != nil {
		t.Fatal(err)
	}
	var schema struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(raw, &schema); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"dsoMethod", "dateBasis", "fiscalYearStart", "collectedTarget", "bonusRules"} {
		if _, ok := schema.Properties[key]; !ok {
			t.Errorf("schema missing %s", key)
		}
	}
}
