// Package settings loads, validates and persists the global parameters and
// the collector salary table.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"collections/internal/logger"
	"collections/internal/store"
	"collections/pkg/models"
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"
)

// Service reads and writes settings through a store.
type Service struct {
	store         store.Store
	defaultSalary float64
	log           zerolog.Logger
}

// NewService creates a settings service. defaultSalary is used until a
// salary table has been saved.
func NewService(s store.Store, defaultSalary float64) *Service {
	return &Service{
		store:         s,
		defaultSalary: defaultSalary,
		log:           logger.WithComponent("settings"),
	}
}

// Parameters returns the stored parameters merged over the defaults. Nothing
// stored yields the defaults.
func (s *Service) Parameters(ctx context.Context) (models.GlobalParameters, error) {
	const op = "Parameters"

	raw, err := s.store.Get(ctx, store.KeyParameters)
	if errors.Is(err, store.ErrNotFound) {
		return models.DefaultParameters(), nil
	}
	if err != nil {
		return models.GlobalParameters{}, fmt.Errorf("%s: %w", op, err)
	}

	params, err := models.MergeParameters(raw)
	if err != nil {
		return models.GlobalParameters{}, fmt.Errorf("%s: %w", op, err)
	}
	return params, nil
}

// SaveParameters validates params and persists them.
func (s *Service) SaveParameters(ctx context.Context, params models.GlobalParameters) error {
	const op = "SaveParameters"

	if err := Validate(params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := store.SaveJSON(ctx, s.store, store.KeyParameters, params); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info().
		Str("dso_method", string(params.DSOMethod)).
		Str("date_basis", string(params.DateBasis)).
		Str("bonus_policy", string(params.BonusPolicy)).
		Msg("Parameters saved")
	return nil
}

// Update applies "key=value" assignments to the current parameters, then
// validates and persists the result. Keys are JSON paths joined by dots,
// such as "dso.target" or "dsoMethod". Values are parsed as JSON when
// possible and taken as strings otherwise.
func (s *Service) Update(ctx context.Context, assignments []string) (models.GlobalParameters, error) {
	const op = "Update"

	params, err := s.Parameters(ctx)
	if err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := Apply(params, assignments)
	if err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.SaveParameters(ctx, updated); err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// Reset removes stored parameters so the defaults apply again.
func (s *Service) Reset(ctx context.Context) error {
	const op = "Reset"

	if err := s.store.Delete(ctx, store.KeyParameters); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info().Msg("Parameters reset to defaults")
	return nil
}

// Salaries returns the stored salary table, or one carrying only the
// configured default salary.
func (s *Service) Salaries(ctx context.Context) (models.SalaryTable, error) {
	const op = "Salaries"

	table := models.SalaryTable{Default: s.defaultSalary}
	err := store.LoadJSON(ctx, s.store, store.KeySalaries, &table)
	if errors.Is(err, store.ErrNotFound) {
		return models.SalaryTable{Default: s.defaultSalary}, nil
	}
	if err != nil {
		return models.SalaryTable{}, fmt.Errorf("%s: %w", op, err)
	}
	return table, nil
}

// SetSalary stores collector's salary.
func (s *Service) SetSalary(ctx context.Context, collector string, amount float64) error {
	const op = "SetSalary"

	if strings.TrimSpace(collector) == "" {
		return fmt.Errorf("%s: %w", op, NewValidationError("collector", collector, "must not be empty"))
	}
	if err := ValidateSalary(collector, amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	table, err := s.Salaries(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := store.SaveJSON(ctx, s.store, store.KeySalaries, table.With(collector, amount)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info().Str("collector", collector).Float64("salary", amount).Msg("Salary saved")
	return nil
}

// SetDefaultSalary stores the salary used for collectors without their own.
func (s *Service) SetDefaultSalary(ctx context.Context, amount float64) error {
	const op = "SetDefaultSalary"

	if err := ValidateSalary("default", amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	table, err := s.Salaries(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	table.Default = amount
	if err := store.SaveJSON(ctx, s.store, store.KeySalaries, table); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Apply returns params with the assignments applied. It does not validate.
func Apply(params models.GlobalParameters, assignments []string) (models.GlobalParameters, error) {
	const op = "Apply"

	raw, err := json.Marshal(params)
	if err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}

	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok {
			return params, fmt.Errorf("%s: expected key=value, got %q", op, a)
		}
		if err := setPath(doc, strings.Split(strings.TrimSpace(key), "."), parseValue(value)); err != nil {
			return params, fmt.Errorf("%s: %w", op, err)
		}
	}

	raw, err = json.Marshal(doc)
	if err != nil {
		return params, fmt.Errorf("%s: %w", op, err)
	}
	var updated models.GlobalParameters
	if err := json.Unmarshal(raw, &updated); err != nil {
		return params, fmt.Errorf("%s: %w: %v", op, ErrInvalidParameters, err)
	}
	return updated, nil
}

func setPath(doc map[string]interface{}, path []string, value interface{}) error {
	key := path[0]
	current, ok := doc[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if len(path) == 1 {
		doc[key] = value
		return nil
	}
	nested, ok := current.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%w: %s has no field %s", ErrUnknownKey, key, path[1])
	}
	return setPath(nested, path[1:], value)
}

func parseValue(s string) interface{} {
	s = strings.TrimSpace(s)
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err == nil {
		return v
	}
	return s
}

// Schema returns the JSON schema describing GlobalParameters.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&models.GlobalParameters{})
	return json.MarshalIndent(schema, "", "  ")
}
