package scenario

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError collects every rejected field, keyed by its JSON path.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return "invalid scenario: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the scenario's fields. maxWeeks caps the horizon; zero means no cap.
func (s Scenario) Validate(maxWeeks int) error {
	verr := &ValidationError{}

	if err := structValidator().Struct(s); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("failed to validate scenario: %w", err)
		}
		for _, fe := range fieldErrs {
			field := fieldPath(fe)
			verr.add(field, errorMessage(field, fe))
		}
	}

	if maxWeeks > 0 && s.Weeks > maxWeeks {
		verr.add("weeks", fmt.Sprintf("weeks must be at most %d", maxWeeks))
	}
	checkDistribution(verr, "demand", s.Demand)
	checkDistribution(verr, "lead_time", s.LeadTime)

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func checkDistribution(verr *ValidationError, name string, d DistributionSpec) {
	if len(d.Categories) > 0 && len(d.Categories) != len(d.Probabilities) {
		verr.add(name+".categories", fmt.Sprintf("%s.categories has %d values for %d probabilities", name, len(d.Categories), len(d.Probabilities)))
	}
	if d.FirstCategory < 0 {
		verr.add(name+".first_category", fmt.Sprintf("%s.first_category must not be negative", name))
	}

	sum := 0.0
	for _, p := range d.Probabilities {
		sum += p
	}
	if len(d.Probabilities) > 0 && sum <= 0 {
		verr.add(name+".probabilities", fmt.Sprintf("%s.probabilities must not all be zero", name))
	}
}

// fieldPath drops the root struct name from the namespace: "Scenario.demand.probabilities[1]"
// becomes "demand.probabilities[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func errorMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be greater than %s", field, toSnake(fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
