// Package schema holds the declarative per-entity field rules: required
// fields, JSON types, defaults and format constraints. One generic validator
// consumes the rules; entities never re-implement validation by hand.
package schema

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"lootopia-service/apperr"
)

type Kind int

const (
	String Kind = iota + 1
	Number
	Bool
	Time
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Time:
		return "timestamp (RFC3339)"
	default:
		return "unknown"
	}
}

// Rule is the policy for one input field.
type Rule struct {
	Kind     Kind
	Required bool
	Nullable bool
	// Default is applied when the field is absent. DefaultFunc wins over
	// Default and is evaluated at apply time (e.g. now+30 days).
	Default     interface{}
	DefaultFunc func() interface{}
	Pattern     *regexp.Regexp
}

// Schema maps input field names to their rules. Unknown fields are stripped
// before validation.
type Schema map[string]Rule

// Strip drops payload keys the schema does not declare.
func (s Schema) Strip(payload map[string]interface{}) {
	for key := range payload {
		if _, ok := s[key]; !ok {
			delete(payload, key)
		}
	}
}

// Validate checks payload against every rule and returns all violations,
// sorted by field name so clients get stable output.
func (s Schema) Validate(payload map[string]interface{}) []apperr.FieldViolation {
	var violations []apperr.FieldViolation

	for field, rule := range s {
		value, present := payload[field]

		if !present || value == nil {
			if rule.Required {
				violations = append(violations, apperr.FieldViolation{
					Field:   field,
					Message: field + " is required",
				})
			} else if present && !rule.Nullable && value == nil {
				violations = append(violations, apperr.FieldViolation{
					Field:   field,
					Message: field + " cannot be null",
				})
			}
			continue
		}

		if msg := checkKind(rule, value); msg != "" {
			violations = append(violations, apperr.FieldViolation{Field: field, Message: field + " " + msg})
		}
	}

	sort.Slice(violations, func(i, j int) bool { return violations[i].Field < violations[j].Field })
	return violations
}

func checkKind(rule Rule, value interface{}) string {
	switch rule.Kind {
	case String:
		str, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(str) {
			return fmt.Sprintf("must match %s", rule.Pattern.String())
		}
	case Number:
		if _, ok := value.(float64); !ok {
			return "must be a number"
		}
	case Bool:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case Time:
		switch v := value.(type) {
		case time.Time:
		case string:
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				return "must be an RFC3339 timestamp"
			}
		default:
			return "must be an RFC3339 timestamp"
		}
	}
	return ""
}

// ApplyDefaults fills absent fields with their declared defaults.
func (s Schema) ApplyDefaults(payload map[string]interface{}) {
	for field, rule := range s {
		if _, present := payload[field]; present {
			continue
		}
		switch {
		case rule.DefaultFunc != nil:
			payload[field] = rule.DefaultFunc()
		case rule.Default != nil:
			payload[field] = rule.Default
		}
	}
}
