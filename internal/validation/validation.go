// Package validation implements a declarative, per-field rule engine for
// request payloads, query parameters and path parameters. Rules are
// evaluated eagerly and fully: every violation is collected, none
// short-circuits the rest.
package validation

import (
	"fmt"
	"net/url"
	"strconv"
)

// FieldError is one violated rule, surfaced verbatim to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Input is the structured request content rules evaluate against.
// Body is nil for endpoints without a JSON body.
type Input struct {
	Params map[string]string
	Query  url.Values
	Body   map[string]any
}

type source int

const (
	bodySource source = iota
	querySource
	paramSource
)

// Check is a pure predicate over a single field value.
type Check func(value any) bool

type step struct {
	check   Check
	message string
	each    bool
}

// Rule is an ordered chain of checks on one field of one request source.
type Rule struct {
	source   source
	field    string
	optional bool
	steps    []step
}

// Body starts a rule chain on a body field.
func Body(field string) *Rule {
	return &Rule{source: bodySource, field: field}
}

// Query starts a rule chain on a query parameter.
func Query(field string) *Rule {
	return &Rule{source: querySource, field: field}
}

// Param starts a rule chain on a path parameter.
func Param(field string) *Rule {
	return &Rule{source: paramSource, field: field}
}

// Optional marks the field as optional: when absent from the request the
// whole chain is skipped.
func (r *Rule) Optional() *Rule {
	r.optional = true
	return r
}

// Required fails when the field is absent, null or an empty string.
func (r *Rule) Required(message string) *Rule {
	return r.add(notEmpty, message)
}

// String fails when the value is not a string.
func (r *Rule) String(message string) *Rule {
	return r.add(IsString, message)
}

// Bool fails when the value is not a boolean.
func (r *Rule) Bool(message string) *Rule {
	return r.add(isBool, message)
}

// Array fails when the value is not an array.
func (r *Rule) Array(message string) *Rule {
	return r.add(isArray, message)
}

// GreaterThan fails when the value cannot be coerced to a number greater
// than the limit.
func (r *Rule) GreaterThan(limit float64, message string) *Rule {
	return r.add(func(value any) bool {
		n, ok := Number(value)
		return ok && n > limit
	}, message)
}

// OneOf fails when the value is not one of the allowed strings.
func (r *Rule) OneOf(allowed []string, message string) *Rule {
	return r.add(func(value any) bool {
		s, ok := value.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}, message)
}

// URL fails when the value is not a well-formed http(s) URL.
func (r *Rule) URL(message string) *Rule {
	return r.add(IsURL, message)
}

// Each applies the check to every element of an array value, reporting
// one violation per failing element as field[index]. Non-array values
// are left to a preceding Array step to report.
func (r *Rule) Each(check Check, message string) *Rule {
	r.steps = append(r.steps, step{check: check, message: message, each: true})
	return r
}

func (r *Rule) add(check Check, message string) *Rule {
	r.steps = append(r.steps, step{check: check, message: message})
	return r
}

func (r *Rule) lookup(in Input) (any, bool) {
	switch r.source {
	case querySource:
		if in.Query == nil {
			return nil, false
		}
		vals, ok := in.Query[r.field]
		if !ok || len(vals) == 0 {
			return nil, false
		}
		return vals[0], true
	case paramSource:
		v, ok := in.Params[r.field]
		return v, ok
	default:
		v, ok := in.Body[r.field]
		return v, ok
	}
}

// Evaluate runs every rule against the input and returns the ordered
// list of violations, or nil when the input is valid.
func Evaluate(in Input, rules []*Rule) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		value, present := r.lookup(in)
		if !present {
			if r.optional {
				continue
			}
			// An absent required field violates every check in its chain,
			// matching the per-rule reporting of the declared set.
			for _, s := range r.steps {
				if s.each {
					continue
				}
				errs = append(errs, FieldError{Field: r.field, Message: s.message})
			}
			continue
		}

		for _, s := range r.steps {
			if s.each {
				elems, ok := toSlice(value)
				if !ok {
					continue
				}
				for i, elem := range elems {
					if !s.check(elem) {
						errs = append(errs, FieldError{
							Field:   fmt.Sprintf("%s[%d]", r.field, i),
							Message: s.message,
						})
					}
				}
				continue
			}
			if !s.check(value) {
				errs = append(errs, FieldError{Field: r.field, Message: s.message})
			}
		}
	}
	return errs
}

// Number coerces a value to float64. JSON numbers decode as float64;
// numeric strings are coerced at the boundary.
func Number(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	}
	return 0, false
}

// IsString reports whether the value is a string.
func IsString(value any) bool {
	_, ok := value.(string)
	return ok
}

// IsURL reports whether the value is a well-formed absolute http(s) URL.
func IsURL(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func notEmpty(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return s != ""
	}
	return true
}

func isBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return true
	case string:
		_, err := strconv.ParseBool(v)
		return err == nil
	}
	return false
}

func isArray(value any) bool {
	switch value.(type) {
	case []any, []string:
		return true
	}
	return false
}

func toSlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
