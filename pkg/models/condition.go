package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Step guard conditions use a small SQL-flavored predicate grammar:
//
//	FIELD LIKE 'pattern'   case-insensitive match, % is a wildcard
//	FIELD IN (v1, v2, ...) equality against quote-stripped literals
//
// All predicates in a list must hold (logical AND). An empty list matches.
var (
	likePredicate = regexp.MustCompile(`^(\w+)\s+LIKE\s+'([^']+)'$`)
	inPredicate   = regexp.MustCompile(`^(\w+)\s+IN\s+\(([^)]+)\)$`)
)

// MatchConditions evaluates guard predicates against a data mapping. A
// predicate that matches neither grammar is a defect in the workflow
// definition and returns an error rather than silently passing or failing.
func MatchConditions(conditions []string, data map[string]any) (bool, error) {
	for _, condition := range conditions {
		matched, err := matchCondition(strings.TrimSpace(condition), data)
		if err != nil {
			return false, err
		}

		if !matched {
			return false, nil
		}
	}

	return true, nil
}

func matchCondition(condition string, data map[string]any) (bool, error) {
	if groups := likePredicate.FindStringSubmatch(condition); groups != nil {
		return matchLike(groups[1], groups[2], data)
	}

	if groups := inPredicate.FindStringSubmatch(condition); groups != nil {
		return matchIn(groups[1], groups[2], data), nil
	}

	return false, fmt.Errorf("unsupported condition %q: expected FIELD LIKE 'pattern' or FIELD IN (v1, ...)", condition)
}

func matchLike(field, pattern string, data map[string]any) (bool, error) {
	value := strings.ToLower(stringify(data[field]))

	expr := regexp.QuoteMeta(strings.ToLower(pattern))
	expr = strings.ReplaceAll(expr, "%", ".*")

	matcher, err := regexp.Compile(expr)
	if err != nil {
		return false, fmt.Errorf("invalid LIKE pattern %q: %w", pattern, err)
	}

	return matcher.MatchString(value), nil
}

func matchIn(field, list string, data map[string]any) bool {
	value := stringify(data[field])

	for _, candidate := range strings.Split(list, ",") {
		candidate = strings.Trim(strings.TrimSpace(candidate), `'"`)
		if value == candidate {
			return true
		}
	}

	return false
}

func stringify(value any) string {
	if value == nil {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", value)
}
