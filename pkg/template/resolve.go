// Package template expands placeholder expressions in step parameters against
// the execution context.
package template

import (
	"strings"

	"github.com/paperflow-io/paperflow/pkg/models"
)

// ResolveParams expands a step's declared parameter mapping into concrete
// argument values. String values of the exact shape ${dotted.path} are looked
// up in the context's merged namespace; a missing path segment resolves to an
// empty string, which keeps definitions tolerant of optional trigger fields.
// Everything else passes through unchanged; nested maps and lists are resolved
// recursively.
func ResolveParams(params map[string]any, execCtx *models.ExecutionContext) map[string]any {
	return resolveMap(params, execCtx.Namespace())
}

func resolveMap(params map[string]any, namespace map[string]any) map[string]any {
	resolved := make(map[string]any, len(params))

	for key, value := range params {
		resolved[key] = resolveValue(value, namespace)
	}

	return resolved
}

func resolveValue(value any, namespace map[string]any) any {
	switch v := value.(type) {
	case string:
		if path, ok := placeholderPath(v); ok {
			return lookupPath(path, namespace)
		}

		return v
	case map[string]any:
		return resolveMap(v, namespace)
	case []any:
		resolved := make([]any, len(v))
		for i, item := range v {
			resolved[i] = resolveValue(item, namespace)
		}

		return resolved
	default:
		return value
	}
}

func placeholderPath(value string) (string, bool) {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return "", false
	}

	return value[2 : len(value)-1], true
}

func lookupPath(path string, namespace map[string]any) any {
	var current any = namespace

	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}

		current, ok = node[segment]
		if !ok {
			return ""
		}
	}

	return current
}
