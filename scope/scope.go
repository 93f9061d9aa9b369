package scope

import "net/http"

// Action is the operation class inferred from an HTTP method.
type Action string

// Action buckets.
const (
	Read   Action = "read"
	Write  Action = "write"
	Delete Action = "delete"
)

// methodActions is the fixed method-to-action table. It is deliberately
// not configurable; a method outside this table is always denied.
var methodActions = map[string]Action{
	http.MethodGet:    Read,
	http.MethodHead:   Read,
	http.MethodPut:    Write,
	http.MethodPatch:  Write,
	http.MethodPost:   Write,
	http.MethodDelete: Delete,
}

// ActionForMethod maps an HTTP method to its action bucket. The second
// result is false for unmapped methods.
func ActionForMethod(method string) (Action, bool) {
	a, ok := methodActions[method]
	return a, ok
}

// Format builds the "<permit>/<action>" scope string for a permit tag.
func Format(permit string, action Action) string {
	return permit + "/" + string(action)
}

// Match decides whether the granted scopes authorize the method against
// any of the permits. Candidates are formed as "<permit>/<action>" and a
// single match suffices (OR across permits). The matched scope is returned
// so callers can audit which permit satisfied the check. Comparison is a
// case-sensitive exact string match; unmapped methods always deny.
func Match(method string, permits, granted []string) (string, bool) {
	action, ok := ActionForMethod(method)
	if !ok {
		return "", false
	}
	for _, permit := range permits {
		candidate := Format(permit, action)
		for _, s := range granted {
			if s == candidate {
				return candidate, true
			}
		}
	}
	return "", false
}
