package repository

import (
	"strings"

	"taskdesk/internal/model"
)

// EmployeeFilter selects employees whose name, email or role contains Search,
// ignoring case. An empty Search matches every employee.
type EmployeeFilter struct {
	Search string
}

func (f EmployeeFilter) Matches(e model.Employee) bool {
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return containsFold(e.Name, term) ||
		containsFold(e.Email, term) ||
		containsFold(e.Role, term)
}

// TaskFilter combines a status filter and a free-text search over title and
// description. Both must match.
type TaskFilter struct {
	Search string
	Status model.StatusFilter
}

func (f TaskFilter) Matches(t model.Task) bool {
	if !f.Status.Matches(t.Status) {
		return false
	}
	term := strings.ToLower(f.Search)
	if term == "" {
		return true
	}
	return containsFold(t.Title, term) || containsFold(t.Description, term)
}

// containsFold expects term to be lower-cased already.
func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func equalEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
