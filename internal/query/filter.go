// Package query derives filtered and aggregated views over the entity
// collections. Everything here is a pure function: stores own the data,
// query only reads it.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

// DateRange selects a window over Project.UpdatedAt.
type DateRange string

const (
	DateAll   DateRange = "all"
	DateToday DateRange = "today"
	DateWeek  DateRange = "week"
	DateMonth DateRange = "month"
)

// ProjectFilter is the criteria set for FilterProjects. Zero values and the
// "all" wildcard disable the corresponding predicate.
type ProjectFilter struct {
	Search     string
	Status     string
	Department string
	Date       DateRange
}

// FilterProjects returns the projects matching every predicate of the
// filter: free-text search over project name, resolved client name and
// responsavel; exact status; exact departamento; and the date window over
// UpdatedAt. Clients are needed to resolve client names for the search.
func FilterProjects(projects []domain.Project, clients []domain.Client, f ProjectFilter, now time.Time) []domain.Project {
	clientNames := make(map[string]string, len(clients))
	for _, c := range clients {
		clientNames[c.ID] = c.Name
	}

	term := strings.ToLower(f.Search)
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if !matchesSearch(p, clientNames[p.ClientID], term) {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(p.Status) != f.Status {
			continue
		}
		if f.Department != "" && f.Department != "all" && p.Departamento != f.Department {
			continue
		}
		if !matchesDate(p.UpdatedAt, f.Date, now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p domain.Project, clientName, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(clientName), term) ||
		strings.Contains(strings.ToLower(p.Responsavel), term)
}

func matchesDate(updatedAt time.Time, r DateRange, now time.Time) bool {
	switch r {
	case DateToday:
		y1, m1, d1 := updatedAt.Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case DateWeek:
		return !updatedAt.Before(now.AddDate(0, 0, -7))
	case DateMonth:
		return !updatedAt.Before(now.AddDate(0, -1, 0))
	default:
		// "", "all" and anything unknown keep the project in view.
		return true
	}
}

// Departments returns the distinct departamento values currently present
// across all projects, in first-seen order. The filter UI derives its
// options from this, not from configuration.
func Departments(projects []domain.Project) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range projects {
		if p.Departamento == "" || seen[p.Departamento] {
			continue
		}
		seen[p.Departamento] = true
		out = append(out, p.Departamento)
	}
	return out
}

// SearchClients returns the clients whose concatenated field values contain
// the term, case-insensitively.
func SearchClients(clients []domain.Client, term string) []domain.Client {
	if term == "" {
		return clients
	}
	t := strings.ToLower(term)
	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		haystack := strings.ToLower(strings.Join([]string{c.ID, c.Name, c.Email, c.Phone, c.Company}, " "))
		if strings.Contains(haystack, t) {
			out = append(out, c)
		}
	}
	return out
}

// SearchUsers returns the users whose concatenated field values contain the
// term, case-insensitively. The password hash is deliberately left out of
// the haystack.
func SearchUsers(users []domain.User, term string) []domain.User {
	if term == "" {
		return users
	}
	t := strings.ToLower(term)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		haystack := strings.ToLower(strings.Join([]string{
			u.ID, u.Name, u.Email, string(u.Role), u.Department,
			strconv.FormatBool(u.Active), u.CreatedAt.Format(time.RFC3339),
		}, " "))
		if strings.Contains(haystack, t) {
			out = append(out, u)
		}
	}
	return out
}
