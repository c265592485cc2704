package query

import (
	"math"
	"sort"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

// Summary is the dashboard aggregate block.
type Summary struct {
	ActiveProjects    int              `json:"activeProjects"`
	CompletedProjects int              `json:"completedProjects"`
	PendingProjects   int              `json:"pendingProjects"`
	TotalProjects     int              `json:"totalProjects"`
	TotalClients      int              `json:"totalClients"`
	ActiveUsers       int              `json:"activeUsers"`
	SuccessRate       int              `json:"successRate"`
	RecentProjects    []domain.Project `json:"recentProjects"`
}

// Summarize computes the dashboard numbers. Active means any status other
// than completed. SuccessRate is completed/total as a rounded percentage
// and is 0 when there are no projects at all.
func Summarize(projects []domain.Project, clients []domain.Client, users []domain.User) Summary {
	s := Summary{TotalProjects: len(projects), TotalClients: len(clients)}
	for _, p := range projects {
		switch p.Status {
		case domain.StatusCompleted:
			s.CompletedProjects++
		case domain.StatusPending:
			s.PendingProjects++
		}
		if p.Status != domain.StatusCompleted {
			s.ActiveProjects++
		}
	}
	for _, u := range users {
		if u.Active {
			s.ActiveUsers++
		}
	}
	if s.TotalProjects > 0 {
		s.SuccessRate = int(math.Round(float64(s.CompletedProjects) / float64(s.TotalProjects) * 100))
	}
	s.RecentProjects = RecentProjects(projects, 5)
	return s
}

// RecentProjects returns up to n projects ordered by UpdatedAt descending.
func RecentProjects(projects []domain.Project, n int) []domain.Project {
	out := make([]domain.Project, len(projects))
	copy(out, projects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
