package query

import (
	"testing"
	"time"

	"github.com/carlosfox17/sgp-backend/internal/domain"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, nil, nil)
	if s.SuccessRate != 0 {
		t.Fatalf("expected 0%% success rate with no projects, got %d", s.SuccessRate)
	}
	if s.TotalProjects != 0 || s.ActiveProjects != 0 || s.CompletedProjects != 0 || s.PendingProjects != 0 {
		t.Fatalf("expected zeroed counts: %+v", s)
	}
	if len(s.RecentProjects) != 0 {
		t.Fatalf("expected no recent projects")
	}
}

func TestSummarizeCounts(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.StatusPending},
		{Status: domain.StatusPending},
		{Status: domain.StatusApproved},
		{Status: domain.StatusCompleted},
	}
	clients := []domain.Client{{}, {}}
	users := []domain.User{{Active: true}, {Active: true}, {Active: false}}

	s := Summarize(projects, clients, users)
	if s.TotalProjects != 4 {
		t.Fatalf("total: %d", s.TotalProjects)
	}
	if s.ActiveProjects != 3 {
		t.Fatalf("active should be every non-completed project, got %d", s.ActiveProjects)
	}
	if s.CompletedProjects != 1 || s.PendingProjects != 2 {
		t.Fatalf("completed=%d pending=%d", s.CompletedProjects, s.PendingProjects)
	}
	if s.TotalClients != 2 || s.ActiveUsers != 2 {
		t.Fatalf("clients=%d activeUsers=%d", s.TotalClients, s.ActiveUsers)
	}
	if s.SuccessRate != 25 {
		t.Fatalf("success rate: %d", s.SuccessRate)
	}
}

func TestSummarizeSuccessRateRounds(t *testing.T) {
	projects := []domain.Project{
		{Status: domain.StatusCompleted},
		{Status: domain.StatusCompleted},
		{Status: domain.StatusPending},
	}
	s := Summarize(projects, nil, nil)
	// 2/3 = 66.67 rounds to 67.
	if s.SuccessRate != 67 {
		t.Fatalf("success rate: %d", s.SuccessRate)
	}
}

func TestRecentProjects(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	projects := make([]domain.Project, 7)
	for i := range projects {
		projects[i] = domain.Project{
			ID:        string(rune('a' + i)),
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}

	got := RecentProjects(projects, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 projects, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].UpdatedAt.After(got[i-1].UpdatedAt) {
			t.Fatalf("not sorted by updatedAt descending: %v", got)
		}
	}
	if got[0].ID != "g" {
		t.Fatalf("most recently updated project should come first, got %q", got[0].ID)
	}
}
