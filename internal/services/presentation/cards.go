package presentation

import (
	"fmt"
	"time"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/services/readmodel"
)

type ProposalCard struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	StatusText  string `json:"status"`
	StatusClass string `json:"statusClass"`
	Submitter   string `json:"submitter"`
	Submitted   string `json:"submitted"`
	Deadline    string `json:"deadline"`
	Progress    string `json:"progress"`
}

type ReviewerCard struct {
	ID           uint32 `json:"id"`
	Title        string `json:"title"`
	RoleText     string `json:"role"`
	RoleClass    string `json:"roleClass"`
	Status       string `json:"status"`
	TotalReviews uint64 `json:"totalReviews"`
	Registered   string `json:"registered"`
}

type StatsPanel struct {
	Available        bool   `json:"available"`
	TotalProposals   uint32 `json:"totalProposals"`
	TotalReviewers   uint32 `json:"totalReviewers"`
	ActiveReviews    uint32 `json:"activeReviews"`
	CompletedReviews uint64 `json:"completedReviews"`
}

// Region is one list display: cards, or a message in their place.
type Region[T any] struct {
	Cards   []T    `json:"cards"`
	Message string `json:"message,omitempty"`
}

type Regions struct {
	Proposals Region[ProposalCard] `json:"proposals"`
	Reviewers Region[ReviewerCard] `json:"reviewers"`
	Stats     StatsPanel           `json:"stats"`
}

func NewProposalCard(p domain.ProposalView, loc *time.Location) ProposalCard {
	return ProposalCard{
		ID:          p.ID,
		Title:       fmt.Sprintf("Proposal #%d", p.ID),
		StatusText:  p.Status.String(),
		StatusClass: p.Status.Class(),
		Submitter:   ShortAddress(p.Submitter),
		Submitted:   FormatDate(p.SubmissionTime, loc),
		Deadline:    FormatDate(p.ReviewDeadline, loc),
		Progress:    fmt.Sprintf("%d/%d reviews completed", p.CompletedReviewCount, p.AssignedReviewerCount),
	}
}

func NewReviewerCard(r domain.ReviewerView, loc *time.Location) ReviewerCard {
	return ReviewerCard{
		ID:           r.ID,
		Title:        fmt.Sprintf("Reviewer #%d", r.ID),
		RoleText:     r.Role.String(),
		RoleClass:    r.Role.Class(),
		Status:       ReviewerStatus(r.IsActive, r.IsAvailable),
		TotalReviews: r.TotalReviews,
		Registered:   FormatDate(r.RegistrationTime, loc),
	}
}

// Render maps a loaded view to display regions. It has no side effects.
func Render(v readmodel.View, loc *time.Location) Regions {
	var out Regions

	switch {
	case v.Proposals.Err != nil:
		out.Proposals.Message = "Error loading proposals."
	case v.Proposals.Empty:
		out.Proposals.Message = "No proposals submitted yet."
	default:
		for _, p := range v.Proposals.Items {
			out.Proposals.Cards = append(out.Proposals.Cards, NewProposalCard(p, loc))
		}
	}

	switch {
	case v.Reviewers.Err != nil:
		out.Reviewers.Message = "Error loading reviewers."
	case v.Reviewers.Empty:
		out.Reviewers.Message = "No reviewers registered yet."
	default:
		for _, r := range v.Reviewers.Items {
			out.Reviewers.Cards = append(out.Reviewers.Cards, NewReviewerCard(r, loc))
		}
	}

	if v.Stats.Err == nil {
		s := v.Stats.Stats
		out.Stats = StatsPanel{
			Available:        true,
			TotalProposals:   s.TotalProposals,
			TotalReviewers:   s.TotalReviewers,
			ActiveReviews:    s.ActiveReviewCount,
			CompletedReviews: s.CompletedReviewCount,
		}
	}
	return out
}
