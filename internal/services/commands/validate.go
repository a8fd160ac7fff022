package commands

import (
	"context"
	"math"
	"math/big"
	"strconv"
	"strings"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// Raw form values, exactly as typed.
type ProposalInput struct {
	RiskLevel    string
	EthicsScore  string
	ReviewPeriod string
}

type ReviewerInput struct {
	ExperienceYears    string
	Role               string
	QualificationScore string
}

type ReviewInput struct {
	ProposalID     string
	ReviewerID     string
	EthicsRating   string
	RiskAssessment string
	Recommendation string
}

type AssignmentInput struct {
	ProposalID  string
	ReviewerIDs string
}

// Command is a validated state-changing call, ready to submit.
type Command struct {
	Operation string
	Form      domain.Form
	verb      string
	pending   string
	done      string
	send      func(ctx context.Context, c ports.ContractWriter) (ports.Tx, error)
}

func ParseProposal(in ProposalInput) (*Command, error) {
	risk, err := required(domain.FieldRiskLevel, "Risk level", in.RiskLevel)
	if err != nil {
		return nil, err
	}
	ethics, err := required(domain.FieldEthicsScore, "Ethics score", in.EthicsScore)
	if err != nil {
		return nil, err
	}
	period, err := required(domain.FieldReviewPeriod, "Review period", in.ReviewPeriod)
	if err != nil {
		return nil, err
	}
	if risk < 1 || risk > 10 {
		return nil, domain.InvalidInput(domain.FieldRiskLevel, "Risk level must be between 1 and 10")
	}
	if ethics < 1 || ethics > 100 {
		return nil, domain.InvalidInput(domain.FieldEthicsScore, "Ethics score must be between 1 and 100")
	}
	if period < 7 || period > 90 {
		return nil, domain.InvalidInput(domain.FieldReviewPeriod, "Review period must be between 7 and 90 days")
	}
	return &Command{
		Operation: "submit_proposal",
		Form:      domain.FormProposal,
		verb:      "submit proposal",
		pending:   "Submitting proposal...",
		done:      "Research proposal submitted successfully!",
		send: func(ctx context.Context, c ports.ContractWriter) (ports.Tx, error) {
			return c.SubmitResearchProposal(ctx, uint8(risk), uint8(ethics), big.NewInt(period))
		},
	}, nil
}

func ParseReviewer(in ReviewerInput) (*Command, error) {
	years, err := required(domain.FieldExperienceYears, "Experience", in.ExperienceYears)
	if err != nil {
		return nil, err
	}
	// The role is an enumeration index the contract interprets; only its width is checked.
	role, err := strconv.ParseUint(strings.TrimSpace(in.Role), 10, 8)
	if err != nil {
		return nil, domain.InvalidInput(domain.FieldReviewerRole, "Reviewer role is required")
	}
	score, err := required(domain.FieldQualificationScore, "Qualification score", in.QualificationScore)
	if err != nil {
		return nil, err
	}
	if years < 1 || years > 20 {
		return nil, domain.InvalidInput(domain.FieldExperienceYears, "Experience must be between 1 and 20 years")
	}
	if score < 1 || score > 1000 {
		return nil, domain.InvalidInput(domain.FieldQualificationScore, "Qualification score must be between 1 and 1000")
	}
	return &Command{
		Operation: "register_reviewer",
		Form:      domain.FormReviewer,
		verb:      "register reviewer",
		pending:   "Registering as reviewer...",
		done:      "Reviewer registration successful!",
		send: func(ctx context.Context, c ports.ContractWriter) (ports.Tx, error) {
			return c.RegisterAsReviewer(ctx, uint8(years), uint8(role), uint32(score))
		},
	}, nil
}

func ParseReview(in ReviewInput) (*Command, error) {
	proposalID, err := requiredID(domain.FieldReviewProposalID, "Proposal ID", in.ProposalID)
	if err != nil {
		return nil, err
	}
	reviewerID, err := requiredID(domain.FieldReviewerID, "Reviewer ID", in.ReviewerID)
	if err != nil {
		return nil, err
	}
	rating, err := required(domain.FieldEthicsRating, "Ethics rating", in.EthicsRating)
	if err != nil {
		return nil, err
	}
	risk, err := required(domain.FieldRiskAssessment, "Risk assessment", in.RiskAssessment)
	if err != nil {
		return nil, err
	}
	rec, err := required(domain.FieldRecommendation, "Recommendation", in.Recommendation)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 10 {
		return nil, domain.InvalidInput(domain.FieldEthicsRating, "Ethics rating must be between 1 and 10")
	}
	if risk < 1 || risk > 10 {
		return nil, domain.InvalidInput(domain.FieldRiskAssessment, "Risk assessment must be between 1 and 10")
	}
	if rec < 1 || rec > math.MaxUint8 {
		return nil, domain.InvalidInput(domain.FieldRecommendation, "Recommendation is out of range")
	}
	return &Command{
		Operation: "submit_review",
		Form:      domain.FormReview,
		verb:      "submit review",
		pending:   "Submitting review...",
		done:      "Review submitted successfully!",
		send: func(ctx context.Context, c ports.ContractWriter) (ports.Tx, error) {
			return c.SubmitAnonymousReview(ctx, proposalID, reviewerID, uint8(rating), uint8(risk), uint8(rec))
		},
	}, nil
}

func ParseAssignment(in AssignmentInput) (*Command, error) {
	proposalID, err := requiredID(domain.FieldAssignProposalID, "Proposal ID", in.ProposalID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ReviewerIDs) == "" {
		return nil, domain.InvalidInput(domain.FieldReviewerIDs, "Reviewer IDs are required")
	}
	ids := ParseReviewerIDs(in.ReviewerIDs)
	if len(ids) < 2 || len(ids) > 5 {
		return nil, domain.InvalidInput(domain.FieldReviewerIDs, "Please assign between 2 and 5 reviewers")
	}
	return &Command{
		Operation: "assign_reviewers",
		Form:      domain.FormAssignment,
		verb:      "assign reviewers",
		pending:   "Assigning reviewers...",
		done:      "Reviewers assigned successfully!",
		send: func(ctx context.Context, c ports.ContractWriter) (ports.Tx, error) {
			return c.AssignReviewersToProposal(ctx, proposalID, ids)
		},
	}, nil
}

// ParseReviewerIDs splits on commas and whitespace and keeps tokens that are
// unsigned 32-bit integers, in input order. Everything else is dropped.
func ParseReviewerIDs(raw string) []uint32 {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	ids := make([]uint32, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint32(v))
	}
	return ids
}

// required parses a non-zero integer; blank, zero and non-numeric values are all
// treated as missing.
func required(field, label, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v == 0 {
		return 0, domain.InvalidInput(field, "%s is required", label)
	}
	return v, nil
}

func requiredID(field, label, raw string) (uint32, error) {
	v, err := required(field, label, raw)
	if err != nil {
		return 0, err
	}
	if v < 1 || v > math.MaxUint32 {
		return 0, domain.InvalidInput(field, "%s is out of range", label)
	}
	return uint32(v), nil
}
