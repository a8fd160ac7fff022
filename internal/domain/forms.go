package domain

// Form identifies one input form on the page.
type Form string

const (
	FormProposal   Form = "proposal"
	FormReviewer   Form = "reviewer"
	FormReview     Form = "review"
	FormAssignment Form = "assignment"
)

// Field names as they appear in forms and InvalidInput errors.
const (
	FieldRiskLevel          = "riskLevel"
	FieldEthicsScore        = "ethicsScore"
	FieldReviewPeriod       = "reviewPeriod"
	FieldExperienceYears    = "experienceYears"
	FieldReviewerRole       = "reviewerRole"
	FieldQualificationScore = "qualificationScore"
	FieldReviewProposalID   = "reviewProposalId"
	FieldReviewerID         = "reviewerId"
	FieldEthicsRating       = "ethicsRating"
	FieldRiskAssessment     = "riskAssessment"
	FieldRecommendation     = "recommendation"
	FieldAssignProposalID   = "assignProposalId"
	FieldReviewerIDs        = "reviewerIds"
)

// FormDefaults lists every field of each form with the value it resets to.
var FormDefaults = map[Form]map[string]string{
	FormProposal: {
		FieldRiskLevel:    "",
		FieldEthicsScore:  "",
		FieldReviewPeriod: "",
	},
	FormReviewer: {
		FieldExperienceYears:    "",
		FieldReviewerRole:       "0",
		FieldQualificationScore: "",
	},
	FormReview: {
		FieldReviewProposalID: "",
		FieldReviewerID:       "",
		FieldEthicsRating:     "",
		FieldRiskAssessment:   "",
		FieldRecommendation:   "1",
	},
	FormAssignment: {
		FieldAssignProposalID: "",
		FieldReviewerIDs:      "",
	},
}
