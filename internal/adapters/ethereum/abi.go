package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// reviewABI is the call and event surface of the ethics review contract.
const reviewABI = `[
  {"type":"function","name":"submitResearchProposal","stateMutability":"nonpayable",
   "inputs":[{"name":"_riskLevel","type":"uint8"},{"name":"_ethicsScore","type":"uint8"},{"name":"_reviewPeriodDays","type":"uint256"}],
   "outputs":[{"name":"","type":"uint32"}]},
  {"type":"function","name":"registerAsReviewer","stateMutability":"nonpayable",
   "inputs":[{"name":"_experienceYears","type":"uint8"},{"name":"_role","type":"uint8"},{"name":"_qualificationScore","type":"uint32"}],
   "outputs":[{"name":"","type":"uint32"}]},
  {"type":"function","name":"submitAnonymousReview","stateMutability":"nonpayable",
   "inputs":[{"name":"_proposalId","type":"uint32"},{"name":"_reviewerId","type":"uint32"},{"name":"_ethicsRating","type":"uint8"},{"name":"_riskAssessment","type":"uint8"},{"name":"_recommendation","type":"uint8"}],
   "outputs":[]},
  {"type":"function","name":"assignReviewersToProposal","stateMutability":"nonpayable",
   "inputs":[{"name":"_proposalId","type":"uint32"},{"name":"_reviewerIds","type":"uint32[]"}],
   "outputs":[]},
  {"type":"function","name":"getProposalInfo","stateMutability":"view",
   "inputs":[{"name":"_proposalId","type":"uint32"}],
   "outputs":[{"name":"","type":"uint8"},{"name":"","type":"uint256"},{"name":"","type":"uint256"},{"name":"","type":"uint32"},{"name":"","type":"uint32"},{"name":"","type":"address"}]},
  {"type":"function","name":"getReviewerInfo","stateMutability":"view",
   "inputs":[{"name":"_reviewerId","type":"uint32"}],
   "outputs":[{"name":"","type":"uint8"},{"name":"","type":"bool"},{"name":"","type":"bool"},{"name":"","type":"uint256"},{"name":"","type":"uint256"}]},
  {"type":"function","name":"getReviewProgress","stateMutability":"view",
   "inputs":[{"name":"_proposalId","type":"uint32"}],
   "outputs":[{"name":"","type":"uint32[]"},{"name":"","type":"bool[]"}]},
  {"type":"function","name":"nextProposalId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
  {"type":"function","name":"nextReviewerId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint32"}]},
  {"type":"function","name":"admin","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"event","name":"ProposalSubmitted","anonymous":false,
   "inputs":[{"name":"proposalId","type":"uint32","indexed":true},{"name":"submitter","type":"address","indexed":true},{"name":"deadline","type":"uint256","indexed":false}]},
  {"type":"event","name":"ReviewerRegistered","anonymous":false,
   "inputs":[{"name":"reviewerId","type":"uint32","indexed":true},{"name":"role","type":"uint8","indexed":false}]},
  {"type":"event","name":"ReviewAssigned","anonymous":false,
   "inputs":[{"name":"proposalId","type":"uint32","indexed":true},{"name":"reviewerId","type":"uint32","indexed":true}]},
  {"type":"event","name":"ReviewSubmitted","anonymous":false,
   "inputs":[{"name":"proposalId","type":"uint32","indexed":true},{"name":"reviewerId","type":"uint32","indexed":true}]},
  {"type":"event","name":"ProposalStatusUpdated","anonymous":false,
   "inputs":[{"name":"proposalId","type":"uint32","indexed":true},{"name":"newStatus","type":"uint8","indexed":false}]},
  {"type":"event","name":"EthicsDecisionReached","anonymous":false,
   "inputs":[{"name":"proposalId","type":"uint32","indexed":true},{"name":"finalDecision","type":"uint8","indexed":false}]}
]`

// ReviewABI returns the parsed contract ABI.
func ReviewABI() abi.ABI { return parsedABI }

var parsedABI = mustParse(reviewABI)

func mustParse(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic("ethereum: invalid review ABI: " + err.Error())
	}
	return parsed
}
