package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/services/commands"
)

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) {
	p := s.page(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, p); err != nil {
		s.Log.Error().Err(err).Msg("render page")
	}
}

func (s *Server) postConnect(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Sessions.Connect(r.Context())
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	id := s.startReload()
	s.respond(w, r, map[string]string{
		"account":   conn.Session.Account.Hex(),
		"chainId":   conn.Session.ChainID.String(),
		"operation": id,
	}, nil)
}

func (s *Server) postDisconnect(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Disconnect()
	s.respond(w, r, map[string]string{"status": "disconnected"}, nil)
}

func (s *Server) postReload(w http.ResponseWriter, r *http.Request) {
	if s.Sessions.Current() == nil {
		s.respond(w, r, nil, domain.ErrNotConnected)
		return
	}
	s.respond(w, r, map[string]string{"operation": s.startReload()}, nil)
}

func (s *Server) postCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.Tracker.Cancel(id) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "no such operation", Kind: "not_found"})
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.Log.Info().Str("op", id).Msg("operation cancelled")
	s.respond(w, r, map[string]string{"status": "cancelled"}, nil)
}

func (s *Server) postProposal(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, domain.FormProposal, func(v url.Values) (*commands.Command, error) {
		return commands.ParseProposal(commands.ProposalInput{
			RiskLevel:    v.Get(domain.FieldRiskLevel),
			EthicsScore:  v.Get(domain.FieldEthicsScore),
			ReviewPeriod: v.Get(domain.FieldReviewPeriod),
		})
	})
}

func (s *Server) postReviewer(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, domain.FormReviewer, func(v url.Values) (*commands.Command, error) {
		return commands.ParseReviewer(commands.ReviewerInput{
			ExperienceYears:    v.Get(domain.FieldExperienceYears),
			Role:               v.Get(domain.FieldReviewerRole),
			QualificationScore: v.Get(domain.FieldQualificationScore),
		})
	})
}

func (s *Server) postReview(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, domain.FormReview, func(v url.Values) (*commands.Command, error) {
		return commands.ParseReview(commands.ReviewInput{
			ProposalID:     v.Get(domain.FieldReviewProposalID),
			ReviewerID:     v.Get(domain.FieldReviewerID),
			EthicsRating:   v.Get(domain.FieldEthicsRating),
			RiskAssessment: v.Get(domain.FieldRiskAssessment),
			Recommendation: v.Get(domain.FieldRecommendation),
		})
	})
}

func (s *Server) postAssignment(w http.ResponseWriter, r *http.Request) {
	s.submit(w, r, domain.FormAssignment, func(v url.Values) (*commands.Command, error) {
		return commands.ParseAssignment(commands.AssignmentInput{
			ProposalID:  v.Get(domain.FieldAssignProposalID),
			ReviewerIDs: v.Get(domain.FieldReviewerIDs),
		})
	})
}

// submit records the typed values, validates synchronously and hands the
// network part to the tracker. The response never waits for confirmation.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, form domain.Form, parse func(url.Values) (*commands.Command, error)) {
	if err := r.ParseForm(); err != nil {
		s.respond(w, r, nil, domain.InvalidInput("", "malformed form body"))
		return
	}
	values := make(map[string]string, len(domain.FormDefaults[form]))
	for field := range domain.FormDefaults[form] {
		values[field] = r.PostForm.Get(field)
	}
	s.Binder.Forms.Set(form, values)

	conn := s.Sessions.Current()
	cmd, err := s.Commands.Prepare(conn, func() (*commands.Command, error) { return parse(r.PostForm) })
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	id := s.Tracker.Go(cmd.Operation, func(ctx context.Context) error {
		return s.Commands.Execute(ctx, conn, cmd)
	})
	s.respond(w, r, map[string]string{"operation": id}, nil)
}

// respond finishes a POST: JSON clients get a status and body, browsers are
// sent back to the page where the notification is already waiting.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, body interface{}, err error) {
	if !wantsJSON(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, body)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	writeJSON(w, statusFor(kind), errorBody{Error: err.Error(), Kind: string(kind), Field: domain.FieldOf(err)})
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindInvalidInput:
		return http.StatusBadRequest
	case domain.KindNotConnected, domain.KindWrongNetwork:
		return http.StatusConflict
	case domain.KindUserRejected:
		return http.StatusForbidden
	case domain.KindContractReverted:
		return http.StatusUnprocessableEntity
	case domain.KindProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
