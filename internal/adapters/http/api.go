package httpadapter

import (
	"context"
	"errors"
	"net/http"

	api "ethicsreview/internal/api"
	"ethicsreview/internal/domain"
	"ethicsreview/internal/services/presentation"
)

var _ api.StrictServerInterface = (*Server)(nil)

// Strict handler methods

func (s *Server) GetHealthz(context.Context, api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) GetView(ctx context.Context, _ api.GetViewRequestObject) (api.GetViewResponseObject, error) {
	return api.GetView200JSONResponse(toAPIView(s.page(ctx))), nil
}

func (s *Server) GetLiveStats(ctx context.Context, _ api.GetLiveStatsRequestObject) (api.GetLiveStatsResponseObject, error) {
	if s.Projection == nil {
		return api.GetLiveStatsdefaultJSONResponse{
			Body:       api.Error{Error: "event watching is disabled", Kind: "not_found"},
			StatusCode: http.StatusNotFound,
		}, nil
	}
	c, err := s.Projection.Counters(ctx)
	if err != nil {
		body, code := apiError(domain.Wrap(domain.KindCallFailed, "reading live stats", err))
		return api.GetLiveStatsdefaultJSONResponse{Body: body, StatusCode: code}, nil
	}
	return api.GetLiveStats200JSONResponse{
		ActiveReviews:    c.ActiveReviews,
		CompletedReviews: c.CompletedReviews,
		Decisions:        c.Decisions,
		LastBlock:        c.LastBlock,
		Synced:           c.Synced,
		TotalProposals:   c.TotalProposals,
		TotalReviewers:   c.TotalReviewers,
	}, nil
}

func (s *Server) GetProposalProgress(ctx context.Context, req api.GetProposalProgressRequestObject) (api.GetProposalProgressResponseObject, error) {
	fail := func(err error) (api.GetProposalProgressResponseObject, error) {
		body, code := apiError(err)
		return api.GetProposalProgressdefaultJSONResponse{Body: body, StatusCode: code}, nil
	}
	if req.Id == 0 {
		return fail(domain.InvalidInput("id", "Proposal ID is required"))
	}
	conn := s.Sessions.Current()
	if conn == nil {
		return fail(domain.ErrNotConnected)
	}
	ctx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	defer cancel()
	p, err := conn.Contract.ReviewProgress(ctx, req.Id)
	if err != nil {
		return fail(err)
	}
	resp := api.GetProposalProgress200JSONResponse{
		ProposalId:  p.ProposalID,
		ReviewerIds: p.ReviewerIDs,
		Completed:   p.Completed,
	}
	if resp.ReviewerIds == nil {
		resp.ReviewerIds, resp.Completed = []uint32{}, []bool{}
	}
	return resp, nil
}

func (s *Server) GetAdmin(ctx context.Context, _ api.GetAdminRequestObject) (api.GetAdminResponseObject, error) {
	conn := s.Sessions.Current()
	if conn == nil {
		body, code := apiError(domain.ErrNotConnected)
		return api.GetAdmindefaultJSONResponse{Body: body, StatusCode: code}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	defer cancel()
	admin, err := conn.Contract.Admin(ctx)
	if err != nil {
		body, code := apiError(err)
		return api.GetAdmindefaultJSONResponse{Body: body, StatusCode: code}, nil
	}
	return api.GetAdmin200JSONResponse{Admin: admin.Hex(), IsAdmin: admin == conn.Session.Account}, nil
}

// paramError answers a path parameter the generated router could not bind.
func paramError(w http.ResponseWriter, _ *http.Request, err error) {
	field := ""
	var pe *api.InvalidParamFormatError
	if errors.As(err, &pe) {
		field = pe.ParamName
	}
	writeError(w, domain.InvalidInput(field, "%s", err.Error()))
}

func apiError(err error) (api.Error, int) {
	kind := domain.KindOf(err)
	body := api.Error{Error: err.Error(), Kind: string(kind)}
	if f := domain.FieldOf(err); f != "" {
		body.Field = &f
	}
	return body, statusFor(kind)
}

func toAPIView(p presentation.Page) api.View {
	v := api.View{
		Connected: p.Connected,
		LoadedAt:  p.LoadedAt,
		Forms:     make(map[string]map[string]string, len(p.Forms)),
		Pending:   make([]api.PendingOperation, 0, len(p.Pending)),
		Regions: api.Regions{
			Proposals: api.ProposalRegion{Cards: make([]api.ProposalCard, 0, len(p.Regions.Proposals.Cards))},
			Reviewers: api.ReviewerRegion{Cards: make([]api.ReviewerCard, 0, len(p.Regions.Reviewers.Cards))},
			Stats: api.StatsPanel{
				Available:        p.Regions.Stats.Available,
				TotalProposals:   p.Regions.Stats.TotalProposals,
				TotalReviewers:   p.Regions.Stats.TotalReviewers,
				ActiveReviews:    p.Regions.Stats.ActiveReviews,
				CompletedReviews: p.Regions.Stats.CompletedReviews,
			},
		},
	}
	if p.Account != "" {
		account := p.Account
		v.Account = &account
	}
	if p.Network != nil {
		v.Network = &api.Network{Text: p.Network.Text, Ok: p.Network.OK}
	}
	if n := p.Notification; n != nil {
		v.Notification = &api.Notification{Kind: api.NotificationKind(n.Kind), Message: n.Message, ShownAt: n.ShownAt}
	}
	for form, values := range p.Forms {
		v.Forms[string(form)] = values
	}
	for _, op := range p.Pending {
		v.Pending = append(v.Pending, api.PendingOperation{Id: op.ID, Name: op.Name, Since: op.Since})
	}
	if msg := p.Regions.Proposals.Message; msg != "" {
		v.Regions.Proposals.Message = &msg
	}
	for _, c := range p.Regions.Proposals.Cards {
		v.Regions.Proposals.Cards = append(v.Regions.Proposals.Cards, api.ProposalCard{
			Id:          c.ID,
			Title:       c.Title,
			Status:      c.StatusText,
			StatusClass: c.StatusClass,
			Submitter:   c.Submitter,
			Submitted:   c.Submitted,
			Deadline:    c.Deadline,
			Progress:    c.Progress,
		})
	}
	if msg := p.Regions.Reviewers.Message; msg != "" {
		v.Regions.Reviewers.Message = &msg
	}
	for _, c := range p.Regions.Reviewers.Cards {
		v.Regions.Reviewers.Cards = append(v.Regions.Reviewers.Cards, api.ReviewerCard{
			Id:           c.ID,
			Title:        c.Title,
			Role:         c.RoleText,
			RoleClass:    c.RoleClass,
			Status:       c.Status,
			TotalReviews: c.TotalReviews,
			Registered:   c.Registered,
		})
	}
	return v
}
