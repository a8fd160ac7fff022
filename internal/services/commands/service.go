package commands

import (
	"context"

	"github.com/rs/zerolog"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
)

// Service validates form input and drives one state-changing contract call
// through signing, broadcast and confirmation. Errors are reported to the
// notifier here and returned for callers that want them.
type Service struct {
	forms   ports.FormResetter
	reload  ports.Reloader
	notify  ports.Notifier
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func New(forms ports.FormResetter, reload ports.Reloader, notify ports.Notifier, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{forms: forms, reload: reload, notify: notify, metrics: m, log: log}
}

func (s *Service) SubmitProposal(ctx context.Context, conn *ports.Connection, in ProposalInput) error {
	return s.run(ctx, conn, func() (*Command, error) { return ParseProposal(in) })
}

func (s *Service) RegisterReviewer(ctx context.Context, conn *ports.Connection, in ReviewerInput) error {
	return s.run(ctx, conn, func() (*Command, error) { return ParseReviewer(in) })
}

func (s *Service) SubmitReview(ctx context.Context, conn *ports.Connection, in ReviewInput) error {
	return s.run(ctx, conn, func() (*Command, error) { return ParseReview(in) })
}

func (s *Service) AssignReviewers(ctx context.Context, conn *ports.Connection, in AssignmentInput) error {
	return s.run(ctx, conn, func() (*Command, error) { return ParseAssignment(in) })
}

func (s *Service) run(ctx context.Context, conn *ports.Connection, parse func() (*Command, error)) error {
	cmd, err := s.Prepare(conn, parse)
	if err != nil {
		return err
	}
	return s.Execute(ctx, conn, cmd)
}

// Prepare checks the connection and validates input without touching the network.
func (s *Service) Prepare(conn *ports.Connection, parse func() (*Command, error)) (*Command, error) {
	if conn == nil {
		err := domain.Wrap(domain.KindNotConnected, "Please connect your wallet first", nil)
		s.notify.Error(err.Error())
		s.metrics.CommandDone("unknown", string(domain.KindNotConnected))
		return nil, err
	}
	cmd, err := parse()
	if err != nil {
		s.log.Debug().Str("field", domain.FieldOf(err)).Msg(err.Error())
		s.notify.Error(err.Error())
		s.metrics.CommandDone("unknown", string(domain.KindInvalidInput))
		return nil, err
	}
	return cmd, nil
}

// Execute submits a prepared command and waits for one confirmation. On success
// the command's form is reset and the read model reloaded once; on failure
// neither happens.
func (s *Service) Execute(ctx context.Context, conn *ports.Connection, cmd *Command) error {
	if conn == nil {
		return domain.ErrNotConnected
	}
	log := s.log.With().Str("operation", cmd.Operation).Logger()

	s.notify.Success(cmd.pending + " Please confirm transaction")
	tx, err := cmd.send(ctx, conn.Contract)
	if err != nil {
		return s.failed(log, cmd, err)
	}
	log.Info().Str("tx", tx.Hash().Hex()).Msg("transaction submitted")
	s.notify.Success("Transaction submitted. Waiting for confirmation...")
	if err := tx.Wait(ctx); err != nil {
		return s.failed(log, cmd, err)
	}
	log.Info().Str("tx", tx.Hash().Hex()).Msg("transaction confirmed")

	s.forms.Reset(cmd.Form)
	s.notify.Success(cmd.done)
	s.metrics.CommandDone(cmd.Operation, "success")
	s.reload.Reload(ctx)
	return nil
}

func (s *Service) failed(log zerolog.Logger, cmd *Command, err error) error {
	log.Error().Err(err).Str("kind", string(domain.KindOf(err))).Msg("command failed")
	s.notify.Error("Failed to " + cmd.verb + ": " + err.Error())
	s.metrics.CommandDone(cmd.Operation, string(domain.KindOf(err)))
	return err
}
