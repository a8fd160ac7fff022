package readmodel

import (
	"context"

	"github.com/rs/zerolog"

	"ethicsreview/internal/ports"
)

// ConnectionSource yields the live connection, or nil.
type ConnectionSource interface {
	Current() *ports.Connection
}

// Sink receives each completed view.
type Sink interface {
	Publish(View)
}

// Service reloads the read model for whatever connection is live.
type Service struct {
	loader *Loader
	conns  ConnectionSource
	sink   Sink
	log    zerolog.Logger
}

var _ ports.Reloader = (*Service)(nil)

func NewService(loader *Loader, conns ConnectionSource, sink Sink, log zerolog.Logger) *Service {
	return &Service{loader: loader, conns: conns, sink: sink, log: log}
}

// Reload is a no-op without a connection.
func (s *Service) Reload(ctx context.Context) {
	conn := s.conns.Current()
	if conn == nil {
		return
	}
	v := s.loader.LoadData(ctx, conn.Contract)
	s.log.Debug().
		Int("proposals", len(v.Proposals.Items)).
		Int("reviewers", len(v.Reviewers.Items)).
		Msg("read model loaded")
	s.sink.Publish(v)
}
