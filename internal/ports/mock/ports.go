package mock

import (
	"context"

	testifymock "github.com/stretchr/testify/mock"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

type Notifier struct {
	testifymock.Mock
}

var _ ports.Notifier = (*Notifier)(nil)

func (_m *Notifier) Error(msg string)   { _m.Called(msg) }
func (_m *Notifier) Success(msg string) { _m.Called(msg) }

type FormResetter struct {
	testifymock.Mock
}

var _ ports.FormResetter = (*FormResetter)(nil)

func (_m *FormResetter) Reset(form domain.Form) { _m.Called(form) }

type Reloader struct {
	testifymock.Mock
}

var _ ports.Reloader = (*Reloader)(nil)

func (_m *Reloader) Reload(ctx context.Context) { _m.Called(ctx) }

type NetworkStatus struct {
	testifymock.Mock
}

var _ ports.NetworkStatus = (*NetworkStatus)(nil)

func (_m *NetworkStatus) SetConnection(session *domain.Session, onExpectedChain bool) {
	_m.Called(session, onExpectedChain)
}

type ProjectionStore struct {
	testifymock.Mock
}

var _ ports.ProjectionStore = (*ProjectionStore)(nil)

func (_m *ProjectionStore) Checkpoint(ctx context.Context) (uint64, bool, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(uint64), ret.Bool(1), ret.Error(2)
}

func (_m *ProjectionStore) Apply(ctx context.Context, events []domain.ContractEvent, upTo uint64) error {
	return _m.Called(ctx, events, upTo).Error(0)
}

func (_m *ProjectionStore) Counters(ctx context.Context) (domain.LiveStats, error) {
	ret := _m.Called(ctx)
	s, _ := ret.Get(0).(domain.LiveStats)
	return s, ret.Error(1)
}
