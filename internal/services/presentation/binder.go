package presentation

import (
	"math/big"
	"sync"
	"time"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/services/readmodel"
)

const notConnectedMessage = "Connect your wallet to load data."

type Network struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}

type PendingOperation struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Since string `json:"since"`
}

// Page is everything a render needs, captured at one instant.
type Page struct {
	Connected    bool                              `json:"connected"`
	Account      string                            `json:"account,omitempty"`
	Network      *Network                          `json:"network,omitempty"`
	Notification *Notification                     `json:"notification,omitempty"`
	Regions      Regions                           `json:"regions"`
	LoadedAt     *time.Time                        `json:"loadedAt,omitempty"`
	Forms        map[domain.Form]map[string]string `json:"forms"`
	Pending      []PendingOperation                `json:"pending"`
}

// Binder collects the latest view, connection state, form values and
// notifications, and turns them into a Page.
type Binder struct {
	Forms         *Forms
	Notifications *Notifications

	expected *big.Int
	loc      *time.Location

	mu      sync.RWMutex
	view    *readmodel.View
	session *domain.Session
	onChain bool
}

var (
	_ readmodel.Sink      = (*Binder)(nil)
	_ ports.NetworkStatus = (*Binder)(nil)
)

func NewBinder(forms *Forms, notes *Notifications, expected *big.Int, loc *time.Location) *Binder {
	if loc == nil {
		loc = time.UTC
	}
	return &Binder{Forms: forms, Notifications: notes, expected: expected, loc: loc}
}

// Publish stores v unless the session was dropped while it loaded.
func (b *Binder) Publish(v readmodel.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.session == nil {
		return
	}
	b.view = &v
}

// SetConnection records the session shown in the header. A nil session clears
// the header and the last loaded view.
func (b *Binder) SetConnection(s *domain.Session, onChain bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s == nil {
		b.session, b.onChain, b.view = nil, false, nil
		return
	}
	cp := *s
	b.session, b.onChain = &cp, onChain
}

func (b *Binder) Page(pending []PendingOperation) Page {
	b.mu.RLock()
	session, onChain, view := b.session, b.onChain, b.view
	b.mu.RUnlock()

	p := Page{
		Notification: b.Notifications.Current(),
		Forms:        b.Forms.All(),
		Pending:      pending,
	}
	if p.Pending == nil {
		p.Pending = []PendingOperation{}
	}
	if session != nil {
		p.Connected = true
		p.Account = ShortAddress(session.Account)
		p.Network = b.network(onChain)
	}
	if view == nil {
		p.Regions.Proposals.Message = notConnectedMessage
		p.Regions.Reviewers.Message = notConnectedMessage
		return p
	}
	p.Regions = Render(*view, b.loc)
	loaded := view.LoadedAt
	p.LoadedAt = &loaded
	return p
}

// Field returns one form value for templates, which cannot index by Form.
func (p Page) Field(form, field string) string {
	return p.Forms[domain.Form(form)][field]
}

func (b *Binder) network(onChain bool) *Network {
	name := NetworkName(b.expected)
	if onChain {
		return &Network{Text: "✓ " + name, OK: true}
	}
	return &Network{Text: "⚠ Wrong Network - Please switch to " + name}
}
