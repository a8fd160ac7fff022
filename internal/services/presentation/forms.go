package presentation

import (
	"sync"

	"ethicsreview/internal/domain"
	"ethicsreview/internal/ports"
)

// Forms holds the current value of every input field.
type Forms struct {
	mu     sync.RWMutex
	values map[domain.Form]map[string]string
}

var _ ports.FormResetter = (*Forms)(nil)

func NewForms() *Forms {
	f := &Forms{values: make(map[domain.Form]map[string]string)}
	for form := range domain.FormDefaults {
		f.Reset(form)
	}
	return f
}

// Set records submitted values. Fields that do not belong to form are ignored.
func (f *Forms) Set(form domain.Form, values map[string]string) {
	defaults, ok := domain.FormDefaults[form]
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for field, v := range values {
		if _, known := defaults[field]; known {
			f.values[form][field] = v
		}
	}
}

func (f *Forms) Reset(form domain.Form) {
	defaults, ok := domain.FormDefaults[form]
	if !ok {
		return
	}
	fresh := make(map[string]string, len(defaults))
	for field, v := range defaults {
		fresh[field] = v
	}
	f.mu.Lock()
	f.values[form] = fresh
	f.mu.Unlock()
}

func (f *Forms) Values(form domain.Form) map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.values[form]))
	for k, v := range f.values[form] {
		out[k] = v
	}
	return out
}

// All returns a copy of every form's values keyed by form then field.
func (f *Forms) All() map[domain.Form]map[string]string {
	out := make(map[domain.Form]map[string]string, len(domain.FormDefaults))
	for form := range domain.FormDefaults {
		out[form] = f.Values(form)
	}
	return out
}
