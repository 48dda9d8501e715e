package services

import (
	"sync"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
)

// Notifier holds at most one live notification. Show replaces the
// current one unconditionally and bumps a generation counter; the
// auto-dismiss timer is owned by the caller (a tea.Tick in the
// workspace) and carries the generation it was armed for, so a timer
// superseded by a newer Show can never clear the wrong notification.
type Notifier struct {
	mu      sync.Mutex
	current domain.Notification
	visible bool
	gen     uint64
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Show replaces the live notification and returns the generation the
// caller should arm its dismiss timer with.
func (n *Notifier) Show(text string, severity domain.Severity) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.current = domain.Notification{Text: text, Severity: severity}
	n.visible = true
	return n.gen
}

// Dismiss hides the notification immediately. Pending timers for any
// generation become no-ops because the generation advances.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	n.visible = false
}

// DismissIf hides the notification only if gen still identifies the
// live one. Expired timers call this and silently lose.
func (n *Notifier) DismissIf(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen == gen {
		n.visible = false
	}
}

// Current returns the live notification, its generation, and whether it
// is visible.
func (n *Notifier) Current() (domain.Notification, uint64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.gen, n.visible
}
