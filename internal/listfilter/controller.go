package listfilter

import (
	"strings"
	"sync"
	"time"
)

// DebounceDelay is the quiet period after the last search keystroke before a filter pass runs.
const DebounceDelay = 300 * time.Millisecond

// Card is a rendered list item.
type Card interface {
	Attr(name string) string
	// SetHidden toggles the hidden class and the inline display:none together.
	SetHidden(hidden bool)
}

// Controls exposes the current values of the search box and the two selectors.
type Controls interface {
	Query() string
	Location() string
	Band() string
}

// Page is the rendered document the controller attaches to.
// Controls returns nil when the page has no filter form.
type Page interface {
	Controls() Controls
	Cards() []Card
}

// Timer is the part of *time.Timer the controller needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through StdAfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

// StdAfterFunc wraps time.AfterFunc.
func StdAfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// CachedCard is the snapshot of one card taken at Init.
type CachedCard struct {
	Card          Card
	RoleNameLower string
	Location      string
	Band          string
}

// State of a Controller.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
)

func (s State) String() string {
	if s == StateInitialized {
		return "initialized"
	}
	return "uninitialized"
}

// Controller owns the card cache and the debounce timer for one page load.
// The cache is taken once; cards added to the page later are not seen until a new Controller is built.
type Controller struct {
	mu        sync.Mutex
	state     State
	controls  Controls
	cache     []CachedCard
	afterFunc AfterFunc
	timer     Timer
	gen       uint64
}

// NewController returns an uninitialized controller. A nil afterFunc means the real clock.
func NewController(afterFunc AfterFunc) *Controller {
	if afterFunc == nil {
		afterFunc = StdAfterFunc
	}
	return &Controller{afterFunc: afterFunc}
}

// Init snapshots the page. It reports false and stays uninitialized when the page has
// no controls or no cards. Calling Init on an initialized controller keeps the first snapshot.
func (c *Controller) Init(page Page) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateInitialized {
		return true
	}
	if page == nil {
		return false
	}
	controls := page.Controls()
	cards := page.Cards()
	if controls == nil || len(cards) == 0 {
		return false
	}

	cache := make([]CachedCard, 0, len(cards))
	for _, card := range cards {
		if card == nil {
			continue
		}
		cache = append(cache, CachedCard{
			Card:          card,
			RoleNameLower: strings.ToLower(card.Attr(AttrRoleName)),
			Location:      card.Attr(AttrLocation),
			Band:          card.Attr(AttrBand),
		})
	}
	if len(cache) == 0 {
		return false
	}

	c.controls = controls
	c.cache = cache
	c.state = StateInitialized
	return true
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cached returns a copy of the snapshot taken at Init.
func (c *Controller) Cached() []CachedCard {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]CachedCard, len(c.cache))
	copy(out, c.cache)
	return out
}

// SearchInput restarts the debounce window; the pass runs once the input has been idle for DebounceDelay.
func (c *Controller) SearchInput() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInitialized {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	c.timer = c.afterFunc(DebounceDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// a newer keystroke or Close superseded this timer
		if gen != c.gen || c.state != StateInitialized {
			return
		}
		c.timer = nil
		c.applyLocked()
	})
}

// LocationChanged filters immediately.
func (c *Controller) LocationChanged() { c.Apply() }

// BandChanged filters immediately.
func (c *Controller) BandChanged() { c.Apply() }

// Apply runs one filter pass against the current control values.
func (c *Controller) Apply() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateInitialized {
		return
	}
	c.applyLocked()
}

func (c *Controller) applyLocked() {
	crit := Criteria{
		Query:    c.controls.Query(),
		Location: c.controls.Location(),
		Band:     c.controls.Band(),
	}
	for _, cc := range c.cache {
		cc.Card.SetHidden(!crit.Matches(cc))
	}
}

// Close cancels a pending search pass and drops the snapshot.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	c.cache = nil
	c.controls = nil
	c.state = StateUninitialized
}
