// Package engine implements declarative focus-group management for an
// element tree: container attributes declare a navigation behavior, the
// engine discovers each group's items, keeps exactly one of them reachable
// by sequential navigation (roving reachability), and drives directional
// navigation between them.
package engine

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/bnema/rove/internal/dom"
)

// ErrNoFocusable is returned when Options lacks the focusability predicate.
var ErrNoFocusable = errors.New("focusable predicate is required")

// ErrNoGeometry is returned when Options lacks the geometry oracle.
var ErrNoGeometry = errors.New("geometry oracle is required")

// Options configures an Engine. Focusable and Geometry are required; the
// rest have workable zero values.
type Options struct {
	Focusable Focusable
	Geometry  Geometry
	// Focus moves platform focus. Nil means navigation updates state but
	// nothing receives focus, which is enough for headless use.
	Focus FocusRequester
	// Post schedules a rebuild tick. Rebuild work posted within one tick
	// for one group coalesces into a single run. Nil runs ticks
	// synchronously at the next safe point.
	Post func(func())
	// InferRoles enables accessibility role inference from the behavior
	// token.
	InferRoles bool
	// NativeSupport reports whether the platform already implements the
	// group attribute. When it returns true, Install is a no-op unless
	// ForceInstall is set.
	NativeSupport func() bool
	ForceInstall  bool

	Logger zerolog.Logger
}

// Engine owns the group registry and the rebuild scheduler. One engine per
// embedding context; Install and Uninstall are its lifecycle, and both are
// idempotent. Handlers are designed for a single logical event thread, but
// every mutation of group state is serialized behind one mutex so a
// multi-threaded embedding keeps the invariants.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	logger zerolog.Logger

	groups   map[*dom.Element]*Group
	attrs    *attrManager
	rebuilds *coalescer[*dom.Element]

	// rewriting is set while the engine holds mu and may write attributes.
	// Those writes echo back through the embedding's mutation handler;
	// HandleTreeChange drops them instead of deadlocking on mu.
	rewriting atomic.Bool

	root      *dom.Element
	installed bool

	// lastFocus tracks the most recent confirmed focus target, used to
	// classify a focus-in as entry from outside a group.
	lastFocus *dom.Element
	// pendingFocus marks a focus request issued by the engine itself, so
	// its confirmation is not mistaken for an external arrival.
	pendingFocus *dom.Element

	onRebuild      func(g *Group, items []*dom.Element)
	onActiveChange func(g *Group, item *dom.Element)
}

// New creates an engine. The engine does nothing until Install is called.
func New(opts Options) (*Engine, error) {
	if opts.Focusable == nil {
		return nil, ErrNoFocusable
	}
	if opts.Geometry == nil {
		return nil, ErrNoGeometry
	}

	e := &Engine{
		opts:   opts,
		logger: opts.Logger.With().Str("component", "focus-engine").Logger(),
		groups: make(map[*dom.Element]*Group),
		attrs:  newAttrManager(),
	}
	e.rebuilds = newCoalescer[*dom.Element](e.postFunc())

	return e, nil
}

func (e *Engine) postFunc() func(func()) {
	if e.opts.Post != nil {
		return e.opts.Post
	}
	return func(fn func()) { fn() }
}

// lock acquires the state mutex and flags the engine as the source of any
// mutation notifications emitted until unlock.
func (e *Engine) lock() {
	e.mu.Lock()
	e.rewriting.Store(true)
}

func (e *Engine) unlock() {
	e.rewriting.Store(false)
	e.mu.Unlock()
}

// SetOnRebuild registers the "rebuild completed" notification. It fires
// after the group's new state is fully committed.
func (e *Engine) SetOnRebuild(fn func(g *Group, items []*dom.Element)) {
	e.mu.Lock()
	e.onRebuild = fn
	e.mu.Unlock()
}

// SetOnActiveChange registers the "active item changed" notification. It
// fires after the roving attribute transition completes.
func (e *Engine) SetOnActiveChange(fn func(g *Group, item *dom.Element)) {
	e.mu.Lock()
	e.onActiveChange = fn
	e.mu.Unlock()
}

// Install scans the tree under root and starts managing every group
// container found. A second call is a no-op, and the whole call is a no-op
// when native platform support is detected and not overridden. Reports
// whether the engine is installed afterwards.
func (e *Engine) Install(root *dom.Element) bool {
	e.mu.Lock()
	if e.installed {
		e.mu.Unlock()
		return true
	}
	if e.opts.NativeSupport != nil && e.opts.NativeSupport() && !e.opts.ForceInstall {
		e.mu.Unlock()
		e.logger.Debug().Msg("native support detected, install skipped")
		return false
	}
	e.installed = true
	e.root = root
	e.mu.Unlock()

	e.Scan()
	return true
}

// Uninstall tears the engine down: every managed element gets its original
// attributes back and all group records are dropped. The engine can be
// reinstalled afterwards.
func (e *Engine) Uninstall() {
	e.lock()
	if !e.installed {
		e.unlock()
		return
	}
	// in-flight ticks of the destroyed coalescer run as no-ops; a fresh
	// one lets the engine be reinstalled
	e.rebuilds.Destroy()
	e.rebuilds = newCoalescer[*dom.Element](e.postFunc())
	e.attrs.restoreAll()
	e.groups = make(map[*dom.Element]*Group)
	e.root = nil
	e.installed = false
	e.lastFocus = nil
	e.pendingFocus = nil
	e.unlock()

	e.logger.Debug().Msg("engine uninstalled")
}

// Scan walks the installed tree and registers every group container,
// shadow subtrees included. Already-known containers are rebuilt.
func (e *Engine) Scan() {
	e.lock()
	if !e.installed || e.root == nil {
		e.unlock()
		return
	}
	containers := collectContainers(e.root)
	fires := make([]func(), 0, len(containers))
	for _, c := range containers {
		fires = append(fires, e.registerLocked(c))
	}
	e.unlock()

	for _, fire := range fires {
		fire()
	}
}

// Register starts managing a container (or rebuilds it when already
// known) and returns its handle.
func (e *Engine) Register(container *dom.Element) *Group {
	e.lock()
	fire := e.registerLocked(container)
	g := e.groups[container]
	e.unlock()

	fire()
	return g
}

// Group returns the handle for a registered container.
func (e *Engine) Group(container *dom.Element) (*Group, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.groups[container]
	return g, ok
}

// Groups returns all registered group handles.
func (e *Engine) Groups() []*Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Group, 0, len(e.groups))
	for _, g := range e.groups {
		out = append(out, g)
	}
	return out
}

// HandleKeyName filters and dispatches a raw key identifier. Unrecognized
// identifiers are ignored.
func (e *Engine) HandleKeyName(target *dom.Element, name string) bool {
	key, ok := ParseKey(name)
	if !ok {
		return false
	}
	return e.HandleKey(target, key)
}

// HandleKey processes a navigation key delivered to target. Returns true
// when the key was consumed by a group, including presses absorbed as
// no-ops at a boundary. Keys inside text-editing contexts are never
// consumed.
func (e *Engine) HandleKey(target *dom.Element, key Key) bool {
	if target == nil || key == KeyNone {
		return false
	}
	if isEditingContext(target) {
		return false
	}

	e.lock()
	if !e.installed {
		e.unlock()
		return false
	}
	g, index := e.groupOfItemLocked(target)
	if g == nil || g.tokens.Behavior == BehaviorNone {
		e.unlock()
		return false
	}

	next := index
	if g.tokens.Grid {
		if g.gridPos == noGridPos {
			// active item unplaced: absorb until something focuses an item
			e.unlock()
			return true
		}
		nextPos := nextGridPos(g.tokens, key, g.gridPos, g.gridRows)
		item := itemAt(g.gridRows, nextPos)
		if item == nil {
			e.unlock()
			return true
		}
		next = indexOf(g.items, item)
	} else {
		next = nextLinearIndex(g.tokens, key, index, len(g.items), e.opts.Geometry.Flow(g.element))
	}

	if next == index || next < 0 {
		e.unlock()
		return true
	}

	fire := e.commitActiveLocked(g, next)
	e.unlock()

	fire()
	return true
}

// HandleFocusIn processes a confirmed focus arrival on target. External
// arrivals on a group's sequentially reachable item redirect to the
// remembered last-focused item when memory is enabled and the memory still
// resolves; every confirmed arrival on an item updates the group's memory
// and roving state.
func (e *Engine) HandleFocusIn(target *dom.Element) {
	if target == nil {
		return
	}

	e.lock()
	if !e.installed {
		e.unlock()
		return
	}

	engineInitiated := e.pendingFocus == target
	e.pendingFocus = nil

	g, index := e.groupOfItemLocked(target)
	if g == nil {
		e.lastFocus = target
		e.unlock()
		return
	}

	prevGroup, _ := e.groupOfItemLocked(e.lastFocus)
	enteredFromOutside := !engineInitiated && prevGroup != g

	var fire func()
	if enteredFromOutside && g.tokens.Memory && index == g.activeIndex {
		if remembered := g.memory.resolve(g.items); remembered != nil && remembered != target {
			// sequential entry lands on the last-used item instead
			idx := indexOf(g.items, remembered)
			fire = e.commitActiveLocked(g, idx)
			e.lastFocus = remembered
			e.unlock()
			fire()
			return
		}
	}

	if index != g.activeIndex {
		fire = e.commitRovingLocked(g, index)
	}
	g.memory.remember(target)
	e.lastFocus = target
	e.unlock()

	if fire != nil {
		fire()
	}
}

// HandleTreeChange reacts to "the subtree under target may have changed":
// group containers inside added subtrees are registered, containers inside
// removed subtrees are unregistered with their items restored, and every
// ancestor group of target is marked dirty for a coalesced rebuild.
func (e *Engine) HandleTreeChange(target *dom.Element, added, removed []*dom.Element) {
	if e.rewriting.Load() {
		// echo of the engine's own attribute write
		return
	}

	e.lock()
	if !e.installed {
		e.unlock()
		return
	}

	var fires []func()

	for _, r := range removed {
		e.unregisterSubtreeLocked(r)
	}

	for _, a := range added {
		for _, c := range collectContainers(a) {
			if _, known := e.groups[c]; !known {
				fires = append(fires, e.registerLocked(c))
			}
		}
	}

	if target != nil {
		// the group attribute itself may have appeared or disappeared
		_, known := e.groups[target]
		switch {
		case !known && target.HasAttr(AttrGroup) && target.IsConnected():
			fires = append(fires, e.registerLocked(target))
		case known && !target.HasAttr(AttrGroup):
			e.teardownGroupLocked(e.groups[target])
		}

		for _, g := range e.ancestorGroupsLocked(target) {
			fires = append(fires, e.scheduleRebuildLocked(g))
		}
	}
	e.unlock()

	for _, fire := range fires {
		fire()
	}
}

// registerLocked creates or rebuilds the group record for container and
// returns the deferred notification.
func (e *Engine) registerLocked(container *dom.Element) func() {
	g, known := e.groups[container]
	if !known {
		g = &Group{
			engine:      e,
			element:     container,
			activeIndex: -1,
			gridPos:     noGridPos,
		}
		e.groups[container] = g
		e.logger.Debug().Str("tag", container.Tag).Msg("group registered")
	}
	return e.rebuildLocked(g)
}

// rebuildLocked recomputes every derived field of the group: tokens,
// items, grid rows, active index, roving attributes and inferred roles.
// Returns the deferred "rebuild completed" notification.
func (e *Engine) rebuildLocked(g *Group) func() {
	raw, _ := g.element.Attr(AttrGroup)
	g.tokens = ParseTokens(raw)
	if !g.tokens.Memory {
		g.memory.forget()
	}

	prevActive := g.activeItemLocked()
	oldItems := g.items

	// judge managed items by their authored reachability value so the
	// engine's own "-1" does not evict them; anything else that makes the
	// predicate fail (disabled, inert) evicts for real
	focusable := func(el *dom.Element) bool {
		return e.opts.Focusable(el) || e.attrs.originalFocusable(el, e.opts.Focusable)
	}
	g.items = discoverItems(g.element, g.tokens, focusable)

	// items that left the group get their original attributes back,
	// unless another group claims them now
	inNew := make(map[*dom.Element]bool, len(g.items))
	for _, el := range g.items {
		inNew[el] = true
	}
	for _, el := range oldItems {
		if !inNew[el] && e.attrs.managed(el) && !e.claimedLocked(el, g) {
			e.attrs.restore(el)
		}
	}

	g.activeIndex = indexOf(g.items, prevActive)
	if g.activeIndex < 0 {
		if remembered := g.memory.resolve(g.items); g.tokens.Memory && remembered != nil {
			g.activeIndex = indexOf(g.items, remembered)
		} else if len(g.items) > 0 {
			g.activeIndex = 0
		}
	}

	if g.tokens.Grid {
		g.gridRows = buildGridRows(g.items, e.opts.Geometry)
		g.gridPos = locateInRows(g.gridRows, g.activeItemLocked())
	} else {
		g.gridRows = nil
		g.gridPos = noGridPos
	}

	if len(g.items) > 0 {
		e.attrs.applyRoving(g.items, g.activeIndex)
	}
	if e.opts.InferRoles {
		e.attrs.applyRoles(g.element, g.items, g.tokens.Behavior)
	}

	e.logger.Debug().
		Str("behavior", g.tokens.Behavior.String()).
		Int("items", len(g.items)).
		Int("active", g.activeIndex).
		Msg("group rebuilt")

	cb := e.onRebuild
	if cb == nil {
		return func() {}
	}
	items := g.itemsCopyLocked()
	return func() { cb(g, items) }
}

// scheduleRebuildLocked marks the group dirty. The returned func posts the
// coalesced tick and must run after the engine lock is released, since a
// synchronous Post would re-enter the lock.
func (e *Engine) scheduleRebuildLocked(g *Group) func() {
	el := g.element
	return func() {
		e.rebuilds.Post(el, func() {
			e.lock()
			g, ok := e.groups[el]
			if !ok {
				e.unlock()
				return
			}
			fire := e.rebuildLocked(g)
			e.unlock()
			fire()
		})
	}
}

// commitActiveLocked moves the roving designation to index and returns the
// deferred focus request plus notification.
func (e *Engine) commitActiveLocked(g *Group, index int) func() {
	fire := e.commitRovingLocked(g, index)
	item := g.activeItemLocked()
	e.pendingFocus = item
	focus := e.opts.Focus
	return func() {
		if focus != nil && item != nil {
			focus.RequestFocus(item)
		}
		fire()
	}
}

// commitRovingLocked updates activeIndex and the reachability attributes
// without requesting focus. Returns the deferred notification.
func (e *Engine) commitRovingLocked(g *Group, index int) func() {
	g.activeIndex = index
	if g.tokens.Grid {
		g.gridPos = locateInRows(g.gridRows, g.activeItemLocked())
	}
	e.attrs.applyRoving(g.items, g.activeIndex)

	cb := e.onActiveChange
	item := g.activeItemLocked()
	if cb == nil {
		return func() {}
	}
	return func() { cb(g, item) }
}

// unregisterSubtreeLocked destroys every group whose container sits inside
// the removed subtree and restores the attributes of every managed element
// inside it.
func (e *Engine) unregisterSubtreeLocked(root *dom.Element) {
	if root == nil {
		return
	}
	for container, g := range e.groups {
		if root.Contains(container) {
			e.teardownGroupLocked(g)
		}
	}
	// stray snapshots of elements in the removed subtree
	for el := range e.attrs.snapshots {
		if root.Contains(el) && !e.claimedLocked(el, nil) {
			e.attrs.restore(el)
		}
	}
}

// teardownGroupLocked destroys one group record, restoring the original
// attributes of its container and of every item no other group claims.
func (e *Engine) teardownGroupLocked(g *Group) {
	e.rebuilds.Drop(g.element)
	delete(e.groups, g.element)
	for _, el := range g.items {
		if !e.claimedLocked(el, nil) {
			e.attrs.restore(el)
		}
	}
	e.attrs.restore(g.element)
	e.logger.Debug().Str("tag", g.element.Tag).Msg("group unregistered")
}

// groupOfItemLocked finds the group whose item list contains el, walking
// up from el to the nearest registered container.
func (e *Engine) groupOfItemLocked(el *dom.Element) (*Group, int) {
	if el == nil {
		return nil, -1
	}
	container := el.Closest(func(a *dom.Element) bool {
		if a == el {
			return false
		}
		_, ok := e.groups[a]
		return ok
	})
	for container != nil {
		g := e.groups[container]
		if idx := indexOf(g.items, el); idx >= 0 {
			return g, idx
		}
		parent := container.Parent()
		if parent == nil && container.Host() != nil {
			parent = container.Host()
		}
		if parent == nil {
			return nil, -1
		}
		container = parent.Closest(func(a *dom.Element) bool {
			_, ok := e.groups[a]
			return ok
		})
	}
	return nil, -1
}

// ancestorGroupsLocked returns every registered group on the ancestor
// chain of el, el included.
func (e *Engine) ancestorGroupsLocked(el *dom.Element) []*Group {
	var out []*Group
	for cur := el; cur != nil; {
		if g, ok := e.groups[cur]; ok {
			out = append(out, g)
		}
		if cur.Parent() != nil {
			cur = cur.Parent()
		} else {
			cur = cur.Host()
		}
	}
	return out
}

// claimedLocked reports whether el is an item of any registered group
// other than exclude.
func (e *Engine) claimedLocked(el *dom.Element, exclude *Group) bool {
	for _, g := range e.groups {
		if g == exclude {
			continue
		}
		if indexOf(g.items, el) >= 0 {
			return true
		}
	}
	return false
}

// collectContainers walks a subtree (shadow subtrees included) and returns
// every element bearing the group attribute, in tree order.
func collectContainers(root *dom.Element) []*dom.Element {
	var out []*dom.Element
	var walk func(*dom.Element)
	walk = func(el *dom.Element) {
		if el.HasAttr(AttrGroup) {
			out = append(out, el)
		}
		if sr := el.ShadowRoot(); sr != nil {
			for _, c := range sr.Children() {
				walk(c)
			}
		}
		for _, c := range el.Children() {
			walk(c)
		}
	}
	walk(root)
	return out
}

// isEditingContext reports whether navigation keys belong to the element's
// own text editing rather than to group navigation.
func isEditingContext(el *dom.Element) bool {
	switch el.Tag {
	case "textarea", "select":
		return true
	case "input":
		switch t, _ := el.Attr("type"); t {
		case "button", "checkbox", "radio", "submit", "reset", "range":
			return false
		default:
			return true
		}
	}
	if v, ok := el.Attr("contenteditable"); ok && v != "false" {
		return true
	}
	return false
}

func indexOf(items []*dom.Element, el *dom.Element) int {
	if el == nil {
		return -1
	}
	for i, item := range items {
		if item == el {
			return i
		}
	}
	return -1
}
