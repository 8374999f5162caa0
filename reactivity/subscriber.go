package reactivity

// Subscriber is anything that can be tracked: a ReactiveEffect or the
// subscriber side of a computed.
type Subscriber interface {
	Flags() Flags
	// FirstDep returns the head of the dependency list, in access order of
	// the last run.
	FirstDep() *Link

	base() *sub
	// notify reports whether the subscriber is a computed whose own
	// subscribers must be notified in turn.
	notify() bool
}

// sub holds the state common to every subscriber.
type sub struct {
	flags    Flags
	deps     *Link
	depsTail *Link
	name     string

	onTrack   func(DebuggerEvent)
	onTrigger func(DebuggerEvent)
}

func (s *sub) base() *sub { return s }

func (s *sub) Flags() Flags { return s.flags }

func (s *sub) FirstDep() *Link { return s.deps }

// Name is the debug label, empty unless set.
func (s *sub) Name() string { return s.name }

// prepareDeps marks every existing link as unused and points each dep's
// activeLink at it, so that reads in the coming run can be deduplicated
// with a version check.
func prepareDeps(s *sub) {
	for link := s.deps; link != nil; link = link.nextDep {
		link.version = -1
		link.prevActiveLink = link.dep.activeLink
		link.dep.activeLink = link
	}
}

// cleanupDeps drops links that were not read during the run that just
// finished and restores every dep's activeLink.
func cleanupDeps(s *sub) {
	var head *Link
	tail := s.depsTail
	for link := tail; link != nil; {
		prev := link.prevDep
		if link.version == -1 {
			if link == tail {
				tail = prev
			}
			removeSub(link)
			removeDep(link)
		} else {
			head = link
		}
		link.dep.activeLink = link.prevActiveLink
		link.prevActiveLink = nil
		link = prev
	}
	s.deps = head
	s.depsTail = tail
}

// isDirty walks only the subscriber's own dependency list. Computed deps are
// refreshed first so that a computed that re-evaluated to an equal value does
// not count as a change.
func isDirty(s *sub) bool {
	for link := s.deps; link != nil; link = link.nextDep {
		dep := link.dep
		if link.version != int64(dep.version) {
			return true
		}
		if dep.computed != nil {
			if !dep.computed.refresh() || link.version != int64(dep.version) {
				return true
			}
		}
	}
	return false
}
