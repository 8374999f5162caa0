package reactivity

// Link joins one Dep and one Subscriber. It sits in the subscriber's
// dependency list (prevDep/nextDep) and the dep's subscriber list
// (prevSub/nextSub) at the same time.
type Link struct {
	dep *Dep
	sub Subscriber

	// version is -1 while the link has not been read in the subscriber's
	// current run, otherwise the dep version seen at the last read.
	version int64

	prevDep, nextDep *Link
	prevSub, nextSub *Link

	prevActiveLink *Link
}

func (l *Link) Dep() *Dep { return l.dep }

func (l *Link) Subscriber() Subscriber { return l.sub }

func (l *Link) Version() int64 { return l.version }

func (l *Link) NextDep() *Link { return l.nextDep }

func (l *Link) NextSub() *Link { return l.nextSub }

// addSub appends the link to its dep's subscriber list. A computed getting
// its first subscriber starts tracking and lazily subscribes to its own deps.
func addSub(link *Link) {
	dep := link.dep
	if c := dep.computed; c != nil && dep.subsTail == nil {
		c.flags |= FlagTracking | FlagDirty
		for l := c.deps; l != nil; l = l.nextDep {
			addSub(l)
		}
	}

	tail := dep.subsTail
	if tail == link {
		return
	}
	link.prevSub = tail
	link.nextSub = nil
	if tail != nil {
		tail.nextSub = link
	} else {
		dep.subsHead = link
	}
	dep.subsTail = link
}

// removeSub excises the link from its dep's subscriber list. When a computed
// loses its last subscriber it stops tracking and detaches from its own deps,
// so an unreferenced chain of computeds does not keep its sources busy.
func removeSub(link *Link) {
	dep := link.dep
	prev, next := link.prevSub, link.nextSub
	if prev != nil {
		prev.nextSub = next
		link.prevSub = nil
	}
	if next != nil {
		next.prevSub = prev
		link.nextSub = nil
	}
	if dep.subsTail == link {
		dep.subsTail = prev
	}
	if dep.subsHead == link {
		dep.subsHead = next
	}

	if c := dep.computed; c != nil && dep.subsTail == nil && c.flags&FlagTracking != 0 {
		c.flags &^= FlagTracking
		for l := c.deps; l != nil; l = l.nextDep {
			removeSub(l)
		}
	}
}

// removeDep excises the link from its subscriber's dependency list. The
// caller fixes the subscriber's head and tail.
func removeDep(link *Link) {
	prev, next := link.prevDep, link.nextDep
	if prev != nil {
		prev.nextDep = next
		link.prevDep = nil
	}
	if next != nil {
		next.prevDep = prev
		link.nextDep = nil
	}
}
