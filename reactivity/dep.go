package reactivity

// Dep is the bookkeeping object of one reactive source.
type Dep struct {
	sys     *System
	version uint64
	name    string

	// activeLink is the link of whichever subscriber is currently reading
	// this dep; it is saved and restored around nested runs.
	activeLink *Link

	subsHead, subsTail *Link

	// computed is set when this dep is the output side of a computed.
	computed *computed
}

func NewDep(sys *System) *Dep {
	return &Dep{sys: sys}
}

func (d *Dep) System() *System { return d.sys }

func (d *Dep) Version() uint64 { return d.version }

func (d *Dep) Name() string { return d.name }

func (d *Dep) SetName(name string) { d.name = name }

// FirstSub returns the oldest subscriber link.
func (d *Dep) FirstSub() *Link { return d.subsHead }

// Computed returns the computed owning this dep, or nil for a plain source.
func (d *Dep) Computed() Subscriber {
	if d.computed == nil {
		return nil
	}
	return d.computed
}

func (d *Dep) SubscriberCount() int {
	n := 0
	for link := d.subsHead; link != nil; link = link.nextSub {
		n++
	}
	return n
}

// Track records a read of this dep by the active subscriber, if any.
func (d *Dep) Track() {
	d.track(DebugInfo{Target: d, Op: OpGet})
}

// TrackWith is Track with debug information passed to OnTrack hooks.
func (d *Dep) TrackWith(info DebugInfo) {
	d.track(info)
}

func (d *Dep) track(info DebugInfo) *Link {
	s := d.sys
	active := s.activeSub
	if active == nil || !s.shouldTrack {
		return nil
	}
	b := active.base()

	link := d.activeLink
	if link == nil || link.sub != active {
		link = &Link{
			dep:            d,
			sub:            active,
			version:        int64(d.version),
			prevActiveLink: d.activeLink,
		}
		d.activeLink = link

		if b.depsTail == nil {
			b.deps = link
		} else {
			link.prevDep = b.depsTail
			b.depsTail.nextDep = link
		}
		b.depsTail = link

		if b.flags&FlagTracking != 0 {
			addSub(link)
		}
	} else {
		reused := link.version == -1
		link.version = int64(d.version)

		// Keep the dependency list in access order: a link reused from the
		// previous run moves to the tail.
		if reused && link.nextDep != nil {
			next := link.nextDep
			next.prevDep = link.prevDep
			if link.prevDep != nil {
				link.prevDep.nextDep = next
			}
			link.prevDep = b.depsTail
			link.nextDep = nil
			b.depsTail.nextDep = link
			b.depsTail = link
			if b.deps == link {
				b.deps = next
			}
		}
	}

	if b.onTrack != nil {
		b.onTrack(DebuggerEvent{Subscriber: active, DebugInfo: info})
	}
	return link
}

// Trigger records a write: the dep version and the global version are bumped
// and every subscriber is notified. The returned error is the first failure
// of the drain, if this call ended the outermost batch.
func (d *Dep) Trigger() error {
	return d.trigger(DebugInfo{Target: d, Op: OpSet})
}

// TriggerWith is Trigger with debug information passed to OnTrigger hooks.
func (d *Dep) TriggerWith(info DebugInfo) error {
	return d.trigger(info)
}

// Bump raises the dep version and the global version without notifying
// anyone. A later Notify delivers the write.
func (d *Dep) Bump() {
	d.version++
	d.sys.globalVersion++
}

// Notify notifies subscribers without bumping any version. Paired with Bump
// it splits Trigger in two; on its own it only reaches subscribers with a
// scheduler, since their deps look unchanged to a dirty check.
func (d *Dep) Notify(info DebugInfo) error {
	return d.notify(info)
}

func (d *Dep) trigger(info DebugInfo) error {
	d.Bump()
	return d.notify(info)
}

func (d *Dep) notify(info DebugInfo) (err error) {
	s := d.sys
	s.StartBatch()
	defer func() {
		if endErr := s.EndBatch(); err == nil {
			err = endErr
		}
	}()
	d.propagate(info)
	return nil
}

// propagate marks subscribers notified. The caller holds a batch open; drain
// errors surface from its EndBatch.
func (d *Dep) propagate(info DebugInfo) {
	for link := d.subsHead; link != nil; link = link.nextSub {
		b := link.sub.base()
		if b.onTrigger != nil && b.flags&FlagNotified == 0 {
			b.onTrigger(DebuggerEvent{Subscriber: link.sub, DebugInfo: info})
		}
	}

	for link := d.subsHead; link != nil; {
		next := link.nextSub
		if link.sub.notify() {
			link.sub.(*computed).dep.propagate(info)
		}
		link = next
	}
}
