package cart

// publisher fans a snapshot out to the subscribed observers in subscription order.
type publisher struct {
	nextID     uint64
	observers  []subscription
	publishing bool
	pending    []Snapshot
}

type subscription struct {
	id uint64
	fn Observer
}

// subscribe registers fn and returns a func that removes it. The returned
// func is safe to call more than once.
func (p *publisher) subscribe(fn Observer) func() {
	p.nextID++
	id := p.nextID
	p.observers = append(p.observers, subscription{id: id, fn: fn})
	return func() { p.unsubscribe(id) }
}

func (p *publisher) unsubscribe(id uint64) {
	for i, s := range p.observers {
		if s.id == id {
			p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
			return
		}
	}
}

// publish calls every observer registered at the time of the call. Observers
// that subscribe or unsubscribe during publish take effect on the next one.
//
// A publish issued by an observer is queued and delivered once the current
// fan-out has reached every observer, so all observers see snapshots in
// mutation order.
func (p *publisher) publish(snap Snapshot) {
	if p.publishing {
		p.pending = append(p.pending, snap)
		return
	}
	p.publishing = true
	defer func() {
		p.publishing = false
		p.pending = nil
	}()

	for {
		observers := p.observers
		for _, s := range observers {
			s.fn(snap.clone())
		}
		if len(p.pending) == 0 {
			return
		}
		snap = p.pending[0]
		p.pending = p.pending[1:]
	}
}

func (p *publisher) len() int {
	return len(p.observers)
}
