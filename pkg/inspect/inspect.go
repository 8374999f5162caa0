// Package inspect takes read-only snapshots of a reactivity graph for
// debugging and renders them as Graphviz DOT.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/signalgraph/pkg/inspect/templates"
	"github.com/delaneyj/signalgraph/reactivity"
)

var ErrUnknownRoot = errors.New("inspect: unsupported root")

const (
	KindSignal   = "signal"
	KindComputed = "computed"
	KindEffect   = "effect"
)

type (
	Node = templates.Node
	Edge = templates.Edge
)

// Graph is a snapshot of every dep and subscriber reachable from a set of
// roots, in both directions.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

type (
	depOwner interface{ Dep() *reactivity.Dep }
	subOwner interface {
		Subscriber() reactivity.Subscriber
	}
	named interface{ Name() string }
)

// Snapshot walks the graph from roots. A root is a *reactivity.Dep, a
// reactivity.Subscriber, or anything exposing one through a Dep or
// Subscriber method (signals and computeds).
func Snapshot(roots ...any) (*Graph, error) {
	w := &walker{
		g:     &Graph{},
		ids:   map[any]uint64{},
		seen:  mapset.NewThreadUnsafeSet[any](),
		edges: mapset.NewThreadUnsafeSet[[2]uint64](),
	}
	for _, root := range roots {
		switch r := root.(type) {
		case *reactivity.Dep:
			w.push(r)
		case subOwner:
			w.push(r.Subscriber())
		case reactivity.Subscriber:
			w.push(r)
		case depOwner:
			w.push(r.Dep())
		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownRoot, root)
		}
	}
	w.run()
	return w.g, nil
}

type walker struct {
	g     *Graph
	ids   map[any]uint64
	seen  mapset.Set[any]
	edges mapset.Set[[2]uint64]
	queue []any
}

// key folds a computed's subscriber and dep halves into one node.
func key(item any) any {
	if s, ok := item.(reactivity.Subscriber); ok {
		if d, ok := s.(depOwner); ok {
			return d.Dep()
		}
	}
	return item
}

func (w *walker) push(item any) {
	k := key(item)
	if w.seen.Contains(k) {
		return
	}
	w.seen.Add(k)
	w.queue = append(w.queue, k)
	w.node(k)
}

func (w *walker) node(k any) uint64 {
	if id, ok := w.ids[k]; ok {
		return id
	}
	ordinal := len(w.g.Nodes)
	n := Node{}
	switch v := k.(type) {
	case *reactivity.Dep:
		n.Kind = KindSignal
		n.Label = v.Name()
		n.Version = v.Version()
		if c := v.Computed(); c != nil {
			n.Kind = KindComputed
			n.Flags = c.Flags().String()
		}
	case reactivity.Subscriber:
		n.Kind = KindEffect
		n.Flags = v.Flags().String()
		if nm, ok := v.(named); ok {
			n.Label = nm.Name()
		}
	}
	if n.Label == "" {
		n.Label = n.Kind + "#" + strconv.Itoa(ordinal)
	}
	n.ID = xxhash.Sum64String(n.Label + "/" + strconv.Itoa(ordinal))

	w.ids[k] = n.ID
	w.g.Nodes = append(w.g.Nodes, n)
	return n.ID
}

func (w *walker) edge(link *reactivity.Link, subscribed bool) {
	from := w.node(key(link.Dep()))
	to := w.node(key(link.Subscriber()))
	if !w.edges.Add([2]uint64{from, to}) {
		return
	}
	w.g.Edges = append(w.g.Edges, Edge{
		From:       from,
		To:         to,
		Version:    link.Version(),
		Subscribed: subscribed,
	})
}

func (w *walker) run() {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		var sub reactivity.Subscriber
		switch v := item.(type) {
		case *reactivity.Dep:
			for link := v.FirstSub(); link != nil; link = link.NextSub() {
				w.edge(link, true)
				w.push(link.Subscriber())
			}
			sub = v.Computed()
		case reactivity.Subscriber:
			sub = v
		}
		if sub == nil {
			continue
		}
		tracking := sub.Flags().Has(reactivity.FlagTracking)
		for link := sub.FirstDep(); link != nil; link = link.NextDep() {
			w.edge(link, tracking)
			w.push(link.Dep())
		}
	}
}

// Node returns the first node with the given label.
func (g *Graph) Node(label string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// Subscribers returns the nodes subscribed to the node with the given id.
func (g *Graph) Subscribers(id uint64) []Node {
	var out []Node
	for _, e := range g.Edges {
		if e.From != id {
			continue
		}
		for _, n := range g.Nodes {
			if n.ID == e.To {
				out = append(out, n)
			}
		}
	}
	return out
}

func (g *Graph) DOT(name string) string {
	return templates.Dot(name, g.Nodes, g.Edges)
}

func (g *Graph) WriteDOT(w io.Writer, name string) {
	templates.WriteDot(w, name, g.Nodes, g.Edges)
}
