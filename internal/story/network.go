package story

import "sync/atomic"

// Connectivity reports whether the device is online.
type Connectivity interface {
	Online() bool
}

// StaticNetwork is a Connectivity flag set by the caller.
type StaticNetwork struct {
	online atomic.Bool
}

func NewStaticNetwork(online bool) *StaticNetwork {
	n := &StaticNetwork{}
	n.online.Store(online)
	return n
}

func (n *StaticNetwork) Online() bool     { return n.online.Load() }
func (n *StaticNetwork) SetOnline(v bool) { n.online.Store(v) }
