// Package netcheck answers whether the host currently looks able to reach
// the network. Answers are computed on every call and never cached.
package netcheck

import (
	"context"
	"net"
	"time"
)

// Gate reports whether a fetch should be attempted.
type Gate interface {
	IsOnline() bool
}

// GateFunc adapts a plain function to the Gate interface.
type GateFunc func() bool

// IsOnline implements Gate.
func (f GateFunc) IsOnline() bool {
	if f == nil {
		return false
	}
	return f()
}

// Always is a Gate that never blocks a fetch.
var Always Gate = GateFunc(func() bool { return true })

// Interface is the subset of net.Interface the interface gate inspects.
type Interface struct {
	Name     string
	Flags    net.Flags
	Addrs    []net.Addr
	AddrsErr error
}

// InterfaceGate reports online when at least one interface is up, is not a
// loopback device and carries a global unicast address.
type InterfaceGate struct {
	list func() ([]Interface, error)
}

// NewInterfaceGate returns a gate backed by the host's interface table.
func NewInterfaceGate() *InterfaceGate {
	return &InterfaceGate{list: systemInterfaces}
}

// IsOnline implements Gate.
func (g *InterfaceGate) IsOnline() bool {
	list := systemInterfaces
	if g != nil && g.list != nil {
		list = g.list
	}
	ifaces, err := list()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if usable(iface) {
			return true
		}
	}
	return false
}

func usable(iface Interface) bool {
	if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
		return false
	}
	if iface.AddrsErr != nil {
		return false
	}
	for _, addr := range iface.Addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		}
		if ip != nil && ip.IsGlobalUnicast() {
			return true
		}
	}
	return false
}

func systemInterfaces() ([]Interface, error) {
	raw, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]Interface, 0, len(raw))
	for _, iface := range raw {
		addrs, addrErr := iface.Addrs()
		out = append(out, Interface{
			Name:     iface.Name,
			Flags:    iface.Flags,
			Addrs:    addrs,
			AddrsErr: addrErr,
		})
	}
	return out, nil
}

// DialFunc matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// ProbeGate reports online when a TCP connection to address can be opened
// within timeout. The connection is closed immediately.
type ProbeGate struct {
	address string
	timeout time.Duration
	dial    DialFunc
}

// DefaultProbeTimeout bounds a single probe.
const DefaultProbeTimeout = 2 * time.Second

// NewProbeGate returns a gate that dials address ("host:port").
func NewProbeGate(address string, timeout time.Duration) *ProbeGate {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	d := &net.Dialer{}
	return &ProbeGate{address: address, timeout: timeout, dial: d.DialContext}
}

// IsOnline implements Gate.
func (g *ProbeGate) IsOnline() bool {
	if g == nil || g.address == "" || g.dial == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	conn, err := g.dial(ctx, "tcp", g.address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// Mode names a gate implementation in configuration.
type Mode string

const (
	ModeInterface Mode = "interface"
	ModeProbe     Mode = "probe"
	ModeAlways    Mode = "always"
)

// Modes lists the accepted configuration values.
func Modes() []Mode {
	return []Mode{ModeInterface, ModeProbe, ModeAlways}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeInterface, ModeProbe, ModeAlways:
		return true
	}
	return false
}

// New builds the gate for mode. probeAddress is only used by ModeProbe.
// Unknown modes fall back to the interface gate.
func New(mode Mode, probeAddress string, timeout time.Duration) Gate {
	switch mode {
	case ModeAlways:
		return Always
	case ModeProbe:
		return NewProbeGate(probeAddress, timeout)
	default:
		return NewInterfaceGate()
	}
}
