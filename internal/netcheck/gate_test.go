package netcheck

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateFunc(t *testing.T) {
	calls := 0
	g := GateFunc(func() bool {
		calls++
		return calls%2 == 1
	})
	assert.True(t, g.IsOnline())
	assert.False(t, g.IsOnline())
	assert.Equal(t, 2, calls)

	var nilGate GateFunc
	assert.False(t, nilGate.IsOnline())
	assert.True(t, Always.IsOnline())
}

func ipNet(s string) *net.IPNet {
	ip, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestInterfaceGate(t *testing.T) {
	cases := map[string]struct {
		ifaces []Interface
		err    error
		want   bool
	}{
		"listing fails": {err: errors.New("boom"), want: false},
		"no interfaces": {want: false},
		"loopback only": {
			ifaces: []Interface{{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8")}}},
			want:   false,
		},
		"down interface": {
			ifaces: []Interface{{Name: "eth0", Addrs: []net.Addr{ipNet("192.168.1.10/24")}}},
			want:   false,
		},
		"link local only": {
			ifaces: []Interface{{Name: "eth0", Flags: net.FlagUp, Addrs: []net.Addr{ipNet("fe80::1/64")}}},
			want:   false,
		},
		"addrs error": {
			ifaces: []Interface{{Name: "eth0", Flags: net.FlagUp, AddrsErr: errors.New("nope")}},
			want:   false,
		},
		"up with unicast": {
			ifaces: []Interface{
				{Name: "lo", Flags: net.FlagUp | net.FlagLoopback, Addrs: []net.Addr{ipNet("127.0.0.1/8")}},
				{Name: "wlan0", Flags: net.FlagUp, Addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("10.0.0.4")}}},
			},
			want: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			g := &InterfaceGate{list: func() ([]Interface, error) { return tc.ifaces, tc.err }}
			assert.Equal(t, tc.want, g.IsOnline())
		})
	}
}

func TestInterfaceGateRequeriesEveryCall(t *testing.T) {
	online := false
	g := &InterfaceGate{list: func() ([]Interface, error) {
		if !online {
			return nil, nil
		}
		return []Interface{{Name: "eth0", Flags: net.FlagUp, Addrs: []net.Addr{ipNet("192.168.1.2/24")}}}, nil
	}}
	assert.False(t, g.IsOnline())
	online = true
	assert.True(t, g.IsOnline())
}

func TestProbeGateAgainstListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	addr := ln.Addr().String()

	g := NewProbeGate(addr, time.Second)
	assert.True(t, g.IsOnline())

	require.NoError(t, ln.Close())
	assert.False(t, g.IsOnline())
}

func TestProbeGateUsesTimeout(t *testing.T) {
	var deadline time.Time
	g := &ProbeGate{address: "example.test:443", timeout: 5 * time.Millisecond, dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		deadline, _ = ctx.Deadline()
		assert.Equal(t, "tcp", network)
		assert.Equal(t, "example.test:443", address)
		return nil, context.DeadlineExceeded
	}}
	assert.False(t, g.IsOnline())
	assert.False(t, deadline.IsZero())

	assert.False(t, NewProbeGate("", 0).IsOnline())
}

func TestNewSelectsMode(t *testing.T) {
	always := New(ModeAlways, "", 0)
	assert.IsType(t, GateFunc(nil), always)
	assert.True(t, always.IsOnline())
	assert.IsType(t, &ProbeGate{}, New(ModeProbe, "example.test:443", time.Second))
	assert.IsType(t, &InterfaceGate{}, New(ModeInterface, "", 0))
	assert.IsType(t, &InterfaceGate{}, New("bogus", "", 0))

	assert.True(t, ModeProbe.Valid())
	assert.False(t, Mode("bogus").Valid())
	assert.Len(t, Modes(), 3)
}
