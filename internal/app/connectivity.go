package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/secondary"
)

// DefaultProbeInterval is how often the background probe checks the remote.
const DefaultProbeInterval = 30 * time.Second

// ConnectivityMonitor tracks the last observed online/offline state and
// notifies subscribers on transitions. Online() reflects the last transition,
// not a live probe; ProbeOnce or the Start loop feed it.
type ConnectivityMonitor struct {
	probe    secondary.ConnectivityProbe
	interval time.Duration
	log      zerolog.Logger

	mu        sync.Mutex
	online    bool
	onOnline  []func()
	onOffline []func()

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityMonitor creates a monitor starting in the offline state.
func NewConnectivityMonitor(probe secondary.ConnectivityProbe, interval time.Duration, log zerolog.Logger) *ConnectivityMonitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &ConnectivityMonitor{
		probe:    probe,
		interval: interval,
		log:      log.With().Str("component", "connectivity").Logger(),
	}
}

// Online reports the last observed state.
func (m *ConnectivityMonitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// OnOnline registers a callback fired on every offline-to-online transition.
func (m *ConnectivityMonitor) OnOnline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOnline = append(m.onOnline, fn)
}

// OnOffline registers a callback fired on every online-to-offline transition.
func (m *ConnectivityMonitor) OnOffline(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOffline = append(m.onOffline, fn)
}

// SetOnline records a host connectivity signal. Callbacks fire only on a
// state transition, outside the lock.
func (m *ConnectivityMonitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	var fns []func()
	if online {
		fns = append(fns, m.onOnline...)
	} else {
		fns = append(fns, m.onOffline...)
	}
	m.mu.Unlock()

	if online {
		m.log.Info().Msg("connectivity restored")
	} else {
		m.log.Info().Msg("connectivity lost")
	}
	for _, fn := range fns {
		fn()
	}
}

// ProbeOnce pings the remote and feeds the result into SetOnline. Returns
// the observed state.
func (m *ConnectivityMonitor) ProbeOnce(ctx context.Context) bool {
	if m.probe == nil {
		m.SetOnline(false)
		return false
	}
	err := m.probe.Ping(ctx)
	m.SetOnline(err == nil)
	return err == nil
}

// Start launches the background probe loop. Stop with Stop.
func (m *ConnectivityMonitor) Start(ctx context.Context) {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.ProbeOnce(ctx)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.ProbeOnce(ctx)
			}
		}
	}()
}

// Stop halts the probe loop and waits for it to exit.
func (m *ConnectivityMonitor) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
		m.wg.Wait()
	}
}
