// Package stats keeps lightweight service-level counters for the send flow:
// distinct clients are estimated with a HyperLogLog sketch so the collector
// stays O(1) in memory however many connections come through.
package stats

import (
	"net"
	"sync"
	"time"

	"github.com/axiomhq/hyperloglog"
)

type Collector struct {
	mu            sync.Mutex
	startTime     time.Time
	uniqueClients *hyperloglog.Sketch
	sessions      uint64
	selections    map[string]uint64
}

func NewCollector() *Collector {
	return &Collector{
		startTime:     time.Now(),
		uniqueClients: hyperloglog.New14(),
		selections:    map[string]uint64{},
	}
}

// RecordConnection notes a new session and its client address.
func (c *Collector) RecordConnection(remoteAddr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions++
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	c.uniqueClients.Insert([]byte(host))
}

// RecordSelection counts which assets users pick.
func (c *Collector) RecordSelection(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selections[symbol]++
}

type Snapshot struct {
	UptimeSeconds  float64           `json:"uptimeSeconds"`
	Sessions       uint64            `json:"sessions"`
	UniqueClients  uint64            `json:"uniqueClients"`
	AssetSelection map[string]uint64 `json:"assetSelection"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	selections := make(map[string]uint64, len(c.selections))
	for k, v := range c.selections {
		selections[k] = v
	}

	return Snapshot{
		UptimeSeconds:  time.Since(c.startTime).Seconds(),
		Sessions:       c.sessions,
		UniqueClients:  c.uniqueClients.Estimate(),
		AssetSelection: selections,
	}
}
