package obs

import (
    "sort"
    "strings"
    "sync"
)

// Label is a key/value pair attached to measurements.
type Label struct{
    Key   string
    Value string
}

// Meter is a very small interface for emitting counters/histograms.
// Implementations may no-op or bridge to a metrics system.
type Meter interface {
    Counter(name string, value float64, labels ...Label)
    Histogram(name string, value float64, labels ...Label)
}

// NopMeter is a Meter that discards all measurements.
type NopMeter struct{}

func (NopMeter) Counter(name string, value float64, labels ...Label)   {}
func (NopMeter) Histogram(name string, value float64, labels ...Label) {}

// Summary aggregates histogram observations.
type Summary struct {
    Count uint64  `json:"count"`
    Sum   float64 `json:"sum"`
    Max   float64 `json:"max"`
}

// MemoryMeter keeps counters and histogram summaries in memory, keyed by
// name plus sorted labels ("name{k=v,...}"). It is safe for concurrent use.
type MemoryMeter struct {
    mu       sync.Mutex
    counters map[string]float64
    hists    map[string]Summary
}

func NewMemoryMeter() *MemoryMeter {
    return &MemoryMeter{counters: make(map[string]float64), hists: make(map[string]Summary)}
}

func (m *MemoryMeter) Counter(name string, value float64, labels ...Label) {
    k := seriesKey(name, labels)
    m.mu.Lock()
    m.counters[k] += value
    m.mu.Unlock()
}

func (m *MemoryMeter) Histogram(name string, value float64, labels ...Label) {
    k := seriesKey(name, labels)
    m.mu.Lock()
    s := m.hists[k]
    s.Count++
    s.Sum += value
    if value > s.Max {
        s.Max = value
    }
    m.hists[k] = s
    m.mu.Unlock()
}

// CounterValue returns the current value of one counter series.
func (m *MemoryMeter) CounterValue(name string, labels ...Label) float64 {
    m.mu.Lock()
    defer m.mu.Unlock()
    return m.counters[seriesKey(name, labels)]
}

// Snapshot copies all series.
func (m *MemoryMeter) Snapshot() (counters map[string]float64, hists map[string]Summary) {
    m.mu.Lock()
    defer m.mu.Unlock()
    counters = make(map[string]float64, len(m.counters))
    for k, v := range m.counters {
        counters[k] = v
    }
    hists = make(map[string]Summary, len(m.hists))
    for k, v := range m.hists {
        hists[k] = v
    }
    return counters, hists
}

func seriesKey(name string, labels []Label) string {
    if len(labels) == 0 {
        return name
    }
    ls := make([]string, len(labels))
    for i, l := range labels {
        ls[i] = l.Key + "=" + l.Value
    }
    sort.Strings(ls)
    return name + "{" + strings.Join(ls, ",") + "}"
}
