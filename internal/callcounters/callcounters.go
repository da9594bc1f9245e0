package callcounters

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// This package contains call counters: benchmarking counters that count how often certain field operations are called,
// grouped by field. They are intended to be displayed in benchmark reports.
//
// Counters are backed by a prometheus CounterVec with labels {field, op} on a private registry, so they can also be
// exposed by a program that wants to, via [Gatherer].
//
// Counters are organized in a tree for display and grouping: incrementing a counter also increments all its ancestors, e.g.
//
//	Expensive
//	  - Inv
//	  - Sqrt
//
// Incrementing Sqrt for field "E-130" also increments Expensive for "E-130".

// Id is the string that identifies a call counter. It should not contain whitespace, as it is used as a benchmark metric name.
type Id string

type callCounter struct {
	id          Id
	displayName string
	parent      Id
}

var (
	mu       sync.RWMutex
	counters = make(map[Id]*callCounter)

	registry   = prometheus.NewRegistry()
	operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pseudomersenne",
		Name:      "field_operations_total",
		Help:      "Number of calls to field operations, counted per field and operation.",
	}, []string{"field", "op"})
)

func init() {
	registry.MustRegister(operations)
}

// CreateCallCounter registers a new call counter with the given id, display name and parent (which may be "").
// The parent does not need to exist yet. It returns id for convenience, so it can be used as
//
//	var CallCounterInv = callcounters.CreateCallCounter("Inv", "Inversion", "Expensive")
//
// Registering the same id twice panics.
func CreateCallCounter(id Id, displayName string, parent Id) Id {
	if id == "" {
		panic("callcounters: trying to create a call counter with empty id")
	}
	if id == parent {
		panic("callcounters: a call counter cannot be its own parent")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, exists := counters[id]; exists {
		panic("callcounters: call counter " + string(id) + " was created twice")
	}
	if displayName == "" {
		displayName = string(id)
	}
	counters[id] = &callCounter{id: id, displayName: displayName, parent: parent}
	return id
}

// Exists checks whether a call counter with the given id was created.
func (id Id) Exists() bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := counters[id]
	return ok
}

// DisplayName returns the display name of the counter or id itself if the counter does not exist.
func (id Id) DisplayName() string {
	mu.RLock()
	defer mu.RUnlock()
	if cc, ok := counters[id]; ok {
		return cc.displayName
	}
	return string(id)
}

// Increment increments the counter and all its ancestors for the given field.
func (id Id) Increment(field string) {
	id.Add(field, 1)
}

// Add adds amount to the counter and all its ancestors for the given field.
func (id Id) Add(field string, amount int) {
	if amount <= 0 {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	// the depth bound guards against accidental parent cycles.
	for depth := 0; id != "" && depth <= len(counters); depth++ {
		operations.WithLabelValues(field, string(id)).Add(float64(amount))
		cc, ok := counters[id]
		if !ok {
			return
		}
		id = cc.parent
	}
}

// Count returns the current value of the counter for the given field.
func (id Id) Count(field string) int {
	var m dto.Metric
	if err := operations.WithLabelValues(field, string(id)).Write(&m); err != nil {
		panic("callcounters: could not read counter: " + err.Error())
	}
	return int(m.GetCounter().GetValue())
}

// CCReport is one line of a call counter report.
type CCReport struct {
	Tag   string // id of the counter (or display name, if requested)
	Field string
	Calls int
	Depth int // depth of the counter in the display tree
}

// Report returns the values of all counters, grouped by field and sorted in tree order.
// If onlyPositive is set, counters that were never incremented are omitted.
func Report(onlyPositive bool, useDisplayName bool) (ret []CCReport) {
	families, err := registry.Gather()
	if err != nil {
		panic("callcounters: could not gather counters: " + err.Error())
	}
	values := make(map[string]map[Id]int)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			var field string
			var id Id
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "field":
					field = label.GetValue()
				case "op":
					id = Id(label.GetValue())
				}
			}
			if values[field] == nil {
				values[field] = make(map[Id]int)
			}
			values[field][id] = int(metric.GetCounter().GetValue())
		}
	}

	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	mu.RLock()
	defer mu.RUnlock()
	children := make(map[Id][]Id)
	for id, cc := range counters {
		parent := cc.parent
		if _, ok := counters[parent]; !ok {
			parent = "" // counters with a parent that was never created are displayed as roots
		}
		children[parent] = append(children[parent], id)
	}
	for _, list := range children {
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	}

	var walk func(field string, id Id, depth int)
	walk = func(field string, id Id, depth int) {
		calls := values[field][id]
		if calls > 0 || !onlyPositive {
			tag := string(id)
			if useDisplayName {
				tag = counters[id].displayName
			}
			ret = append(ret, CCReport{Tag: tag, Field: field, Calls: calls, Depth: depth})
		}
		for _, child := range children[id] {
			walk(field, child, depth+1)
		}
	}
	for _, field := range fields {
		for _, root := range children[""] {
			walk(field, root, 0)
		}
	}
	return
}

// ResetAllCounters sets all counters to zero.
func ResetAllCounters() {
	operations.Reset()
}

// Gatherer exposes the private registry holding the counters.
func Gatherer() prometheus.Gatherer {
	return registry
}
