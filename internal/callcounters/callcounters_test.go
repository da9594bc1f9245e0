package callcounters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testRoot  = CreateCallCounter("TestRoot", "All test operations", "")
	testChild = CreateCallCounter("TestChild", "", "TestRoot")
	testLeaf  = CreateCallCounter("TestLeaf", "Leaf", "TestChild")
)

func TestIncrementPropagatesToParents(t *testing.T) {
	ResetAllCounters()
	defer ResetAllCounters()

	testLeaf.Increment("F1")
	testLeaf.Add("F1", 2)
	testChild.Increment("F1")
	testChild.Increment("F2")
	testLeaf.Add("F2", -5) // ignored

	assert.Equal(t, 3, testLeaf.Count("F1"))
	assert.Equal(t, 4, testChild.Count("F1"))
	assert.Equal(t, 4, testRoot.Count("F1"))
	assert.Equal(t, 1, testRoot.Count("F2"))
	assert.Equal(t, 0, testLeaf.Count("F2"))
}

func TestReport(t *testing.T) {
	ResetAllCounters()
	defer ResetAllCounters()

	testLeaf.Increment("F1")
	report := Report(true, false)
	require.Len(t, report, 3)
	assert.Equal(t, CCReport{Tag: "TestRoot", Field: "F1", Calls: 1, Depth: 0}, report[0])
	assert.Equal(t, CCReport{Tag: "TestChild", Field: "F1", Calls: 1, Depth: 1}, report[1])
	assert.Equal(t, CCReport{Tag: "TestLeaf", Field: "F1", Calls: 1, Depth: 2}, report[2])

	report = Report(true, true)
	assert.Equal(t, "All test operations", report[0].Tag)
	assert.Equal(t, "TestChild", report[1].Tag)

	families, err := Gatherer().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "pseudomersenne_field_operations_total", families[0].GetName())
}

func TestCreateCallCounter(t *testing.T) {
	assert.True(t, testRoot.Exists())
	assert.False(t, Id("NeverCreated").Exists())
	assert.Equal(t, "Leaf", testLeaf.DisplayName())
	assert.Equal(t, "NeverCreated", Id("NeverCreated").DisplayName())
	assert.Panics(t, func() { CreateCallCounter("TestRoot", "", "") })
	assert.Panics(t, func() { CreateCallCounter("", "", "") })
	assert.Panics(t, func() { CreateCallCounter("Self", "", "Self") })
}
