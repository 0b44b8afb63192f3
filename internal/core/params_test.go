package core

import "testing"

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "Rates", Params: []Parameter{{Key: "i_rate", Type: ParamTypeFloat, Value: "0.1"}}},
		{Name: "Seeding", Params: []Parameter{{Key: "cluster", Type: ParamTypeBool, Value: "true"}}},
	}}
	p, ok := snap.Lookup("cluster")
	if !ok || p.Value != "true" {
		t.Fatalf("Lookup(cluster) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup found a missing key")
	}
}
