package worker

import "testing"

func TestAggregateSamplesSumsPerSession(t *testing.T) {
	batch := []*telemetrySample{
		{SessionID: "sess-1", Keystrokes: 10, Clicks: 2, TabSwitches: 1},
		{SessionID: "sess-1", Keystrokes: 5, Clicks: 3},
		{SessionID: "sess-2", Keystrokes: 7, TabSwitches: 2},
	}

	totals := aggregateSamples(batch)
	if len(totals) != 2 {
		t.Fatalf("sessions = %d, want 2", len(totals))
	}

	s1 := totals["sess-1"]
	if s1.Keystrokes != 15 || s1.Clicks != 5 || s1.TabSwitches != 1 {
		t.Errorf("sess-1 = %+v, want {15 5 1}", s1)
	}
	s2 := totals["sess-2"]
	if s2.Keystrokes != 7 || s2.Clicks != 0 || s2.TabSwitches != 2 {
		t.Errorf("sess-2 = %+v, want {7 0 2}", s2)
	}
}

func TestAggregateSamplesEmpty(t *testing.T) {
	if totals := aggregateSamples(nil); len(totals) != 0 {
		t.Errorf("totals = %v, want empty", totals)
	}
}
