// Package testing provides a chart testing harness.
//
// # Quick Start
//
// Create a tester, pump a chart, and make assertions:
//
//	func TestMyChart(t *testing.T) {
//	    tester := charttest.NewChartTesterWithT(t)
//	    chart := charts.NewLineChart(series)
//	    if err := tester.PumpChart("sales", chart); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    if err := tester.PumpAndSettle(5 * time.Second); err != nil {
//	        t.Fatal(err)
//	    }
//	    if n := tester.Canvas("sales").Count(rendering.OpImage); n == 0 {
//	        t.Error("expected cached shapes to be blitted")
//	    }
//	}
//
// # Snapshot Testing
//
// Capture and compare the last frame of every group:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/sales.snapshot.json")
//
// Update snapshots with:
//
//	CHART_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Animation Testing
//
// Frames come from a manual clock, so animation progress is a function of
// the pumped time only:
//
//	tester.PumpFor(600 * time.Millisecond)
//	tester.Pump()
package testing
