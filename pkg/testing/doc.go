// Package testing provides a deterministic harness for animation tests.
//
// # Quick Start
//
// Create a tester, animate a recorder and pump frames:
//
//	func TestFadeIn(t *testing.T) {
//	    tester := rosatest.NewTesterWithT(t)
//	    box := tester.NewRecorder("box")
//
//	    tester.Scheduler().Animate(animation.Params{
//	        Target: box,
//	        Props:  map[string]animation.Prop{"opacity": animation.FromTo(0, 1)},
//	    })
//
//	    tester.Pump(500 * time.Millisecond)
//	    if got := box.Last("opacity"); got != "0.875" {
//	        t.Errorf("opacity = %q", got)
//	    }
//	}
//
// # Snapshot Testing
//
// Capture every style write of every recorder and compare it against a
// golden file:
//
//	tester.PumpAndSettle(5 * time.Second)
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/fade.snapshot.json")
//
// Update snapshots with:
//
//	ROSA_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import rosatest "github.com/go-drift/rosa/pkg/testing"
package testing
