package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
)

func fadeIn(t *testing.T, tester *Tester, target animation.Styler, d time.Duration) {
	t.Helper()
	_, err := tester.Animate(animation.Params{
		Target:   target,
		Duration: animation.Dur(d),
		Ease:     "linear",
		Props:    map[string]animation.Prop{"opacity": animation.FromTo(0, 1)},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestCaptureSnapshot_Tracks(t *testing.T) {
	tester := NewTesterWithT(t)
	a := tester.NewRecorder("a")
	tester.NewRecorder("idle")
	fadeIn(t, tester, a, 100*time.Millisecond)
	tester.Pump(50 * time.Millisecond)

	snap := tester.CaptureSnapshot()
	if len(snap.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(snap.Targets))
	}
	if snap.Targets[0].Name != "a" || snap.Targets[1].Name != "idle" {
		t.Errorf("unexpected target order: %+v", snap.Targets)
	}
	if len(snap.Targets[1].Writes) != 0 {
		t.Errorf("expected no writes for idle recorder, got %d", len(snap.Targets[1].Writes))
	}
	want := Sample{Frame: 1, AtMS: 50, Property: "opacity", Value: "0.5"}
	if got := snap.Targets[0].Writes[1]; got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSnapshot_Diff_Equal(t *testing.T) {
	tester := NewTesterWithT(t)
	fadeIn(t, tester, tester.NewRecorder("box"), 100*time.Millisecond)
	tester.Pump(20 * time.Millisecond)

	a := tester.CaptureSnapshot()
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff != "" {
		t.Errorf("expected no diff for identical snapshots, got:\n%s", diff)
	}
}

func TestSnapshot_Diff_Different(t *testing.T) {
	tester := NewTesterWithT(t)
	fadeIn(t, tester, tester.NewRecorder("box"), 100*time.Millisecond)

	tester.Pump(20 * time.Millisecond)
	a := tester.CaptureSnapshot()

	tester.Pump(20 * time.Millisecond)
	b := tester.CaptureSnapshot()

	if diff := a.Diff(b); diff == "" {
		t.Error("expected diff for different snapshots")
	}
}

func TestSnapshot_UpdateAndMatch(t *testing.T) {
	tester := NewTesterWithT(t)
	fadeIn(t, tester, tester.NewRecorder("box"), 100*time.Millisecond)
	if err := tester.PumpAndSettle(time.Second); err != nil {
		t.Fatal(err)
	}

	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "testdata", "box.snapshot.json")

	if err := snap.UpdateFile(path); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("snapshot file should exist after UpdateFile")
	}

	// MatchesFile should pass now
	snap.MatchesFile(t, path)
}

func TestSnapshot_MatchesFile_MissingFile(t *testing.T) {
	t.Setenv("ROSA_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	tester.NewRecorder("box")
	snap := tester.CaptureSnapshot()

	// Use a recorder to intercept the Fatal
	failed := false
	sub := &fatalRecorder{name: t.Name(), onFatal: func() { failed = true }}
	snap.MatchesFile(sub, "/nonexistent/path/snap.json")

	if !failed {
		t.Error("expected MatchesFile to fail for missing file")
	}
}

func TestSnapshot_MatchesFile_Mismatch(t *testing.T) {
	t.Setenv("ROSA_UPDATE_SNAPSHOTS", "")
	tester := NewTesterWithT(t)
	fadeIn(t, tester, tester.NewRecorder("box"), 100*time.Millisecond)

	tester.Pump(10 * time.Millisecond)
	first := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	first.UpdateFile(path)

	tester.Pump(10 * time.Millisecond)
	second := tester.CaptureSnapshot()

	errored := false
	sub := &errorRecorder{name: t.Name(), onError: func() { errored = true }}
	second.MatchesFile(sub, path)

	if !errored {
		t.Error("expected MatchesFile to report error for mismatch")
	}
}

func TestSnapshot_UpdateMode(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.NewRecorder("box")
	snap := tester.CaptureSnapshot()

	dir := t.TempDir()
	path := filepath.Join(dir, "update.snapshot.json")

	t.Setenv("ROSA_UPDATE_SNAPSHOTS", "1")
	snap.MatchesFile(t, path)

	// File should now exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("snapshot file should be created in update mode")
	}
}

// fatalRecorder intercepts Fatalf calls for testing MatchesFile failures.
type fatalRecorder struct {
	name    string
	onFatal func()
}

func (r *fatalRecorder) Fatalf(format string, args ...any) { r.onFatal() }
func (r *fatalRecorder) Errorf(format string, args ...any) {}
func (r *fatalRecorder) Helper()                           {}
func (r *fatalRecorder) Name() string                      { return r.name }

// errorRecorder intercepts Errorf calls for testing MatchesFile mismatches.
type errorRecorder struct {
	name    string
	onError func()
}

func (r *errorRecorder) Fatalf(format string, args ...any) {}
func (r *errorRecorder) Errorf(format string, args ...any) { r.onError() }
func (r *errorRecorder) Helper()                           {}
func (r *errorRecorder) Name() string                      { return r.name }
