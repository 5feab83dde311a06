package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/rosa/cmd/rosa/internal/scene"
	"github.com/go-drift/rosa/pkg/dom"
)

const testPage = `<html><body><h1 id="logo">Rosa</h1><ul><li>a</li><li>b</li><li>c</li></ul></body></html>`

const testScene = `
fps: 10
animations:
  - target: "#logo"
    ease: linear
    props:
      translateX: ["0px", "100px"]
  - target: li
    stagger: {step: 0.25}
    props:
      opacity: [0, 1]
      color: ["red", "blue"]
`

// capture redirects stdout and stderr for the duration of the test.
func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

func writeFiles(t *testing.T) (string, string) {
	t.Helper()
	t.Setenv(scene.FPSEnv, "")
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	sceneFile := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(page, []byte(testPage), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(sceneFile, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	return page, sceneFile
}

func TestParsePlayArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    playOptions
		wantErr bool
	}{
		{"positional only", []string{"a.html", "s.yaml"}, playOptions{page: "a.html", scene: "s.yaml"}, false},
		{"all flags", []string{"a.html", "--fps", "30", "s.yaml", "--trace", "--out", "x.html", "--seed", "7"},
			playOptions{page: "a.html", scene: "s.yaml", fps: 30, trace: true, out: "x.html", seed: 7}, false},
		{"inline values", []string{"a.html", "s.yaml", "--fps=24", "--frames=6"},
			playOptions{page: "a.html", scene: "s.yaml", fps: 24, frames: 6}, false},
		{"missing scene", []string{"a.html"}, playOptions{}, true},
		{"extra positional", []string{"a", "b", "c"}, playOptions{}, true},
		{"fps without value", []string{"a", "b", "--fps"}, playOptions{}, true},
		{"zero fps", []string{"a", "b", "--fps", "0"}, playOptions{}, true},
		{"bad seed", []string{"a", "b", "--seed", "x"}, playOptions{}, true},
		{"unknown flag", []string{"a", "b", "--loop"}, playOptions{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlayArgs("play", tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePlayArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePlayArgs(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	out, _ := capture(t)
	if err := Execute(nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"play", "preview", "inspect", "curves", "version"} {
		if !strings.Contains(out.String(), "  "+name) {
			t.Errorf("help does not list %s:\n%s", name, out.String())
		}
	}

	out.Reset()
	if err := Execute([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Rosa CLI version "+Version) {
		t.Errorf("version output = %q", out.String())
	}

	out.Reset()
	if err := Execute([]string{"play", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "rosa play <page.html>") {
		t.Errorf("play help = %q", out.String())
	}
}

func TestExecuteUnknownCommand(t *testing.T) {
	_, errOut := capture(t)
	if err := Execute([]string{"render"}); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
	if !strings.Contains(errOut.String(), `unknown command "render"`) {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestCurves(t *testing.T) {
	out, _ := capture(t)
	if err := runCurves(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "outCubic (default)\n") {
		t.Errorf("curve list does not mark the default:\n%s", out.String())
	}
	if err := runCurves([]string{"wobble"}); err == nil {
		t.Error("expected an error for an unknown curve")
	}

	lines := sampleCurve("linear")
	if len(lines) != curveSamples {
		t.Fatalf("got %d samples, want %d", len(lines), curveSamples)
	}
	if want := "0.5   0.5000  |" + strings.Repeat("#", 20); lines[5] != want {
		t.Errorf("lines[5] = %q, want %q", lines[5], want)
	}
	if want := "0.0   0.0000  |"; lines[0] != want {
		t.Errorf("lines[0] = %q, want %q", lines[0], want)
	}
	if !strings.HasSuffix(lines[10], strings.Repeat("#", 40)) {
		t.Errorf("lines[10] = %q", lines[10])
	}
}

func TestSplitCount(t *testing.T) {
	tests := []struct {
		text string
		mode dom.SplitMode
		want int
	}{
		{"", dom.SplitWords, 0},
		{"hi", dom.SplitWords, 1},
		{"hi you there", dom.SplitWords, 3},
		{"héllo", dom.SplitLetters, 5},
		{"a b", dom.SplitLetters, 2},
		{"  ", dom.SplitLetters, 0},
	}
	for _, tt := range tests {
		if got := splitCount(tt.text, tt.mode); got != tt.want {
			t.Errorf("splitCount(%q, %v) = %d, want %d", tt.text, tt.mode, got, tt.want)
		}
	}
}

func TestInspect(t *testing.T) {
	page, sceneFile := writeFiles(t)
	out, _ := capture(t)
	if err := runInspect([]string{sceneFile, page}); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"scene v1.0.0 (10 fps, length auto)",
		"at 0s #logo, 1 target(s), ends 1s",
		"1s linear normal",
		"translateX: 0px -> 100px",
		"at 0s li, 3 target(s), ends 1.5s",
		"stagger sequential every 250ms",
		"color: red -> blue (ignored)",
		"ends 2s",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("inspect output misses %q:\n%s", want, got)
		}
	}
}

func TestPlay(t *testing.T) {
	page, sceneFile := writeFiles(t)
	outFile := filepath.Join(t.TempDir(), "final.html")
	out, _ := capture(t)
	if err := Execute([]string{"play", page, sceneFile, "--out", outFile}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "4/4 target(s) finished") {
		t.Errorf("stats = %q", out.String())
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := dom.ParseString(string(data))
	if err != nil {
		t.Fatal(err)
	}
	logo, err := doc.Query("#logo")
	if err != nil {
		t.Fatal(err)
	}
	if got := logo.Style("transform"); !strings.HasPrefix(strings.ReplaceAll(got, " ", ""), "translate3d(100px,0px,0px)") {
		t.Errorf("final transform = %q", got)
	}
	items, err := doc.QueryAll("li")
	if err != nil {
		t.Fatal(err)
	}
	for i, li := range items {
		if got := li.Style("opacity"); got != "1" {
			t.Errorf("li[%d] opacity = %q, want 1", i, got)
		}
	}
}

func TestPlayTrace(t *testing.T) {
	page, sceneFile := writeFiles(t)
	out, errOut := capture(t)
	if err := Execute([]string{"play", page, sceneFile, "--trace"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `<h1 id="logo" style="transform: translate3d(100px`) {
		t.Errorf("stdout does not hold the page:\n%s", out.String())
	}
	trace := errOut.String()
	for _, want := range []string{"#logo", "li[2]", "opacity: 1", "frame(s) over"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace misses %q", want)
		}
	}
}

func TestPreview(t *testing.T) {
	page, sceneFile := writeFiles(t)
	capture(t)
	if err := Execute([]string{"preview", page, sceneFile}); err == nil {
		t.Error("expected an error without --out")
	}

	outFile := filepath.Join(t.TempDir(), "strip.png")
	if err := Execute([]string{"preview", page, sceneFile, "--out", outFile, "--frames", "5"}); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	// Four targets, five sampled rows.
	if got, want := img.Bounds().Dx(), 72+4*160; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 20+5*96; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}
