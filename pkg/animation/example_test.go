package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/rosa/pkg/animation"
)

type box struct{ style map[string]string }

func (b *box) SetStyle(property, value string) { b.style[property] = value }

// This example drives an animation with a Stepper, the manual frame source
// used for tests and offline rendering.
func ExampleScheduler_Animate() {
	stepper := animation.NewStepper(time.Time{})
	s := animation.NewScheduler(animation.Options{Clock: stepper, Frames: stepper})
	s.Start()
	defer s.Close()

	el := &box{style: map[string]string{}}
	s.Animate(animation.Params{
		Target:   el,
		Duration: animation.Dur(time.Second),
		Ease:     "outCubic",
		Props: map[string]animation.Prop{
			"translateX": animation.FromTo("0px", "100px"),
		},
		OnFinish: func() { fmt.Println("done") },
	})

	stepper.Advance(500 * time.Millisecond)
	fmt.Println(el.style["transform"])
	stepper.Advance(500 * time.Millisecond)
	fmt.Println(el.style["transform"])
	// Output:
	// translate3d(87.5px, 0px, 0px) scale3d(1, 1, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg)
	// done
	// translate3d(100px, 0px, 0px) scale3d(1, 1, 1) rotate3d(0,0,0,0deg) skew(0deg,0deg)
}

func ExampleStaggerDelays() {
	fmt.Println(animation.StaggerDelays(5, 100*time.Millisecond, animation.StaggerVShape, nil))
	// Output:
	// [300ms 100ms 0s 200ms 400ms]
}
