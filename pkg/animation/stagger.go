package animation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Pattern distributes start delays over a list of sibling targets.
type Pattern int

const (
	// StaggerSequential delays target i by i steps.
	StaggerSequential Pattern = iota
	// StaggerReverse delays the last target least.
	StaggerReverse
	// StaggerRandom picks a random delay in [0, n*step] per target.
	StaggerRandom
	// StaggerOneTwo starts even targets at once and odd targets one step later.
	StaggerOneTwo
	// StaggerOneTwoStagger delays even targets by i steps and odd targets by one.
	StaggerOneTwoStagger
	// StaggerOneTwoReverse is StaggerOneTwoStagger counted from the last target.
	StaggerOneTwoReverse
	// StaggerVShape starts at the middle and spreads outward.
	StaggerVShape
)

var patternNames = map[Pattern]string{
	StaggerSequential:    "sequential",
	StaggerReverse:       "reverse",
	StaggerRandom:        "random",
	StaggerOneTwo:        "oneTwo",
	StaggerOneTwoStagger: "oneTwoStagger",
	StaggerOneTwoReverse: "oneTwoReverse",
	StaggerVShape:        "vShape",
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Pattern(%d)", int(p))
}

// ParsePattern maps a pattern name ("sequential", "vShape", ...) to a Pattern.
// The empty name is StaggerSequential.
func ParsePattern(name string) (Pattern, error) {
	if name == "" {
		return StaggerSequential, nil
	}
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown stagger pattern %q", name)
}

// StaggerDelays returns the delay of each of n targets. rng is only used by
// StaggerRandom; nil selects the global source.
func StaggerDelays(n int, step time.Duration, pattern Pattern, rng *rand.Rand) []time.Duration {
	delays := make([]time.Duration, n)
	switch pattern {
	case StaggerSequential:
		for i := range delays {
			delays[i] = step * time.Duration(i)
		}
	case StaggerReverse:
		for i := range delays {
			delays[i] = step * time.Duration(n-1-i)
		}
	case StaggerRandom:
		for i := range delays {
			f := rand.Float64()
			if rng != nil {
				f = rng.Float64()
			}
			delays[i] = time.Duration(math.Round(f * float64(n) * float64(step)))
		}
	case StaggerOneTwo:
		for i := range delays {
			if i%2 != 0 {
				delays[i] = step
			}
		}
	case StaggerOneTwoStagger:
		for i := range delays {
			delays[i] = oneTwoStagger(i, step)
		}
	case StaggerOneTwoReverse:
		for i := range delays {
			delays[i] = oneTwoStagger(n-1-i, step)
		}
	case StaggerVShape:
		mid := n / 2
		if n%2 == 0 {
			// Two middle targets; each step outward takes two slots.
			for k := 0; k < mid; k++ {
				delays[mid-1-k] = step * time.Duration(2*k)
				delays[mid+k] = step * time.Duration(2*k+1)
			}
		} else {
			for k := 1; k <= mid; k++ {
				delays[mid-k] = step * time.Duration(2*k-1)
				delays[mid+k] = step * time.Duration(2*k)
			}
		}
	}
	return delays
}

func oneTwoStagger(i int, step time.Duration) time.Duration {
	if i%2 == 0 {
		return step * time.Duration(i)
	}
	return step
}

// Stagger animates each target with p, adding the pattern's delay for that
// target to p.Delay. p.Target is ignored.
func (s *Scheduler) Stagger(targets []Styler, p Params, pattern Pattern, step time.Duration, rng *rand.Rand) ([]*Element, error) {
	delays := StaggerDelays(len(targets), step, pattern, rng)
	elements := make([]*Element, 0, len(targets))
	for i, target := range targets {
		q := p
		q.Target = target
		q.Delay = p.Delay + delays[i]
		e, err := s.Animate(q)
		if err != nil {
			return elements, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}
