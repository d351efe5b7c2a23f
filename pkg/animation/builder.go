package animation

import "github.com/aretw0/colorchanger/pkg/domain"

// defaultLights is the light id every animation addresses.
const defaultLights = "1"

func step(durationMS int, blend bool, color Hex) domain.AnimationStep {
	return domain.AnimationStep{DurationMS: durationMS, Blend: blend, Color: string(color)}
}

func build(cycles int, steps ...domain.AnimationStep) domain.Animation {
	return domain.Animation{
		Repeat:   cycles,
		Targets:  []string{defaultLights},
		Sequence: steps,
	}
}

// Solid holds one color without blending.
func Solid(cycles int, color Hex, durationMS int) domain.Animation {
	return build(cycles, step(durationMS, false, color))
}

// Fade blends from the current color into color.
func Fade(cycles int, color Hex, durationMS int) domain.Animation {
	return build(cycles, step(durationMS, true, color))
}

// FadeIn starts from off and switches to color.
func FadeIn(cycles int, color Hex, durationMS int) domain.Animation {
	return build(cycles,
		step(1, true, Black),
		step(durationMS, false, color),
	)
}

// FadeOut holds color and blends to off.
func FadeOut(cycles int, color Hex, durationMS int) domain.Animation {
	return build(cycles,
		step(durationMS, true, color),
		step(1, true, Black),
	)
}

// CrossFade blends between two colors.
func CrossFade(cycles int, first, second Hex, firstMS, secondMS int) domain.Animation {
	return build(cycles,
		step(firstMS, true, first),
		step(secondMS, true, second),
	)
}

// Breathe swells from off to color and back.
func Breathe(cycles int, color Hex, durationMS int) domain.Animation {
	return build(cycles,
		step(1, true, Black),
		step(durationMS, true, color),
		step(300, true, color),
		step(300, true, Black),
	)
}

// Blink toggles color on and off every 500ms.
func Blink(cycles int, color Hex) domain.Animation {
	return build(cycles,
		step(500, false, color),
		step(500, false, Black),
	)
}

// Flip switches between two colors without blending.
func Flip(cycles int, first, second Hex, firstMS, secondMS int) domain.Animation {
	return build(cycles,
		step(firstMS, false, first),
		step(secondMS, false, second),
	)
}

// Pulse blends quickly into first and slowly into second.
func Pulse(cycles int, first, second Hex) domain.Animation {
	return build(cycles,
		step(500, true, first),
		step(1000, true, second),
	)
}
