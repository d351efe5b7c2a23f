package runtime

import (
	"github.com/aretw0/colorchanger/pkg/animation"
	"github.com/aretw0/colorchanger/pkg/domain"
)

// Roll call lights.
func rollCallResetLight() domain.Animation    { return animation.Solid(1, animation.Black, 100) }
func checkInIdleLight() domain.Animation      { return animation.Solid(1, animation.Green, 8000) }
func checkInDownLight() domain.Animation      { return animation.Solid(1, animation.Green, 1000) }
func checkInUpLight() domain.Animation        { return animation.Solid(1, animation.White, 4000) }
func rollCallCompleteLight() domain.Animation { return animation.FadeIn(1, animation.Green, 5000) }
func rollCallTimeoutLight() domain.Animation  { return animation.Fade(1, animation.Black, 1000) }

// Play lights for the chosen color.
func playIdleLight(c domain.Color) domain.Animation {
	return animation.Breathe(30, animation.BreathColor(c), 450)
}

func playDownLight(c domain.Color) domain.Animation {
	return animation.Solid(1, animation.ColorOf(c), 2000)
}

func playUpLight(c domain.Color) domain.Animation {
	return animation.Solid(1, animation.ColorOf(c), 200)
}

func playTimeoutLight(c domain.Color) domain.Animation {
	return animation.FadeOut(1, animation.ColorOf(c), 2000)
}
