package animation

import (
	"slices"

	"github.com/aretw0/colorchanger/pkg/domain"
)

// MakeDirective wraps an animation for the given trigger and devices.
// No targets means every paired device.
func MakeDirective(trigger domain.Trigger, targets []string, anim domain.Animation) domain.Directive {
	if targets == nil {
		targets = []string{}
	}
	return domain.Directive{
		Trigger:       trigger,
		TargetDevices: slices.Clone(targets),
		Animation:     anim,
	}
}

// Idle plays immediately.
func Idle(anim domain.Animation, targets ...string) domain.Directive {
	return MakeDirective(domain.TriggerNone, targets, anim)
}

// ButtonDown plays when a target is pressed.
func ButtonDown(anim domain.Animation, targets ...string) domain.Directive {
	return MakeDirective(domain.TriggerButtonDown, targets, anim)
}

// ButtonUp plays when a target is released.
func ButtonUp(anim domain.Animation, targets ...string) domain.Directive {
	return MakeDirective(domain.TriggerButtonUp, targets, anim)
}

// Defaults mirroring the buttons' factory press animations, used whenever play state is reset.

// DefaultButtonDown is a short blue fade.
func DefaultButtonDown() domain.Animation { return FadeOut(1, Blue, 200) }

// DefaultButtonUp turns the light off.
func DefaultButtonUp() domain.Animation { return Solid(1, Black, 100) }
