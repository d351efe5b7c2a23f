package tui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aretw0/colorchanger/pkg/domain"
)

func TestRenderDirective_Ascii(t *testing.T) {
	var buf bytes.Buffer
	RenderDirective(&buf, termenv.Ascii, domain.Directive{
		Trigger:       domain.TriggerButtonDown,
		TargetDevices: []string{"dev-a"},
		Animation: domain.Animation{
			Repeat: 3,
			Sequence: []domain.AnimationStep{
				{DurationMS: 500, Color: "000000"},
				{DurationMS: 500, Blend: true, Color: "FF0000"},
			},
		},
	})
	assert.Equal(t, "  [buttonDown] dev-a: #000000 500ms #FF0000~500ms x3\n", buf.String())
}

func TestRenderDirective_AllButtons(t *testing.T) {
	var buf bytes.Buffer
	RenderDirective(&buf, termenv.Ascii, domain.Directive{
		Trigger:   domain.TriggerNone,
		Animation: domain.Animation{Repeat: 1, Sequence: []domain.AnimationStep{{DurationMS: 100, Color: "FFFFFF"}}},
	})
	assert.Contains(t, buf.String(), "[none] all buttons: #FFFFFF 100ms")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestNewRenderer_Plain(t *testing.T) {
	render := NewRenderer(false)
	out, err := render("# Commands\n\n- `launch`\n")
	assert.NoError(t, err)
	assert.Contains(t, out, "launch")
}
