package main

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/scenario-player/pkg/effect"
)

// describeEffect renders an effect as one line for the event log. Dialogue
// is shown in its own pane and returns "".
func describeEffect(e effect.Effect) string {
	switch e := e.(type) {
	case effect.ShowDialogue:
		return ""
	case effect.SpawnOrUpdateCharacter:
		motion := ""
		if e.Motion != "" {
			motion = " (" + e.Motion + ")"
		}
		return fmt.Sprintf("chara %s%s on %s %s", e.Label, motion, e.Layer, formatTransform(e.Transform))
	case effect.ShowTexture:
		return fmt.Sprintf("%s %s on %s %s", e.Category, e.Label, e.Layer, formatTransform(e.Transform))
	case effect.HideTexture:
		if len(e.Matched) == 0 {
			return fmt.Sprintf("hide %s: nothing", formatFilter(e.Filter))
		}
		return fmt.Sprintf("hide %s: %s", formatFilter(e.Filter), strings.Join(e.Matched, ", "))
	case effect.PlaySound:
		loop := ""
		if e.Loop {
			loop = " loop"
		}
		return fmt.Sprintf("♪ %s %s vol %.2f%s", e.Category, e.Label, e.Volume, loop)
	case effect.StopSound:
		return fmt.Sprintf("■ stop %s fade %.1fs", formatFilter(e.Filter), e.FadeSeconds)
	case effect.PlayVoice:
		return "♪ voice " + e.File
	case effect.StopVoice:
		return "■ stop voice"
	case effect.FadeOverlay:
		return fmt.Sprintf("fade %s %s %.1fs", e.Direction, e.Color, e.Duration)
	case effect.Wait:
		return fmt.Sprintf("wait %.2fs", e.Seconds)
	case effect.PlayTween:
		return fmt.Sprintf("tween %s %s (%s)", e.Tween.Target, e.Tween.Type, e.Tween.Ease)
	case effect.ScenarioEnded:
		if e.Aborted {
			return "aborted"
		}
		return "end"
	}
	return string(e.Kind())
}

func formatTransform(t effect.Transform) string {
	return fmt.Sprintf("@%g,%g z%g x%g", t.X, t.Y, t.Z, t.Scale)
}

func formatFilter(f effect.Filter) string {
	var parts []string
	if f.Category != "" {
		parts = append(parts, f.Category)
	}
	if f.Label != "" {
		parts = append(parts, f.Label)
	}
	if f.Layer != "" {
		parts = append(parts, "layer "+f.Layer)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}
