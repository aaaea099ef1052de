package interpreter

import (
	"slices"

	"github.com/jwebster45206/scenario-player/pkg/effect"
)

// StageObject is a character or texture the interpreter believes is shown.
type StageObject struct {
	Category effect.Category  `json:"category"`
	Label    string           `json:"label"`
	FileName string           `json:"file_name,omitempty"`
	Motion   string           `json:"motion,omitempty"`
	Layer    string           `json:"layer"`
	Xform    effect.Transform `json:"transform"`
}

// ActiveSound is a clip playing on a looping channel, or the last voice.
type ActiveSound struct {
	Label  string  `json:"label"`
	File   string  `json:"file"`
	Volume float64 `json:"volume"`
	Loop   bool    `json:"loop"`
}

// Stage tracks what the host should be presenting so removal commands can
// report their matches and a restore can rebuild the scene.
type Stage struct {
	objects []StageObject
	sounds  map[effect.SoundCategory]ActiveSound
	overlay *effect.FadeOverlay // last fade out still covering the screen
}

func newStage() *Stage {
	return &Stage{sounds: make(map[effect.SoundCategory]ActiveSound)}
}

// Put places obj, replacing an object of the same category and label in
// place.
func (s *Stage) Put(obj StageObject) {
	for i := range s.objects {
		if s.objects[i].Category == obj.Category && s.objects[i].Label == obj.Label {
			s.objects[i] = obj
			return
		}
	}
	s.objects = append(s.objects, obj)
}

// Remove drops every object the filter selects and returns their labels in
// stage order.
func (s *Stage) Remove(f effect.Filter) []string {
	var removed []string
	s.objects = slices.DeleteFunc(s.objects, func(o StageObject) bool {
		if f.Matches(string(o.Category), o.Label, o.Layer) {
			removed = append(removed, o.Label)
			return true
		}
		return false
	})
	return removed
}

// Objects returns a copy of the stage in placement order.
func (s *Stage) Objects() []StageObject {
	return slices.Clone(s.objects)
}

func (s *Stage) Sound(cat effect.SoundCategory) (ActiveSound, bool) {
	snd, ok := s.sounds[cat]
	return snd, ok
}

func (s *Stage) SetSound(cat effect.SoundCategory, snd ActiveSound) {
	s.sounds[cat] = snd
}

// StopSounds clears the channels the filter selects.
func (s *Stage) StopSounds(f effect.Filter) {
	for cat, snd := range s.sounds {
		if f.Matches(string(cat), snd.Label, "") {
			delete(s.sounds, cat)
		}
	}
}

// Overlay returns the fade-out currently covering the screen, if any.
func (s *Stage) Overlay() (effect.FadeOverlay, bool) {
	if s.overlay == nil {
		return effect.FadeOverlay{}, false
	}
	return *s.overlay, true
}

func (s *Stage) setOverlay(f effect.FadeOverlay) {
	if f.Direction == effect.FadeOut {
		s.overlay = &f
		return
	}
	s.overlay = nil
}

// Clear empties the stage.
func (s *Stage) Clear() {
	s.objects = nil
	s.sounds = make(map[effect.SoundCategory]ActiveSound)
	s.overlay = nil
}

// rebuild returns the effects that present the stage from scratch.
func (s *Stage) rebuild() []effect.Effect {
	var out []effect.Effect
	if ov, ok := s.Overlay(); ok {
		ov.Duration = 0
		out = append(out, ov)
	}
	for _, o := range s.objects {
		if o.Category == effect.CategoryCharacter {
			out = append(out, effect.SpawnOrUpdateCharacter{
				Label:     o.Label,
				FileName:  o.FileName,
				Motion:    o.Motion,
				Layer:     o.Layer,
				Transform: o.Xform,
			})
			continue
		}
		out = append(out, effect.ShowTexture{
			Category:  o.Category,
			Label:     o.Label,
			FileName:  o.FileName,
			Layer:     o.Layer,
			Transform: o.Xform,
		})
	}
	for _, cat := range []effect.SoundCategory{effect.SoundBgm, effect.SoundAmbience} {
		if snd, ok := s.sounds[cat]; ok {
			out = append(out, effect.PlaySound{
				Category: cat,
				Label:    snd.Label,
				File:     snd.File,
				Volume:   snd.Volume,
				Loop:     snd.Loop,
			})
		}
	}
	return out
}
