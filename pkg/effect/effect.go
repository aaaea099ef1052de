// Package effect defines the presentation effects the interpreter emits.
// Each effect is independent; the host realizes it with its own rendering and
// audio facilities.
package effect

import (
	"github.com/jwebster45206/scenario-player/pkg/tween"
)

type Kind string

const (
	KindShowDialogue           Kind = "show_dialogue"
	KindSpawnOrUpdateCharacter Kind = "spawn_or_update_character"
	KindShowTexture            Kind = "show_texture"
	KindHideTexture            Kind = "hide_texture"
	KindPlaySound              Kind = "play_sound"
	KindStopSound              Kind = "stop_sound"
	KindPlayVoice              Kind = "play_voice"
	KindStopVoice              Kind = "stop_voice"
	KindFadeOverlay            Kind = "fade_overlay"
	KindWait                   Kind = "wait"
	KindPlayTween              Kind = "play_tween"
	KindScenarioEnded          Kind = "scenario_ended"
)

// Effect is one unit of work for the host.
type Effect interface {
	Kind() Kind
}

// Category of a texture on stage. Characters share the stage model with
// textures so one filter type serves every removal command.
type Category string

const (
	CategoryCharacter Category = "character"
	CategoryBg        Category = "bg"
	CategoryEvent     Category = "event"
	CategorySprite    Category = "sprite"
)

// SoundCategory is one of the mutually exclusive audio channels.
type SoundCategory string

const (
	SoundBgm      SoundCategory = "bgm"
	SoundSe       SoundCategory = "se"
	SoundAmbience SoundCategory = "ambience"
	SoundVoice    SoundCategory = "voice"
)

// Filter selects stage objects or sounds. An empty field matches anything.
type Filter struct {
	Category string `json:"category,omitempty"`
	Label    string `json:"label,omitempty"`
	Layer    string `json:"layer,omitempty"`
}

// Matches reports whether an object with the given attributes is selected.
func (f Filter) Matches(category, label, layer string) bool {
	if f.Category != "" && f.Category != category {
		return false
	}
	if f.Label != "" && f.Label != label {
		return false
	}
	if f.Layer != "" && f.Layer != layer {
		return false
	}
	return true
}

type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Scale float64 `json:"scale"`
}

type ShowDialogue struct {
	CharName string `json:"char_name"`
	Text     string `json:"text"`
}

type SpawnOrUpdateCharacter struct {
	Label    string `json:"label"`
	FileName string `json:"file_name,omitempty"`
	Motion   string `json:"motion,omitempty"`
	Layer    string `json:"layer"`
	Transform
}

type ShowTexture struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	FileName string   `json:"file_name,omitempty"`
	Layer    string   `json:"layer"`
	Transform
}

// HideTexture removes stage objects. Matched lists the labels the
// interpreter removed from its own stage model.
type HideTexture struct {
	Filter      Filter   `json:"filter"`
	Matched     []string `json:"matched,omitempty"`
	FadeSeconds float64  `json:"fade_seconds"`
}

type PlaySound struct {
	Category SoundCategory `json:"category"`
	Label    string        `json:"label"`
	File     string        `json:"file"`
	Volume   float64       `json:"volume"`
	Loop     bool          `json:"loop"`
}

type StopSound struct {
	Filter      Filter  `json:"filter"`
	FadeSeconds float64 `json:"fade_seconds"`
}

type PlayVoice struct {
	File   string  `json:"file"`
	Volume float64 `json:"volume"`
	Loop   bool    `json:"loop"`
}

type StopVoice struct{}

type FadeDirection string

const (
	FadeIn  FadeDirection = "in"
	FadeOut FadeDirection = "out"
)

type FadeOverlay struct {
	Color     string        `json:"color"`
	Duration  float64       `json:"duration"`
	Direction FadeDirection `json:"direction"`
}

type Wait struct {
	Seconds float64 `json:"seconds"`
}

type PlayTween struct {
	Tween tween.Tween `json:"tween"`
}

// ScenarioEnded is emitted once when the cursor runs off the book or the
// session is aborted.
type ScenarioEnded struct {
	Aborted bool `json:"aborted,omitempty"`
}

func (ShowDialogue) Kind() Kind           { return KindShowDialogue }
func (SpawnOrUpdateCharacter) Kind() Kind { return KindSpawnOrUpdateCharacter }
func (ShowTexture) Kind() Kind            { return KindShowTexture }
func (HideTexture) Kind() Kind            { return KindHideTexture }
func (PlaySound) Kind() Kind              { return KindPlaySound }
func (StopSound) Kind() Kind              { return KindStopSound }
func (PlayVoice) Kind() Kind              { return KindPlayVoice }
func (StopVoice) Kind() Kind              { return KindStopVoice }
func (FadeOverlay) Kind() Kind            { return KindFadeOverlay }
func (Wait) Kind() Kind                   { return KindWait }
func (PlayTween) Kind() Kind              { return KindPlayTween }
func (ScenarioEnded) Kind() Kind          { return KindScenarioEnded }
