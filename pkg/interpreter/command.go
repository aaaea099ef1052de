package interpreter

import (
	"golang.org/x/text/cases"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/effect"
	"github.com/jwebster45206/scenario-player/pkg/tween"
)

// CommandType identifies a script command. Node command names are matched
// case-insensitively.
type CommandType string

const (
	CmdDialogue     CommandType = "Dialogue" // empty command column
	CmdWait         CommandType = "Wait"
	CmdParam        CommandType = "Param"
	CmdBg           CommandType = "Bg"
	CmdBgEvent      CommandType = "BgEvent"
	CmdSprite       CommandType = "Sprite"
	CmdBgOff        CommandType = "BgOff"
	CmdBgEventOff   CommandType = "BgEventOff"
	CmdSpriteOff    CommandType = "SpriteOff"
	CmdCharacterOff CommandType = "CharacterOff"
	CmdLayerOff     CommandType = "LayerOff"
	CmdBgm          CommandType = "Bgm"
	CmdAmbience     CommandType = "Ambience"
	CmdSe           CommandType = "Se"
	CmdVoice        CommandType = "Voice"
	CmdStopBgm      CommandType = "StopBgm"
	CmdStopAmbience CommandType = "StopAmbience"
	CmdStopSe       CommandType = "StopSe"
	CmdStopVoice    CommandType = "StopVoice"
	CmdStopSound    CommandType = "StopSound"
	CmdFadeIn       CommandType = "FadeIn"
	CmdFadeOut      CommandType = "FadeOut"
	CmdTween        CommandType = tween.Command
	CmdEndScenario  CommandType = "EndScenario"
)

var knownCommands = []CommandType{
	CmdWait, CmdParam,
	CmdBg, CmdBgEvent, CmdSprite,
	CmdBgOff, CmdBgEventOff, CmdSpriteOff, CmdCharacterOff, CmdLayerOff,
	CmdBgm, CmdAmbience, CmdSe, CmdVoice,
	CmdStopBgm, CmdStopAmbience, CmdStopSe, CmdStopVoice, CmdStopSound,
	CmdFadeIn, CmdFadeOut, CmdTween, CmdEndScenario,
}

var commandsByFold = func() map[string]CommandType {
	fold := cases.Fold()
	m := make(map[string]CommandType, len(knownCommands))
	for _, c := range knownCommands {
		m[fold.String(string(c))] = c
	}
	return m
}()

// LookupCommand resolves a node's command column. An empty name is a
// dialogue line; an unrecognised name returns false.
func LookupCommand(name string) (CommandType, bool) {
	if name == "" {
		return CmdDialogue, true
	}
	c, ok := commandsByFold[cases.Fold().String(name)]
	return c, ok
}

// Command is the typed view of a node. Decode produces one variant per
// command family so dispatch never reads raw positional arguments.
type Command interface {
	Type() CommandType
}

type DialogueCmd struct {
	Character string // Arg1
	Motion    string // Arg2
	Layer     string // Arg3
	X, Y      string // Arg4, Arg5
	Text      string
	Voice     string
}

type WaitCmd struct {
	Seconds float64
}

// ParamCmd carries a key=value assignment. OK is false when Arg1 does not
// parse.
type ParamCmd struct {
	Raw   string
	Key   string
	Value string
	OK    bool
}

type ShowTextureCmd struct {
	Command  CommandType
	Category effect.Category
	Label    string
	Layer    string
	X, Y     string
}

type HideCmd struct {
	Command     CommandType
	Filter      effect.Filter
	FadeSeconds float64
}

type PlaySoundCmd struct {
	Command     CommandType
	Category    effect.SoundCategory
	Label       string
	Loop        string // Arg2, se only
	Volume      string // Arg3
	FadeSeconds float64
}

type StopSoundCmd struct {
	Command     CommandType
	Filter      effect.Filter
	FadeSeconds float64
}

type FadeCmd struct {
	Command   CommandType
	Direction effect.FadeDirection
	Color     string
	Seconds   float64
}

// TweenCmd holds the parsed tween, or nil when the arguments did not parse.
type TweenCmd struct {
	Tween *tween.Tween
}

type EndScenarioCmd struct{}

type UnknownCmd struct {
	Name string
}

func (DialogueCmd) Type() CommandType      { return CmdDialogue }
func (WaitCmd) Type() CommandType          { return CmdWait }
func (ParamCmd) Type() CommandType         { return CmdParam }
func (c ShowTextureCmd) Type() CommandType { return c.Command }
func (c HideCmd) Type() CommandType        { return c.Command }
func (c PlaySoundCmd) Type() CommandType   { return c.Command }
func (c StopSoundCmd) Type() CommandType   { return c.Command }
func (c FadeCmd) Type() CommandType        { return c.Command }
func (TweenCmd) Type() CommandType         { return CmdTween }
func (EndScenarioCmd) Type() CommandType   { return CmdEndScenario }
func (UnknownCmd) Type() CommandType       { return "" }

var textureCategories = map[CommandType]effect.Category{
	CmdBg:      effect.CategoryBg,
	CmdBgEvent: effect.CategoryEvent,
	CmdSprite:  effect.CategorySprite,
}

var hideCategories = map[CommandType]effect.Category{
	CmdBgOff:        effect.CategoryBg,
	CmdBgEventOff:   effect.CategoryEvent,
	CmdSpriteOff:    effect.CategorySprite,
	CmdCharacterOff: effect.CategoryCharacter,
}

var soundCategories = map[CommandType]effect.SoundCategory{
	CmdBgm:          effect.SoundBgm,
	CmdAmbience:     effect.SoundAmbience,
	CmdSe:           effect.SoundSe,
	CmdVoice:        effect.SoundVoice,
	CmdStopBgm:      effect.SoundBgm,
	CmdStopAmbience: effect.SoundAmbience,
	CmdStopSe:       effect.SoundSe,
	CmdStopVoice:    effect.SoundVoice,
}

// Decode reads a node into its command variant. Argument values stay as
// strings where they feed a precedence chain; durations are resolved here.
func Decode(node book.Node) Command {
	typ, ok := LookupCommand(node.Command)
	if !ok {
		return UnknownCmd{Name: node.Command}
	}

	switch typ {
	case CmdDialogue:
		return DialogueCmd{
			Character: node.Arg1,
			Motion:    node.Arg2,
			Layer:     node.Arg3,
			X:         node.Arg4,
			Y:         node.Arg5,
			Text:      node.Text,
			Voice:     node.Voice,
		}
	case CmdWait:
		secs := resolveFloat(defaultWaitSeconds, node.Arg6)
		if secs < 0 {
			secs = defaultWaitSeconds
		}
		return WaitCmd{Seconds: secs}
	case CmdParam:
		key, value, ok := parseParamAssignment(node.Arg1)
		return ParamCmd{Raw: node.Arg1, Key: key, Value: value, OK: ok}
	case CmdBg, CmdBgEvent, CmdSprite:
		return ShowTextureCmd{
			Command:  typ,
			Category: textureCategories[typ],
			Label:    node.Arg1,
			Layer:    node.Arg3,
			X:        node.Arg4,
			Y:        node.Arg5,
		}
	case CmdBgOff, CmdBgEventOff, CmdSpriteOff, CmdCharacterOff:
		label := node.Arg1
		if typ == CmdSpriteOff && label == AllSpriteObjects {
			label = ""
		}
		return HideCmd{
			Command:     typ,
			Filter:      effect.Filter{Category: string(hideCategories[typ]), Label: label},
			FadeSeconds: fadeSeconds(node.Arg6),
		}
	case CmdLayerOff:
		return HideCmd{
			Command:     typ,
			Filter:      effect.Filter{Layer: node.Arg1},
			FadeSeconds: fadeSeconds(node.Arg6),
		}
	case CmdBgm, CmdAmbience, CmdSe, CmdVoice:
		c := PlaySoundCmd{
			Command:     typ,
			Category:    soundCategories[typ],
			Label:       node.Arg1,
			Volume:      node.Arg3,
			FadeSeconds: fadeSeconds(node.Arg6),
		}
		if typ == CmdSe {
			c.Loop = node.Arg2
		}
		return c
	case CmdStopBgm, CmdStopAmbience, CmdStopVoice:
		return StopSoundCmd{
			Command:     typ,
			Filter:      effect.Filter{Category: string(soundCategories[typ])},
			FadeSeconds: fadeSeconds(node.Arg6),
		}
	case CmdStopSe:
		return StopSoundCmd{
			Command:     typ,
			Filter:      effect.Filter{Category: string(effect.SoundSe), Label: node.Arg1},
			FadeSeconds: fadeSeconds(node.Arg6),
		}
	case CmdStopSound:
		return StopSoundCmd{Command: typ, FadeSeconds: fadeSeconds(node.Arg6)}
	case CmdFadeIn, CmdFadeOut:
		dir := effect.FadeIn
		if typ == CmdFadeOut {
			dir = effect.FadeOut
		}
		secs := resolveFloat(defaultOverlaySecs, node.Arg6)
		if secs < 0 {
			secs = defaultOverlaySecs
		}
		return FadeCmd{
			Command:   typ,
			Direction: dir,
			Color:     firstPresent(node.Arg1, defaultOverlayColor),
			Seconds:   secs,
		}
	case CmdTween:
		tw, ok := tween.Parse(node)
		if !ok {
			return TweenCmd{}
		}
		return TweenCmd{Tween: tw}
	case CmdEndScenario:
		return EndScenarioCmd{}
	}
	return UnknownCmd{Name: node.Command}
}

func fadeSeconds(arg string) float64 {
	secs := resolveFloat(defaultFadeSeconds, arg)
	if secs < 0 {
		return defaultFadeSeconds
	}
	return secs
}
