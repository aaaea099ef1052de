package interpreter

import (
	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/effect"
	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/textfilter"
)

// dispatch executes one node, appending its effects to out. The cursor has
// already moved past the node. It reports whether the loop must stop.
func (in *Interpreter) dispatch(idx int, node book.Node, out *[]effect.Effect) bool {
	switch cmd := Decode(node).(type) {
	case DialogueCmd:
		return in.dialogue(idx, cmd, out)
	case WaitCmd:
		if in.replaying {
			return false
		}
		in.session.StartWait(seconds(cmd.Seconds))
		*out = append(*out, effect.Wait{Seconds: cmd.Seconds})
		return true
	case ParamCmd:
		if !cmd.OK {
			in.logger.Warn("Unparsable Param assignment", "offset", idx, "command", node.Command, "arg1", cmd.Raw)
			return false
		}
		in.session.SetParam(cmd.Key, cmd.Value)
	case ShowTextureCmd:
		in.showTexture(idx, cmd, out)
	case HideCmd:
		*out = append(*out, effect.HideTexture{
			Filter:      cmd.Filter,
			Matched:     in.stage.Remove(cmd.Filter),
			FadeSeconds: cmd.FadeSeconds,
		})
	case PlaySoundCmd:
		in.playSound(idx, cmd, out)
	case StopSoundCmd:
		in.stage.StopSounds(cmd.Filter)
		if cmd.Command == CmdStopVoice {
			*out = append(*out, effect.StopVoice{})
			return false
		}
		*out = append(*out, effect.StopSound{Filter: cmd.Filter, FadeSeconds: cmd.FadeSeconds})
	case FadeCmd:
		fade := effect.FadeOverlay{Color: cmd.Color, Duration: cmd.Seconds, Direction: cmd.Direction}
		in.stage.setOverlay(fade)
		if !in.replaying {
			in.fadeRemaining = seconds(cmd.Seconds)
		}
		*out = append(*out, fade)
	case TweenCmd:
		if cmd.Tween == nil {
			in.logger.Warn("Unparsable Tween", "offset", idx, "command", node.Command, "target", node.Arg1, "type", node.Arg2)
			return false
		}
		*out = append(*out, effect.PlayTween{Tween: *cmd.Tween})
	case EndScenarioCmd:
		in.session.Offset = len(in.nodes)
	case UnknownCmd:
		in.logger.Warn("Unknown command", "offset", idx, "command", cmd.Name)
	}
	return false
}

// dialogue shows a line. Character and voice are optional; a line with no
// visible text does not pause the loop.
func (in *Interpreter) dialogue(idx int, cmd DialogueCmd, out *[]effect.Effect) bool {
	text := textfilter.Normalize(cmd.Text, in.lookupParam)
	charName := cmd.Character

	var spawn *effect.SpawnOrUpdateCharacter
	if cmd.Character != "" {
		entry, ok := in.cfg.Character[cmd.Character]
		if !ok {
			in.logger.Warn("Character not found in chapter", "offset", idx, "command", string(CmdDialogue), "character", cmd.Character)
		} else {
			charName = firstPresent(entry.NameText, cmd.Character)
			s := in.placeCharacter(cmd, entry)
			spawn = &s
		}
	}

	if text != "" && !in.replaying {
		in.charName = charName
		in.lineOffset = idx
		in.reveal.Start(text)
		if in.session.Fast {
			in.reveal.Complete()
		}
		*out = append(*out, effect.ShowDialogue{CharName: charName, Text: text})
	}
	if spawn != nil {
		*out = append(*out, *spawn)
	}
	if cmd.Voice != "" && !in.replaying {
		in.playVoice(cmd.Voice, "", out)
	}

	if text == "" || in.replaying {
		return false
	}
	in.session.Status = state.StatusAwaitingInput
	return true
}

// placeCharacter resolves a character's placement. Each field takes the
// command argument first, then the character entry, then the layer entry,
// then a fixed default.
func (in *Interpreter) placeCharacter(cmd DialogueCmd, entry book.CharacterEntry) effect.SpawnOrUpdateCharacter {
	layerName := firstPresent(cmd.Layer, defaultLayers[effect.CategoryCharacter])
	layer := in.cfg.Layer[layerName]

	label := firstPresent(entry.Label, cmd.Character)
	spawn := effect.SpawnOrUpdateCharacter{
		Label:    label,
		FileName: entry.FileName,
		Motion:   firstPresent(cmd.Motion, entry.Animation, entry.Pattern),
		Layer:    layerName,
		Transform: effect.Transform{
			X:     resolveFloat(defaultPosition, cmd.X, entry.X, layer.X),
			Y:     resolveFloat(defaultPosition, cmd.Y, entry.Y, layer.Y),
			Z:     resolveFloat(defaultPosition, entry.Z),
			Scale: resolveFloat(defaultScale, entry.Scale, layer.ScaleX),
		},
	}
	in.stage.Put(StageObject{
		Category: effect.CategoryCharacter,
		Label:    spawn.Label,
		FileName: spawn.FileName,
		Motion:   spawn.Motion,
		Layer:    spawn.Layer,
		Xform:    spawn.Transform,
	})
	return spawn
}

func (in *Interpreter) showTexture(idx int, cmd ShowTextureCmd, out *[]effect.Effect) {
	entry, ok := in.cfg.Texture[cmd.Label]
	if !ok {
		in.logger.Warn("Texture not found in chapter", "offset", idx, "command", string(cmd.Command), "label", cmd.Label)
		return
	}

	layerName := firstPresent(cmd.Layer, defaultLayers[cmd.Category])
	layer := in.cfg.Layer[layerName]

	// One background per layer: a new one displaces the old.
	if cmd.Category == effect.CategoryBg {
		filter := effect.Filter{Category: string(effect.CategoryBg), Layer: layerName}
		if matched := in.stage.Remove(filter); len(matched) > 0 {
			*out = append(*out, effect.HideTexture{Filter: filter, Matched: matched})
		}
	}

	show := effect.ShowTexture{
		Category: cmd.Category,
		Label:    cmd.Label,
		FileName: entry.FileName,
		Layer:    layerName,
		Transform: effect.Transform{
			X:     resolveFloat(defaultPosition, cmd.X, entry.X, layer.X),
			Y:     resolveFloat(defaultPosition, cmd.Y, entry.Y, layer.Y),
			Z:     resolveFloat(defaultPosition, entry.Z),
			Scale: resolveFloat(defaultScale, entry.Scale, layer.ScaleX),
		},
	}
	in.stage.Put(StageObject{
		Category: show.Category,
		Label:    show.Label,
		FileName: show.FileName,
		Layer:    show.Layer,
		Xform:    show.Transform,
	})
	*out = append(*out, show)
}

func (in *Interpreter) playSound(idx int, cmd PlaySoundCmd, out *[]effect.Effect) {
	entry, ok := in.cfg.Sound[cmd.Label]
	if !ok {
		in.logger.Warn("Sound not found in chapter", "offset", idx, "command", string(cmd.Command), "label", cmd.Label)
		return
	}
	volume := resolveFloat(defaultVolume, cmd.Volume, entry.Volume)

	switch cmd.Category {
	case effect.SoundVoice:
		if !in.replaying {
			in.playVoiceFile(cmd.Label, entry.FileName, volume, out)
		}
	case effect.SoundSe:
		if in.replaying {
			return
		}
		*out = append(*out, effect.PlaySound{
			Category: cmd.Category,
			Label:    cmd.Label,
			File:     entry.FileName,
			Volume:   volume,
			Loop:     resolveBool(false, cmd.Loop),
		})
	default:
		// bgm and ambience own their channel.
		if _, playing := in.stage.Sound(cmd.Category); playing {
			filter := effect.Filter{Category: string(cmd.Category)}
			in.stage.StopSounds(filter)
			*out = append(*out, effect.StopSound{Filter: filter, FadeSeconds: cmd.FadeSeconds})
		}
		snd := ActiveSound{Label: cmd.Label, File: entry.FileName, Volume: volume, Loop: true}
		in.stage.SetSound(cmd.Category, snd)
		*out = append(*out, effect.PlaySound{
			Category: cmd.Category,
			Label:    snd.Label,
			File:     snd.File,
			Volume:   snd.Volume,
			Loop:     snd.Loop,
		})
	}
}

// playVoice plays the voice column of a dialogue line. A label from the
// sound table resolves to its file; anything else is taken as a file name.
func (in *Interpreter) playVoice(voice, volume string, out *[]effect.Effect) {
	file := voice
	entryVolume := ""
	if entry, ok := in.cfg.Sound[voice]; ok {
		file = firstPresent(entry.FileName, voice)
		entryVolume = entry.Volume
	}
	in.playVoiceFile(voice, file, resolveFloat(defaultVolume, volume, entryVolume), out)
}

// playVoiceFile stops any voice still playing before starting the next.
func (in *Interpreter) playVoiceFile(label, file string, volume float64, out *[]effect.Effect) {
	if _, playing := in.stage.Sound(effect.SoundVoice); playing {
		*out = append(*out, effect.StopVoice{})
	}
	in.stage.SetSound(effect.SoundVoice, ActiveSound{Label: label, File: file, Volume: volume})
	*out = append(*out, effect.PlayVoice{File: file, Volume: volume})
}
