package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/scenario-player/pkg/book"
	"github.com/jwebster45206/scenario-player/pkg/effect"
)

func TestLookupCommand(t *testing.T) {
	tests := []struct {
		name string
		want CommandType
		ok   bool
	}{
		{"", CmdDialogue, true},
		{"Wait", CmdWait, true},
		{"WAIT", CmdWait, true},
		{"spriteoff", CmdSpriteOff, true},
		{"endScenario", CmdEndScenario, true},
		{"tween", CmdTween, true},
		{"Dance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupCommand(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		node book.Node
		want Command
	}{
		{
			name: "dialogue",
			node: book.Node{Arg1: "Alice", Arg2: "smile", Arg3: "Front", Arg4: "1", Arg5: "2", Text: "Hi", Voice: "v1"},
			want: DialogueCmd{Character: "Alice", Motion: "smile", Layer: "Front", X: "1", Y: "2", Text: "Hi", Voice: "v1"},
		},
		{
			name: "wait default",
			node: book.Node{Command: "Wait"},
			want: WaitCmd{Seconds: 0.1},
		},
		{
			name: "wait negative",
			node: book.Node{Command: "Wait", Arg6: "-3"},
			want: WaitCmd{Seconds: 0.1},
		},
		{
			name: "param",
			node: book.Node{Command: "Param", Arg1: "a=b"},
			want: ParamCmd{Raw: "a=b", Key: "a", Value: "b", OK: true},
		},
		{
			name: "event texture",
			node: book.Node{Command: "BgEvent", Arg1: "cg01", Arg3: "Event2", Arg4: "5"},
			want: ShowTextureCmd{Command: CmdBgEvent, Category: effect.CategoryEvent, Label: "cg01", Layer: "Event2", X: "5"},
		},
		{
			name: "sprite off sentinel",
			node: book.Node{Command: "SpriteOff", Arg1: AllSpriteObjects, Arg6: "1"},
			want: HideCmd{Command: CmdSpriteOff, Filter: effect.Filter{Category: "sprite"}, FadeSeconds: 1},
		},
		{
			name: "character off by label",
			node: book.Node{Command: "CharacterOff", Arg1: "alice"},
			want: HideCmd{Command: CmdCharacterOff, Filter: effect.Filter{Category: "character", Label: "alice"}, FadeSeconds: 0.2},
		},
		{
			name: "layer off",
			node: book.Node{Command: "LayerOff", Arg1: "Front"},
			want: HideCmd{Command: CmdLayerOff, Filter: effect.Filter{Layer: "Front"}, FadeSeconds: 0.2},
		},
		{
			name: "se keeps loop argument",
			node: book.Node{Command: "Se", Arg1: "door", Arg2: "true", Arg3: "0.4"},
			want: PlaySoundCmd{Command: CmdSe, Category: effect.SoundSe, Label: "door", Loop: "true", Volume: "0.4", FadeSeconds: 0.2},
		},
		{
			name: "bgm ignores loop argument",
			node: book.Node{Command: "Bgm", Arg1: "theme", Arg2: "false", Arg6: "x"},
			want: PlaySoundCmd{Command: CmdBgm, Category: effect.SoundBgm, Label: "theme", FadeSeconds: 0.2},
		},
		{
			name: "stop se",
			node: book.Node{Command: "StopSe", Arg1: "door"},
			want: StopSoundCmd{Command: CmdStopSe, Filter: effect.Filter{Category: "se", Label: "door"}, FadeSeconds: 0.2},
		},
		{
			name: "stop all sound",
			node: book.Node{Command: "StopSound", Arg6: "0.5"},
			want: StopSoundCmd{Command: CmdStopSound, FadeSeconds: 0.5},
		},
		{
			name: "fade in defaults",
			node: book.Node{Command: "FadeIn"},
			want: FadeCmd{Command: CmdFadeIn, Direction: effect.FadeIn, Color: "black", Seconds: 1},
		},
		{
			name: "fade out",
			node: book.Node{Command: "FadeOut", Arg1: "white", Arg6: "0.5"},
			want: FadeCmd{Command: CmdFadeOut, Direction: effect.FadeOut, Color: "white", Seconds: 0.5},
		},
		{
			name: "bad tween",
			node: book.Node{Command: "Tween", Arg2: "MoveBy"},
			want: TweenCmd{},
		},
		{
			name: "end",
			node: book.Node{Command: "EndScenario"},
			want: EndScenarioCmd{},
		},
		{
			name: "unknown",
			node: book.Node{Command: "Jump", Arg1: "label"},
			want: UnknownCmd{Name: "Jump"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.node))
		})
	}
}

func TestDecode_Tween(t *testing.T) {
	cmd, ok := Decode(book.Node{Command: "Tween", Arg1: "alice", Arg2: "ColorTo", Arg3: "time=0.5 x=10 color=#FFAA00", Arg5: "pingPong=2"}).(TweenCmd)
	require.True(t, ok)
	require.NotNil(t, cmd.Tween)
	require.NotNil(t, cmd.Tween.Params.Color)
	assert.Equal(t, "#FFAA00", *cmd.Tween.Params.Color)
	require.NotNil(t, cmd.Tween.Loop)
	require.NotNil(t, cmd.Tween.Loop.Count)
	assert.Equal(t, 2, *cmd.Tween.Loop.Count)
}

func TestDecode_TweenCommandCase(t *testing.T) {
	cmd, ok := Decode(book.Node{Command: "tween", Arg1: "alice", Arg2: "MoveBy"}).(TweenCmd)
	require.True(t, ok)
	require.NotNil(t, cmd.Tween)
	assert.Equal(t, "alice", cmd.Tween.Target)
}
