package interpreter

import (
	"fmt"

	"github.com/jwebster45206/scenario-player/pkg/book"
)

// Issue is a problem found in a book. None of them stop playback; they are
// the lines that would produce a diagnostic or a skipped effect.
type Issue struct {
	Offset  int
	Command string
	Message string
}

func (i Issue) String() string {
	if i.Command == "" {
		return fmt.Sprintf("node %d: %s", i.Offset, i.Message)
	}
	return fmt.Sprintf("node %d (%s): %s", i.Offset, i.Command, i.Message)
}

// Lint checks every node of a book against a chapter config.
func Lint(cfg *book.Config, nodes []book.Node) []Issue {
	if cfg == nil {
		empty := book.NewConfig()
		cfg = &empty
	}

	var issues []Issue
	add := func(idx int, node book.Node, format string, args ...any) {
		issues = append(issues, Issue{Offset: idx, Command: node.Command, Message: fmt.Sprintf(format, args...)})
	}

	for idx, node := range nodes {
		switch cmd := Decode(node).(type) {
		case UnknownCmd:
			add(idx, node, "unknown command %q", cmd.Name)
		case DialogueCmd:
			if cmd.Character != "" {
				if _, ok := cfg.Character[cmd.Character]; !ok {
					add(idx, node, "character %q is not in the chapter", cmd.Character)
				}
			}
			if cmd.Layer != "" {
				if _, ok := cfg.Layer[cmd.Layer]; !ok {
					add(idx, node, "layer %q is not in the chapter", cmd.Layer)
				}
			}
		case ParamCmd:
			if !cmd.OK {
				add(idx, node, "param %q is not a key=value pair", cmd.Raw)
			}
		case ShowTextureCmd:
			if _, ok := cfg.Texture[cmd.Label]; !ok {
				add(idx, node, "texture %q is not in the chapter", cmd.Label)
			}
			if cmd.Layer != "" {
				if _, ok := cfg.Layer[cmd.Layer]; !ok {
					add(idx, node, "layer %q is not in the chapter", cmd.Layer)
				}
			}
		case PlaySoundCmd:
			if _, ok := cfg.Sound[cmd.Label]; !ok {
				add(idx, node, "sound %q is not in the chapter", cmd.Label)
			}
		case TweenCmd:
			if cmd.Tween == nil {
				add(idx, node, "tween needs a target and a supported type, got %q", node.Arg2)
			}
		}
	}
	return issues
}
