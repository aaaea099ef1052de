// Package tween parses the argument grammar of the Tween command.
package tween

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jwebster45206/scenario-player/pkg/book"
)

// Command is the command name that carries a tween.
const Command = "Tween"

type Type string

const (
	MoveBy        Type = "MoveBy"
	PunchPosition Type = "PunchPosition"
	ShakePosition Type = "ShakePosition"
	ColorTo       Type = "ColorTo"
)

type EaseType string

const (
	Linear      EaseType = "linear"
	EaseInQuart EaseType = "easeInQuart"
)

type LoopKind string

const (
	Loop     LoopKind = "loop"
	PingPong LoopKind = "pingPong"
)

// LoopType repeats the tween. A nil Count repeats forever.
type LoopType struct {
	Kind  LoopKind `json:"kind"`
	Count *int     `json:"count,omitempty"`
}

// Params is the key=value bag from Arg3. Nil fields were not given or did
// not parse.
type Params struct {
	Time    *float64 `json:"time,omitempty"`
	Speed   *float64 `json:"speed,omitempty"`
	Delay   *float64 `json:"delay,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Z       *float64 `json:"z,omitempty"`
	IsLocal *bool    `json:"islocal,omitempty"`
	Color   *string  `json:"color,omitempty"`
	Alpha   *float64 `json:"alpha,omitempty"`
	R       *float64 `json:"r,omitempty"`
	G       *float64 `json:"g,omitempty"`
	B       *float64 `json:"b,omitempty"`
	A       *float64 `json:"a,omitempty"`
}

// Tween is a parsed Tween node.
type Tween struct {
	Target string    `json:"target"`
	Type   Type      `json:"type"`
	Params Params    `json:"params"`
	Ease   EaseType  `json:"ease"`
	Loop   *LoopType `json:"loop,omitempty"`
}

// Parse reads a Tween node: Arg1 target, Arg2 type, Arg3 params, Arg4 ease,
// Arg5 loop. It returns false when the node is not a Tween, has no target or
// names an unsupported type. The command name matches case-insensitively.
func Parse(node book.Node) (*Tween, bool) {
	fold := cases.Fold()
	if fold.String(node.Command) != fold.String(Command) {
		return nil, false
	}
	return FromArgs(node.Arg1, node.Arg2, node.Arg3, node.Arg4, node.Arg5)
}

// FromArgs builds a Tween from its positional arguments.
func FromArgs(target, typ, params, ease, loop string) (*Tween, bool) {
	if target == "" {
		return nil, false
	}
	tt, ok := ParseType(typ)
	if !ok {
		return nil, false
	}
	return &Tween{
		Target: target,
		Type:   tt,
		Params: ParseParams(params),
		Ease:   ParseEase(ease),
		Loop:   ParseLoop(loop),
	}, true
}

func ParseType(s string) (Type, bool) {
	switch t := Type(s); t {
	case MoveBy, PunchPosition, ShakePosition, ColorTo:
		return t, true
	}
	return "", false
}

// ParseParams reads space separated key=value pairs. Unknown keys and parts
// without '=' are ignored; a later duplicate key wins.
func ParseParams(s string) Params {
	var p Params
	for _, part := range strings.Fields(s) {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		switch key {
		case "time":
			p.Time = parseFloat(value)
		case "speed":
			p.Speed = parseFloat(value)
		case "delay":
			p.Delay = parseFloat(value)
		case "x":
			p.X = parseFloat(value)
		case "y":
			p.Y = parseFloat(value)
		case "z":
			p.Z = parseFloat(value)
		case "islocal":
			if b, err := strconv.ParseBool(value); err == nil {
				p.IsLocal = &b
			} else {
				p.IsLocal = nil
			}
		case "color":
			v := value
			p.Color = &v
		case "alpha":
			p.Alpha = parseFloat(value)
		case "r":
			p.R = parseFloat(value)
		case "g":
			p.G = parseFloat(value)
		case "b":
			p.B = parseFloat(value)
		case "a":
			p.A = parseFloat(value)
		}
	}
	return p
}

// ParseEase defaults to Linear for anything it does not know.
func ParseEase(s string) EaseType {
	if s == string(EaseInQuart) {
		return EaseInQuart
	}
	return Linear
}

// ParseLoop reads "loop", "loop=N", "pingPong" or "pingPong=N".
func ParseLoop(s string) *LoopType {
	var kind LoopKind
	switch {
	case strings.HasPrefix(s, string(Loop)):
		kind = Loop
	case strings.HasPrefix(s, string(PingPong)):
		kind = PingPong
	default:
		return nil
	}
	lt := &LoopType{Kind: kind}
	if num, ok := strings.CutPrefix(s, string(kind)+"="); ok {
		if n, err := strconv.ParseUint(num, 10, 32); err == nil {
			count := int(n)
			lt.Count = &count
		}
	}
	return lt
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
