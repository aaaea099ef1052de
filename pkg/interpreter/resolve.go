package interpreter

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	defaultWaitSeconds  = 0.1
	defaultFadeSeconds  = 0.2 // stop/hide fades and displaced bgm/ambience
	defaultOverlaySecs  = 1.0 // FadeIn / FadeOut
	defaultOverlayColor = "black"
	defaultScale        = 1.0
	defaultPosition     = 0.0
	defaultVolume       = 1.0

	// AllSpriteObjects in SpriteOff's Arg1 removes every sprite.
	AllSpriteObjects = "AllSpriteObjects"
)

// firstPresent returns the highest-precedence non-empty source.
func firstPresent(sources ...string) string {
	for _, s := range sources {
		if s != "" {
			return s
		}
	}
	return ""
}

// resolveFloat takes the first present source, highest precedence first, and
// parses it. Absence or a parse failure yields def; a lower source is never
// consulted once a higher one is present.
func resolveFloat(def float64, sources ...string) float64 {
	v := firstPresent(sources...)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// resolveBool follows the same policy as resolveFloat.
func resolveBool(def bool, sources ...string) bool {
	v := firstPresent(sources...)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

// seconds converts a non-negative second count to a Duration, saturating at
// the largest Duration.
func seconds(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	if s >= float64(math.MaxInt64)/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(math.Round(s * float64(time.Second)))
}

// parseParamAssignment reads a Param argument of the form key=value. Escaped
// and literal double quotes are dropped; both sides must be non-empty.
func parseParamAssignment(arg string) (key, value string, ok bool) {
	arg = strings.ReplaceAll(arg, `\"`, "")
	arg = strings.ReplaceAll(arg, `"`, "")
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
