package book

import "strings"

// Grid name patterns. The exporter decorates table names with prefixes and
// suffixes, so grids are matched by containment.
const (
	CharacterGrid = "cfg_character.xlsx:Character"
	LayerGrid     = "cfg_layer.xlsx:Layer"
	ParamGrid     = "cfg_param.xlsx:Param"
	SoundGrid     = "cfg_sound.xlsx:Sound"
	TextureGrid   = "cfg_texture.xlsx:Texture"
)

// Config is the chapter configuration: named reusable entries looked up by
// the interpreter. It is built once per chapter and never mutated afterwards.
// Empty string fields mean the cell was absent.
type Config struct {
	Character map[string]CharacterEntry `json:"character"` // keyed by CharacterName
	Layer     map[string]LayerEntry     `json:"layer"`     // keyed by LayerName
	Param     map[string]ParamEntry     `json:"param"`     // keyed by Label
	Sound     map[string]SoundEntry     `json:"sound"`     // keyed by Label
	Texture   map[string]TextureEntry   `json:"texture"`   // keyed by Label
}

// NewConfig returns a Config with all tables empty.
func NewConfig() Config {
	return Config{
		Character: make(map[string]CharacterEntry),
		Layer:     make(map[string]LayerEntry),
		Param:     make(map[string]ParamEntry),
		Sound:     make(map[string]SoundEntry),
		Texture:   make(map[string]TextureEntry),
	}
}

// IsEmpty reports whether no table has entries.
func (c *Config) IsEmpty() bool {
	return len(c.Character) == 0 && len(c.Layer) == 0 && len(c.Param) == 0 &&
		len(c.Sound) == 0 && len(c.Texture) == 0
}

type CharacterEntry struct {
	Label           string `json:"label,omitempty"`
	NameText        string `json:"nameText,omitempty"` // name shown in the dialogue window
	Pattern         string `json:"pattern,omitempty"`
	X               string `json:"x,omitempty"`
	Y               string `json:"y,omitempty"`
	Z               string `json:"z,omitempty"`
	Pivot           string `json:"pivot,omitempty"`
	Scale           string `json:"scale,omitempty"`
	Conditional     string `json:"conditional,omitempty"`
	FileName        string `json:"fileName,omitempty"`
	SubFileName     string `json:"subFileName,omitempty"`
	FileType        string `json:"fileType,omitempty"`
	Animation       string `json:"animation,omitempty"`
	RenderTexture   string `json:"renderTexture,omitempty"`
	RenderRect      string `json:"renderRect,omitempty"`
	EyeBlink        string `json:"eyeBlink,omitempty"`
	LipSynch        string `json:"lipSynch,omitempty"`
	Icon            string `json:"icon,omitempty"`
	IconSubFileName string `json:"iconSubFileName,omitempty"`
	IconRect        string `json:"iconRect,omitempty"`
}

type LayerEntry struct {
	Type         string `json:"type,omitempty"`
	X            string `json:"x,omitempty"`
	Y            string `json:"y,omitempty"`
	Order        string `json:"order,omitempty"`
	LayerMask    string `json:"layerMask,omitempty"`
	ScaleX       string `json:"scaleX,omitempty"`
	ScaleY       string `json:"scaleY,omitempty"`
	FlipX        string `json:"flipX,omitempty"`
	FlipY        string `json:"flipY,omitempty"`
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
	BorderLeft   string `json:"borderLeft,omitempty"`
	BorderRight  string `json:"borderRight,omitempty"`
	BorderTop    string `json:"borderTop,omitempty"`
	BorderBottom string `json:"borderBottom,omitempty"`
	Align        string `json:"align,omitempty"`
}

type ParamEntry struct {
	Type     string `json:"type,omitempty"`
	Value    string `json:"value,omitempty"`
	FileType string `json:"fileType,omitempty"`
}

type SoundEntry struct {
	Title     string `json:"title,omitempty"`
	Type      string `json:"type,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	IntroTime string `json:"introTime,omitempty"`
	Volume    string `json:"volume,omitempty"`
}

type TextureEntry struct {
	Type          string `json:"type,omitempty"`
	FileName      string `json:"fileName,omitempty"`
	FileType      string `json:"fileType,omitempty"`
	X             string `json:"x,omitempty"`
	Y             string `json:"y,omitempty"`
	Z             string `json:"z,omitempty"`
	Pivot         string `json:"pivot,omitempty"`
	Scale         string `json:"scale,omitempty"`
	Conditional   string `json:"conditional,omitempty"`
	SubFileName   string `json:"subFileName,omitempty"`
	Animation     string `json:"animation,omitempty"`
	RenderTexture string `json:"renderTexture,omitempty"`
	RenderRect    string `json:"renderRect,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	CgCategolly   string `json:"cgCategolly,omitempty"` // spelling follows the exporter column
}

// ParseChapter builds a Config from a chapter document. A document that does
// not match the exporter schema yields an empty Config rather than an error:
// playback continues with nothing resolvable.
func ParseChapter(data []byte) Config {
	cfg := NewConfig()
	root, err := decodeRoot(data)
	if err != nil {
		return cfg
	}

	for i := range root.SettingList {
		grid := &root.SettingList[i]
		switch {
		case strings.Contains(grid.Name, CharacterGrid):
			grid.records(func(rec record) {
				if name := rec["CharacterName"]; name != "" {
					cfg.Character[name] = characterFromRecord(rec)
				}
			})
		case strings.Contains(grid.Name, LayerGrid):
			grid.records(func(rec record) {
				if name := rec["LayerName"]; name != "" {
					cfg.Layer[name] = layerFromRecord(rec)
				}
			})
		case strings.Contains(grid.Name, ParamGrid):
			grid.records(func(rec record) {
				if label := rec["Label"]; label != "" {
					cfg.Param[label] = ParamEntry{
						Type:     rec["Type"],
						Value:    rec["Value"],
						FileType: rec["FileType"],
					}
				}
			})
		case strings.Contains(grid.Name, SoundGrid):
			grid.records(func(rec record) {
				if label := rec["Label"]; label != "" {
					cfg.Sound[label] = SoundEntry{
						Title:     rec["Title"],
						Type:      rec["Type"],
						FileName:  rec["FileName"],
						IntroTime: rec["IntroTime"],
						Volume:    rec["Volume"],
					}
				}
			})
		case strings.Contains(grid.Name, TextureGrid):
			grid.records(func(rec record) {
				if label := rec["Label"]; label != "" {
					cfg.Texture[label] = textureFromRecord(rec)
				}
			})
		}
	}
	return cfg
}

func characterFromRecord(rec record) CharacterEntry {
	return CharacterEntry{
		Label:           rec["Label"],
		NameText:        rec["NameText"],
		Pattern:         rec["Pattern"],
		X:               rec["X"],
		Y:               rec["Y"],
		Z:               rec["Z"],
		Pivot:           rec["Pivot"],
		Scale:           rec["Scale"],
		Conditional:     rec["Conditional"],
		FileName:        rec["FileName"],
		SubFileName:     rec["SubFileName"],
		FileType:        rec["FileType"],
		Animation:       rec["Animation"],
		RenderTexture:   rec["RenderTexture"],
		RenderRect:      rec["RenderRect"],
		EyeBlink:        rec["EyeBlink"],
		LipSynch:        rec["LipSynch"],
		Icon:            rec["Icon"],
		IconSubFileName: rec["IconSubFileName"],
		IconRect:        rec["IconRect"],
	}
}

func layerFromRecord(rec record) LayerEntry {
	return LayerEntry{
		Type:         rec["Type"],
		X:            rec["X"],
		Y:            rec["Y"],
		Order:        rec["Order"],
		LayerMask:    rec["LayerMask"],
		ScaleX:       rec["ScaleX"],
		ScaleY:       rec["ScaleY"],
		FlipX:        rec["FlipX"],
		FlipY:        rec["FlipY"],
		Width:        rec["Width"],
		Height:       rec["Height"],
		BorderLeft:   rec["BorderLeft"],
		BorderRight:  rec["BorderRight"],
		BorderTop:    rec["BorderTop"],
		BorderBottom: rec["BorderBottom"],
		Align:        rec["Align"],
	}
}

func textureFromRecord(rec record) TextureEntry {
	return TextureEntry{
		Type:          rec["Type"],
		FileName:      rec["FileName"],
		FileType:      rec["FileType"],
		X:             rec["X"],
		Y:             rec["Y"],
		Z:             rec["Z"],
		Pivot:         rec["Pivot"],
		Scale:         rec["Scale"],
		Conditional:   rec["Conditional"],
		SubFileName:   rec["SubFileName"],
		Animation:     rec["Animation"],
		RenderTexture: rec["RenderTexture"],
		RenderRect:    rec["RenderRect"],
		Thumbnail:     rec["Thumbnail"],
		CgCategolly:   rec["CgCategolly"],
	}
}
