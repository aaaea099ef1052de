package book

import (
	"encoding/json"
	"errors"
)

var errMalformed = errors.New("malformed document")

// Row is one spreadsheet row as exported by the authoring tool.
type Row struct {
	Strings      []string
	IsCommentOut int
}

// Grid is a named table of rows. The row at HeaderRow holds the column names.
type Grid struct {
	Rows      []Row
	Name      string
	HeaderRow int
}

// Root is the top level of an exported document.
type Root struct {
	SettingList []Grid
}

// The export tool's schema is strict: every field must be present with the
// right type. The raw shapes use pointers so missing fields can be told apart
// from zero values.
type rawRow struct {
	Strings      *[]string `json:"strings"`
	IsCommentOut *int      `json:"isCommentOut"`
}

type rawGrid struct {
	Rows      *[]rawRow `json:"rows"`
	Name      *string   `json:"name"`
	HeaderRow *int      `json:"headerRow"`
}

type rawRoot struct {
	SettingList    *[]rawGrid `json:"settingList"`
	ImportGridList *[]rawGrid `json:"importGridList"` // older exporter name for settingList
}

// decodeRoot parses a document, rejecting anything that does not match the
// exporter schema.
func decodeRoot(data []byte) (*Root, error) {
	var raw rawRoot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	// The two names are one field; a document carrying both is a duplicate.
	if raw.SettingList != nil && raw.ImportGridList != nil {
		return nil, errMalformed
	}
	grids := raw.SettingList
	if grids == nil {
		grids = raw.ImportGridList
	}
	if grids == nil {
		return nil, errMalformed
	}

	root := &Root{SettingList: make([]Grid, 0, len(*grids))}
	for _, rg := range *grids {
		if rg.Rows == nil || rg.Name == nil || rg.HeaderRow == nil || *rg.HeaderRow < 0 {
			return nil, errMalformed
		}
		grid := Grid{
			Name:      *rg.Name,
			HeaderRow: *rg.HeaderRow,
			Rows:      make([]Row, 0, len(*rg.Rows)),
		}
		for _, rr := range *rg.Rows {
			if rr.Strings == nil || rr.IsCommentOut == nil {
				return nil, errMalformed
			}
			grid.Rows = append(grid.Rows, Row{
				Strings:      *rr.Strings,
				IsCommentOut: *rr.IsCommentOut,
			})
		}
		root.SettingList = append(root.SettingList, grid)
	}
	return root, nil
}

// headers returns the column names of the grid, or false when the header row
// index points outside the grid.
func (g *Grid) headers() ([]string, bool) {
	if g.HeaderRow >= len(g.Rows) {
		return nil, false
	}
	return g.Rows[g.HeaderRow].Strings, true
}

// records walks the data rows of the grid in order, skipping the header row,
// commented-out rows and rows with no populated named column.
func (g *Grid) records(fn func(rec record)) {
	headers, ok := g.headers()
	if !ok {
		return
	}
	for i := range g.Rows {
		row := &g.Rows[i]
		if i == g.HeaderRow || row.IsCommentOut == 1 {
			continue
		}
		rec := rowToRecord(row, headers)
		if len(rec) == 0 {
			continue
		}
		fn(rec)
	}
}

// record maps column name to cell value. Only non-empty cells under non-empty
// column names are present, so a missing key and an empty cell read the same.
type record map[string]string

func rowToRecord(row *Row, headers []string) record {
	rec := make(record)
	for i, key := range headers {
		if key == "" || i >= len(row.Strings) {
			continue
		}
		if value := row.Strings[i]; value != "" {
			rec[key] = value
		}
	}
	return rec
}
