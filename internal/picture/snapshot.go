package picture

import (
	"encoding/json"
	"strconv"
)

// Snapshot is the JSON file form of a picture. Row and column keys are
// decimal strings.
type Snapshot struct {
	Width  int                          `json:"width"`
	Height int                          `json:"height"`
	Name   string                       `json:"name"`
	BitMap map[string]map[string]string `json:"bitMap"`
}

// Snapshot captures the picture, inert cells included.
func (p *Picture) Snapshot() Snapshot {
	bm := make(map[string]map[string]string, len(p.bitmap))
	for row, cols := range p.bitmap {
		out := make(map[string]string, len(cols))
		for col, c := range cols {
			out[strconv.Itoa(col)] = string(c)
		}
		bm[strconv.Itoa(row)] = out
	}
	return Snapshot{
		Width:  p.width,
		Height: p.height,
		Name:   p.name,
		BitMap: bm,
	}
}

func (p *Picture) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Snapshot())
}

func (p *Picture) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*p = *decoded
	return nil
}

// FromSnapshot builds a picture with the same defaulting as New. Keys that
// are not integers, or that name an index already seen ("1" and "01"), are
// rejected; indices themselves are taken as-is.
func FromSnapshot(s Snapshot) (*Picture, error) {
	if s.Width < 0 || s.Height < 0 {
		return nil, &ParseError{Reason: "negative dimensions"}
	}
	bm := make(map[int]map[int]Color, len(s.BitMap))
	for rowKey, cols := range s.BitMap {
		row, err := strconv.Atoi(rowKey)
		if err != nil {
			return nil, &ParseError{Reason: "row key " + strconv.Quote(rowKey), Err: err}
		}
		if _, dup := bm[row]; dup {
			return nil, &ParseError{Reason: "duplicate row key " + strconv.Quote(rowKey)}
		}
		out := make(map[int]Color, len(cols))
		for colKey, c := range cols {
			col, err := strconv.Atoi(colKey)
			if err != nil {
				return nil, &ParseError{Reason: "column key " + strconv.Quote(colKey), Err: err}
			}
			if _, dup := out[col]; dup {
				return nil, &ParseError{Reason: "duplicate column key " + strconv.Quote(colKey)}
			}
			out[col] = Color(c)
		}
		bm[row] = out
	}
	return New(
		WithWidth(s.Width),
		WithHeight(s.Height),
		WithName(s.Name),
		WithBitmap(bm),
	), nil
}

// Decode parses snapshot JSON. Every failure is a *ParseError.
func Decode(data []byte) (*Picture, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ParseError{Reason: "invalid json", Err: err}
	}
	if fields == nil {
		return nil, &ParseError{Reason: "snapshot is not an object"}
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Reason: "unexpected field type", Err: err}
	}
	return FromSnapshot(s)
}
