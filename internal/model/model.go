package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationError reports a value outside one of the closed enumerations
// below. It comes up when decoding API responses that carry values this
// client does not know about.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

// Genre classifies a session's musical style. The string values are part of
// the wire contract and must match the API's schema.
type Genre string

const (
	Any           Genre = "Any"
	StraightAhead Genre = "Straight-Ahead_Jazz"
	JazzFunk      Genre = "Jazz-Funk"
	Fusion        Genre = "Fusion"
	LatinJazz     Genre = "Latin_Jazz"
	ModernJazz    Genre = "Modern_Jazz"
	TradJazz      Genre = "Trad_Jazz"
	Funk          Genre = "Funk"
	RnB           Genre = "RnB"
	HipHop        Genre = "Hip-Hop"
	Blues         Genre = "Blues"
	Folk          Genre = "Folk"
	Rock          Genre = "Rock"
	Pop           Genre = "Pop"
	WorldMusic    Genre = "World_Music"
)

// Genres is the set of accepted Genre values. Any is a sentinel meaning
// "no genre filter" and is never sent as a query parameter.
var Genres = map[Genre]struct{}{
	Any: {}, StraightAhead: {}, JazzFunk: {}, Fusion: {}, LatinJazz: {},
	ModernJazz: {}, TradJazz: {}, Funk: {}, RnB: {}, HipHop: {}, Blues: {},
	Folk: {}, Rock: {}, Pop: {}, WorldMusic: {},
}

func (g Genre) String() string { return string(g) }

func (g *Genre) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "Genre", Genres)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Backline is a piece of shared equipment provided by a venue.
type Backline string

const (
	PA             Backline = "PA"
	GuitarAmp      Backline = "Guitar_Amp"
	BassAmp        Backline = "Bass_Amp"
	Drums          Backline = "Drums"
	Keys           Backline = "Keys"
	Mic            Backline = "Microphone"
	MiscPercussion Backline = "MiscPercussion"
)

// BacklineOptions is the set of accepted Backline values.
var BacklineOptions = map[Backline]struct{}{
	PA: {}, GuitarAmp: {}, BassAmp: {}, Drums: {}, Keys: {}, Mic: {},
	MiscPercussion: {},
}

func (b Backline) String() string { return string(b) }

func (b *Backline) UnmarshalJSON(raw []byte) error {
	v, err := unmarshalEnum(raw, "Backline", BacklineOptions)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Interval is the repetition pattern of a session.
type Interval string

const (
	Once            Interval = "Once"
	Daily           Interval = "Daily"
	Weekly          Interval = "Weekly"
	Fortnightly     Interval = "Fortnightly"
	FirstOfMonth    Interval = "FirstOfMonth"
	SecondOfMonth   Interval = "SecondOfMonth"
	ThirdOfMonth    Interval = "ThirdOfMonth"
	FourthOfMonth   Interval = "FourthOfMonth"
	LastOfMonth     Interval = "LastOfMonth"
	IrregularWeekly Interval = "IrregularWeekly"
)

// IntervalOptions is the set of accepted Interval values.
var IntervalOptions = map[Interval]struct{}{
	Once: {}, Daily: {}, Weekly: {}, Fortnightly: {}, FirstOfMonth: {},
	SecondOfMonth: {}, ThirdOfMonth: {}, FourthOfMonth: {}, LastOfMonth: {},
	IrregularWeekly: {},
}

func (i Interval) String() string { return string(i) }

func (i *Interval) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "Interval", IntervalOptions)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

// unmarshalEnum decodes a JSON string into a closed string-enum type,
// rejecting values outside the valid set.
func unmarshalEnum[E ~string](b []byte, name string, valid map[E]struct{}) (E, error) {
	v := E(strings.Trim(string(b), `"`))
	if _, ok := valid[v]; !ok {
		values := make([]string, 0, len(valid))
		for k := range valid {
			values = append(values, string(k))
		}
		sort.Strings(values)
		return "", ValidationError{Msg: fmt.Sprintf("%s is not a valid %s. Valid values: %s", b, name, strings.Join(values, ", "))}
	}
	return v, nil
}

// Date is a calendar date without a time component, marshalled as
// YYYY-MM-DD.
type Date time.Time

func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(time.DateOnly, strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*d = Date(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(time.DateOnly))
}

func (d Date) Time() time.Time { return time.Time(d) }
