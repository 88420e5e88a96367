package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the JSON encoding of calendar dates
const DateLayout = time.DateOnly

// ParseDate reads a YYYY-MM-DD date or an RFC 3339 timestamp and returns the
// written calendar day at midnight UTC
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		var tsErr error
		if t, tsErr = time.Parse(time.RFC3339, s); tsErr != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// jsonDate encodes a calendar date. The zero date is null.
type jsonDate time.Time

func (d jsonDate) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(DateLayout))
}

func (d *jsonDate) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date %s: want YYYY-MM-DD", data)
	}
	if s == nil || *s == "" {
		*d = jsonDate{}
		return nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = jsonDate(t)
	return nil
}

func (t TripDetails) MarshalJSON() ([]byte, error) {
	type alias TripDetails
	return json.Marshal(struct {
		alias
		StartDate jsonDate `json:"start_date"`
		EndDate   jsonDate `json:"end_date"`
	}{alias(t), jsonDate(t.StartDate), jsonDate(t.EndDate)})
}

func (t *TripDetails) UnmarshalJSON(data []byte) error {
	type alias TripDetails
	aux := struct {
		*alias
		StartDate jsonDate `json:"start_date"`
		EndDate   jsonDate `json:"end_date"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.StartDate, t.EndDate = time.Time(aux.StartDate), time.Time(aux.EndDate)
	return nil
}

func (l TimeLock) MarshalJSON() ([]byte, error) {
	type alias TimeLock
	return json.Marshal(struct {
		alias
		Date jsonDate `json:"date"`
	}{alias(l), jsonDate(l.Date)})
}

func (l *TimeLock) UnmarshalJSON(data []byte) error {
	type alias TimeLock
	aux := struct {
		*alias
		Date jsonDate `json:"date"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Date = time.Time(aux.Date)
	return nil
}
