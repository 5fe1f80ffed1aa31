package storage

import (
	"encoding/json"
)

// KeyHealth describes one stored value.
type KeyHealth struct {
	Name    string
	Key     string
	Present bool
	Valid   bool
	Size    int
	Backups int
	Error   string
}

// Health inspects every known key. JSON values are checked for
// well-formedness; bare string values are valid whenever present.
func (s *Store) Health() []KeyHealth {
	report := make([]KeyHealth, 0, len(Names))
	for _, name := range Names {
		h := KeyHealth{
			Name:    name,
			Key:     s.Key(name),
			Backups: len(s.Backups(name)),
		}

		data, err := s.backend.Read(h.Key)
		if err != nil {
			h.Valid = true
			report = append(report, h)
			continue
		}

		h.Present = true
		h.Size = len(data)
		if rawNames[name] {
			h.Valid = true
		} else {
			var v interface{}
			if err := json.Unmarshal(data, &v); err != nil {
				h.Error = err.Error()
			} else {
				h.Valid = true
			}
		}
		report = append(report, h)
	}
	return report
}

// Healthy reports whether every entry in report is valid.
func Healthy(report []KeyHealth) bool {
	for _, h := range report {
		if !h.Valid {
			return false
		}
	}
	return true
}
