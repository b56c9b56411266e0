package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// SlotMap is a doctor's occupancy map: "DD_MM_YYYY" -> claimed "HH:MM" times.
// It is owned by the Doctor row and persisted as jsonb; every mutation must
// happen while the owning row is locked (see infra/repository).
type SlotMap map[string][]string

func (m SlotMap) IsFree(date, slotTime string) bool {
	for _, t := range m[date] {
		if t == slotTime {
			return false
		}
	}
	return true
}

// Claim marks the slot occupied. Returns false if it was already taken.
func (m SlotMap) Claim(date, slotTime string) bool {
	if !m.IsFree(date, slotTime) {
		return false
	}
	m[date] = append(m[date], slotTime)
	return true
}

// Release removes the slot and prunes the date entry once it is empty.
func (m SlotMap) Release(date, slotTime string) {
	times := m[date]
	for i, t := range times {
		if t == slotTime {
			times = append(times[:i], times[i+1:]...)
			break
		}
	}

	if len(times) == 0 {
		delete(m, date)
		return
	}
	m[date] = times
}

// --------- jsonb ---------

func (m SlotMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *SlotMap) Scan(value any) error {
	if value == nil {
		*m = SlotMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("slot map: unsupported column type")
	}

	if len(data) == 0 {
		*m = SlotMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}
