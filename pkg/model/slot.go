package model

import "time"

// SlotTemplate is the fixed daily schedule every restaurant shares.
// Both ends of the window are bookable.
type SlotTemplate struct {
	Start    TimeOfDay
	End      TimeOfDay
	Interval time.Duration
}

func (s SlotTemplate) Slots() []TimeOfDay {
	if s.Interval < time.Minute || s.End < s.Start {
		return []TimeOfDay{}
	}
	slots := []TimeOfDay{}
	for t := s.Start; t <= s.End; t = t.Add(s.Interval) {
		slots = append(slots, t)
	}
	return slots
}

func (s SlotTemplate) Contains(t TimeOfDay) bool {
	if s.Interval < time.Minute || t < s.Start || t > s.End {
		return false
	}
	step := int(s.Interval / time.Minute)
	return int(t-s.Start)%step == 0
}
