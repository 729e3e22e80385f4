package appointment

type TimeSlot struct {
	Time      string `json:"time"`
	Occupied  int    `json:"occupied"`
	Capacity  int    `json:"capacity"`
	Remaining int    `json:"remaining"`
}

type DailySlots struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// BuildDailySlots projeta a ocupação sobre a grade completa do dia.
// Slots sem agendamento aparecem com ocupação zero; leitura pura.
func BuildDailySlots(s Schedule, date string, occupied map[string]int) DailySlots {
	grid := s.SlotsOfDay()
	slots := make([]TimeSlot, 0, len(grid))

	for _, hm := range grid {
		used := occupied[hm]
		remaining := s.Capacity - used
		if remaining < 0 {
			remaining = 0
		}
		slots = append(slots, TimeSlot{
			Time:      hm,
			Occupied:  used,
			Capacity:  s.Capacity,
			Remaining: remaining,
		})
	}

	return DailySlots{Date: date, Slots: slots}
}
