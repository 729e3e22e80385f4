package appointment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
)

func TestBuildDailySlots(t *testing.T) {
	s := testSchedule()
	s.Close = "10:00"
	s.LunchStart = ""
	s.LunchEnd = ""
	// grade: 08:00 08:30 09:00 09:30, capacidade 3

	t.Run("ocupação projetada sobre a grade inteira", func(t *testing.T) {
		out := domain.BuildDailySlots(s, "2025-03-10", map[string]int{
			"08:30": 2,
			"09:00": 3,
		})

		assert.Equal(t, "2025-03-10", out.Date)
		require.Len(t, out.Slots, 4)

		assert.Equal(t, domain.TimeSlot{Time: "08:00", Occupied: 0, Capacity: 3, Remaining: 3}, out.Slots[0])
		assert.Equal(t, domain.TimeSlot{Time: "08:30", Occupied: 2, Capacity: 3, Remaining: 1}, out.Slots[1])
		assert.Equal(t, domain.TimeSlot{Time: "09:00", Occupied: 3, Capacity: 3, Remaining: 0}, out.Slots[2])
		assert.Equal(t, domain.TimeSlot{Time: "09:30", Occupied: 0, Capacity: 3, Remaining: 3}, out.Slots[3])
	})

	t.Run("dia vazio lista a grade toda livre", func(t *testing.T) {
		out := domain.BuildDailySlots(s, "2025-03-11", nil)
		require.Len(t, out.Slots, 4)
		for _, slot := range out.Slots {
			assert.Zero(t, slot.Occupied)
			assert.Equal(t, s.Capacity, slot.Remaining)
		}
	})

	t.Run("excesso de ocupação não fica negativo", func(t *testing.T) {
		out := domain.BuildDailySlots(s, "2025-03-12", map[string]int{"08:00": 5})
		assert.Equal(t, 5, out.Slots[0].Occupied)
		assert.Equal(t, 0, out.Slots[0].Remaining)
	})

	t.Run("ocupação em horário fora da grade é ignorada", func(t *testing.T) {
		out := domain.BuildDailySlots(s, "2025-03-13", map[string]int{"07:00": 1})
		for _, slot := range out.Slots {
			assert.Zero(t, slot.Occupied)
		}
	})
}
