package appointment

import (
	"fmt"
	"time"

	"github.com/lavarapido/wash-scheduler/internal/timezone"
)

// ===============================
// Schedule (imutável após o load)
// ===============================

// Schedule descreve o expediente do lava-rápido: grade de horários,
// pausa de almoço e capacidade de box por slot. Construído uma vez no
// startup a partir do ambiente e passado explicitamente ao domínio.
type Schedule struct {
	Open        string // "08:00"
	Close       string // "18:00"
	SlotMinutes int
	LunchStart  string // vazio = sem pausa
	LunchEnd    string
	Capacity    int
	Timezone    string
}

func (s Schedule) Validate() error {
	if _, ok := parseHM(s.Open); !ok {
		return fmt.Errorf("schedule: abertura inválida %q", s.Open)
	}
	if _, ok := parseHM(s.Close); !ok {
		return fmt.Errorf("schedule: fechamento inválido %q", s.Close)
	}
	if s.SlotMinutes <= 0 {
		return fmt.Errorf("schedule: slot_minutes deve ser positivo")
	}
	if s.Capacity <= 0 {
		return fmt.Errorf("schedule: capacidade deve ser positiva")
	}
	if (s.LunchStart == "") != (s.LunchEnd == "") {
		return fmt.Errorf("schedule: pausa de almoço exige início e fim")
	}
	if s.LunchStart != "" {
		if _, ok := parseHM(s.LunchStart); !ok {
			return fmt.Errorf("schedule: lunch_start inválido %q", s.LunchStart)
		}
		if _, ok := parseHM(s.LunchEnd); !ok {
			return fmt.Errorf("schedule: lunch_end inválido %q", s.LunchEnd)
		}
	}
	return nil
}

func (s Schedule) Location() *time.Location {
	return timezone.Location(s.Timezone)
}

// SlotsOfDay gera a grade ordenada de horários do dia. Determinística:
// parte da abertura, avança SlotMinutes enquanto o slot inteiro couber
// antes do fechamento e pula os inícios dentro de [LunchStart, LunchEnd).
func (s Schedule) SlotsOfDay() []string {
	open, okO := parseHM(s.Open)
	close, okC := parseHM(s.Close)
	if !okO || !okC {
		return nil
	}

	lunchStart, lunchEnd := -1, -1
	if s.LunchStart != "" && s.LunchEnd != "" {
		if ls, ok := parseHM(s.LunchStart); ok {
			lunchStart = ls
		}
		if le, ok := parseHM(s.LunchEnd); ok {
			lunchEnd = le
		}
	}

	var slots []string
	for m := open; m+s.SlotMinutes <= close; m += s.SlotMinutes {
		if lunchStart >= 0 && m >= lunchStart && m < lunchEnd {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// IsValidSlot verifica pertencimento do rótulo à grade do dia.
func (s Schedule) IsValidSlot(hm string) bool {
	for _, slot := range s.SlotsOfDay() {
		if slot == hm {
			return true
		}
	}
	return false
}

// IsPast informa se (date, hm) é estritamente anterior a now, avaliado
// no fuso configurado. Datas mal formadas contam como passado.
func (s Schedule) IsPast(date, hm string, now time.Time) bool {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hm, s.Location())
	if err != nil {
		return true
	}
	return start.Before(now)
}

// parseHM converte "HH:MM" em minutos desde a meia-noite.
func parseHM(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
