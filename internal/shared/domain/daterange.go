package domain

import (
	"errors"
	"time"
)

// DateRange représente la période d'un rapport avec validation
// Value object immuable: les bornes sont fixées à la création
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange crée un DateRange à partir de bornes explicites
// La période est toujours un paramètre explicite du rapport, jamais un état
// ambiant partagé entre les appels
func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, errors.New("end date cannot be before start date")
	}
	return DateRange{start: start, end: end}, nil
}

// NewDateRangeFromDays crée un DateRange couvrant les N derniers jours
func NewDateRangeFromDays(days int) (DateRange, error) {
	if days < 0 {
		return DateRange{}, errors.New("days cannot be negative")
	}
	now := time.Now()
	return DateRange{
		start: now.AddDate(0, 0, -days),
		end:   now,
	}, nil
}

// Start retourne la date de début
func (dr DateRange) Start() time.Time {
	return dr.start
}

// End retourne la date de fin
func (dr DateRange) End() time.Time {
	return dr.end
}

// Contains vérifie si une date tombe dans la période (bornes incluses)
func (dr DateRange) Contains(t time.Time) bool {
	return !t.Before(dr.start) && !t.After(dr.end)
}
