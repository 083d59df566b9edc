// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"fmt"
	"time"

	"github.com/AleutianAI/MoneyGuy/services/server/datatypes"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var spanishMonthsShort = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var spanishWeekdays = [...]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

// ResolveWindow maps a period name to its analysis window ending at now.
// Weekly is a trailing seven days; monthly, quarterly, and yearly are
// calendar-to-date. Unknown periods resolve as monthly.
func ResolveWindow(period string, now time.Time) datatypes.PeriodInfo {
	var start time.Time
	switch period {
	case "weekly":
		start = now.AddDate(0, 0, -7)
	case "quarterly":
		quarter := (int(now.Month()) - 1) / 3
		start = time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
	case "yearly":
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case "monthly":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		period = "monthly"
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}

	info := datatypes.PeriodInfo{
		Type:  period,
		Start: start,
		End:   now,
	}
	info.Label = periodLabel(info)
	return info
}

// InWindow reports whether t falls inside the closed window.
func InWindow(t time.Time, info datatypes.PeriodInfo) bool {
	return !t.Before(info.Start) && !t.After(info.End)
}

func periodLabel(info datatypes.PeriodInfo) string {
	switch info.Type {
	case "weekly":
		return fmt.Sprintf("Semana del %s", info.Start.Format("02/01/2006"))
	case "quarterly":
		quarter := (int(info.Start.Month())-1)/3 + 1
		return fmt.Sprintf("Q%d %d", quarter, info.Start.Year())
	case "yearly":
		return fmt.Sprintf("Año %d", info.Start.Year())
	default:
		return fmt.Sprintf("%s %d", spanishMonths[info.Start.Month()-1], info.Start.Year())
	}
}

// monthLabel renders a month bucket label like "ene 25".
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s %02d", spanishMonthsShort[t.Month()-1], t.Year()%100)
}

// weekdayName returns the Spanish weekday name.
func weekdayName(d time.Weekday) string {
	return spanishWeekdays[int(d)]
}
