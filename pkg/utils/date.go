package utils

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidISO8601 = errors.New("invalid ISO-8601 date")

var (
	dateTimeDelimiter = regexp.MustCompile(`[T ]`)
	timeZoneDelimiter = regexp.MustCompile(`(?i)[Z ]`)
	timezoneSuffix    = regexp.MustCompile(`([Z+-].*)$`)

	yearPattern    = regexp.MustCompile(`^(?:(\d{4}|[+-]\d{6})|(\d{2}|[+-]\d{4})$)`)
	datePattern    = regexp.MustCompile(`^-?(?:(\d{3})|(\d{2})(?:-?(\d{2}))?|W(\d{2})(?:-?(\d{1}))?|)$`)
	timePattern    = regexp.MustCompile(`^(\d{2}(?:[.,]\d*)?)(?::?(\d{2}(?:[.,]\d*)?))?(?::?(\d{2}(?:[.,]\d*)?))?$`)
	timezoneFormat = regexp.MustCompile(`^([+-])(\d{2})(?::?(\d{2}))?$`)
)

// ParseISO8601 interpreta datas no formato ISO-8601: datas de calendário
// (2024-01-15, 20240115, 2024-01, 2024), ordinais (2024-015) e de semana
// (2024-W03-1), seguidas opcionalmente de hora e fuso (T10:30:00.123Z, 10:30+05:30).
// Valores sem fuso são interpretados em loc. Componentes fora do intervalo
// (mês 13, 30 de fevereiro, 25h) resultam em ErrInvalidISO8601.
func ParseISO8601(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	dateStr, timeStr, zoneStr, ok := splitDateString(value)
	if !ok {
		return time.Time{}, ErrInvalidISO8601
	}

	year, rest, ok := parseYear(dateStr)
	if !ok {
		return time.Time{}, ErrInvalidISO8601
	}

	date, ok := parseDate(rest, year)
	if !ok {
		return time.Time{}, ErrInvalidISO8601
	}

	var offset time.Duration
	if timeStr != "" {
		offset, ok = parseTime(timeStr)
		if !ok {
			return time.Time{}, ErrInvalidISO8601
		}
	}

	if zoneStr == "" {
		y, m, d := date.Date()
		wall := offset.Truncate(time.Second)
		return time.Date(y, m, d,
			int(wall/time.Hour),
			int(wall%time.Hour/time.Minute),
			int(wall%time.Minute/time.Second),
			int(offset-wall),
			loc,
		), nil
	}

	zoneOffset, ok := parseTimezone(zoneStr)
	if !ok {
		return time.Time{}, ErrInvalidISO8601
	}

	return date.Add(offset).Add(-zoneOffset), nil
}

func splitDateString(value string) (dateStr, timeStr, zoneStr string, ok bool) {
	parts := dateTimeDelimiter.Split(value, -1)
	if len(parts) > 2 {
		return "", "", "", false
	}

	// Apenas hora, sem data
	if strings.Contains(parts[0], ":") {
		return "", "", "", false
	}

	dateStr = parts[0]
	if len(parts) == 2 {
		timeStr = parts[1]
	}

	if timeZoneDelimiter.MatchString(dateStr) {
		dateStr = timeZoneDelimiter.Split(value, -1)[0]
		timeStr = value[len(dateStr):]
	}

	if timeStr != "" {
		if match := timezoneSuffix.FindStringSubmatchIndex(timeStr); match != nil {
			zoneStr = timeStr[match[2]:match[3]]
			timeStr = timeStr[:match[2]]
		}
	}

	return dateStr, timeStr, zoneStr, dateStr != ""
}

func parseYear(dateStr string) (year int, rest string, ok bool) {
	match := yearPattern.FindStringSubmatch(dateStr)
	if match == nil {
		return 0, "", false
	}

	if match[1] != "" {
		y, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, "", false
		}
		return y, dateStr[len(match[0]):], true
	}

	// Apenas o século (ex.: "20" -> 2000)
	c, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, "", false
	}
	return c * 100, "", true
}

func parseDate(rest string, year int) (time.Time, bool) {
	match := datePattern.FindStringSubmatch(rest)
	if match == nil {
		return time.Time{}, false
	}

	dayOfYear := match[1]
	month := match[2]
	day := match[3]
	week := match[4]
	dayOfWeek := match[5]

	switch {
	case week != "":
		w, _ := strconv.Atoi(week)
		d := 1
		if dayOfWeek != "" {
			d, _ = strconv.Atoi(dayOfWeek)
		}
		if w < 1 || w > 53 || d < 1 || d > 7 {
			return time.Time{}, false
		}
		return dayOfISOWeekYear(year, w, d-1), true

	case dayOfYear != "":
		n, _ := strconv.Atoi(dayOfYear)
		lastDay := 365
		if isLeapYear(year) {
			lastDay = 366
		}
		if n < 1 || n > lastDay {
			return time.Time{}, false
		}
		return time.Date(year, time.January, n, 0, 0, 0, 0, time.UTC), true

	default:
		m, d := 1, 1
		if month != "" {
			m, _ = strconv.Atoi(month)
		}
		if day != "" {
			d, _ = strconv.Atoi(day)
		}
		if m < 1 || m > 12 || d < 1 || d > daysIn(time.Month(m), year) {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
	}
}

func parseTime(timeStr string) (time.Duration, bool) {
	match := timePattern.FindStringSubmatch(timeStr)
	if match == nil {
		return 0, false
	}

	hours := parseTimeUnit(match[1])
	minutes := parseTimeUnit(match[2])
	seconds := parseTimeUnit(match[3])

	if hours == 24 {
		if minutes != 0 || seconds != 0 {
			return 0, false
		}
	} else if hours < 0 || hours >= 25 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, false
	}

	total := hours*float64(time.Hour) + minutes*float64(time.Minute) + seconds*float64(time.Second)
	return time.Duration(math.Round(total)), true
}

func parseTimeUnit(value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseTimezone(zoneStr string) (time.Duration, bool) {
	if strings.EqualFold(zoneStr, "Z") {
		return 0, true
	}

	match := timezoneFormat.FindStringSubmatch(zoneStr)
	if match == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(match[2])
	minutes := 0
	if match[3] != "" {
		minutes, _ = strconv.Atoi(match[3])
	}
	if hours > 23 || minutes > 59 {
		return 0, false
	}

	offset := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	if match[1] == "-" {
		offset = -offset
	}
	return offset, true
}

// dayOfISOWeekYear retorna a data da semana ISO informada; day começa em 0 (segunda-feira)
func dayOfISOWeekYear(year, week, day int) time.Time {
	fourthOfJanuary := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(fourthOfJanuary.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	diff := (week-1)*7 + day + 1 - weekday
	return fourthOfJanuary.AddDate(0, 0, diff)
}

func isLeapYear(year int) bool {
	return year%400 == 0 || (year%4 == 0 && year%100 != 0)
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
