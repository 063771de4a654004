package node

import (
	"fmt"
	"strconv"
	"strings"
)

// Date is a calendar date of the game's 365-day calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// daysBefore[m] is the day of year on which month m+1 starts.
var daysBefore = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// binaryYearOffset is added to every year by the binary encoding.
const binaryYearOffset = 5000

// ParseDate parses the text form y.m.d. Extra segments or out of range
// months and days are rejected.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Date{}, false
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, false
		}
		v[i] = n
	}
	d := Date{Year: v[0], Month: v[1], Day: v[2]}
	if !d.valid() {
		return Date{}, false
	}
	return d, true
}

// DateFromHours converts the binary representation, an hour count since
// year -5000, into a date. Values that would land before year 1 are not
// dates and are rejected.
func DateFromHours(hours int64) (Date, bool) {
	if hours < 0 {
		return Date{}, false
	}
	days := hours / 24
	year := int(days/365) - binaryYearOffset
	if year < 1 {
		return Date{}, false
	}
	doy := int(days % 365)
	month := 1
	for month < 12 && doy >= daysBefore[month] {
		month++
	}
	return Date{Year: year, Month: month, Day: doy - daysBefore[month-1] + 1}, true
}

// Hours is the inverse of DateFromHours.
func (d Date) Hours() int64 {
	days := int64(d.Year+binaryYearOffset)*365 + int64(daysBefore[d.Month-1]+d.Day-1)
	return days * 24
}

func (d Date) valid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= daysBefore[d.Month]-daysBefore[d.Month-1]
}

// IsZero reports whether d is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) String() string {
	return fmt.Sprintf("%d.%d.%d", d.Year, d.Month, d.Day)
}

// ColorModel names the colour space of a Color.
type ColorModel string

const (
	RGB ColorModel = "rgb"
	HSV ColorModel = "hsv"
)

// Color is an rgb or hsv triple.
type Color struct {
	Model  ColorModel
	Values [3]float64
}

func (c Color) String() string {
	return fmt.Sprintf("%s { %s %s %s }", c.Model,
		strconv.FormatFloat(c.Values[0], 'f', -1, 64),
		strconv.FormatFloat(c.Values[1], 'f', -1, 64),
		strconv.FormatFloat(c.Values[2], 'f', -1, 64))
}
