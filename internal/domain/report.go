package domain

import "time"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the YYYY-MM-DD date falls on or between the
// range's start and end days. End is inclusive up to 23:59:59.999.
// Unparseable dates are outside every range.
func (r DateRange) Contains(date string) bool {
	loc := r.Start.Location()
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return false
	}
	start := startOfDay(r.Start)
	end := startOfDay(r.End.In(loc)).Add(24*time.Hour - time.Millisecond)
	return !d.Before(start) && !d.After(end)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthToDate returns the range from the first day of now's month through now.
func MonthToDate(now time.Time) DateRange {
	y, m, _ := now.Date()
	return DateRange{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, now.Location()),
		End:   now,
	}
}

// Stats are the aggregates shown on the admin report.
type Stats struct {
	Range               DateRange
	Revenue             int64
	TotalConfirmedSeats int
	AveragePrice        float64
	CancelRate          float64 // percent
	TotalBookings       int
	TotalRequests       int
	TotalDrivers        int
	TotalVehicles       int
	Bookings            []Booking
}
