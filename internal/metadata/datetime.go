package metadata

import "time"

// en-US renderings of {weekday: long, month: short, day, year} and
// {hour, minute, second: 2-digit, timeZoneName: short}.
const (
	createdDateLayout = "Monday, Jan 2, 2006"
	createdTimeLayout = "03:04:05 PM MST"
)

func CreatedDate(created time.Time, loc *time.Location) string {
	return inLocation(created, loc).Format(createdDateLayout)
}

func CreatedTime(created time.Time, loc *time.Location) string {
	return inLocation(created, loc).Format(createdTimeLayout)
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}
