package utils

import "time"

// China Standard Time (+08:00); trip dates are interpreted in this zone.
var cnLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Shanghai"); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*3600)
}()

func NowUnixSeconds() int64 { return time.Now().Unix() }

// Today returns the current calendar day in China time, at midnight UTC so
// it lines up with dates parsed from YYYY-MM-DD.
func Today() time.Time {
	now := time.Now().In(cnLoc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func FromUnixSecondsCN(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(cnLoc)
}

func FormatRFC3339CN(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(cnLoc).Format(time.RFC3339)
}

// ParseInCN parses a wall-clock value as China time.
func ParseInCN(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, cnLoc)
}
