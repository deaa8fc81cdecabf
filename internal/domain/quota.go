package domain

import "time"

// DateLayout is the calendar date format used for quota resets.
const DateLayout = "2006-01-02"

// QuotaRecord is the persisted daily allowance of one identity.
type QuotaRecord struct {
	Remaining     int
	LastResetDate string
}

// Valid reports whether the record is well formed. Negative counts or
// unparsable dates are treated as garbage.
func (r QuotaRecord) Valid() bool {
	if r.Remaining < 0 {
		return false
	}
	_, err := time.Parse(DateLayout, r.LastResetDate)
	return err == nil
}
