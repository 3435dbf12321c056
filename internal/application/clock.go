package application

import "time"

// Clock supaya timestamp bisa di-fix waktu test
type Clock interface {
	Now() time.Time
}

// SystemClock returns wall time in UTC; stored rows and report keys are UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
