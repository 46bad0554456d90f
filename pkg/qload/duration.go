package qload

import (
	"encoding/json"
	"time"
)

// duration accepts both "20ms" strings and raw nanosecond numbers in
// workload files.
type duration struct {
	Duration time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) (err error) {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err = json.Unmarshal(b, &s); err != nil {
			return
		}
		d.Duration, err = time.ParseDuration(s)
		return
	}

	var ns int64
	ns, err = json.Number(string(b)).Int64()
	d.Duration = time.Duration(ns)

	return
}
