package domain

import "fmt"

// Outcome is the final classification of one account attempt.
type Outcome string

const (
	// OutcomeSuccess means the new row was found in the accounts table.
	OutcomeSuccess Outcome = "SUCCESS"
	// OutcomeDuplicate means the panel reported that the account already exists.
	OutcomeDuplicate Outcome = "DUPLICATE"
	// OutcomeUnknown means the result could not be confirmed either way.
	OutcomeUnknown Outcome = "UNKNOWN"
)

// Tally counts outcomes over a batch. After N attempts Total() equals N.
type Tally struct {
	Success   int `json:"success"`
	Duplicate int `json:"duplicate"`
	Unknown   int `json:"unknown"`
}

// Add records one outcome. Anything unrecognized is counted as unknown.
func (t *Tally) Add(o Outcome) {
	switch o {
	case OutcomeSuccess:
		t.Success++
	case OutcomeDuplicate:
		t.Duplicate++
	default:
		t.Unknown++
	}
}

// Total returns the number of recorded outcomes.
func (t Tally) Total() int {
	return t.Success + t.Duplicate + t.Unknown
}

func (t Tally) String() string {
	return fmt.Sprintf("OK=%d, DUPLICATE=%d, UNKNOWN=%d", t.Success, t.Duplicate, t.Unknown)
}
