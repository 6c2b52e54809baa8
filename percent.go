package folio

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}

// Return is the outcome of a return computation. Not every series admits
// one: too few cash flows, same-sign flows, or a diverging solver all yield
// a non-computable result, which renders as a placeholder distinguishable
// from zero.
type Return struct {
	value Percent
	ok    bool
}

// NewReturn wraps a computed percentage.
func NewReturn(p Percent) Return { return Return{value: p, ok: true} }

// NotComputable is the sentinel for a return that has no real-valued
// solution.
func NotComputable() Return { return Return{} }

// Computable reports whether the return holds a value.
func (r Return) Computable() bool { return r.ok }

// Percent returns the held percentage. It is only meaningful when
// Computable is true.
func (r Return) Percent() Percent { return r.value }

func (r Return) String() string {
	if !r.ok {
		return "n/a"
	}
	return r.value.String()
}
