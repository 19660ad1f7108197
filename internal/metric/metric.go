package metric

// Key names one of the eight activity KPIs tracked per day. The set is
// closed: every totals structure in the engine is keyed by it.
type Key string

const (
	FA               Key = "fa"
	EH               Key = "eh"
	NewAppointments  Key = "new_appointments"
	Recommendations  Key = "recommendations"
	TIVInvitations   Key = "tiv_invitations"
	TAAInvitations   Key = "taa_invitations"
	TGSRegistrations Key = "tgs_registrations"
	BAVChecks        Key = "bav_checks"
)

var keys = []Key{
	FA,
	EH,
	NewAppointments,
	Recommendations,
	TIVInvitations,
	TAAInvitations,
	TGSRegistrations,
	BAVChecks,
}

// Keys returns the eight KPI keys in canonical order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)
	return out
}

func (k Key) IsValid() bool {
	for _, v := range keys {
		if k == v {
			return true
		}
	}
	return false
}

// Total pairs a target with the summed actual for one KPI.
type Total struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
}

// Totals maps every KPI to its target/actual pair.
type Totals map[Key]Total

func NewTotals() Totals {
	t := make(Totals, len(keys))
	for _, k := range keys {
		t[k] = Total{}
	}
	return t
}

func (t Totals) Add(k Key, target, actual float64) {
	cur := t[k]
	cur.Target += target
	cur.Actual += actual
	t[k] = cur
}

// Merge adds every pair of other into t.
func (t Totals) Merge(other Totals) {
	for _, k := range keys {
		o := other[k]
		t.Add(k, o.Target, o.Actual)
	}
}

// Counter reads one KPI value from a record. The bool reports whether the
// record carries a value for that KPI at all; absent counters coalesce to
// zero in Fold, nowhere else.
type Counter func(k Key) (int, bool)

// Fold sums a per-KPI counter over a sequence of records. Weekly, monthly
// and per-day sums all go through this one implementation.
func Fold(counters []Counter) map[Key]int {
	sums := make(map[Key]int, len(keys))
	for _, k := range keys {
		sums[k] = 0
	}
	for _, c := range counters {
		for _, k := range keys {
			if v, ok := c(k); ok {
				sums[k] += v
			}
		}
	}
	return sums
}
