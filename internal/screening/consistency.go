package screening

import "bytes"

// Consistency is a three-valued flag: the analysis found the evidence
// consistent, found it inconsistent, or had nothing to judge.
type Consistency int

const (
	ConsistencyUnknown Consistency = iota
	Consistent
	Inconsistent
)

// ConsistencyOf lifts a nullable boolean into a Consistency.
func ConsistencyOf(b *bool) Consistency {
	switch {
	case b == nil:
		return ConsistencyUnknown
	case *b:
		return Consistent
	default:
		return Inconsistent
	}
}

func (c Consistency) String() string {
	switch c {
	case Consistent:
		return "consistent"
	case Inconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// MarshalJSON writes true, false, or null.
func (c Consistency) MarshalJSON() ([]byte, error) {
	switch c {
	case Consistent:
		return []byte("true"), nil
	case Inconsistent:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON reads true or false. Anything else, null included, decodes
// as ConsistencyUnknown so one odd flag never rejects the whole record.
func (c *Consistency) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*c = Consistent
	case "false":
		*c = Inconsistent
	default:
		*c = ConsistencyUnknown
	}
	return nil
}
