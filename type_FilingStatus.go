package equity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FilingStatus defines the federal filing status used to select bracket tables.
type FilingStatus int

const (
	Single FilingStatus = iota
	MarriedJoint
	MarriedSeparate
	HeadOfHousehold
)

func (s FilingStatus) String() string {
	switch s {
	case Single:
		return "single"
	case MarriedJoint:
		return "married_joint"
	case MarriedSeparate:
		return "married_separate"
	case HeadOfHousehold:
		return "head_of_household"
	default:
		return "unknown"
	}
}

// ParseFilingStatus parses a string into a FilingStatus.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "married_joint", "married-joint", "mfj":
		return MarriedJoint, nil
	case "married_separate", "married-separate", "mfs":
		return MarriedSeparate, nil
	case "head_of_household", "head-of-household", "hoh":
		return HeadOfHousehold, nil
	default:
		return 0, fmt.Errorf("unknown filing status: %q", s)
	}
}

// FilingStatuses lists every supported status, in table order.
func FilingStatuses() []FilingStatus {
	return []FilingStatus{Single, MarriedJoint, MarriedSeparate, HeadOfHousehold}
}

// MarshalJSON encodes the filing status as its string name.
func (s FilingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a filing status from its string name.
func (s *FilingStatus) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseFilingStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
