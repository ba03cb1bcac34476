package calc

import (
	"errors"
	"fmt"
)

// Method identifies a prayer-time calculation convention.
type Method string

const (
	MethodMWL     Method = "MWL"
	MethodISNA    Method = "ISNA"
	MethodEgypt   Method = "Egypt"
	MethodMakkah  Method = "Makkah"
	MethodKarachi Method = "Karachi"
	MethodTehran  Method = "Tehran"
	MethodJafari  Method = "Jafari"

	DefaultMethod = MethodMWL
)

var ErrUnknownMethod = errors.New("unknown calculation method")

var methodOrder = []Method{
	MethodMWL,
	MethodISNA,
	MethodEgypt,
	MethodMakkah,
	MethodKarachi,
	MethodTehran,
	MethodJafari,
}

var methodNames = map[Method]string{
	MethodMWL:     "Muslim World League",
	MethodISNA:    "Islamic Society of North America",
	MethodEgypt:   "Egyptian General Authority of Survey",
	MethodMakkah:  "Umm Al-Qura University, Makkah",
	MethodKarachi: "University of Islamic Sciences, Karachi",
	MethodTehran:  "Institute of Geophysics, University of Tehran",
	MethodJafari:  "Shia Ithna-Ashari, Leva Institute, Qum",
}

// Methods returns every supported method in catalogue order.
func Methods() []Method {
	out := make([]Method, len(methodOrder))
	copy(out, methodOrder)
	return out
}

// ParseMethod maps an identifier such as "ISNA" to a Method.
// An empty string yields DefaultMethod.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return DefaultMethod, nil
	}
	m := Method(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	return m, nil
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Name is the human readable name of the issuing authority.
func (m Method) Name() string {
	return methodNames[m]
}
