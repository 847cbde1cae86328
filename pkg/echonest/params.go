package echonest

import (
	"net/url"
	"strconv"
)

// Parameter building follows the service's conventions: a parameter is
// included only when the caller supplied a non-zero value, boolean flags
// are sent as the literal string "true" and are otherwise absent, and
// list-valued parameters are repeated. Range filters with a zero value
// are treated as not supplied; the service is the authority on range
// semantics and receives whatever values are set.

func addInt(v url.Values, key string, val int) {
	if val != 0 {
		v.Set(key, strconv.Itoa(val))
	}
}

func addFloat(v url.Values, key string, val float64) {
	if val != 0 {
		v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
	}
}

func addString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func addFlag(v url.Values, key string, val bool) {
	if val {
		v.Set(key, "true")
	}
}

func addList(v url.Values, key string, vals []string) {
	for _, val := range vals {
		v.Add(key, val)
	}
}
