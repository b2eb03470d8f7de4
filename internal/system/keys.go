package system

import (
	"sort"
	"strings"
)

// Key codes from linux/input-event-codes.h accepted by the exit watcher.
var keyCodes = map[string]uint16{
	"esc": 1,
	"q":   16,
	"f1":  59,
	"f2":  60,
	"f3":  61,
	"f4":  62,
	"f5":  63,
	"f6":  64,
	"f7":  65,
	"f8":  66,
	"f9":  67,
	"f10": 68,
	"f11": 87,
	"f12": 88,
}

// ParseKey maps a key name such as "F4" to its evdev code.
func ParseKey(name string) (uint16, bool) {
	code, ok := keyCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// KeyNames lists the names ParseKey accepts.
func KeyNames() []string {
	names := make([]string, 0, len(keyCodes))
	for name := range keyCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
