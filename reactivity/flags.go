package reactivity

import "strings"

// Flags is the state bitset carried by every subscriber. The bits are not
// mutually exclusive; see the package documentation for the composite states.
type Flags uint8

const (
	FlagActive Flags = 1 << iota
	FlagRunning
	FlagTracking
	FlagNotified
	FlagDirty
	FlagAllowRecurse
	FlagNoBatch
)

var flagNames = [...]string{
	"ACTIVE",
	"RUNNING",
	"TRACKING",
	"NOTIFIED",
	"DIRTY",
	"ALLOW_RECURSE",
	"NO_BATCH",
}

func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

func (f Flags) String() string {
	if f == 0 {
		return "NONE"
	}
	var sb strings.Builder
	for i, name := range flagNames {
		if f&(1<<i) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(name)
	}
	return sb.String()
}
