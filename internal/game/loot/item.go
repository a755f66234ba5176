package loot

import (
	"strconv"
	"strings"
)

// Item is one generated drop. It lives for a single fight round.
type Item struct {
	// InstanceID correlates log lines for this drop; it is never displayed.
	InstanceID string
	// BaseName is the armor the item was rolled from.
	BaseName string
	// Name is BaseName with the prefix word before it and the suffix word
	// after it, when rolled.
	Name    string
	Defense int
	// AffixLines holds "<value> <mod code>" per rolled affix, prefix first.
	AffixLines []string
}

// Format renders item as newline-terminated lines: the display name, the
// defense line, then one line per affix in generation order.
func Format(item Item) string {
	var b strings.Builder
	b.WriteString(item.Name)
	b.WriteByte('\n')
	b.WriteString("Defense: ")
	b.WriteString(strconv.Itoa(item.Defense))
	b.WriteByte('\n')
	for _, line := range item.AffixLines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// String implements fmt.Stringer via Format.
func (i Item) String() string {
	return Format(i)
}
