// Package fork deals with wire-level fork identifiers: composing a fork name
// with protocol-extension (EIP) ids, and the catalogue of canonical names.
package fork

import (
	"strconv"
	"strings"
)

// Encode composes the fork identifier passed to a transition tool. With an
// empty EIP list the base name is returned unchanged; otherwise each id is
// appended in caller order, joined with "+". Ids are not deduplicated or
// sorted: caller order is authoritative. The base name itself is not
// validated here — an unknown name surfaces as a nonzero exit code from the
// tool.
func Encode(name string, eips []int) string {
	if len(eips) == 0 {
		return name
	}
	parts := make([]string, 0, len(eips)+1)
	parts = append(parts, name)
	for _, eip := range eips {
		parts = append(parts, strconv.Itoa(eip))
	}
	return strings.Join(parts, "+")
}

// Canonical lists the fork names in deployment order. Used only for friendly
// early errors in the CLI; the library accepts any name and lets the tool
// decide.
var Canonical = []string{
	"Frontier",
	"Homestead",
	"Byzantium",
	"Constantinople",
	"ConstantinopleFix",
	"Istanbul",
	"MuirGlacier",
	"Berlin",
	"London",
	"ArrowGlacier",
	"GrayGlacier",
	"Paris",
	"Shanghai",
	"Cancun",
	"Prague",
}

// Known reports whether name (before any "+<eip>" suffix) is a canonical
// fork name.
func Known(name string) bool {
	base, _, _ := strings.Cut(name, "+")
	for _, f := range Canonical {
		if f == base {
			return true
		}
	}
	return false
}
