package extraction

import "strings"

// AttrPrefix is the prefix the sheet puts on every attribute name
const AttrPrefix = "attr_"

const repeatingMarker = "_repeating_"

// StripPrefix turns a field name into its attribute key
func StripPrefix(name string) string {
	return strings.TrimPrefix(name, AttrPrefix)
}

// RepeatingKey is a parsed repeating-field name of the form
// <prefix>_repeating_<group>_<row>_<field>.
type RepeatingKey struct {
	Prefix string
	Group  string
	RowID  string
	Field  string
}

// ParseRepeatingKey splits a repeating-field name into its parts. The name
// needs a non-empty prefix before "_repeating_". Group and row ids may
// contain hyphens but not underscores; the field name is the rest of the
// name and may contain both.
func ParseRepeatingKey(name string) (RepeatingKey, bool) {
	i := strings.Index(name, repeatingMarker)
	if i <= 0 {
		return RepeatingKey{}, false
	}
	key := RepeatingKey{Prefix: name[:i]}
	rest := name[i+len(repeatingMarker):]

	parts := strings.SplitN(rest, "_", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return RepeatingKey{}, false
	}
	key.Group, key.RowID, key.Field = parts[0], parts[1], parts[2]
	return key, true
}

// RowFieldKey returns the group-local key for a field inside a repeating
// row, falling back to the prefix-stripped name for non-repeating names.
func RowFieldKey(name string) string {
	if key, ok := ParseRepeatingKey(name); ok {
		return key.Field
	}
	return StripPrefix(name)
}
