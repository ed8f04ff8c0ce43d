package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepeatingKey(t *testing.T) {
	tests := []struct {
		name string
		want RepeatingKey
		ok   bool
	}{
		{
			name: "attr_repeating_attack_-Mabc123_atkname",
			want: RepeatingKey{Prefix: "attr", Group: "attack", RowID: "-Mabc123", Field: "atkname"},
			ok:   true,
		},
		{
			name: "attr_repeating_spell-cantrip_-x1_spellname",
			want: RepeatingKey{Prefix: "attr", Group: "spell-cantrip", RowID: "-x1", Field: "spellname"},
			ok:   true,
		},
		{
			name: "attr_repeating_inventory_-r1_item_weight",
			want: RepeatingKey{Prefix: "attr", Group: "inventory", RowID: "-r1", Field: "item_weight"},
			ok:   true,
		},
		{
			name: "pc_repeating_traits_-t9_name",
			want: RepeatingKey{Prefix: "pc", Group: "traits", RowID: "-t9", Field: "name"},
			ok:   true,
		},
		{name: "repeating_traits_-t9_name"},
		{name: "_repeating_traits_-t9_name"},
		{name: "attr_strength"},
		{name: "attr_repeating_attack_-Mabc123"},
		{name: "attr_repeating_attack__atkname"},
		{name: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRepeatingKey(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "strength", StripPrefix("attr_strength"))
	assert.Equal(t, "strength", StripPrefix("strength"))
	assert.Equal(t, "", StripPrefix("attr_"))
}

func TestRowFieldKey(t *testing.T) {
	assert.Equal(t, "atkname", RowFieldKey("attr_repeating_attack_-M1_atkname"))
	assert.Equal(t, "spell_level", RowFieldKey("attr_repeating_spell-1_-M2_spell_level"))
	assert.Equal(t, "itemname", RowFieldKey("attr_itemname"))
	assert.Equal(t, "repeating_inventory_-r1_itemname", RowFieldKey("repeating_inventory_-r1_itemname"))
}
