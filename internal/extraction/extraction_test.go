package extraction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

const sheetHTML = `<html><body>
<input name="attr_strength" value="16">
<input name="attr_strength_mod" value=" +3 ">
<input name="attr_ac" value="">
<span name="attr_ac">15</span>
<span name="attr_strength">99</span>
<input type="checkbox" name="attr_inspiration" checked>
<input type="checkbox" name="attr_death_save_1">
<input type="checkbox" name="attr_jack_of_all_trades" value="@{jack}" checked>
<input type="radio" name="attr_spellcasting_ability" value="@{wisdom_mod}+" checked>
<input type="radio" name="attr_spellcasting_ability" value="@{intelligence_mod}+">
<select name="attr_size"><option value="small">Small</option><option value="medium" selected>Medium</option></select>
<select name="attr_alignment"><option>Lawful Good</option><option>Chaotic Evil</option></select>
<textarea name="attr_backstory">Raised by wolves.</textarea>
<input value="no name">
<div class="repcontainer" data-groupname="repeating_inventory">
  <div class="repitem">
    <input name="attr_repeating_inventory_-r1_itemname" value="Rope">
    <input name="attr_repeating_inventory_-r1_itemcount" value="1">
    <input type="checkbox" name="attr_repeating_inventory_-r1_equipped" checked>
    <input type="checkbox" name="attr_repeating_inventory_-r1_useasresource">
  </div>
  <div class="repitem">
    <input name="attr_repeating_inventory_-r2_itemname" value="">
  </div>
  <div class="repitem">
    <input name="attr_repeating_inventory_-r3_itemname" value="Lantern">
    <span name="attr_repeating_inventory_-r3_itemweight">2</span>
  </div>
</div>
<div class="repcontainer" data-groupname="repeating_traits">
  <div class="repitem">
    <div class="display">
      <span name="attr_name">Darkvision</span>
      <span name="attr_source">Racial</span>
      <span name="attr_name">ignored</span>
    </div>
    <div class="options"><input name="attr_repeating_traits_-t1_name" value="Darkvision"></div>
  </div>
  <div class="repitem">
    <div class="options"><input name="attr_repeating_traits_-t2_name" value="Hidden"></div>
  </div>
  <div class="repitem">
    <div class="display"><span name="attr_name"> </span></div>
  </div>
</div>
<div class="repcontainer" data-groupname="repeating_tool">
  <div class="repitem">
    <div class="display"><button>
      <input name="attr_toolbonus_display" value="+5">
      <span name="attr_toolname">Thieves' Tools</span>
    </button></div>
  </div>
</div>
</body></html>`

func parseSheet(t *testing.T, html string) *View {
	t.Helper()
	view, err := ParseView(strings.NewReader(html))
	require.NoError(t, err)
	return view
}

func TestView_Attributes(t *testing.T) {
	attrs := parseSheet(t, sheetHTML).Attributes()

	assert.Equal(t, "16", attrs["strength"], "field value wins over display text")
	assert.Equal(t, "+3", attrs["strength_mod"])
	assert.Equal(t, "15", attrs["ac"], "display text fills an empty field")
	assert.Equal(t, "1", attrs["inspiration"])
	assert.NotContains(t, attrs, "death_save_1")
	assert.Equal(t, "@{jack}", attrs["jack_of_all_trades"])
	assert.Equal(t, "@{wisdom_mod}+", attrs["spellcasting_ability"])
	assert.Equal(t, "medium", attrs["size"])
	assert.Equal(t, "Lawful Good", attrs["alignment"])
	assert.Equal(t, "Raised by wolves.", attrs["backstory"])
}

func TestView_InputCount(t *testing.T) {
	assert.Equal(t, 0, parseSheet(t, "<html></html>").InputCount())
	assert.Equal(t, 2, parseSheet(t, `<input name="a"><div><input name="b"></div><select></select>`).InputCount())
}

func TestView_EmptyView(t *testing.T) {
	var nilView *View
	assert.Empty(t, nilView.Attributes())
	assert.Equal(t, 0, nilView.InputCount())

	view := NewView(nil)
	assert.NotNil(t, view.Attributes())
	assert.Empty(t, view.RepeatingGroup("repeating_attack"))
	assert.Empty(t, view.DisplayGroup("repeating_traits", ".display"))
}

func TestView_RepeatingGroup(t *testing.T) {
	rows := parseSheet(t, sheetHTML).RepeatingGroup("repeating_inventory")

	require.Len(t, rows, 2)
	assert.Equal(t, models.Row{
		"itemname":      "Rope",
		"itemcount":     "1",
		"equipped":      "1",
		"useasresource": "0",
	}, rows[0])
	assert.Equal(t, models.Row{
		"itemname":   "Lantern",
		"itemweight": "2",
	}, rows[1])
}

func TestView_RepeatingGroup_IgnoresDataElements(t *testing.T) {
	view := parseSheet(t, `<html><body>
<data name="attr_speed">30</data>
<div class="repcontainer" data-groupname="repeating_attack">
  <div class="repitem">
    <input name="attr_repeating_attack_-a1_atkname" value="Dagger">
    <data name="attr_repeating_attack_-a1_atkdamage">1d4</data>
    <span name="attr_repeating_attack_-a1_atkrange">20/60</span>
  </div>
  <div class="repitem">
    <data name="attr_repeating_attack_-a2_atkname">Club</data>
  </div>
</div>
</body></html>`)

	assert.Equal(t, "30", view.Attributes()["speed"])

	rows := view.RepeatingGroup("repeating_attack")
	require.Len(t, rows, 1)
	assert.Equal(t, models.Row{"atkname": "Dagger", "atkrange": "20/60"}, rows[0])
}

func TestView_RepeatingGroup_Missing(t *testing.T) {
	rows := parseSheet(t, sheetHTML).RepeatingGroup("repeating_attack")
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestView_DisplayGroup(t *testing.T) {
	view := parseSheet(t, sheetHTML)

	traits := view.DisplayGroup("repeating_traits", ".display")
	require.Len(t, traits, 1)
	assert.Equal(t, models.Row{"name": "Darkvision", "source": "Racial"}, traits[0])

	tools := view.DisplayGroup("repeating_tool", ".display button")
	require.Len(t, tools, 1)
	assert.Equal(t, "Thieves' Tools", tools[0].Field("toolname"))
	assert.Equal(t, "+5", tools[0].Field("toolbonus_display"))
}
