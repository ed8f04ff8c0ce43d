// Package mapper turns a scraped attribute map and its repeating groups into
// a normalized character record.
package mapper

import (
	"fmt"
	"strings"

	"github.com/williampepple1/party-sheet-scraper/internal/config"
	"github.com/williampepple1/party-sheet-scraper/pkg/models"
)

// GroupReader reads the repeating groups of one sheet
type GroupReader interface {
	// RepeatingGroup returns the rows of a group built from editable fields
	RepeatingGroup(group string) []models.Row
	// DisplayGroup returns the rows of a group whose values live under the
	// display block selected by scope
	DisplayGroup(group, scope string) []models.Row
}

// Mapper maps raw sheet data to models.Character
type Mapper struct {
	Traits config.TraitSources
	Profs  config.ProficiencyTypes
}

// New creates a mapper with the given bucket labels
func New(cfg config.MappingConfig) *Mapper {
	return &Mapper{
		Traits: cfg.TraitSources,
		Profs:  cfg.ProficiencyTypes,
	}
}

// Map builds the normalized record. Missing attributes and groups resolve
// to empty values, so the result always has the full schema.
func (m *Mapper) Map(id, name string, raw models.Attributes, groups GroupReader) models.Character {
	c := models.NewCharacter(id, name)
	if raw == nil {
		raw = models.Attributes{}
	}

	fill(raw, infoTable(&c.Info))
	for i, score := range abilityTable(&c.Abilities) {
		ability := AbilityNames[i]
		score.Score = raw.Get(ability, "")
		score.Modifier = raw.Get(ability+"_mod", "")
	}
	fill(raw, combatTable(&c.Combat))
	fill(raw, proficiencyTable(&c.Proficiency))
	for i, skill := range skillTable(&c.Skills) {
		skillName := SkillNames[i]
		skill.Bonus = raw.Get(skillName+"_bonus", "")
		skill.Prof = skillProficient(raw, skillName)
	}
	fill(raw, currencyTable(&c.Currency))
	fill(raw, spellcastingTable(&c.Spellcasting))
	for lvl := 1; lvl <= 9; lvl++ {
		slot := c.Spellcasting.Slots.Level(lvl)
		slot.Total = raw.Get(fmt.Sprintf("spell_slots_l%d", lvl), "")
		slot.Used = raw.Get(fmt.Sprintf("spell_slots_expended_l%d", lvl), "")
	}
	fill(raw, personalityTable(&c.Personality))

	if groups == nil {
		return c
	}

	for _, row := range groups.RepeatingGroup(GroupAttacks) {
		var a models.Attack
		fillRow(row, attackTable(&a))
		c.Attacks = append(c.Attacks, a)
	}

	for _, row := range groups.RepeatingGroup(GroupInventory) {
		var item models.InventoryItem
		fillRow(row, inventoryTable(&item))
		c.Inventory = append(c.Inventory, item)
	}

	for lvl := 0; lvl <= 9; lvl++ {
		rows := groups.RepeatingGroup(SpellGroup(lvl))
		if len(rows) == 0 {
			continue
		}
		spells := make([]models.Spell, 0, len(rows))
		for _, row := range rows {
			spells = append(spells, mapSpell(row))
		}
		c.Spells[SpellLabel(lvl)] = spells
	}

	m.mapTraits(&c.Traits, groups.DisplayGroup(GroupTraits, traitScope))
	m.mapProficiencies(&c.OtherProfs, groups)
	return c
}

// SpellGroup returns the repeating group id holding spells of a level
func SpellGroup(level int) string {
	if level == 0 {
		return GroupCantrips
	}
	return fmt.Sprintf("repeating_spell-%d", level)
}

// SpellLabel returns the output key for spells of a level
func SpellLabel(level int) string {
	if level == 0 {
		return "cantrips"
	}
	return fmt.Sprintf("level_%d", level)
}

// skillProficient reads <skill>_prof, or <skill>_type when the former is
// empty, and reports true unless that value is "1".
func skillProficient(raw models.Attributes, skill string) bool {
	flag := raw.Get(skill+"_prof", "")
	if flag == "" {
		flag = raw.Get(skill+"_type", "")
	}
	return flag != "1"
}

func mapSpell(row models.Row) models.Spell {
	var s models.Spell
	fillRow(row, spellTable(&s))

	var comps []string
	for _, c := range []struct{ key, label string }{
		{"spellcomp_v", "V"},
		{"spellcomp_s", "S"},
		{"spellcomp_m", "M"},
	} {
		if row.Field(c.key) == "1" {
			comps = append(comps, c.label)
		}
	}
	s.Components = strings.Join(comps, ", ")
	s.Ritual = row.Field("spellritual") == "1"
	s.Concentration = row.Field("spellconcentration") == "1"
	s.Prepared = row.Field("spellprepared") == "1"
	return s
}

func (m *Mapper) mapTraits(dst *models.Traits, rows []models.Row) {
	buckets := []struct {
		label string
		dst   *[]models.Trait
	}{
		{m.Traits.Racial, &dst.Racial},
		{m.Traits.Class, &dst.Class},
		{m.Traits.Feat, &dst.Feat},
		{m.Traits.Background, &dst.Background},
		{m.Traits.Item, &dst.Item},
		{m.Traits.Other, &dst.Other},
	}

	for _, row := range rows {
		var t models.Trait
		fillRow(row, traitTable(&t))
		if t.Name == "" {
			continue
		}
		dst.All = append(dst.All, t)
		for _, b := range buckets {
			if b.label != "" && t.Source == b.label {
				*b.dst = append(*b.dst, t)
			}
		}
	}
}

func (m *Mapper) mapProficiencies(dst *models.OtherProficiencies, groups GroupReader) {
	for _, row := range groups.DisplayGroup(GroupTools, buttonScope) {
		var t models.Tool
		fillRow(row, toolTable(&t))
		if t.Name == "" {
			continue
		}
		dst.Tools = append(dst.Tools, t)
	}

	buckets := []struct {
		label string
		dst   *[]string
	}{
		{m.Profs.Languages, &dst.Languages},
		{m.Profs.Armor, &dst.Armor},
		{m.Profs.Weapons, &dst.Weapons},
		{m.Profs.Other, &dst.Other},
	}
	for _, row := range groups.DisplayGroup(GroupProficiencies, buttonScope) {
		name, kind := row.Field("name"), row.Field("prof_type")
		if name == "" {
			continue
		}
		for _, b := range buckets {
			if b.label != "" && kind == b.label {
				*b.dst = append(*b.dst, name)
			}
		}
	}
}

func fill(raw models.Attributes, fields []stringField) {
	for _, f := range fields {
		*f.dst = raw.Get(f.key, "")
	}
}

func fillRow(row models.Row, fields []stringField) {
	for _, f := range fields {
		*f.dst = row.Field(f.key)
	}
}
