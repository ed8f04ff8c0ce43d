package mapper

import "github.com/williampepple1/party-sheet-scraper/pkg/models"

// Repeating group ids on the sheet
const (
	GroupAttacks       = "repeating_attack"
	GroupInventory     = "repeating_inventory"
	GroupCantrips      = "repeating_spell-cantrip"
	GroupTraits        = "repeating_traits"
	GroupTools         = "repeating_tool"
	GroupProficiencies = "repeating_proficiencies"

	traitScope  = ".display"
	buttonScope = ".display button"
)

// SkillNames lists the eighteen skills in sheet order
var SkillNames = []string{
	"acrobatics",
	"animal_handling",
	"arcana",
	"athletics",
	"deception",
	"history",
	"insight",
	"intimidation",
	"investigation",
	"medicine",
	"nature",
	"perception",
	"performance",
	"persuasion",
	"religion",
	"sleight_of_hand",
	"stealth",
	"survival",
}

// AbilityNames lists the six abilities in sheet order
var AbilityNames = []string{
	"strength",
	"dexterity",
	"constitution",
	"intelligence",
	"wisdom",
	"charisma",
}

type stringField struct {
	key string
	dst *string
}

func abilityTable(a *models.Abilities) []*models.AbilityScore {
	return []*models.AbilityScore{
		&a.Strength, &a.Dexterity, &a.Constitution,
		&a.Intelligence, &a.Wisdom, &a.Charisma,
	}
}

func skillTable(s *models.Skills) []*models.Skill {
	return []*models.Skill{
		&s.Acrobatics, &s.AnimalHandling, &s.Arcana, &s.Athletics,
		&s.Deception, &s.History, &s.Insight, &s.Intimidation,
		&s.Investigation, &s.Medicine, &s.Nature, &s.Perception,
		&s.Performance, &s.Persuasion, &s.Religion, &s.SleightOfHand,
		&s.Stealth, &s.Survival,
	}
}

func infoTable(i *models.Info) []stringField {
	return []stringField{
		{"character_name", &i.Name},
		{"race", &i.Race},
		{"background", &i.Background},
		{"alignment", &i.Alignment},
		{"class_display", &i.Class},
		{"level", &i.Level},
		{"experience", &i.Experience},
		{"player_name", &i.PlayerName},
	}
}

func combatTable(c *models.Combat) []stringField {
	return []stringField{
		{"ac", &c.AC},
		{"initiative_bonus", &c.Initiative},
		{"speed", &c.Speed},
		{"hp", &c.HPCurrent},
		{"hp_max", &c.HPMax},
		{"hp_temp", &c.HPTemp},
		{"hit_dice", &c.HitDice},
		{"hit_dice_used", &c.HitDiceUsed},
		{"death_saves_success_value", &c.DeathSavesSuccess},
		{"death_saves_fail_value", &c.DeathSavesFail},
		{"inspiration", &c.Inspiration},
	}
}

func proficiencyTable(p *models.Proficiency) []stringField {
	return []stringField{
		{"pb", &p.Bonus},
		{"passive_wisdom", &p.PassivePerception},
		{"strength_save_bonus", &p.SavingThrowStr},
		{"dexterity_save_bonus", &p.SavingThrowDex},
		{"constitution_save_bonus", &p.SavingThrowCon},
		{"intelligence_save_bonus", &p.SavingThrowInt},
		{"wisdom_save_bonus", &p.SavingThrowWis},
		{"charisma_save_bonus", &p.SavingThrowCha},
	}
}

func currencyTable(c *models.Currency) []stringField {
	return []stringField{
		{"cp", &c.CP},
		{"sp", &c.SP},
		{"ep", &c.EP},
		{"gp", &c.GP},
		{"pp", &c.PP},
	}
}

func spellcastingTable(s *models.Spellcasting) []stringField {
	return []stringField{
		{"spellcasting_ability", &s.Ability},
		{"spell_save_dc", &s.SaveDC},
		{"spell_attack_bonus", &s.Attack},
	}
}

func personalityTable(p *models.Personality) []stringField {
	return []stringField{
		{"personality_traits", &p.Traits},
		{"ideals", &p.Ideals},
		{"bonds", &p.Bonds},
		{"flaws", &p.Flaws},
		{"appearance", &p.Appearance},
	}
}

func attackTable(a *models.Attack) []stringField {
	return []stringField{
		{"atkname", &a.Name},
		{"atkrange", &a.Range},
		{"atkbonus", &a.AttackBonus},
		{"dmgbase_die", &a.Damage},
		{"dmgtype", &a.DamageType},
		{"dmgbonus", &a.DamageBonus},
		{"dmgbase_die_crit", &a.CritDamage},
		{"atknotes", &a.Notes},
	}
}

func inventoryTable(i *models.InventoryItem) []stringField {
	return []stringField{
		{"itemname", &i.Name},
		{"itemcount", &i.Count},
		{"itemweight", &i.Weight},
		{"itemproperties", &i.Properties},
		{"equipped", &i.Equipped},
		{"itemcontent", &i.Description},
	}
}

func spellTable(s *models.Spell) []stringField {
	return []stringField{
		{"spellname", &s.Name},
		{"spelllevel", &s.Level},
		{"spellschool", &s.School},
		{"spellcastingtime", &s.CastingTime},
		{"spellrange", &s.Range},
		{"spelltarget", &s.Target},
		{"spellduration", &s.Duration},
		{"spellcomp_materials", &s.Materials},
		{"spelldescription", &s.Description},
		{"spellathigherlevels", &s.HigherLevels},
		{"spellattack", &s.AttackBonus},
		{"spellsave", &s.SaveDC},
		{"spelldmg", &s.Damage},
		{"spelldmgtype", &s.DamageType},
	}
}

func traitTable(t *models.Trait) []stringField {
	return []stringField{
		{"name", &t.Name},
		{"source", &t.Source},
		{"source_type", &t.SourceType},
		{"description", &t.Description},
	}
}

func toolTable(t *models.Tool) []stringField {
	return []stringField{
		{"toolname", &t.Name},
		{"toolbonus_display", &t.Bonus},
	}
}
