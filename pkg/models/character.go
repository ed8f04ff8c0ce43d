package models

// Character is the normalized record for one scraped character sheet.
// Every group is always present; values missing from the sheet are empty
// strings, empty lists or false.
type Character struct {
	CharID       string             `json:"charId"`
	CharName     string             `json:"charName"`
	Info         Info               `json:"info"`
	Abilities    Abilities          `json:"abilities"`
	Combat       Combat             `json:"combat"`
	Proficiency  Proficiency        `json:"proficiency"`
	Skills       Skills             `json:"skills"`
	Currency     Currency           `json:"currency"`
	Spellcasting Spellcasting       `json:"spellcasting"`
	Attacks      []Attack           `json:"attacks"`
	Inventory    []InventoryItem    `json:"inventory"`
	Spells       map[string][]Spell `json:"spells"`
	Traits       Traits             `json:"traits"`
	OtherProfs   OtherProficiencies `json:"other_profs"`
	Personality  Personality        `json:"personality"`
}

type Info struct {
	Name       string `json:"name"`
	Race       string `json:"race"`
	Background string `json:"background"`
	Alignment  string `json:"alignment"`
	Class      string `json:"class"`
	Level      string `json:"level"`
	Experience string `json:"experience"`
	PlayerName string `json:"player_name"`
}

// AbilityScore pairs an ability score with its derived modifier
type AbilityScore struct {
	Score    string `json:"score"`
	Modifier string `json:"modifier"`
}

type Abilities struct {
	Strength     AbilityScore `json:"strength"`
	Dexterity    AbilityScore `json:"dexterity"`
	Constitution AbilityScore `json:"constitution"`
	Intelligence AbilityScore `json:"intelligence"`
	Wisdom       AbilityScore `json:"wisdom"`
	Charisma     AbilityScore `json:"charisma"`
}

type Combat struct {
	AC                string `json:"ac"`
	Initiative        string `json:"initiative"`
	Speed             string `json:"speed"`
	HPCurrent         string `json:"hp_current"`
	HPMax             string `json:"hp_max"`
	HPTemp            string `json:"hp_temp"`
	HitDice           string `json:"hit_dice"`
	HitDiceUsed       string `json:"hit_dice_used"`
	DeathSavesSuccess string `json:"death_saves_success"`
	DeathSavesFail    string `json:"death_saves_fail"`
	Inspiration       string `json:"inspiration"`
}

type Proficiency struct {
	Bonus             string `json:"bonus"`
	PassivePerception string `json:"passive_perception"`
	SavingThrowStr    string `json:"saving_throw_str"`
	SavingThrowDex    string `json:"saving_throw_dex"`
	SavingThrowCon    string `json:"saving_throw_con"`
	SavingThrowInt    string `json:"saving_throw_int"`
	SavingThrowWis    string `json:"saving_throw_wis"`
	SavingThrowCha    string `json:"saving_throw_cha"`
}

// Skill is a skill bonus with its proficiency flag
type Skill struct {
	Bonus string `json:"bonus"`
	Prof  bool   `json:"prof"`
}

type Skills struct {
	Acrobatics     Skill `json:"acrobatics"`
	AnimalHandling Skill `json:"animal_handling"`
	Arcana         Skill `json:"arcana"`
	Athletics      Skill `json:"athletics"`
	Deception      Skill `json:"deception"`
	History        Skill `json:"history"`
	Insight        Skill `json:"insight"`
	Intimidation   Skill `json:"intimidation"`
	Investigation  Skill `json:"investigation"`
	Medicine       Skill `json:"medicine"`
	Nature         Skill `json:"nature"`
	Perception     Skill `json:"perception"`
	Performance    Skill `json:"performance"`
	Persuasion     Skill `json:"persuasion"`
	Religion       Skill `json:"religion"`
	SleightOfHand  Skill `json:"sleight_of_hand"`
	Stealth        Skill `json:"stealth"`
	Survival       Skill `json:"survival"`
}

type Currency struct {
	CP string `json:"cp"`
	SP string `json:"sp"`
	EP string `json:"ep"`
	GP string `json:"gp"`
	PP string `json:"pp"`
}

// SlotPair is the total and expended count of one spell slot level
type SlotPair struct {
	Total string `json:"total"`
	Used  string `json:"used"`
}

type SpellSlots struct {
	Level1 SlotPair `json:"level_1"`
	Level2 SlotPair `json:"level_2"`
	Level3 SlotPair `json:"level_3"`
	Level4 SlotPair `json:"level_4"`
	Level5 SlotPair `json:"level_5"`
	Level6 SlotPair `json:"level_6"`
	Level7 SlotPair `json:"level_7"`
	Level8 SlotPair `json:"level_8"`
	Level9 SlotPair `json:"level_9"`
}

// Level returns a pointer to the slot pair for level n (1..9), or nil.
func (s *SpellSlots) Level(n int) *SlotPair {
	switch n {
	case 1:
		return &s.Level1
	case 2:
		return &s.Level2
	case 3:
		return &s.Level3
	case 4:
		return &s.Level4
	case 5:
		return &s.Level5
	case 6:
		return &s.Level6
	case 7:
		return &s.Level7
	case 8:
		return &s.Level8
	case 9:
		return &s.Level9
	}
	return nil
}

type Spellcasting struct {
	Ability string     `json:"ability"`
	SaveDC  string     `json:"save_dc"`
	Attack  string     `json:"attack"`
	Slots   SpellSlots `json:"slots"`
}

type Attack struct {
	Name        string `json:"name"`
	Range       string `json:"range"`
	AttackBonus string `json:"attack_bonus"`
	Damage      string `json:"damage"`
	DamageType  string `json:"damage_type"`
	DamageBonus string `json:"damage_bonus"`
	CritDamage  string `json:"crit_damage"`
	Notes       string `json:"notes"`
}

type InventoryItem struct {
	Name        string `json:"name"`
	Count       string `json:"count"`
	Weight      string `json:"weight"`
	Properties  string `json:"properties"`
	Equipped    string `json:"equipped"`
	Description string `json:"description"`
}

type Spell struct {
	Name          string `json:"name"`
	Level         string `json:"level"`
	School        string `json:"school"`
	CastingTime   string `json:"casting_time"`
	Range         string `json:"range"`
	Target        string `json:"target"`
	Duration      string `json:"duration"`
	Components    string `json:"components"`
	Materials     string `json:"materials"`
	Ritual        bool   `json:"ritual"`
	Concentration bool   `json:"concentration"`
	Prepared      bool   `json:"prepared"`
	Description   string `json:"description"`
	HigherLevels  string `json:"higher_levels"`
	AttackBonus   string `json:"attack_bonus"`
	SaveDC        string `json:"save_dc"`
	Damage        string `json:"damage"`
	DamageType    string `json:"damage_type"`
}

type Trait struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	SourceType  string `json:"source_type"`
	Description string `json:"description"`
}

// Traits holds every trait in All, plus the subsets whose source matched a
// bucket label.
type Traits struct {
	All        []Trait `json:"all"`
	Racial     []Trait `json:"racial"`
	Class      []Trait `json:"class"`
	Feat       []Trait `json:"feat"`
	Background []Trait `json:"background"`
	Item       []Trait `json:"item"`
	Other      []Trait `json:"other"`
}

type Tool struct {
	Name  string `json:"name"`
	Bonus string `json:"bonus"`
}

type OtherProficiencies struct {
	Tools     []Tool   `json:"tools"`
	Languages []string `json:"languages"`
	Armor     []string `json:"armor"`
	Weapons   []string `json:"weapons"`
	Other     []string `json:"other"`
}

type Personality struct {
	Traits     string `json:"traits"`
	Ideals     string `json:"ideals"`
	Bonds      string `json:"bonds"`
	Flaws      string `json:"flaws"`
	Appearance string `json:"appearance"`
}

// NewCharacter returns a character with every list and map group allocated,
// so an unmapped record still serializes with the full schema.
func NewCharacter(id, name string) Character {
	return Character{
		CharID:    id,
		CharName:  name,
		Attacks:   []Attack{},
		Inventory: []InventoryItem{},
		Spells:    map[string][]Spell{},
		Traits: Traits{
			All:        []Trait{},
			Racial:     []Trait{},
			Class:      []Trait{},
			Feat:       []Trait{},
			Background: []Trait{},
			Item:       []Trait{},
			Other:      []Trait{},
		},
		OtherProfs: OtherProficiencies{
			Tools:     []Tool{},
			Languages: []string{},
			Armor:     []string{},
			Weapons:   []string{},
			Other:     []string{},
		},
	}
}
