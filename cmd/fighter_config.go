package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/boxing-sim/boxing-sim/sim"
)

// FighterCard is the YAML fighter definition: identity, weight class, and
// the full attribute sheet.
type FighterCard struct {
	Name       string         `yaml:"name"`
	Class      string         `yaml:"weight_class"`
	Attributes sim.Attributes `yaml:"attributes"`
}

// Build turns a card into a fight-ready fighter.
func (c FighterCard) Build(params sim.Params) (*sim.Fighter, error) {
	return sim.NewFighter(c.Name, sim.WeightClass(c.Class), c.Attributes, params)
}

// LoadFighterCard reads a fighter card from a YAML file.
func LoadFighterCard(path string) (FighterCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FighterCard{}, err
	}
	var card FighterCard
	if err := yaml.Unmarshal(data, &card); err != nil {
		return FighterCard{}, fmt.Errorf("parse fighter card %s: %w", path, err)
	}
	if card.Name == "" {
		return FighterCard{}, fmt.Errorf("fighter card %s has no name", path)
	}
	return card, nil
}

// loadFighterCards resolves both corners, falling back to the built-in
// matchup for any empty path.
func loadFighterCards(pathA, pathB string) (FighterCard, FighterCard, error) {
	cardA, cardB := defaultFighterA(), defaultFighterB()
	var err error
	if pathA != "" {
		if cardA, err = LoadFighterCard(pathA); err != nil {
			return FighterCard{}, FighterCard{}, err
		}
	}
	if pathB != "" {
		if cardB, err = LoadFighterCard(pathB); err != nil {
			return FighterCard{}, FighterCard{}, err
		}
	}
	return cardA, cardB, nil
}

// defaultFighterA is a pressure puncher: heavy hands, big heart, suspect
// cardio late.
func defaultFighterA() FighterCard {
	return FighterCard{
		Name:  "Marco Silva",
		Class: string(sim.Middleweight),
		Attributes: sim.Attributes{
			Power:     sim.PowerAttributes{KnockoutPower: 88, PunchPower: 85, BodyPunching: 78},
			Speed:     sim.SpeedAttributes{HandSpeed: 72, FootSpeed: 65, Reflexes: 70},
			Stamina:   sim.StaminaAttributes{Cardio: 68, Recovery: 72, WorkRate: 80},
			Defense:   sim.DefenseAttributes{Blocking: 70, HeadMovement: 62, Clinching: 66},
			Offense:   sim.OffenseAttributes{Accuracy: 74, Combinations: 76, KillerInstinct: 90},
			Technical: sim.TechnicalAttributes{Footwork: 64, RingGeneralship: 68, Timing: 72},
			Mental:    sim.MentalAttributes{Chin: 80, Heart: 92, Composure: 75, Experience: 78, Intimidation: 82, Clutch: 80, FightIQ: 72},
		},
	}
}

// defaultFighterB is a slick boxer-mover: volume, defense, and ring IQ over
// one-punch power.
func defaultFighterB() FighterCard {
	return FighterCard{
		Name:  "Dmitri Volkov",
		Class: string(sim.Middleweight),
		Attributes: sim.Attributes{
			Power:     sim.PowerAttributes{KnockoutPower: 68, PunchPower: 72, BodyPunching: 70},
			Speed:     sim.SpeedAttributes{HandSpeed: 86, FootSpeed: 84, Reflexes: 85},
			Stamina:   sim.StaminaAttributes{Cardio: 88, Recovery: 82, WorkRate: 76},
			Defense:   sim.DefenseAttributes{Blocking: 80, HeadMovement: 88, Clinching: 72},
			Offense:   sim.OffenseAttributes{Accuracy: 82, Combinations: 80, KillerInstinct: 62},
			Technical: sim.TechnicalAttributes{Footwork: 88, RingGeneralship: 86, Timing: 84},
			Mental:    sim.MentalAttributes{Chin: 72, Heart: 78, Composure: 86, Experience: 84, Intimidation: 58, Clutch: 74, FightIQ: 88},
		},
	}
}
