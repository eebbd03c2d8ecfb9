package narrative

import (
	"fmt"

	"duskvale/internal/domain/quest"
)

const gmSystemPrompt = `You are the AI Game Master for "The Wailing of Duskvale", a folk-horror survival game.

Your role:
1. Narrate unsettling, atmospheric horror scenes.
2. Let the dice result decide how each event turns out.
3. Offer three believable, risky choices.
4. Keep the story's context and the player's past decisions.
5. Stay in character; never break the atmosphere.

Reading the dice:
- fail: things go wrong, real danger, HP is lost
- neutral: the player scrapes through, nothing gained or lost
- success: a small win, a clue surfaces
- great: an outstanding result, a reward or an item

Important:
- Write rural-horror imagery: long shadows, restless spirits, a watching dark.
- Keep the tension up; the player should never feel safe.
- Choices must carry different risks and different consequences.
- Be stingy with rewards; the valley is not generous.`

type playerSnapshot struct {
	HP       int `json:"hp"`
	HPMax    int `json:"hp_max"`
	MP       int `json:"mp"`
	MPMax    int `json:"mp_max"`
	PotHeal  int `json:"pot_heal"`
	PotBoost int `json:"pot_boost"`
}

type rollSnapshot struct {
	DiceRoll     int        `json:"dice_roll"`
	Total        int        `json:"total"`
	Tier         quest.Tier `json:"tier"`
	MPSpent      int        `json:"mp_spent"`
	BoostApplied bool       `json:"boost_applied"`
}

// payload is the structured request sent to the narrative collaborator.
type payload struct {
	SceneIndex int            `json:"scene_index"`
	SceneTitle string         `json:"scene_title"`
	Mission    string         `json:"mission"`
	Progress   int            `json:"progress"`
	Kind       quest.TurnKind `json:"kind"`
	Player     playerSnapshot `json:"player"`
	Roll       rollSnapshot   `json:"roll"`
	ActionText string         `json:"action_text"`
}

func buildPrompt(p payload) string {
	return fmt.Sprintf(`This is scene %d/%d of the game.

**Location:** %s
**Mission:** %s
**Progress:** %d/%d

**Player state:**
- HP: %d/%d
- MP: %d
- Heal Potion: %d
- Boost Charm: %d

**Player action:** %q

**Dice result:**
- rolled: %d/20
- outcome: %s

Respond with JSON only, in this exact shape:
{
  "narration": "Describe the scene as:\n**[Location]:** ...\n**[Situation]:** (3-5 sentences, driven by the dice outcome)\n**[Character]:**\n**Health:** ...\n**Composure:** ...\n**Items:** ...\n**Mission progress:** [%d/%d]\n**[Current mission]:** ...\n**[Choices]:**\n* A. ...\n* B. ...\n* C. ...",
  "hp_delta": 0,
  "mp_delta": 0,
  "grant_heal": 0,
  "grant_boost": 0,
  "status": [],
  "extra": {}
}

Narration rules:
1. Follow the dice outcome.
2. On fail the danger must bite: hp_delta between -5 and -15.
3. On great, reward the player, e.g. grant_boost: 1.
4. Keep the horror thick: shadows, strange sounds, the feeling of being watched.
5. Offer three choices that fit the situation.

**Health:** %s
**Composure:** %s

JSON only. No other text.`,
		p.SceneIndex, quest.StagesTotal,
		p.SceneTitle,
		p.Mission,
		p.Progress, quest.TurnsPerStage,
		p.Player.HP, p.Player.HPMax,
		p.Player.MP,
		p.Player.PotHeal,
		p.Player.PotBoost,
		p.ActionText,
		p.Roll.DiceRoll,
		p.Roll.Tier,
		p.Progress, quest.TurnsPerStage,
		healthLabel(p.Player.HP, p.Player.HPMax),
		composureLabel(p.Roll.Tier),
	)
}

func healthLabel(hp, hpMax int) string {
	if hpMax < 1 {
		hpMax = 1
	}
	ratio := float64(hp) / float64(hpMax)
	switch {
	case ratio >= 2.0/3.0:
		return "steady"
	case ratio >= 1.0/3.0:
		return "lightly wounded"
	default:
		return "gravely wounded"
	}
}

func composureLabel(tier quest.Tier) string {
	switch tier {
	case quest.TierGreat, quest.TierSuccess:
		return "composed"
	case quest.TierNeutral:
		return "on edge"
	default:
		return "close to breaking"
	}
}
