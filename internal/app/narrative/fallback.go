package narrative

import (
	"fmt"

	"duskvale/internal/domain/quest"
)

// fallbackEffect builds the deterministic template effect used whenever the
// generator is absent, unreachable, or returns something unparseable. The
// copy is fixed per tier; only fail and great carry numeric effects.
func fallbackEffect(tier quest.Tier, actionText string, sceneIndex int, player quest.Player, progress int) quest.EffectResult {
	scene := quest.SceneTitle(sceneIndex)
	if scene == "" {
		scene = fmt.Sprintf("Scene %d", sceneIndex)
	}
	mission := quest.Mission(sceneIndex)
	choices := quest.ChoiceHints(sceneIndex)

	var situation string
	hpDelta := 0
	grantBoost := 0
	switch tier {
	case quest.TierFail:
		situation = fmt.Sprintf(
			"You try to %q, but the timing slips and a shadow shifts in behind you. "+
				"A knife of cold air cuts against the smell of wet earth, and your spine goes numb. "+
				"Something is watching, and it knows you are here.", actionText)
		hpDelta = quest.FallbackFailHPDelta
	case quest.TierNeutral:
		situation = fmt.Sprintf(
			"You %q carefully. Everything is quieter than it ought to be. "+
				"The fog blurs the small details and a dripping sound keeps picking at your nerves. "+
				"Nothing clearly happens, but doubt starts to gather.", actionText)
	case quest.TierSuccess:
		situation = fmt.Sprintf(
			"You pull off %q cleanly, and the dark withdraws for a moment. "+
				"A small clue shows itself in a flicker of lightning and your nerve returns. "+
				"The way ahead is clearer, though the danger has not left it.", actionText)
	default: // great
		situation = fmt.Sprintf(
			"Your %q lands with uncanny precision and the shadow breaks apart. "+
				"A good sign appears right in front of you: a hidden stair, a guiding mark. "+
				"You draw a deep breath and feel your confidence flow back.", actionText)
		grantBoost = quest.FallbackGreatGrantBoost
	}

	progress = quest.Clamp(progress, 0, quest.TurnsPerStage)
	narration := fmt.Sprintf(
		"**[Location]:** %s\n"+
			"**[Situation]:** %s\n"+
			"**[Character]:**\n"+
			"**Health:** %s\n"+
			"**Composure:** %s\n"+
			"**Items:** Heal Potion x%d, Boost Charm x%d\n"+
			"**Mission progress:** [%d/%d]\n"+
			"**[Current mission]:** %s\n"+
			"**[Choices]:**\n"+
			"* A. %s\n"+
			"* B. %s\n"+
			"* C. %s",
		scene,
		situation,
		healthLabel(player.HP, quest.HPMax),
		composureLabel(tier),
		player.PotHeal, player.PotBoost,
		progress, quest.TurnsPerStage,
		mission,
		choices[0], choices[1], choices[2],
	)

	return quest.EffectResult{
		Narration:  narration,
		HPDelta:    hpDelta,
		GrantBoost: grantBoost,
		Status:     []string{},
		Extra:      map[string]any{"scene_title": scene, "mission": mission},
	}
}
