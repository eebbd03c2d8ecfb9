package narrative

import (
	"context"
	"encoding/json"
	"time"

	"duskvale/internal/app/ports"
	"duskvale/internal/domain/quest"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultMaxTokens = 1000
)

// Resolver turns a resolved roll into a validated EffectResult. It asks the
// narrative collaborator first and falls back to the deterministic template
// on any failure; both paths return the same shape, so callers never branch
// on whether generation succeeded.
type Resolver struct {
	Narrator  ports.Narrator // nil means no generator configured
	Timeout   time.Duration
	MaxTokens int
}

// reply mirrors the collaborator's response contract. Narration is the only
// required field; a reply without it counts as a collaborator failure.
type reply struct {
	Narration  *string        `json:"narration"`
	HPDelta    int            `json:"hp_delta"`
	MPDelta    int            `json:"mp_delta"`
	GrantHeal  int            `json:"grant_heal"`
	GrantBoost int            `json:"grant_boost"`
	Status     []string       `json:"status"`
	Extra      map[string]any `json:"extra"`
}

// Resolve never fails: the second return reports whether the fallback path
// produced the effect, for observability only.
func (r Resolver) Resolve(ctx context.Context, session quest.Session, player quest.Player, roll quest.RollResult, actionText string, kind quest.TurnKind) (quest.EffectResult, bool) {
	sceneIndex := quest.Clamp(session.StageIndex, 1, quest.StagesTotal)
	progress := quest.Clamp(session.Turn, 1, quest.TurnsPerStage)
	sceneTitle := quest.SceneTitle(sceneIndex)
	mission := quest.Mission(sceneIndex)

	p := payload{
		SceneIndex: sceneIndex,
		SceneTitle: sceneTitle,
		Mission:    mission,
		Progress:   progress,
		Kind:       kind,
		Player: playerSnapshot{
			HP:       player.HP,
			HPMax:    quest.HPMax,
			MP:       player.MP,
			MPMax:    quest.MPMax,
			PotHeal:  player.PotHeal,
			PotBoost: player.PotBoost,
		},
		Roll: rollSnapshot{
			DiceRoll:     roll.DiceRoll,
			Total:        roll.TotalRoll,
			Tier:         roll.Tier,
			MPSpent:      roll.MPSpent,
			BoostApplied: roll.BoostApplied,
		},
		ActionText: actionText,
	}

	if effect, ok := r.generate(ctx, p, sceneTitle, mission); ok {
		return quest.ValidateEffect(effect, player), false
	}

	effect := fallbackEffect(roll.Tier, actionText, sceneIndex, player, progress)
	return quest.ValidateEffect(effect, player), true
}

func (r Resolver) generate(ctx context.Context, p payload, sceneTitle, mission string) (quest.EffectResult, bool) {
	if r.Narrator == nil {
		return quest.EffectResult{}, false
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxTokens := r.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := r.Narrator.Generate(callCtx, ports.NarrationRequest{
		System:    gmSystemPrompt,
		Prompt:    buildPrompt(p),
		MaxTokens: maxTokens,
	})
	if err != nil || raw == "" {
		return quest.EffectResult{}, false
	}

	obj, ok := extractJSONObject(raw)
	if !ok {
		return quest.EffectResult{}, false
	}
	var rep reply
	if err := json.Unmarshal(obj, &rep); err != nil || rep.Narration == nil || *rep.Narration == "" {
		return quest.EffectResult{}, false
	}

	extra := map[string]any{"scene_title": sceneTitle, "mission": mission}
	for k, v := range rep.Extra {
		extra[k] = v
	}
	status := rep.Status
	if status == nil {
		status = []string{}
	}

	return quest.EffectResult{
		Narration:  *rep.Narration,
		HPDelta:    rep.HPDelta,
		MPDelta:    rep.MPDelta,
		GrantHeal:  rep.GrantHeal,
		GrantBoost: rep.GrantBoost,
		Status:     status,
		Extra:      extra,
	}, true
}
