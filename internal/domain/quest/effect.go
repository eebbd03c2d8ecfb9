package quest

// ValidateEffect clamps a proposed effect into safe bounds. Every
// narrative-originated delta passes through here before touching a player,
// whichever path produced it: the generator's numeric output is untrusted.
//
// The MP floor is enforced against the player's balance at validation time.
// The roll-spend debit happens afterwards without re-validation; that spend
// was already bounded to the available balance when sanitized.
func ValidateEffect(e EffectResult, p Player) EffectResult {
	e.HPDelta = Clamp(e.HPDelta, -EffectHPDeltaBound, EffectHPDeltaBound)
	e.MPDelta = Clamp(e.MPDelta, -EffectMPDeltaBound, EffectMPDeltaBound)
	if p.MP+e.MPDelta < 0 {
		e.MPDelta = -p.MP
	}
	e.GrantHeal = Clamp(e.GrantHeal, 0, EffectGrantMax)
	e.GrantBoost = Clamp(e.GrantBoost, 0, EffectGrantMax)
	if e.Status == nil {
		e.Status = []string{}
	}
	if e.Extra == nil {
		e.Extra = map[string]any{}
	}
	return e
}

// Attrs flattens the effect into audit-event attributes.
func (e EffectResult) Attrs() map[string]any {
	status := e.Status
	if status == nil {
		status = []string{}
	}
	extra := e.Extra
	if extra == nil {
		extra = map[string]any{}
	}
	return map[string]any{
		"narration":   e.Narration,
		"hp_delta":    e.HPDelta,
		"mp_delta":    e.MPDelta,
		"grant_heal":  e.GrantHeal,
		"grant_boost": e.GrantBoost,
		"status":      status,
		"extra":       extra,
	}
}
