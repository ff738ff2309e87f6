package progression

import "math/rand"

// Engine applies rewards and leveling to progression records. Randomness is
// injected so callers can seed it deterministically in tests.
type Engine struct {
	rng *rand.Rand
}

// NewEngine builds an engine around the given random source.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// CourseRewards computes the reward bundle for one session score and applies
// active effects. Returns the bundle and the effects surviving the pass:
// every effect is consumed once, and effects whose counter hits zero are
// deactivated and dropped.
func (e *Engine) CourseRewards(score int, effects []Effect) (Rewards, []Effect) {
	rewards := Rewards{
		Experience:   score,
		Currency:     score / 2,
		Intelligence: e.rng.Intn(4),
		Strength:     e.rng.Intn(4),
		Charm:        e.rng.Intn(4),
	}

	surviving := make([]Effect, 0, len(effects))
	for _, eff := range effects {
		if eff.Active {
			switch eff.Type {
			case EffectExperienceMultiplier:
				rewards.Experience = int(float64(rewards.Experience) * eff.Value)
			case EffectCurrencyMultiplier:
				rewards.Currency = int(float64(rewards.Currency) * eff.Value)
			case EffectLuckyBonus:
				rewards.Intelligence += e.rng.Intn(2)
				rewards.Strength += e.rng.Intn(2)
				rewards.Charm += e.rng.Intn(2)
			case EffectAttributeBoost:
				boost := int(eff.Value)
				rewards.Intelligence += boost
				rewards.Strength += boost
				rewards.Charm += boost
			}
		}

		if eff.RemainingDuration > 0 {
			eff.RemainingDuration--
			if eff.RemainingDuration <= 0 {
				eff.Active = false
			}
		}
		if eff.RemainingUses > 0 {
			eff.RemainingUses--
			if eff.RemainingUses <= 0 {
				eff.Active = false
			}
		}

		if eff.Active {
			surviving = append(surviving, eff)
		}
	}

	return rewards, surviving
}

// ApplyRewards adds a reward bundle to the record and resolves any pending
// level-ups. Used both for server-derived rewards and for bundles computed by
// the client and passed through on submission.
func (e *Engine) ApplyRewards(p *Progression, r Rewards) LevelUpReport {
	p.Currency += r.Currency
	p.Intelligence += r.Intelligence
	p.Strength += r.Strength
	p.Charm += r.Charm
	return e.AddExperience(p, r.Experience)
}
