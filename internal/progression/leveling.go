package progression

import "time"

// AddExperience adds experience to the record and resolves every pending
// level-up. A zero amount re-checks pending level-ups without adding anything;
// negative amounts are treated as zero. On return the record satisfies
// 0 <= Experience < ExperienceToNext: the threshold grows by a fixed factor on
// each step, so the loop terminates.
func (e *Engine) AddExperience(p *Progression, amount int) LevelUpReport {
	if amount > 0 {
		p.Experience += amount
	}

	levelsGained := 0
	for p.Experience >= p.ExperienceToNext {
		p.Level++
		p.Experience -= p.ExperienceToNext
		p.ExperienceToNext = int(float64(p.ExperienceToNext) * ThresholdGrowth)
		levelsGained++

		// Level-up bonus.
		p.Currency += p.Level * 10
		p.Intelligence += e.rng.Intn(2) + 1
		p.Strength += e.rng.Intn(2) + 1
		p.Charm += e.rng.Intn(2) + 1
	}

	return LevelUpReport{
		LeveledUp:        levelsGained > 0,
		LevelsGained:     levelsGained,
		NewLevel:         p.Level,
		Experience:       p.Experience,
		ExperienceToNext: p.ExperienceToNext,
	}
}

// CompletionResult bundles everything a session completion produced.
type CompletionResult struct {
	Rewards Rewards       `json:"rewards"`
	Level   LevelUpReport `json:"levelResult"`
	Record  CourseRecord  `json:"courseRecord"`
}

// RecordCourseResult updates the named course's record for one finished
// session: attempts, last score/time, high score, best time, and the
// completed flag once the score reaches CompletionScore.
func (p *Progression) RecordCourseResult(course string, score, elapsed int) *CourseRecord {
	if p.Courses == nil {
		p.Courses = make(map[string]*CourseRecord)
	}
	rec, ok := p.Courses[course]
	if !ok {
		rec = &CourseRecord{}
		p.Courses[course] = rec
	}

	rec.Attempts++
	rec.LastScore = score
	rec.LastTime = elapsed
	if score > rec.HighScore {
		rec.HighScore = score
	}
	if elapsed > 0 && (rec.BestTime == 0 || elapsed < rec.BestTime) {
		rec.BestTime = elapsed
	}
	if score >= CompletionScore {
		rec.Completed = true
	}
	return rec
}

// CompleteCourse runs the full end-of-session mutation: compute rewards under
// active effects, apply them, resolve level-ups, update the course record and
// session counter.
func (e *Engine) CompleteCourse(p *Progression, course string, score, elapsed int) CompletionResult {
	rewards, surviving := e.CourseRewards(score, p.ActiveEffects)
	p.ActiveEffects = surviving

	report := e.ApplyRewards(p, rewards)
	rec := p.RecordCourseResult(course, score, elapsed)
	p.TotalSessions++
	p.LastUpdated = time.Now().UnixMilli()

	return CompletionResult{
		Rewards: rewards,
		Level:   report,
		Record:  *rec,
	}
}
