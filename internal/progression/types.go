package progression

import "time"

// Default thresholds for a fresh record.
const (
	StartLevel            = 1
	StartExperienceToNext = 100

	// CompletionScore marks a course as completed once reached.
	CompletionScore = 60

	// ThresholdGrowth is the multiplicative factor applied to the
	// experience threshold on each level-up (floored to integer).
	ThresholdGrowth = 1.5
)

// EffectType enumerates the closed set of temporary modifiers.
type EffectType string

const (
	EffectExperienceMultiplier EffectType = "expMultiplier"
	EffectCurrencyMultiplier   EffectType = "coinMultiplier"
	EffectLuckyBonus           EffectType = "lucky"
	EffectAttributeBoost       EffectType = "attributeBoost"
)

// Effect is a temporary modifier consumed over a bounded number of sessions.
// Either RemainingUses or RemainingDuration counts it down; an effect whose
// counter reaches zero is deactivated and dropped after the reward pass.
type Effect struct {
	Type              EffectType `json:"type"`
	Value             float64    `json:"value"`
	Active            bool       `json:"active"`
	RemainingUses     int        `json:"uses,omitempty"`
	RemainingDuration int        `json:"duration,omitempty"`
	ItemID            string     `json:"itemId,omitempty"`
	ItemName          string     `json:"itemName,omitempty"`
}

// Rewards is the bundle granted for one completed session.
type Rewards struct {
	Experience   int `json:"exp"`
	Currency     int `json:"coins"`
	Intelligence int `json:"intelligence"`
	Strength     int `json:"strength"`
	Charm        int `json:"charm"`
}

// LevelUpReport summarizes the outcome of a leveling pass.
type LevelUpReport struct {
	LeveledUp        bool `json:"leveledUp"`
	LevelsGained     int  `json:"levelsGained"`
	NewLevel         int  `json:"newLevel"`
	Experience       int  `json:"exp"`
	ExperienceToNext int  `json:"expToNextLevel"`
}

// CourseRecord tracks one user's history on one course.
// BestTime is seconds; zero means no timed attempt recorded yet.
type CourseRecord struct {
	HighScore int  `json:"highScore"`
	Attempts  int  `json:"attempts"`
	LastScore int  `json:"lastScore"`
	BestTime  int  `json:"bestTime"`
	LastTime  int  `json:"lastTime"`
	Completed bool `json:"completed"`
}

// Progression is the per-username progression record. JSON field names match
// the key-value format the original client persisted, so stored records stay
// readable across versions.
type Progression struct {
	Username         string                   `json:"username"`
	Level            int                      `json:"level"`
	Experience       int                      `json:"exp"`
	ExperienceToNext int                      `json:"expToNextLevel"`
	Currency         int                      `json:"coins"`
	Intelligence     int                      `json:"intelligence"`
	Strength         int                      `json:"strength"`
	Charm            int                      `json:"charm"`
	Courses          map[string]*CourseRecord `json:"courses"`
	TotalSessions    int                      `json:"totalQuizzes"`
	ActiveEffects    []Effect                 `json:"activeEffects,omitempty"`
	CreatedAt        int64                    `json:"createdAt"`
	LastUpdated      int64                    `json:"lastUpdated"`
}

// New returns a fresh record with default values for a first session.
func New(username string) *Progression {
	now := time.Now().UnixMilli()
	return &Progression{
		Username:         username,
		Level:            StartLevel,
		ExperienceToNext: StartExperienceToNext,
		Courses:          make(map[string]*CourseRecord),
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// CompletedCourseCount reports how many courses scored at least CompletionScore.
func (p *Progression) CompletedCourseCount() int {
	count := 0
	for _, c := range p.Courses {
		if c.Completed {
			count++
		}
	}
	return count
}

// AverageHighScore averages high scores over courses with a score on record,
// rounded to the nearest integer. Zero when no course has been scored.
func (p *Progression) AverageHighScore() int {
	sum, n := 0, 0
	for _, c := range p.Courses {
		if c.HighScore > 0 {
			sum += c.HighScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(float64(sum)/float64(n) + 0.5)
}

// TotalHighScore sums high scores across all course records.
func (p *Progression) TotalHighScore() int {
	sum := 0
	for _, c := range p.Courses {
		sum += c.HighScore
	}
	return sum
}

// LifetimeExperience reconstructs cumulative experience: current progress plus
// the thresholds of every level already cleared plus course high scores
// (one point of score equals one point of experience).
func (p *Progression) LifetimeExperience() int {
	total := p.Experience
	threshold := float64(StartExperienceToNext)
	for i := 1; i < p.Level; i++ {
		total += int(threshold)
		threshold *= ThresholdGrowth
	}
	return total + p.TotalHighScore()
}
