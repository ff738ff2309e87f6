package progression

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testEngine(seed int64) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)))
}

func TestCourseRewardsBaseValues(t *testing.T) {
	engine := testEngine(1)

	for _, score := range []int{0, 1, 42, 60, 85, 100} {
		rewards, _ := engine.CourseRewards(score, nil)
		assert.Equal(t, score, rewards.Experience, "experience equals score")
		assert.Equal(t, score/2, rewards.Currency, "currency is half the score, floored")
		assert.GreaterOrEqual(t, rewards.Intelligence, 0)
		assert.LessOrEqual(t, rewards.Intelligence, 3)
		assert.GreaterOrEqual(t, rewards.Strength, 0)
		assert.LessOrEqual(t, rewards.Strength, 3)
		assert.GreaterOrEqual(t, rewards.Charm, 0)
		assert.LessOrEqual(t, rewards.Charm, 3)
	}
}

func TestCourseRewardsMultiplierEffects(t *testing.T) {
	engine := testEngine(7)

	effects := []Effect{
		{Type: EffectExperienceMultiplier, Value: 2, Active: true, RemainingDuration: 1},
		{Type: EffectCurrencyMultiplier, Value: 3, Active: true, RemainingDuration: 2},
	}

	rewards, surviving := engine.CourseRewards(80, effects)
	assert.Equal(t, 160, rewards.Experience)
	assert.Equal(t, 120, rewards.Currency)

	// The exp multiplier expired; the coin multiplier has one session left.
	assert.Len(t, surviving, 1)
	assert.Equal(t, EffectCurrencyMultiplier, surviving[0].Type)
	assert.Equal(t, 1, surviving[0].RemainingDuration)
	assert.True(t, surviving[0].Active)
}

func TestCourseRewardsLuckyBonus(t *testing.T) {
	engine := testEngine(3)

	base, _ := testEngine(3).CourseRewards(50, nil)
	lucky, surviving := engine.CourseRewards(50, []Effect{
		{Type: EffectLuckyBonus, Value: 1, Active: true, RemainingUses: 1},
	})

	assert.Empty(t, surviving)
	assert.GreaterOrEqual(t, lucky.Intelligence, base.Intelligence)
	assert.LessOrEqual(t, lucky.Intelligence, base.Intelligence+1)
	assert.GreaterOrEqual(t, lucky.Strength, base.Strength)
	assert.LessOrEqual(t, lucky.Strength, base.Strength+1)
	assert.GreaterOrEqual(t, lucky.Charm, base.Charm)
	assert.LessOrEqual(t, lucky.Charm, base.Charm+1)
}

func TestCourseRewardsInactiveEffectSkipped(t *testing.T) {
	engine := testEngine(5)

	rewards, surviving := engine.CourseRewards(40, []Effect{
		{Type: EffectExperienceMultiplier, Value: 10, Active: false},
	})
	assert.Equal(t, 40, rewards.Experience)
	assert.Empty(t, surviving)
}

func TestAddExperienceSingleLevelUp(t *testing.T) {
	engine := testEngine(11)

	p := New("ada")
	p.Experience = 95

	report := engine.AddExperience(p, 10)

	assert.True(t, report.LeveledUp)
	assert.Equal(t, 1, report.LevelsGained)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 5, p.Experience)
	assert.Equal(t, 150, p.ExperienceToNext)
	assert.Equal(t, 20, p.Currency, "level-up bonus is level x 10")
}

func TestAddExperienceMultipleLevelUps(t *testing.T) {
	engine := testEngine(13)

	p := New("grace")
	report := engine.AddExperience(p, 400)

	// 400 exp clears level 1 (100) and level 2 (150), leaving 150 toward the
	// 225 threshold of level 3.
	assert.Equal(t, 2, report.LevelsGained)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 150, p.Experience)
	assert.Equal(t, 225, p.ExperienceToNext)
}

func TestAddExperienceInvariant(t *testing.T) {
	engine := testEngine(17)

	for _, amount := range []int{0, 1, 50, 99, 100, 101, 1000, 123456} {
		p := New("ida")
		engine.AddExperience(p, amount)
		assert.GreaterOrEqual(t, p.Experience, 0)
		assert.Less(t, p.Experience, p.ExperienceToNext,
			"no pending level-up may remain after a pass (amount=%d)", amount)
	}
}

func TestAddExperienceThresholdStrictlyGrows(t *testing.T) {
	engine := testEngine(19)

	p := New("mary")
	prev := p.ExperienceToNext
	engine.AddExperience(p, 100000)
	assert.Greater(t, p.Level, 5)
	assert.Greater(t, p.ExperienceToNext, prev)

	// Replay level by level to watch each threshold step.
	q := New("mary2")
	threshold := q.ExperienceToNext
	for i := 0; i < 10; i++ {
		engine.AddExperience(q, threshold)
		assert.Greater(t, q.ExperienceToNext, threshold)
		threshold = q.ExperienceToNext
	}
}

func TestAddExperienceNegativeTreatedAsZero(t *testing.T) {
	engine := testEngine(23)

	p := New("nil")
	p.Experience = 40
	report := engine.AddExperience(p, -50)

	assert.False(t, report.LeveledUp)
	assert.Equal(t, 40, p.Experience)
	assert.Equal(t, 1, p.Level)
}

func TestCompleteCourseFirstSession(t *testing.T) {
	engine := testEngine(29)

	p := New("alan")
	result := engine.CompleteCourse(p, "math", 85, 120)

	assert.Equal(t, 85, result.Rewards.Experience)
	assert.Equal(t, 42, result.Rewards.Currency)
	assert.True(t, result.Record.Completed, "score of 85 completes the course")
	assert.Equal(t, 1, result.Record.Attempts)
	assert.Equal(t, 85, result.Record.HighScore)
	assert.Equal(t, 120, result.Record.BestTime)
	assert.Equal(t, 1, p.TotalSessions)
}

func TestRecordCourseResultBestTimeAndHighScore(t *testing.T) {
	p := New("tim")

	p.RecordCourseResult("history", 50, 200)
	rec := p.Courses["history"]
	assert.False(t, rec.Completed, "score below 60 does not complete")
	assert.Equal(t, 200, rec.BestTime)

	p.RecordCourseResult("history", 70, 300)
	assert.True(t, rec.Completed)
	assert.Equal(t, 70, rec.HighScore)
	assert.Equal(t, 200, rec.BestTime, "slower run keeps the best time")
	assert.Equal(t, 300, rec.LastTime)

	p.RecordCourseResult("history", 40, 150)
	assert.Equal(t, 70, rec.HighScore, "lower score keeps the high score")
	assert.Equal(t, 150, rec.BestTime)
	assert.True(t, rec.Completed, "completed never reverts")
	assert.Equal(t, 3, rec.Attempts)
}

func TestRecordCourseResultZeroElapsedKeepsSentinel(t *testing.T) {
	p := New("zoe")
	p.RecordCourseResult("art", 90, 0)
	assert.Equal(t, 0, p.Courses["art"].BestTime, "untimed attempt leaves best time unset")
}

func TestLifetimeExperience(t *testing.T) {
	p := New("eva")
	p.Level = 3
	p.Experience = 30
	p.Courses["math"] = &CourseRecord{HighScore: 80}
	p.Courses["art"] = &CourseRecord{HighScore: 50}

	// 30 + 100 (level 1) + 150 (level 2) + 80 + 50
	assert.Equal(t, 410, p.LifetimeExperience())
}

func TestAggregateHelpers(t *testing.T) {
	p := New("joan")
	p.Courses["a"] = &CourseRecord{HighScore: 90, Completed: true}
	p.Courses["b"] = &CourseRecord{HighScore: 61, Completed: true}
	p.Courses["c"] = &CourseRecord{HighScore: 0}

	assert.Equal(t, 2, p.CompletedCourseCount())
	assert.Equal(t, 151, p.TotalHighScore())
	assert.Equal(t, 76, p.AverageHighScore(), "average over scored courses only, rounded")
}
