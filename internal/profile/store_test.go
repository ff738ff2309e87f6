package profile

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyquest/studyquest/internal/progression"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, zerolog.Nop()), mr
}

func TestStoreRoundTrip(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	p := progression.New("ada")
	p.Level = 3
	p.Experience = 42
	p.ExperienceToNext = 225
	p.Currency = 77
	p.Intelligence = 5
	p.Strength = 2
	p.Charm = 9
	p.TotalSessions = 4
	p.Courses["math"] = &progression.CourseRecord{
		HighScore: 90, Attempts: 2, LastScore: 85, BestTime: 100, LastTime: 130, Completed: true,
	}
	p.ActiveEffects = []progression.Effect{
		{Type: progression.EffectCurrencyMultiplier, Value: 2, Active: true, RemainingDuration: 1},
	}

	require.NoError(t, store.Save(ctx, p))

	got := store.Load(ctx, "ada")
	assert.Equal(t, p, got, "stored record round-trips field for field")
}

func TestStoreLoadMissingReturnsDefault(t *testing.T) {
	store, _ := testStore(t)

	got := store.Load(context.Background(), "nobody")
	assert.Equal(t, "nobody", got.Username)
	assert.Equal(t, 1, got.Level)
	assert.Equal(t, 100, got.ExperienceToNext)
	assert.Equal(t, 0, got.Currency)
	assert.NotNil(t, got.Courses)
}

func TestStoreLoadMalformedReturnsDefault(t *testing.T) {
	store, mr := testStore(t)

	mr.Set(Key("broken"), "{not json")
	got := store.Load(context.Background(), "broken")
	assert.Equal(t, "broken", got.Username)
	assert.Equal(t, 1, got.Level)
}

func TestStoreListAllFiltersMalformed(t *testing.T) {
	store, mr := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, progression.New("ada")))
	require.NoError(t, store.Save(ctx, progression.New("bob")))
	mr.Set(Key("junk"), "???")
	mr.Set("unrelated:key", "ignored")

	profiles, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	names := []string{profiles[0].Username, profiles[1].Username}
	assert.ElementsMatch(t, []string{"ada", "bob"}, names)
}

func TestStoreDelete(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, progression.New("ada")))
	require.NoError(t, store.Delete(ctx, "ada"))

	profiles, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, profiles)

	assert.NoError(t, store.Delete(ctx, "ada"), "deleting a missing record is not an error")
}
