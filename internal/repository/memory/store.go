// Package memory implements the repository interfaces with in-process maps
// guarded by a single lock, matching the reference deployment where the
// domain store lives entirely in memory. Ids are allocated from monotonic
// per-collection counters starting at 1, so ascending id order is insertion
// order.
package memory

import (
	"sort"
	"sync"

	"wolfpack/fitness-hub/internal/domain"
)

// Store holds every collection. All repositories created from one Store
// share its lock, giving single-writer-at-a-time semantics across the
// whole domain.
type Store struct {
	mu sync.RWMutex

	users            map[int64]domain.User
	apparel          map[int64]domain.Apparel
	workouts         map[int64]domain.Workout
	achievements     map[int64]domain.Achievement
	userAchievements map[int64]domain.UserAchievement
	challenges       map[int64]domain.Challenge
	userChallenges   map[int64]domain.UserChallenge
	integratedApps   map[int64]domain.IntegratedApp
	preferences      map[int64]domain.UserPreferences // keyed by user id
	recommendations  map[int64]domain.WorkoutRecommendation

	userSeq            int64
	apparelSeq         int64
	workoutSeq         int64
	achievementSeq     int64
	userAchievementSeq int64
	challengeSeq       int64
	userChallengeSeq   int64
	integratedAppSeq   int64
	recommendationSeq  int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:            make(map[int64]domain.User),
		apparel:          make(map[int64]domain.Apparel),
		workouts:         make(map[int64]domain.Workout),
		achievements:     make(map[int64]domain.Achievement),
		userAchievements: make(map[int64]domain.UserAchievement),
		challenges:       make(map[int64]domain.Challenge),
		userChallenges:   make(map[int64]domain.UserChallenge),
		integratedApps:   make(map[int64]domain.IntegratedApp),
		preferences:      make(map[int64]domain.UserPreferences),
		recommendations:  make(map[int64]domain.WorkoutRecommendation),
	}
}

// sortedIDs returns the map's keys in ascending (insertion) order.
func sortedIDs[V any](m map[int64]V) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
