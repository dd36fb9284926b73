package engine

import "sort"

// addEvent appends an event to the round's audit log and folds its points
// into the leaderboard. Moderation and scoring have already run by the time
// this is called.
func addEvent(r *Round, ev Event) {
	r.Events = append(r.Events, ev)

	if entry := findEntry(r, ev.Username); entry != nil {
		entry.Points += ev.Points
		entry.LastAt = ev.At
	} else {
		r.Leaderboard = append(r.Leaderboard, LeaderboardEntry{
			Username: ev.Username,
			Points:   ev.Points,
			LastAt:   ev.At,
		})
	}
	sortLeaderboard(r.Leaderboard)
}

// findEntry looks up a leaderboard entry by case-insensitive username.
func findEntry(r *Round, username string) *LeaderboardEntry {
	for i := range r.Leaderboard {
		if equalUser(r.Leaderboard[i].Username, username) {
			return &r.Leaderboard[i]
		}
	}
	return nil
}

// sortLeaderboard orders by points descending, ties broken by earlier
// lastAt. Full re-sort per event is fine at the participant counts a single
// live round sees.
func sortLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].LastAt.Before(entries[j].LastAt)
	})
}
