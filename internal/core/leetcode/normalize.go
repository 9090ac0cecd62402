package leetcode

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"gopkg.in/guregu/null.v3"

	"exusiai.dev/folio-stats/internal/util"
)

type tiered interface {
	tier() Tier
}

func findTier[T tiered](items []T, tier Tier) (T, bool) {
	return lo.Find(items, func(item T) bool {
		return item.tier() == tier
	})
}

func countOf[T tiered](items []T, tier Tier, value func(T) null.Int) *int64 {
	item, ok := findTier(items, tier)
	if !ok {
		return nil
	}
	return value(item).Ptr()
}

// submissionsOrCount prefers the submissions figure, then count, then 0.
func submissionsOrCount(items []SubmissionCount, tier Tier) int64 {
	item, ok := findTier(items, tier)
	switch {
	case !ok:
		return 0
	case item.Submissions.Valid:
		return item.Submissions.Int64
	case item.Count.Valid:
		return item.Count.Int64
	default:
		return 0
	}
}

func passthrough(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return append(json.RawMessage(nil), trimmed...)
}

func questionCount(q QuestionCount) null.Int     { return q.Count }
func submissionCount(s SubmissionCount) null.Int { return s.Count }

// Normalize flattens raw into a Stats record. It never fails: whatever is missing from raw is
// left nil in the result, and every field is derived independently of the others.
func Normalize(raw *RawResponse) *Stats {
	stats := &Stats{}
	if raw == nil {
		return stats
	}

	var ac, total []SubmissionCount
	if u := raw.MatchedUser; u != nil {
		if u.SubmitStats != nil {
			ac = u.SubmitStats.AcSubmissionNum
			total = u.SubmitStats.TotalSubmissionNum
		}
		if u.Profile != nil {
			stats.Ranking = u.Profile.Ranking.Ptr()
		}
		if u.UserCalendar != nil {
			stats.Streak = u.UserCalendar.Streak.Ptr()
		}
		stats.LanguageBreakdown = passthrough(u.LanguageProblemCount)
	}
	stats.ContestRating = passthrough(raw.UserContestRanking)

	all := raw.AllQuestionsCount
	stats.TotalQuestions = countOf(all, TierAll, questionCount)
	stats.TotalEasy = countOf(all, TierEasy, questionCount)
	stats.TotalMedium = countOf(all, TierMedium, questionCount)
	stats.TotalHard = countOf(all, TierHard, questionCount)

	stats.TotalSolved = countOf(ac, TierAll, submissionCount)
	stats.EasySolved = countOf(ac, TierEasy, submissionCount)
	stats.MediumSolved = countOf(ac, TierMedium, submissionCount)
	stats.HardSolved = countOf(ac, TierHard, submissionCount)

	accepted := submissionsOrCount(ac, TierAll)
	attempted := submissionsOrCount(total, TierAll)
	if attempted > 0 {
		rate := util.RoundFloat64(float64(accepted)/float64(attempted)*100, 2)
		stats.AcceptanceRate = &rate
	}

	return stats
}
