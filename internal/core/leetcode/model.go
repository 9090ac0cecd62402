package leetcode

import (
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/guregu/null.v3"
)

// Tier is a difficulty bucket as labelled by LeetCode.
type Tier string

const (
	TierAll    Tier = "All"
	TierEasy   Tier = "Easy"
	TierMedium Tier = "Medium"
	TierHard   Tier = "Hard"
)

type QuestionCount struct {
	Difficulty Tier     `json:"difficulty"`
	Count      null.Int `json:"count"`
}

func (q QuestionCount) tier() Tier { return q.Difficulty }

type SubmissionCount struct {
	Difficulty  Tier     `json:"difficulty"`
	Count       null.Int `json:"count"`
	Submissions null.Int `json:"submissions"`
}

func (s SubmissionCount) tier() Tier { return s.Difficulty }

type SubmitStats struct {
	AcSubmissionNum    []SubmissionCount `json:"acSubmissionNum"`
	TotalSubmissionNum []SubmissionCount `json:"totalSubmissionNum"`
}

type UserCalendar struct {
	Streak null.Int `json:"streak"`
}

type Profile struct {
	Ranking null.Int `json:"ranking"`
}

type MatchedUser struct {
	Username             string          `json:"username"`
	SubmitStats          *SubmitStats    `json:"submitStats"`
	LanguageProblemCount json.RawMessage `json:"languageProblemCount"`
	UserCalendar         *UserCalendar   `json:"userCalendar"`
	Profile              *Profile        `json:"profile"`
}

// RawResponse is the "data" object of the userStats query. Any part of it may be missing.
type RawResponse struct {
	AllQuestionsCount  []QuestionCount `json:"allQuestionsCount"`
	MatchedUser        *MatchedUser    `json:"matchedUser"`
	UserContestRanking json.RawMessage `json:"userContestRanking"`
}

// Stats is the flat statistics record served to clients. A nil field means the upstream did
// not report it.
type Stats struct {
	TotalSolved       *int64          `json:"totalSolved,omitempty"`
	TotalQuestions    *int64          `json:"totalQuestions,omitempty"`
	EasySolved        *int64          `json:"easySolved,omitempty"`
	MediumSolved      *int64          `json:"mediumSolved,omitempty"`
	HardSolved        *int64          `json:"hardSolved,omitempty"`
	TotalEasy         *int64          `json:"totalEasy,omitempty"`
	TotalMedium       *int64          `json:"totalMedium,omitempty"`
	TotalHard         *int64          `json:"totalHard,omitempty"`
	AcceptanceRate    *float64        `json:"acceptanceRate,omitempty"`
	Ranking           *int64          `json:"ranking,omitempty"`
	Streak            *int64          `json:"streak,omitempty"`
	ContestRating     json.RawMessage `json:"contestRating,omitempty"`
	LanguageBreakdown json.RawMessage `json:"languageBreakdown,omitempty"`
}

type StatsResponse struct {
	Username string `json:"username"`
	Data     Stats  `json:"data"`
}

// Entry is one cached StatsResponse. Entries are replaced as a whole, never updated in place.
type Entry struct {
	Response  StatsResponse
	FetchedAt time.Time
}
