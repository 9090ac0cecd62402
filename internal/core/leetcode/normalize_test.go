package leetcode

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPayload = `{
	"allQuestionsCount": [
		{"difficulty": "All", "count": 3300},
		{"difficulty": "Easy", "count": 830},
		{"difficulty": "Medium", "count": 1730},
		{"difficulty": "Hard", "count": 740}
	],
	"matchedUser": {
		"username": "anujkarambalkar1504",
		"submitStats": {
			"acSubmissionNum": [
				{"difficulty": "All", "count": 180, "submissions": 42},
				{"difficulty": "Easy", "count": 90, "submissions": 20},
				{"difficulty": "Medium", "count": 75, "submissions": 18},
				{"difficulty": "Hard", "count": 15, "submissions": 4}
			],
			"totalSubmissionNum": [
				{"difficulty": "All", "count": 250, "submissions": 137},
				{"difficulty": "Easy", "count": 110, "submissions": 60},
				{"difficulty": "Medium", "count": 110, "submissions": 60},
				{"difficulty": "Hard", "count": 30, "submissions": 17}
			]
		},
		"languageProblemCount": [
			{"languageName": "C++", "problemsSolved": 120},
			{"languageName": "Python3", "problemsSolved": 60}
		],
		"userCalendar": {"streak": 12},
		"profile": {"ranking": 254321}
	},
	"userContestRanking": {"rating": 1612.34}
}`

func mustRaw(t *testing.T, payload string) *RawResponse {
	t.Helper()
	var raw RawResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return &raw
}

func TestNormalizeFull(t *testing.T) {
	stats := Normalize(mustRaw(t, fullPayload))

	assert.Equal(t, lo.ToPtr[int64](180), stats.TotalSolved)
	assert.Equal(t, lo.ToPtr[int64](3300), stats.TotalQuestions)
	assert.Equal(t, lo.ToPtr[int64](90), stats.EasySolved)
	assert.Equal(t, lo.ToPtr[int64](75), stats.MediumSolved)
	assert.Equal(t, lo.ToPtr[int64](15), stats.HardSolved)
	assert.Equal(t, lo.ToPtr[int64](830), stats.TotalEasy)
	assert.Equal(t, lo.ToPtr[int64](1730), stats.TotalMedium)
	assert.Equal(t, lo.ToPtr[int64](740), stats.TotalHard)
	assert.Equal(t, lo.ToPtr(30.66), stats.AcceptanceRate)
	assert.Equal(t, lo.ToPtr[int64](254321), stats.Ranking)
	assert.Equal(t, lo.ToPtr[int64](12), stats.Streak)
	assert.JSONEq(t, `{"rating": 1612.34}`, string(stats.ContestRating))
	assert.JSONEq(t, `[{"languageName":"C++","problemsSolved":120},{"languageName":"Python3","problemsSolved":60}]`, string(stats.LanguageBreakdown))
}

func TestNormalizeAcceptanceRate(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    *float64
	}{
		{
			name: "submissions preferred",
			payload: `{"matchedUser": {"submitStats": {
				"acSubmissionNum": [{"difficulty": "All", "count": 180, "submissions": 42}],
				"totalSubmissionNum": [{"difficulty": "All", "count": 250, "submissions": 137}]
			}}}`,
			want: lo.ToPtr(30.66),
		},
		{
			name: "count fallback",
			payload: `{"matchedUser": {"submitStats": {
				"acSubmissionNum": [{"difficulty": "All", "count": 1}],
				"totalSubmissionNum": [{"difficulty": "All", "count": 3, "submissions": null}]
			}}}`,
			want: lo.ToPtr(33.33),
		},
		{
			name: "zero attempts",
			payload: `{"matchedUser": {"submitStats": {
				"acSubmissionNum": [{"difficulty": "All", "count": 0, "submissions": 0}],
				"totalSubmissionNum": [{"difficulty": "All", "count": 0, "submissions": 0}]
			}}}`,
			want: nil,
		},
		{
			name: "attempts only in other tiers",
			payload: `{"matchedUser": {"submitStats": {
				"acSubmissionNum": [{"difficulty": "Easy", "count": 5, "submissions": 5}],
				"totalSubmissionNum": [{"difficulty": "Easy", "count": 9, "submissions": 9}]
			}}}`,
			want: nil,
		},
		{
			name:    "no submit stats",
			payload: `{"matchedUser": {"profile": {"ranking": 10}}}`,
			want:    nil,
		},
		{
			name: "accepted missing",
			payload: `{"matchedUser": {"submitStats": {
				"totalSubmissionNum": [{"difficulty": "All", "count": 4, "submissions": 8}]
			}}}`,
			want: lo.ToPtr(0.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Normalize(mustRaw(t, tt.payload))
			assert.Equal(t, tt.want, stats.AcceptanceRate)
		})
	}
}

func TestNormalizeMissingAllTierAccepted(t *testing.T) {
	stats := Normalize(mustRaw(t, `{"matchedUser": {"submitStats": {
		"acSubmissionNum": [{"difficulty": "Easy", "count": 90}, {"difficulty": "Hard", "count": 15}],
		"totalSubmissionNum": [{"difficulty": "All", "count": 250, "submissions": 137}]
	}}}`))

	assert.Nil(t, stats.TotalSolved)
	assert.Equal(t, lo.ToPtr[int64](90), stats.EasySolved)
	assert.Nil(t, stats.MediumSolved)
	assert.Equal(t, lo.ToPtr[int64](15), stats.HardSolved)
}

func TestNormalizeFirstMatchWins(t *testing.T) {
	stats := Normalize(mustRaw(t, `{"allQuestionsCount": [
		{"difficulty": "All", "count": 1},
		{"difficulty": "All", "count": 2},
		{"difficulty": "all", "count": 3}
	]}`))

	assert.Equal(t, lo.ToPtr[int64](1), stats.TotalQuestions)
}

func TestNormalizeEmpty(t *testing.T) {
	empty := &Stats{}

	assert.Equal(t, empty, Normalize(nil))
	assert.Equal(t, empty, Normalize(&RawResponse{}))
	assert.Equal(t, empty, Normalize(mustRaw(t, `{}`)))
	assert.Equal(t, empty, Normalize(mustRaw(t, `{
		"allQuestionsCount": null,
		"matchedUser": null,
		"userContestRanking": null
	}`)))
	assert.Equal(t, empty, Normalize(mustRaw(t, `{"matchedUser": {
		"languageProblemCount": null,
		"userCalendar": {"streak": null},
		"profile": {}
	}}`)))

	b, err := json.Marshal(StatsResponse{Username: "nobody", Data: *Normalize(nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username": "nobody", "data": {}}`, string(b))
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := mustRaw(t, fullPayload)

	first := Normalize(raw)
	second := Normalize(raw)
	assert.Equal(t, first, second)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestNormalizeDoesNotAliasRaw(t *testing.T) {
	raw := mustRaw(t, fullPayload)
	stats := Normalize(raw)

	raw.UserContestRanking[2] = 'X'
	assert.JSONEq(t, `{"rating": 1612.34}`, string(stats.ContestRating))
}
