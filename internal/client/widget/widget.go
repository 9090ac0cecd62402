// Package widget renders stats as a plain-text dashboard. Every figure the record does not carry,
// and every figure while loading or after an error, is shown as a placeholder.
package widget

import (
	"io"
	"math"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"exusiai.dev/folio-stats/internal/client"
	"exusiai.dev/folio-stats/internal/core/leetcode"
)

const (
	Placeholder = "—"
	barWidth    = 20
)

var printer = message.NewPrinter(language.English)

// View is one frame of the dashboard.
type View struct {
	Username string
	State    client.State

	// From holds the figures the count-up starts at; nil starts every figure at 0.
	From *leetcode.Stats

	// Progress of the count-up animation in [0, 1]. 1 shows the exact figures.
	Progress float64
}

type figure struct {
	value float64
	ok    bool
}

func (v View) stats() *leetcode.Stats {
	if v.State.IsLoading || v.State.Data == nil {
		return nil
	}
	return v.State.Data
}

func (v View) animate(pick func(*leetcode.Stats) *int64) figure {
	s := v.stats()
	if s == nil || pick(s) == nil {
		return figure{}
	}
	to := float64(*pick(s))
	from := 0.0
	if v.From != nil && pick(v.From) != nil {
		from = float64(*pick(v.From))
	}
	return figure{value: CountUp(from, to, v.Progress), ok: true}
}

func (v View) animateFloat(pick func(*leetcode.Stats) (float64, bool)) figure {
	s := v.stats()
	if s == nil {
		return figure{}
	}
	to, ok := pick(s)
	if !ok {
		return figure{}
	}
	from := 0.0
	if v.From != nil {
		if f, ok := pick(v.From); ok {
			from = f
		}
	}
	return figure{value: CountUp(from, to, v.Progress), ok: true}
}

func integer(f figure, prefix, suffix string) string {
	if !f.ok {
		return Placeholder
	}
	return printer.Sprintf("%s%d%s", prefix, int64(math.Round(f.value)), suffix)
}

func decimal(f figure, suffix string) string {
	if !f.ok {
		return Placeholder
	}
	return printer.Sprintf("%.2f%s", f.value, suffix)
}

func contestRating(s *leetcode.Stats) (float64, bool) {
	r := gjson.GetBytes(s.ContestRating, "rating")
	if r.Type != gjson.Number {
		return 0, false
	}
	return r.Float(), true
}

func acceptanceRate(s *leetcode.Stats) (float64, bool) {
	if s.AcceptanceRate == nil {
		return 0, false
	}
	return *s.AcceptanceRate, true
}

// completion is the solved share of all questions in whole percent.
func completion(s *leetcode.Stats) (float64, bool) {
	if s.TotalSolved == nil || s.TotalQuestions == nil || *s.TotalQuestions <= 0 {
		return 0, false
	}
	return math.Round(float64(*s.TotalSolved) / float64(*s.TotalQuestions) * 100), true
}

func remaining(s *leetcode.Stats) (float64, bool) {
	if s.TotalSolved == nil || s.TotalQuestions == nil {
		return 0, false
	}
	return math.Max(0, float64(*s.TotalQuestions-*s.TotalSolved)), true
}

func bar(solved, total int64) string {
	ratio := float64(solved) / math.Max(1, float64(total))
	filled := int(math.Round(math.Max(0, math.Min(1, ratio)) * barWidth))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func status(s client.State) string {
	switch {
	case s.IsLoading:
		return "loading"
	case s.Err != nil && s.Data == nil:
		return "unavailable"
	case s.Err != nil:
		return "stale since " + s.UpdatedAt.Format("15:04")
	case s.IsValidating:
		return "refreshing"
	default:
		return "updated " + s.UpdatedAt.Format("15:04")
	}
}

// Render writes one frame of the dashboard to w.
func Render(w io.Writer, v View) error {
	var b strings.Builder
	line := func(label, value string) {
		printer.Fprintf(&b, "  %-18s %s\n", label, value)
	}

	username := v.Username
	if username == "" {
		username = v.State.Username
	}
	if username == "" {
		printer.Fprintf(&b, "LeetCode · %s\n", Placeholder)
	} else {
		printer.Fprintf(&b, "LeetCode · %s (%s)\n", username, "https://leetcode.com/"+url.PathEscape(username)+"/")
	}
	printer.Fprintf(&b, "  %s\n\n", status(v.State))

	line("Problems Solved", integer(v.animate(func(s *leetcode.Stats) *int64 { return s.TotalSolved }), "", ""))
	line("Completion", integer(v.animateFloat(completion), "", "%"))
	line("Acceptance Rate", decimal(v.animateFloat(acceptanceRate), "%"))
	line("Global Rank", integer(v.animate(func(s *leetcode.Stats) *int64 { return s.Ranking }), "#", ""))
	line("Day Streak", integer(v.animate(func(s *leetcode.Stats) *int64 { return s.Streak }), "", "+ days"))
	line("Contest Rating", integer(v.animateFloat(contestRating), "", ""))
	line("Remaining", integer(v.animateFloat(remaining), "", ""))

	if s := v.stats(); s != nil {
		b.WriteString("\n  Progress Breakdown\n")
		tiers := []struct {
			name          string
			solved, total *int64
		}{
			{"Easy", s.EasySolved, s.TotalEasy},
			{"Medium", s.MediumSolved, s.TotalMedium},
			{"Hard", s.HardSolved, s.TotalHard},
			{"Total Progress", s.TotalSolved, s.TotalQuestions},
		}
		for _, t := range tiers {
			if t.solved == nil || t.total == nil {
				continue
			}
			printer.Fprintf(&b, "    %-15s %s %d/%d\n", t.name, bar(*t.solved, *t.total), *t.solved, *t.total)
		}

		languages := gjson.ParseBytes(s.LanguageBreakdown)
		if languages.IsArray() && len(languages.Array()) > 0 {
			b.WriteString("\n  Languages\n")
			languages.ForEach(func(_, l gjson.Result) bool {
				name := l.Get("languageName").String()
				if name == "" {
					name = Placeholder
				}
				solved := Placeholder
				if n := l.Get("problemsSolved"); n.Type == gjson.Number {
					solved = printer.Sprintf("%d", n.Int())
				}
				printer.Fprintf(&b, "    %-15s %s\n", name, solved)
				return true
			})
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
