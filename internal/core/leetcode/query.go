package leetcode

const userStatsQuery = `
query userStats($username: String!, $year: Int) {
  allQuestionsCount {
    difficulty
    count
  }
  matchedUser(username: $username) {
    username
    submitStats: submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
        submissions
      }
      totalSubmissionNum {
        difficulty
        count
        submissions
      }
    }
    languageProblemCount {
      languageName
      problemsSolved
    }
    userCalendar(year: $year) {
      streak
    }
    profile {
      ranking
    }
  }
  userContestRanking(username: $username) {
    rating
  }
}
`
