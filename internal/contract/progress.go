package contract

// NextSessionView identifies the earliest pending session.
type NextSessionView struct {
	ChapterTitle string
	SubjectName  string
	ScheduledAt  string // 2006-01-02 15:04
}

// ProgressReport aggregates study progress over all sessions and chapters.
type ProgressReport struct {
	TotalSessions     int
	CompletedSessions int
	MissedSessions    int
	PendingSessions   int
	TotalChapters     int
	CompletedChapters int
	// CompletionRate is completed/total sessions as a percentage, rounded
	// to one decimal; 0 when no sessions exist.
	CompletionRate float64
	// DaysRemaining counts days until the earliest exam, never negative;
	// 0 when no subjects exist.
	DaysRemaining int
	NextSession   *NextSessionView
	// AvgDailyProgress is CompletionRate/DaysRemaining rounded to two
	// decimals, 0 when no days remain.
	AvgDailyProgress float64
}

// SubjectProgress is the per-subject chapter completion rollup.
type SubjectProgress struct {
	Name      string
	Total     int
	Completed int
	Rate      float64
}

// DailyCount is one day of the completed-session series.
type DailyCount struct {
	Date     string // 01/02
	Sessions int
}
