package contract

// SessionView is a read projection of an upcoming or missed session with its
// chapter and subject context.
type SessionView struct {
	ID            string
	ChapterTitle  string
	SubjectName   string
	Date          string // 2006-01-02
	StartTime     string // 15:04
	DurationHours float64
	Status        string
	Difficulty    string
	Notes         string
	MissReason    string
}

// MaterializeResult reports the outcome of turning a schedule structure into
// persisted sessions.
type MaterializeResult struct {
	PlanID        string
	CreatedCount  int
	DroppedTitles []string
	ScheduledDays int
}
