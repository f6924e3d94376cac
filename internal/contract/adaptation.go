package contract

// AdaptationView is a read projection of one audit record resolved to the
// affected chapter and subject, with a derived summary of what changed.
type AdaptationView struct {
	ID             string
	Date           string // 2006-01-02 15:04
	Reason         string
	ChapterTitle   string
	SubjectName    string
	Reasoning      string
	ChangesSummary string
}
