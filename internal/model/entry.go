package model

// EntryType labels a time entry. The set is open: values other than the
// recognised ones are carried through as opaque labels.
type EntryType string

const (
	TypeWork     EntryType = "Work"
	TypeRecup    EntryType = "Recup"
	TypeVacation EntryType = "Vacation"
	TypeSick     EntryType = "Sick"
	TypeHoliday  EntryType = "Holiday"
)

// IsWork reports whether t is the work category.
func (t EntryType) IsWork() bool { return t == TypeWork }

// TimeEntry is a single logged entry after load-time defaulting.
type TimeEntry struct {
	ID           string    `json:"id,omitempty" yaml:"id,omitempty"`
	Date         string    `json:"date" yaml:"date"`
	Type         EntryType `json:"type" yaml:"type"`
	Start        string    `json:"start" yaml:"start"`
	End          string    `json:"end" yaml:"end"`
	NetMinutes   int       `json:"netMin" yaml:"net_minutes"`
	PauseMinutes int       `json:"pauseMin" yaml:"pause_minutes"`
	Note         string    `json:"note" yaml:"note"`
	// CreatedAt is epoch milliseconds; 0 when unknown. Only used to order
	// entries sharing a date.
	CreatedAt int64 `json:"createdAt" yaml:"created_at"`
}

// Settings holds the user settings relevant to reporting.
type Settings struct {
	// NormDayMinutes is the standard work-day length. Nil disables overtime.
	NormDayMinutes *int `json:"normDayMin,omitempty" yaml:"norm_day_minutes,omitempty"`
}

// AppState is a read-only snapshot of the app's persisted state.
type AppState struct {
	Entries  []TimeEntry `json:"entries"`
	Settings Settings    `json:"settings"`
}
