package dialog

import "time"

type State string

const (
	StateIdle State = "idle"

	// Диагностика: четыре вопроса строго по порядку
	StateDiagAge     State = "diag_age"
	StateDiagNaps    State = "diag_naps"
	StateDiagBedtime State = "diag_bedtime"
	StateDiagWakes   State = "diag_wakes"
)

// Session — состояние одного незавершённого диагностического опроса.
// Живёт только в памяти: после результата или /cancel запись удаляется.
type Session struct {
	ChatID      int64
	State       State
	AgeMonths   int
	NapCount    int
	BedtimeText string
	WakeCount   int

	touched time.Time
}
