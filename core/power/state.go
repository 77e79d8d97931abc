package power

// State selects the battery serving the load.
type State int

const (
	// ActiveMain: the main battery serves, the backup is on standby.
	ActiveMain State = iota
	// ActiveBackup: the backup battery serves, the main is on standby.
	ActiveBackup
)

// Battery identifies one of the two batteries.
type Battery int

const (
	MainBattery Battery = iota
	BackupBattery
)

func (s State) String() string {
	switch s {
	case ActiveMain:
		return "active_main"
	case ActiveBackup:
		return "active_backup"
	default:
		return "unknown"
	}
}

func (b Battery) String() string {
	if b == MainBattery {
		return "main"
	}
	return "backup"
}

// Serving returns the battery discharged in state s.
func (s State) Serving() Battery {
	if s == ActiveBackup {
		return BackupBattery
	}
	return MainBattery
}

// Standby returns the battery charged in state s.
func (s State) Standby() Battery {
	if s == ActiveBackup {
		return MainBattery
	}
	return BackupBattery
}

// transition is a guarded edge of the battery state machine.
type transition struct {
	to    State
	guard func(*System) bool
}

// transitions lists, per state, the edge taken when the serving battery
// cannot satisfy the load.
var transitions = map[State]transition{
	ActiveMain: {
		to:    ActiveBackup,
		guard: func(*System) bool { return true },
	},
	ActiveBackup: {
		to:    ActiveMain,
		guard: func(s *System) bool { return s.batteries[MainBattery] >= s.high },
	},
}
