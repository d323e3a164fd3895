package diag

// Severity orders diagnostics; Bag.Sort puts the highest first.
type Severity uint8

const (
	SevInfo    Severity = iota // сводки, например тайминги фаз
	SevWarning                 // компонент всё равно генерируется
	SevError                   // компонент и его пользователи выпадают из сборки
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Fatal reports whether a diagnostic of this severity fails its component.
func (s Severity) Fatal() bool {
	return s >= SevError
}
