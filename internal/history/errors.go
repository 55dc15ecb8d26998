package history

// Errors
var (
	// ErrNoVisible is returned when an operation needs a visible entry but the
	// cursor is not set.
	ErrNoVisible = historyError("no visible notification")
	// ErrIndexOutOfRange is returned when a cursor position is outside the history.
	ErrIndexOutOfRange = historyError("index out of range")
	// ErrUnknownTrigger is returned when a trigger name cannot be parsed.
	ErrUnknownTrigger = historyError("unknown trigger")
)

type historyError string

func (e historyError) Error() string {
	return string(e)
}
