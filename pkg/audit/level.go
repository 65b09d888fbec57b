package audit

//go:generate go run github.com/dmarkham/enumer -type Level -trimprefix Level -transform lower -json -sql -output level.gen.go

// Level classifies an audit entry.
type Level int

const (
	LevelInfo Level = iota
	LevelError
	LevelSuccess
)
