package models

// Declaration is the emitted text for one attribute.
type Declaration struct {
	Name   string
	HostID string
	Kind   Kind
	Text   string
}
