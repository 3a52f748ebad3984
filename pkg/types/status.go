package types

// RegistrationStatus is the lifecycle state of one module source (local or
// remote). Each source owns its own status.
//
//	none -> in-progress -> {ready | registered} -> [in-completion] -> ready
type RegistrationStatus string

const (
	// StatusNone indicates nothing was submitted yet
	StatusNone RegistrationStatus = "none"

	// StatusInProgress indicates the register phase is running
	StatusInProgress RegistrationStatus = "in-progress"

	// StatusRegistered indicates at least one module returned a deferred
	// registration and the completion phase is still owed
	StatusRegistered RegistrationStatus = "registered"

	// StatusInCompletion indicates deferred registrations are running
	StatusInCompletion RegistrationStatus = "in-completion"

	// StatusReady is terminal
	StatusReady RegistrationStatus = "ready"
)

func (s RegistrationStatus) String() string {
	return string(s)
}

// IsSettled reports whether the register phase is over, regardless of
// whether the completion phase ran.
func (s RegistrationStatus) IsSettled() bool {
	return s == StatusRegistered || s == StatusReady
}
