package domain

import "time"

// TaskStatus represents the lifecycle state of a generation task as observed
// by this service. The set is closed: values arriving from the provider are
// mapped through an exhaustive table (see platform/suno) so that a new
// upstream state fails loudly instead of silently falling through.
type TaskStatus string

const (
	// TaskStatusPending means the task has been accepted upstream but no
	// notification has arrived yet.
	TaskStatusPending TaskStatus = "pending"

	// TaskStatusTextReady means lyrics/text generation finished; audio is
	// still being produced.
	TaskStatusTextReady TaskStatus = "text_ready"

	// TaskStatusFirstReady means the first audio artifact is ready while the
	// remainder is still rendering.
	TaskStatusFirstReady TaskStatus = "first_ready"

	// TaskStatusComplete means all artifacts are ready.
	TaskStatusComplete TaskStatus = "complete"

	// TaskStatusCreateFailed means the provider accepted the submission but
	// failed before generation started.
	TaskStatusCreateFailed TaskStatus = "create_failed"

	// TaskStatusGenerateFailed means generation started and failed.
	TaskStatusGenerateFailed TaskStatus = "generate_failed"

	// TaskStatusCallbackException means the provider reported a failure while
	// delivering its completion callback.
	TaskStatusCallbackException TaskStatus = "callback_exception"

	// TaskStatusRejected means the provider refused the content itself
	// (e.g. flagged prompt), as opposed to a transient generation failure.
	TaskStatusRejected TaskStatus = "rejected"
)

// Cache retention windows for status records. Terminal records are kept a
// full day so late pollers still get an answer; intermediate records are
// superseded quickly or abandoned, so they expire after an hour.
const (
	TerminalStatusTTL     = 24 * time.Hour
	IntermediateStatusTTL = time.Hour
)

// IsTerminal reports whether no further transition is expected from s.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusComplete,
		TaskStatusCreateFailed,
		TaskStatusGenerateFailed,
		TaskStatusCallbackException,
		TaskStatusRejected:
		return true
	}
	return false
}

// IsValid reports whether s is one of the closed set of statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending,
		TaskStatusTextReady,
		TaskStatusFirstReady,
		TaskStatusComplete,
		TaskStatusCreateFailed,
		TaskStatusGenerateFailed,
		TaskStatusCallbackException,
		TaskStatusRejected:
		return true
	}
	return false
}

// CacheTTL returns the retention window a status record in state s should be
// cached with.
func (s TaskStatus) CacheTTL() time.Duration {
	if s.IsTerminal() {
		return TerminalStatusTTL
	}
	return IntermediateStatusTTL
}

// Artifact is one generated piece of audio, normalized from the provider's
// wire shape into the fields the rest of the application consumes.
type Artifact struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	MediaURL        string  `json:"mediaUrl"`
	ImageURL        string  `json:"imageUrl"`
	Tags            string  `json:"tags"`
	SourcePrompt    string  `json:"sourcePrompt"`
	ModelName       string  `json:"modelName"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// StatusRecord is the last known state of a generation task. At most one
// record exists per task ID; writes replace the whole record, never merge.
// Artifacts is empty except when Status is TaskStatusComplete.
type StatusRecord struct {
	TaskID    string     `json:"taskId"`
	Status    TaskStatus `json:"status"`
	Artifacts []Artifact `json:"artifacts"`
}
