package api

import (
	"errors"

	"github.com/mixforge/mixforge-api/internal/domain"
	"github.com/mixforge/mixforge-api/internal/platform/suno"
)

// GenerateRequest is the submission body. The provider-specific controls
// are forwarded as-is; only the prompt is validated here because the
// provider owns the semantics of everything else.
type GenerateRequest struct {
	suno.GenerateParams
}

// Validate checks the request for the minimum the relay needs.
func (r *GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return errors.New("prompt is required")
	}
	return nil
}

// GenerateResponse carries the provider-issued task identifier.
type GenerateResponse struct {
	TaskID string `json:"taskId"`
}

// StatusResponse is the answer to a status query.
type StatusResponse struct {
	TaskID    string            `json:"taskId"`
	Status    domain.TaskStatus `json:"status"`
	Artifacts []domain.Artifact `json:"artifacts"`
}

// CallbackAck is the unconditional acknowledgement for provider callbacks.
type CallbackAck struct {
	OK bool `json:"ok"`
}

// CleanupResponse reports one sweep run.
type CleanupResponse struct {
	OK            bool   `json:"ok"`
	Scanned       int    `json:"scanned"`
	DocsDeleted   int    `json:"docsDeleted"`
	DocsFailed    int    `json:"docsFailed"`
	FilesDeleted  int    `json:"filesDeleted"`
	FilesFailed   int    `json:"filesFailed"`
	RetentionDays int    `json:"retentionDays"`
	Cutoff        string `json:"cutoff"`
}

// CleanupErrorResponse is the body for a fatal sweep failure, as opposed to
// per-item failures which land in the counters of a 200 response.
type CleanupErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
