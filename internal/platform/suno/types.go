package suno

import (
	"fmt"

	"github.com/mixforge/mixforge-api/internal/domain"
)

// Provider wire statuses as reported by the record-info endpoint. These
// never leave this package; everything downstream speaks domain.TaskStatus.
const (
	wireStatusPending          = "PENDING"
	wireStatusTextSuccess      = "TEXT_SUCCESS"
	wireStatusFirstSuccess     = "FIRST_SUCCESS"
	wireStatusSuccess          = "SUCCESS"
	wireStatusCreateTaskFailed = "CREATE_TASK_FAILED"
	wireStatusGenerateFailed   = "GENERATE_AUDIO_FAILED"
	wireStatusCallbackError    = "CALLBACK_EXCEPTION"
	wireStatusSensitiveWord    = "SENSITIVE_WORD_ERROR"
)

// Callback kinds pushed by the provider.
const (
	CallbackTypeComplete = "complete"
	CallbackTypeError    = "error"
	CallbackTypeText     = "text"
	CallbackTypeFirst    = "first"
)

// mapWireStatus converts a provider status string into the domain enum.
// The mapping is exhaustive over the provider's documented set; anything
// else returns ErrUnknownProviderStatus so schema drift surfaces instead of
// being swallowed.
func mapWireStatus(status string) (domain.TaskStatus, error) {
	switch status {
	case wireStatusPending:
		return domain.TaskStatusPending, nil
	case wireStatusTextSuccess:
		return domain.TaskStatusTextReady, nil
	case wireStatusFirstSuccess:
		return domain.TaskStatusFirstReady, nil
	case wireStatusSuccess:
		return domain.TaskStatusComplete, nil
	case wireStatusCreateTaskFailed:
		return domain.TaskStatusCreateFailed, nil
	case wireStatusGenerateFailed:
		return domain.TaskStatusGenerateFailed, nil
	case wireStatusCallbackError:
		return domain.TaskStatusCallbackException, nil
	case wireStatusSensitiveWord:
		return domain.TaskStatusRejected, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProviderStatus, status)
	}
}

// GenerateParams are the provider-specific generation controls forwarded
// verbatim on submission. The service validates none of them beyond the
// prompt; the provider owns their semantics.
type GenerateParams struct {
	Model               string   `json:"model"`
	Prompt              string   `json:"prompt"`
	Style               string   `json:"style,omitempty"`
	Title               string   `json:"title,omitempty"`
	CustomMode          bool     `json:"customMode,omitempty"`
	Instrumental        bool     `json:"instrumental,omitempty"`
	NegativeTags        string   `json:"negativeTags,omitempty"`
	VocalGender         string   `json:"vocalGender,omitempty"`
	StyleWeight         *float64 `json:"styleWeight,omitempty"`
	WeirdnessConstraint *float64 `json:"weirdnessConstraint,omitempty"`
	AudioWeight         *float64 `json:"audioWeight,omitempty"`
	PersonaID           string   `json:"personaId,omitempty"`
}

// generateRequest is the submission body: the caller's params plus the
// callback address the provider will push notifications to.
type generateRequest struct {
	GenerateParams
	CallBackURL string `json:"callBackUrl"`
}

// generateResponse is the provider's answer to a submission.
type generateResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID string `json:"taskId"`
	} `json:"data"`
}

// recordInfoResponse is the provider's answer to a status pull.
type recordInfoResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		TaskID   string `json:"taskId"`
		Status   string `json:"status"`
		Response struct {
			SunoData []recordTrack `json:"sunoData"`
		} `json:"response"`
	} `json:"data"`
}

// recordTrack is one artifact as shaped by the record-info endpoint
// (camelCase keys, unlike the callback shape).
type recordTrack struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	AudioURL  string  `json:"audioUrl"`
	ImageURL  string  `json:"imageUrl"`
	Tags      string  `json:"tags"`
	Prompt    string  `json:"prompt"`
	ModelName string  `json:"modelName"`
	Duration  float64 `json:"duration"`
}

func (t recordTrack) artifact() domain.Artifact {
	return domain.Artifact{
		ID:              t.ID,
		Title:           t.Title,
		MediaURL:        t.AudioURL,
		ImageURL:        t.ImageURL,
		Tags:            t.Tags,
		SourcePrompt:    t.Prompt,
		ModelName:       t.ModelName,
		DurationSeconds: t.Duration,
	}
}

// CallbackPayload is the body the provider POSTs to the callback endpoint.
type CallbackPayload struct {
	Code int          `json:"code"`
	Msg  string       `json:"msg"`
	Data CallbackData `json:"data"`
}

// CallbackData carries the notification kind, the task it concerns, and the
// artifacts (complete notifications only).
type CallbackData struct {
	CallbackType string          `json:"callbackType"`
	TaskID       string          `json:"task_id"`
	Data         []CallbackTrack `json:"data"`
}

// CallbackTrack is one artifact as shaped by the callback endpoint
// (snake_case keys, unlike the record-info shape).
type CallbackTrack struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	AudioURL  string  `json:"audio_url"`
	ImageURL  string  `json:"image_url"`
	Tags      string  `json:"tags"`
	Prompt    string  `json:"prompt"`
	ModelName string  `json:"model_name"`
	Duration  float64 `json:"duration"`
}

// Artifact normalizes the callback track into the domain shape.
func (t CallbackTrack) Artifact() domain.Artifact {
	return domain.Artifact{
		ID:              t.ID,
		Title:           t.Title,
		MediaURL:        t.AudioURL,
		ImageURL:        t.ImageURL,
		Tags:            t.Tags,
		SourcePrompt:    t.Prompt,
		ModelName:       t.ModelName,
		DurationSeconds: t.Duration,
	}
}
