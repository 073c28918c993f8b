// Package gallery drives the upload-batch and delete flows of the gallery UI:
// per-file task bookkeeping, sequential uploads, and toast notifications.
package gallery

// Toast is a notification variant. The set is sealed: success, error and info
// toasts expire from the session's display after ToastTTL, while a confirm
// toast stays until the user answers and carries its two outcomes as
// callbacks.
type Toast interface {
	toastMessage() string
}

type SuccessToast struct {
	Message string
}

type ErrorToast struct {
	Message string
}

type InfoToast struct {
	Message string
}

type ConfirmToast struct {
	Message   string
	OnConfirm func()
	OnCancel  func()
}

func (t SuccessToast) toastMessage() string { return t.Message }
func (t ErrorToast) toastMessage() string   { return t.Message }
func (t InfoToast) toastMessage() string    { return t.Message }
func (t ConfirmToast) toastMessage() string { return t.Message }

// Notifier receives toasts as flows progress. Implementations render them;
// tests collect them.
type Notifier func(Toast)
