package gallery

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pixelbay/gallery-gateway/internal/uploader"
)

// TaskStatus is the lifecycle state of one file in an upload batch.
type TaskStatus string

const (
	StatusUploading TaskStatus = "uploading"
	StatusSuccess   TaskStatus = "success"
	StatusError     TaskStatus = "error"
)

// ClearDelay is how long finished tasks stay visible after a batch completes.
const ClearDelay = 2 * time.Second

// ToastTTL is how long a non-confirm toast stays on display.
const ToastTTL = 5 * time.Second

// UploadTask tracks one file's progress through a batch. Progress never
// decreases, and Status transitions out of uploading exactly once.
type UploadTask struct {
	FileName string
	Progress int
	Status   TaskStatus
}

// File is one entry of an upload batch.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// UploadFunc sends one file and reports progress. uploader.Client.Upload and
// a DirectClient wrapper both satisfy it.
type UploadFunc func(ctx context.Context, fileName string, content io.Reader, contentType string, onProgress uploader.ProgressFunc) (string, error)

type activeToast struct {
	id    int
	toast Toast
}

// Session owns the upload tasks and on-display toasts of one gallery session.
type Session struct {
	upload UploadFunc
	notify Notifier

	mu          sync.Mutex
	tasks       map[string]*UploadTask
	toasts      []activeToast
	nextToastID int

	clearDelay time.Duration
	after      func(time.Duration, func()) // injectable for tests
}

func NewSession(upload UploadFunc, notify Notifier) *Session {
	return &Session{
		upload:     upload,
		notify:     notify,
		tasks:      make(map[string]*UploadTask),
		clearDelay: ClearDelay,
		after:      func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// UploadBatch uploads the files one at a time. Each file gets its own task,
// progress updates and completion toast; one file failing never stops the
// rest. Finished tasks are cleared from display after a fixed delay.
func (s *Session) UploadBatch(ctx context.Context, files []File) {
	s.mu.Lock()
	for _, f := range files {
		s.tasks[f.Name] = &UploadTask{FileName: f.Name, Status: StatusUploading}
	}
	s.mu.Unlock()

	for _, f := range files {
		name := f.Name
		_, err := s.upload(ctx, name, f.Content, f.ContentType, func(pct int) {
			s.setProgress(name, pct)
		})
		if err != nil {
			s.finishTask(name, StatusError)
			s.pushToast(ErrorToast{Message: "Failed: " + name})
			continue
		}
		s.finishTask(name, StatusSuccess)
		s.pushToast(SuccessToast{Message: "Uploaded: " + name})
	}

	s.after(s.clearDelay, s.clearTasks)
}

// RequestDelete runs the two-phase delete flow: a confirm toast first, and
// only on confirmation the actual delete followed by an outcome toast.
// onDeleted fires after a successful delete so the caller can refresh its
// listing.
func (s *Session) RequestDelete(fileName string, doDelete func() error, onDeleted func()) {
	var confirmID int
	confirmID = s.pushToast(ConfirmToast{
		Message: `Delete "` + fileName + `"?`,
		OnConfirm: func() {
			s.removeToast(confirmID)
			if err := doDelete(); err != nil {
				s.pushToast(ErrorToast{Message: "Failed to delete: " + fileName})
				return
			}
			s.pushToast(SuccessToast{Message: "Deleted: " + fileName})
			if onDeleted != nil {
				onDeleted()
			}
		},
		OnCancel: func() { s.removeToast(confirmID) },
	})
}

// Toasts returns the toasts currently on display, oldest first.
func (s *Session) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	for i, at := range s.toasts {
		out[i] = at.toast
	}
	return out
}

// pushToast records the toast, forwards it to the notifier and schedules
// expiry. Confirm toasts are exempt; they leave when answered.
func (s *Session) pushToast(t Toast) int {
	s.mu.Lock()
	s.nextToastID++
	id := s.nextToastID
	s.toasts = append(s.toasts, activeToast{id: id, toast: t})
	s.mu.Unlock()

	s.notify(t)
	if _, confirm := t.(ConfirmToast); !confirm {
		s.after(ToastTTL, func() { s.removeToast(id) })
	}
	return id
}

func (s *Session) removeToast(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, at := range s.toasts {
		if at.id == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Tasks returns a snapshot of the active tasks.
func (s *Session) Tasks() []UploadTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UploadTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

func (s *Session) setProgress(name string, pct int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	if !ok || t.Status != StatusUploading {
		return
	}
	if pct > t.Progress {
		t.Progress = pct
	}
}

func (s *Session) finishTask(name string, status TaskStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	if !ok || t.Status != StatusUploading {
		return
	}
	t.Status = status
	if status == StatusSuccess {
		t.Progress = 100
	}
}

func (s *Session) clearTasks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[string]*UploadTask)
}
