package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"feedsng/internal/model"
)

const (
	TaskRunning   = "running"
	TaskDone      = "done"
	TaskError     = "error"
	TaskCancelled = "cancelled"
)

type ImportTask struct {
	ID        string        `json:"id"`
	UserID    model.UserID  `json:"userId"`
	Status    string        `json:"status"`
	Total     int           `json:"total"`
	Current   int           `json:"current"`
	Feed      string        `json:"feed,omitempty"`
	Result    *ImportResult `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ImportTaskService tracks the single background import the process runs
// at a time.
type ImportTaskService interface {
	// Start registers a new running task. It returns ErrImportRunning while
	// another task is still running.
	Start(userID model.UserID) (string, context.Context, error)
	Update(id string, progress ImportProgress)
	Complete(id string, result ImportResult)
	Fail(id string, err error)
	Get(userID model.UserID) *ImportTask
	Cancel(userID model.UserID) bool
}

type importTaskManager struct {
	mu      sync.RWMutex
	current *ImportTask
	cancel  context.CancelFunc
}

func NewImportTaskService() ImportTaskService {
	return &importTaskManager{}
}

func (m *importTaskManager) Start(userID model.UserID) (string, context.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Status == TaskRunning {
		return "", nil, ErrImportRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.current = &ImportTask{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    TaskRunning,
		CreatedAt: time.Now(),
	}
	return m.current.ID, ctx, nil
}

func (m *importTaskManager) Update(id string, progress ImportProgress) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task := m.running(id); task != nil {
		task.Total = progress.Total
		task.Current = progress.Current
		task.Feed = progress.Feed
	}
}

func (m *importTaskManager) Complete(id string, result ImportResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task := m.running(id); task != nil {
		task.Status = TaskDone
		task.Result = &result
		task.Feed = ""
		m.release()
	}
}

func (m *importTaskManager) Fail(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task := m.running(id); task != nil {
		task.Status = TaskError
		task.Error = err.Error()
		task.Feed = ""
		m.release()
	}
}

// Get returns a copy of the latest task of userID, or nil.
func (m *importTaskManager) Get(userID model.UserID) *ImportTask {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil || m.current.UserID != userID {
		return nil
	}
	task := *m.current
	if m.current.Result != nil {
		result := *m.current.Result
		result.FailedURLs = append([]string(nil), result.FailedURLs...)
		task.Result = &result
	}
	return &task
}

func (m *importTaskManager) Cancel(userID model.UserID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.current.UserID != userID || m.current.Status != TaskRunning {
		return false
	}
	m.release()
	m.current.Status = TaskCancelled
	m.current.Feed = ""
	return true
}

// running returns the current task when it is id and still running.
func (m *importTaskManager) running(id string) *ImportTask {
	if m.current == nil || m.current.ID != id || m.current.Status != TaskRunning {
		return nil
	}
	return m.current
}

func (m *importTaskManager) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
