package ports

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
)

// MockCommandRunner is a scripted, thread-safe test double for CommandRunner.
// Results are keyed on the full command line; unscripted commands fail the
// lookup so tests notice unexpected invocations.
type MockCommandRunner struct {
	mu      sync.RWMutex
	results map[string]CommandResult
	errors  map[string]error
	calls   []CommandCall
}

// NewMockCommandRunner creates a new MockCommandRunner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		results: make(map[string]CommandResult),
		errors:  make(map[string]error),
	}
}

// AddResult registers an expected command and its result.
func (m *MockCommandRunner) AddResult(command string, args []string, result CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[mockKey(command, args)] = result
}

// AddError registers an expected command that should fail to run.
func (m *MockCommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[mockKey(command, args)] = err
}

// Run executes a scripted command.
func (m *MockCommandRunner) Run(_ context.Context, command string, args ...string) (CommandResult, error) {
	return m.record(CommandCall{Command: command, Args: args})
}

// RunInput executes a scripted command, recording the stdin it was fed.
func (m *MockCommandRunner) RunInput(_ context.Context, stdin string, command string, args ...string) (CommandResult, error) {
	return m.record(CommandCall{Command: command, Args: args, Stdin: stdin})
}

func (m *MockCommandRunner) record(call CommandCall) (CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := mockKey(call.Command, call.Args)
	if err, ok := m.errors[key]; ok {
		return CommandResult{}, err
	}
	if result, ok := m.results[key]; ok {
		return result, nil
	}
	return CommandResult{}, fmt.Errorf("no mock result for command: %s %v", call.Command, call.Args)
}

// Calls returns all recorded invocations.
func (m *MockCommandRunner) Calls() []CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	calls := make([]CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Called reports whether the given command line was invoked.
func (m *MockCommandRunner) Called(command string, args ...string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	want := mockKey(command, args)
	for _, c := range m.calls {
		if mockKey(c.Command, c.Args) == want {
			return true
		}
	}
	return false
}

func mockKey(command string, args []string) string {
	return command + " " + strings.Join(args, " ")
}

// Ensure MockCommandRunner implements CommandRunner.
var _ CommandRunner = (*MockCommandRunner)(nil)

// MockFileSystem is an in-memory test double for FileSystem. Directories
// are implicit: a path is a directory when another entry lives below it,
// or when it was registered with AddDir.
type MockFileSystem struct {
	mu      sync.RWMutex
	files   map[string][]byte
	dirs    map[string]bool
	removed []string
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile seeds a file into the mock.
func (m *MockFileSystem) AddFile(p string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = data
}

// AddDir seeds a directory into the mock.
func (m *MockFileSystem) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[p] = true
}

// Removed returns the paths removed through Remove and RemoveAll.
func (m *MockFileSystem) Removed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.removed))
	copy(out, m.removed)
	return out
}

// ReadFile returns the seeded contents.
func (m *MockFileSystem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[p]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: p, Err: os.ErrNotExist}
	}
	return data, nil
}

// WriteFile stores the contents.
func (m *MockFileSystem) WriteFile(p string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[p] = data
	return nil
}

// Exists reports whether the path was seeded as a file or directory.
func (m *MockFileSystem) Exists(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.existsLocked(p)
}

func (m *MockFileSystem) existsLocked(p string) bool {
	if _, ok := m.files[p]; ok {
		return true
	}
	if m.dirs[p] {
		return true
	}
	prefix := strings.TrimSuffix(p, "/") + "/"
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// IsDir reports whether the path is a directory.
func (m *MockFileSystem) IsDir(p string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.dirs[p] {
		return true
	}
	prefix := strings.TrimSuffix(p, "/") + "/"
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// Remove deletes a single entry.
func (m *MockFileSystem) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.existsLocked(p) {
		return &os.PathError{Op: "remove", Path: p, Err: os.ErrNotExist}
	}
	delete(m.files, p)
	delete(m.dirs, p)
	m.removed = append(m.removed, p)
	return nil
}

// RemoveAll deletes a path and everything below it.
func (m *MockFileSystem) RemoveAll(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, p)
	delete(m.dirs, p)
	prefix := strings.TrimSuffix(p, "/") + "/"
	for f := range m.files {
		if strings.HasPrefix(f, prefix) {
			delete(m.files, f)
		}
	}
	for d := range m.dirs {
		if strings.HasPrefix(d, prefix) {
			delete(m.dirs, d)
		}
	}
	m.removed = append(m.removed, p)
	return nil
}

// Rename moves a file.
func (m *MockFileSystem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldPath]
	if !ok {
		return &os.PathError{Op: "rename", Path: oldPath, Err: os.ErrNotExist}
	}
	delete(m.files, oldPath)
	m.files[newPath] = data
	return nil
}

// CopyFile copies a file.
func (m *MockFileSystem) CopyFile(src, dest string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[src]
	if !ok {
		return &os.PathError{Op: "open", Path: src, Err: os.ErrNotExist}
	}
	m.files[dest] = append([]byte(nil), data...)
	return nil
}

// Glob matches seeded paths against a shell pattern.
func (m *MockFileSystem) Glob(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for f := range m.files {
		ok, err := path.Match(pattern, f)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, f)
		}
	}
	for d := range m.dirs {
		ok, err := path.Match(pattern, d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Ensure MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)
