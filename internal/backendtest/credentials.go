package backendtest

import "sync"

// MemoryCredentials keeps the session token in memory. Tests use it where
// the sqlite-backed credential store would only add disk churn.
type MemoryCredentials struct {
	mu    sync.Mutex
	token string
}

func (credentials *MemoryCredentials) Token() (string, bool) {
	credentials.mu.Lock()
	defer credentials.mu.Unlock()
	return credentials.token, credentials.token != ""
}

func (credentials *MemoryCredentials) SetToken(token string) error {
	credentials.mu.Lock()
	defer credentials.mu.Unlock()
	credentials.token = token
	return nil
}

func (credentials *MemoryCredentials) ClearToken() error {
	credentials.mu.Lock()
	defer credentials.mu.Unlock()
	credentials.token = ""
	return nil
}
