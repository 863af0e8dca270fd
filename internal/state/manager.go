package state

import (
	"log"
	"sync"
	"time"

	"SignalSentry/internal/model"
)

// historyLen bounds the recent score/action history kept for the digest.
const historyLen = 12

// Manager handles watch-state updates with concurrency safety.
type Manager struct {
	mu       sync.Mutex
	state    *model.WatchState
	filePath string
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath, symbol string) (*Manager, error) {
	st, err := Load(filePath)
	if err != nil {
		return nil, err
	}
	if st.Symbol == "" {
		st.Symbol = symbol
	}
	m := &Manager{state: st, filePath: filePath}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns a copy of the current watch state.
func (m *Manager) Get() model.WatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.state
}

// Apply folds a new result into the state and reports whether the action
// changed since the previous run. SKIP results never count as a change
// and leave the last recommendation intact, so a thin-data day does not
// produce a spurious transition when real data returns.
func (m *Manager) Apply(res *model.SignalResult) (changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if res.Action == model.ActionSkip {
		if err := m.save(); err != nil {
			log.Printf("[ERROR] save watch state: %v", err)
		}
		return false
	}

	changed = m.state.LastAction != "" && m.state.LastAction != res.Action
	if m.state.LastAction == "" {
		// first ever evaluation: anything beyond HOLD is worth telling
		changed = res.Anomalous()
	}

	m.state.LastAction = res.Action
	m.state.LastScore = res.Score
	m.state.LastTimestamp = res.Timestamp
	m.state.LastClose = res.ClosePrice

	m.state.RecentScores = append(m.state.RecentScores, res.Score)
	if len(m.state.RecentScores) > historyLen {
		m.state.RecentScores = m.state.RecentScores[len(m.state.RecentScores)-historyLen:]
	}
	m.state.RecentActions = append(m.state.RecentActions, res.Action)
	if len(m.state.RecentActions) > historyLen {
		m.state.RecentActions = m.state.RecentActions[len(m.state.RecentActions)-historyLen:]
	}

	if res.Anomalous() {
		m.state.ConsecutiveAnomalies++
	} else {
		m.state.ConsecutiveAnomalies = 0
	}

	if err := m.save(); err != nil {
		log.Printf("[ERROR] save watch state: %v", err)
	}
	return changed
}

// MarkNotified records the time a notification was delivered.
func (m *Manager) MarkNotified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LastNotifiedAt = time.Now()
	if err := m.save(); err != nil {
		log.Printf("[ERROR] save watch state: %v", err)
	}
}

func (m *Manager) save() error {
	return Save(m.filePath, m.state)
}
