package notify

import "sync"

// PanelStore accumulates cards per panel. Cards are prepended so the
// newest entry is always first; existing cards are never touched.
type PanelStore struct {
	mu    sync.RWMutex
	cards map[string][]Card
}

func NewPanelStore() *PanelStore {
	return &PanelStore{cards: map[string][]Card{}}
}

// Prepend inserts card at the head of its panel.
func (s *PanelStore) Prepend(card Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.Panel] = append([]Card{card}, s.cards[card.Panel]...)
}

// Snapshot returns a copy of a panel's cards, newest first.
func (s *PanelStore) Snapshot(panel string) []Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Card, len(s.cards[panel]))
	copy(out, s.cards[panel])
	return out
}
