package session

import "sync"

// Source holds the current client-side session and notifies subscribers
// when it changes.
type Source struct {
	mu      sync.RWMutex
	current Session
	subs    map[int]chan Session
	nextID  int
}

func NewSource(initial Session) *Source {
	return &Source{current: initial, subs: make(map[int]chan Session)}
}

func (s *Source) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the session. Subscribers that have not read the previous
// update only see the latest one.
func (s *Source) Set(next Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next == s.current {
		return
	}
	s.current = next
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

// Subscribe returns a channel of session changes and a function that stops
// delivery and closes the channel.
func (s *Source) Subscribe() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Session, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}
