package store

import "sync"

// subscribers is an ordered registry of change callbacks for a value of type T
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID int
	slots  []subscriberSlot[T]
}

type subscriberSlot[T any] struct {
	id int
	fn func(T)
}

func (s *subscribers[T]) add(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.slots = append(s.slots, subscriberSlot[T]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, slot := range s.slots {
			if slot.id == id {
				s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
				return
			}
		}
	}
}

// notify calls every subscriber in registration order, outside the registry lock
func (s *subscribers[T]) notify(v T) {
	s.mu.Lock()
	slots := append([]subscriberSlot[T](nil), s.slots...)
	s.mu.Unlock()

	for _, slot := range slots {
		slot.fn(v)
	}
}
