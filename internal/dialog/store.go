package dialog

import (
	"sync"
	"time"
)

// Сессии, к которым не прикасались дольше этого, считаем брошенными
// и выкидываем при следующем обращении — по аналогии с ленивым
// истечением премиума, без фонового таймера.
const idleTTL = 30 * time.Minute

// Store — общая карта сессий по chat_id. Сообщения одного чата Telegram
// приходят последовательно, поэтому внутри сессии гонок нет; мьютекс
// защищает саму карту от параллельных чатов.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session), now: time.Now}
}

// Get возвращает живую сессию чата или nil.
func (s *Store) Get(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if s.now().Sub(sess.touched) > idleTTL {
		s.Reset(chatID)
		return nil
	}
	return sess
}

// Set сохраняет сессию и отмечает её живой.
func (s *Store) Set(sess *Session) {
	sess.touched = s.now()
	s.mu.Lock()
	s.sessions[sess.ChatID] = sess
	s.mu.Unlock()
}

// Reset удаляет сессию чата; отсутствие записи — не ошибка.
func (s *Store) Reset(chatID int64) {
	s.mu.Lock()
	delete(s.sessions, chatID)
	s.mu.Unlock()
}
