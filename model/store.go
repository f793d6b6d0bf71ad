package model

import (
	"sort"
	"sync"
	"time"
)

// Store 保存用户和消息，进程内存储，重启后数据丢失
type Store struct {
	mu       sync.RWMutex
	users    []*User
	byName   map[string]*User
	messages map[uint][]*Message
	nextUser uint
	nextMsg  uint
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		byName:   make(map[string]*User),
		messages: make(map[uint][]*Message),
		nextUser: 1,
		nextMsg:  1,
		now:      time.Now,
	}
}

// GetOrCreateUser returns the user with that exact username, creating it on
// first sight. Usernames are case-sensitive; the first writer wins.
func (s *Store) GetOrCreateUser(username string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.byName[username]; ok {
		return *u
	}

	u := &User{
		ID:        s.nextUser,
		Username:  username,
		CreatedAt: s.now(),
	}
	s.nextUser++
	s.users = append(s.users, u)
	s.byName[username] = u
	return *u
}

// SaveMessage appends an immutable message. The userId is not validated.
func (s *Store) SaveMessage(userId uint, role Role, content string) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Message{
		ID:        s.nextMsg,
		UserId:    userId,
		Role:      role,
		Content:   content,
		CreatedAt: s.now(),
	}
	s.nextMsg++
	s.messages[userId] = append(s.messages[userId], m)
	return *m
}

// GetChatHistory returns up to limit most recent messages for the user,
// oldest first. Unknown users get an empty slice.
func (s *Store) GetChatHistory(userId uint, limit int) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[userId]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, *m)
	}
	return out
}

// GetAllUsers returns all users, most recently created first.
func (s *Store) GetAllUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
