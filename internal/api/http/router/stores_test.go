package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/parleychat/parley-server/internal/model"
)

// In-memory store implementations backing the end-to-end router tests.
// They mirror the postgres repositories' contracts: ErrNotFound on
// misses, owner auto-membership on room creation, oldest-first message
// listings.

type memUserStore struct {
	mu    sync.Mutex
	seq   int64
	users map[int64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]model.User)}
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *memUserStore) GetByUsernameOrEmail(_ context.Context, usernameOrEmail string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == usernameOrEmail || user.Email == usernameOrEmail {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) List(_ context.Context, skip, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, skip, limit), nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	user.ID = s.seq
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) UpdateUsername(_ context.Context, id int64, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	user.Username = username
	s.users[id] = user
	return user, nil
}

func (s *memUserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memRoomStore struct {
	mu           sync.Mutex
	roomSeq      int64
	partSeq      int64
	rooms        map[int64]model.ChatRoom
	participants map[int64]map[int64]model.Participant // roomID -> userID
}

func newMemRoomStore() *memRoomStore {
	return &memRoomStore{
		rooms:        make(map[int64]model.ChatRoom),
		participants: make(map[int64]map[int64]model.Participant),
	}
}

func (s *memRoomStore) addParticipantLocked(userID, roomID int64) model.Participant {
	s.partSeq++
	p := model.Participant{
		ID:       s.partSeq,
		UserID:   userID,
		RoomID:   roomID,
		JoinedAt: time.Now().UTC(),
	}
	if s.participants[roomID] == nil {
		s.participants[roomID] = make(map[int64]model.Participant)
	}
	s.participants[roomID][userID] = p
	return p
}

func (s *memRoomStore) Create(_ context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomSeq++
	room.ID = s.roomSeq
	s.rooms[room.ID] = room
	s.addParticipantLocked(room.OwnerID, room.ID)
	return room, nil
}

func (s *memRoomStore) GetByID(_ context.Context, id int64) (model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return model.ChatRoom{}, model.ErrNotFound
	}
	return room, nil
}

func (s *memRoomStore) List(_ context.Context, skip, limit int, isPrivate *bool) ([]model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.ChatRoom, 0, len(s.rooms))
	for _, room := range s.rooms {
		if isPrivate != nil && room.IsPrivate != *isPrivate {
			continue
		}
		all = append(all, room)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, skip, limit), nil
}

func (s *memRoomStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.rooms, id)
	delete(s.participants, id)
	return nil
}

func (s *memRoomStore) AddParticipant(_ context.Context, userID, roomID int64) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; !ok {
		return model.Participant{}, model.ErrNotFound
	}
	return s.addParticipantLocked(userID, roomID), nil
}

func (s *memRoomStore) GetParticipant(_ context.Context, userID, roomID int64) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.participants[roomID][userID]
	if !ok {
		return model.Participant{}, model.ErrNotFound
	}
	return p, nil
}

func (s *memRoomStore) ListParticipants(_ context.Context, roomID int64, skip, limit int) ([]model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.Participant, 0, len(s.participants[roomID]))
	for _, p := range s.participants[roomID] {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, skip, limit), nil
}

func (s *memRoomStore) RemoveParticipant(_ context.Context, userID, roomID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.participants[roomID][userID]; !ok {
		return model.ErrNotFound
	}
	delete(s.participants[roomID], userID)
	return nil
}

func (s *memRoomStore) GetDirectMessage(_ context.Context, userID, otherID int64) (model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, room := range s.rooms {
		if !room.IsDirectMessage {
			continue
		}
		members := s.participants[id]
		if _, ok := members[userID]; !ok {
			continue
		}
		if _, ok := members[otherID]; !ok {
			continue
		}
		return room, nil
	}
	return model.ChatRoom{}, model.ErrNotFound
}

func (s *memRoomStore) CreateDirectMessage(_ context.Context, room model.ChatRoom, userID, otherID int64) (model.ChatRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomSeq++
	room.ID = s.roomSeq
	s.rooms[room.ID] = room
	s.addParticipantLocked(userID, room.ID)
	s.addParticipantLocked(otherID, room.ID)
	return room, nil
}

type memMessageStore struct {
	mu       sync.Mutex
	seq      int64
	messages map[int64]model.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{messages: make(map[int64]model.Message)}
}

func (s *memMessageStore) Create(_ context.Context, roomID, senderID int64, content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	msg := model.Message{
		ID:        s.seq,
		Content:   content,
		Timestamp: time.Now().UTC(),
		SenderID:  senderID,
		RoomID:    roomID,
	}
	s.messages[msg.ID] = msg
	return msg, nil
}

func (s *memMessageStore) GetByID(_ context.Context, id int64) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return model.Message{}, model.ErrNotFound
	}
	return msg, nil
}

func (s *memMessageStore) ListByRoom(_ context.Context, roomID int64, skip, limit int) ([]model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.Message, 0)
	for _, msg := range s.messages {
		if msg.RoomID == roomID {
			all = append(all, msg)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, skip, limit), nil
}

func (s *memMessageStore) UpdateContent(_ context.Context, id int64, content string) (model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[id]
	if !ok {
		return model.Message{}, model.ErrNotFound
	}
	msg.Content = content
	msg.IsEdited = true
	s.messages[id] = msg
	return msg, nil
}

func (s *memMessageStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.messages, id)
	return nil
}

type memRefreshStore struct {
	mu     sync.Mutex
	seq    int64
	tokens map[string]model.RefreshToken // by jti
}

func newMemRefreshStore() *memRefreshStore {
	return &memRefreshStore{tokens: make(map[string]model.RefreshToken)}
}

func (s *memRefreshStore) Create(_ context.Context, token model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	token.ID = s.seq
	token.CreatedAt = time.Now().UTC()
	s.tokens[token.JTI] = token
	return nil
}

func (s *memRefreshStore) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return token, nil
}

func (s *memRefreshStore) RevokeBySessionID(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for jti, token := range s.tokens {
		if token.SessionID == sessionID {
			token.Revoked = true
			s.tokens[jti] = token
		}
	}
	return nil
}

type memBlacklistStore struct {
	mu      sync.Mutex
	seq     int64
	entries map[string]model.BlacklistedToken // by jti
}

func newMemBlacklistStore() *memBlacklistStore {
	return &memBlacklistStore{entries: make(map[string]model.BlacklistedToken)}
}

func (s *memBlacklistStore) Create(_ context.Context, entry model.BlacklistedToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	entry.ID = s.seq
	s.entries[entry.JTI] = entry
	return nil
}

func (s *memBlacklistStore) GetByJTI(_ context.Context, jti string) (model.BlacklistedToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[jti]
	if !ok {
		return model.BlacklistedToken{}, model.ErrNotFound
	}
	return entry, nil
}

func (s *memBlacklistStore) GetByToken(_ context.Context, token string) (model.BlacklistedToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.Token == token {
			return entry, nil
		}
	}
	return model.BlacklistedToken{}, model.ErrNotFound
}

func (s *memBlacklistStore) DeleteExpired(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for jti, entry := range s.entries {
		if entry.ExpiresAt.Before(now) {
			delete(s.entries, jti)
		}
	}
	return nil
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
