// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"sync"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// memoryUsers is an in-memory [auth.UserRepository].
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]auth.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]auth.User{}}
}

func (m *memoryUsers) find(match func(auth.User) bool) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if match(user) {
			copied := user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	return m.find(func(user auth.User) bool { return user.ID == id })
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return m.find(func(user auth.User) bool { return user.Email == email })
}

func (m *memoryUsers) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return m.find(func(user auth.User) bool { return user.Username == username })
}

func (m *memoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict(auth.MsgUserAlreadyExists)
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUsers) SetRefreshToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.RefreshToken = token
	m.users[userID] = user
	return nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, userID, newHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	m.users[userID] = user
	return nil
}

func (m *memoryUsers) storedRefreshToken(userID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].RefreshToken
}

// memoryMedia records saved objects and returns predictable URLs.
type memoryMedia struct {
	mu    sync.Mutex
	saved []string
}

func (m *memoryMedia) Save(_ context.Context, folder, filename, _ string, body io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, folder+"/"+filename)
	return "https://media.test/" + folder + "/" + filename, nil
}
