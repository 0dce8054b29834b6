// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/tasklist/internal/auth"
	"github.com/taibuivan/tasklist/internal/platform/apperr"
	"github.com/taibuivan/tasklist/internal/tasks"
	"github.com/taibuivan/tasklist/internal/users"
)

// memoryStore holds users and tasks in one place so deletes can cascade.
type memoryStore struct {
	mu         sync.Mutex
	nextUserID int64
	nextTaskID int64
	users      map[int64]users.User
	tasks      map[int64]tasks.Task
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: make(map[int64]users.User),
		tasks: make(map[int64]tasks.Task),
	}
}

// userStore adapts memoryStore to users.Repository.
type userStore struct{ *memoryStore }

func (s userStore) FindByID(_ context.Context, id int64) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (s userStore) FindProfile(_ context.Context, id int64) (*users.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}

	profile := &users.Profile{ID: user.ID, Name: user.Name, Email: user.Email, Avatar: user.Avatar, Tasks: []users.TaskSummary{}}
	for _, task := range s.tasks {
		if task.UserID == id {
			profile.Tasks = append(profile.Tasks, users.TaskSummary{
				ID: task.ID, Name: task.Name, Description: task.Description, Completed: task.Completed,
			})
		}
	}
	sort.Slice(profile.Tasks, func(i, j int) bool { return profile.Tasks[i].ID < profile.Tasks[j].ID })
	return profile, nil
}

func (s userStore) Create(_ context.Context, user *users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	s.nextUserID++
	user.ID = s.nextUserID
	user.Active = true
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s userStore) Update(_ context.Context, user *users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.ID] = *user
	return nil
}

func (s userStore) UpdateAvatar(_ context.Context, id int64, avatar string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users[id]
	user.Avatar = &avatar
	s.users[id] = user
	return nil
}

func (s userStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	for taskID, task := range s.tasks {
		if task.UserID == id {
			delete(s.tasks, taskID)
		}
	}
	return nil
}

// taskStore adapts memoryStore to tasks.Repository.
type taskStore struct{ *memoryStore }

func (s taskStore) List(_ context.Context, limit, offset int) ([]*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*tasks.Task, 0, len(s.tasks))
	for _, row := range s.tasks {
		task := row
		all = append(all, &task)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	if offset >= len(all) {
		return []*tasks.Task{}, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (s taskStore) FindByID(_ context.Context, id int64) (*tasks.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, apperr.NotFound("Task")
	}
	return &task, nil
}

func (s taskStore) Create(_ context.Context, task *tasks.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTaskID++
	task.ID = s.nextTaskID
	task.CreatedAt = time.Now()
	s.tasks[task.ID] = *task
	return nil
}

func (s taskStore) Update(_ context.Context, task *tasks.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = *task
	return nil
}

func (s taskStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
	return nil
}

// credentialStore adapts memoryStore to auth.CredentialRepository.
type credentialStore struct{ *memoryStore }

func (s credentialStore) FindActiveByEmail(_ context.Context, email string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email && user.Active {
			return &auth.Account{
				ID:           user.ID,
				Name:         user.Name,
				Email:        user.Email,
				PasswordHash: user.PasswordHash,
				Avatar:       user.Avatar,
			}, nil
		}
	}
	return nil, apperr.NotFound("Account")
}
