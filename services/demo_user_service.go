package services

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrUserFieldsRequired = errors.New("Name and email are required")
	ErrUserFieldsBlank    = errors.New("Name and email must not contain space")
	ErrUserNameDigits     = errors.New("Name must not contain numbers")
)

type DemoUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DemoUserService keeps users in memory only; everything is lost on restart.
type DemoUserService struct {
	mu    sync.RWMutex
	users []DemoUser
}

func NewDemoUserService() *DemoUserService {
	return &DemoUserService{users: []DemoUser{}}
}

func (s *DemoUserService) List() []DemoUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DemoUser, len(s.users))
	copy(out, s.users)
	return out
}

func (s *DemoUserService) Create(name, email string) (DemoUser, error) {
	if name == "" || email == "" {
		return DemoUser{}, ErrUserFieldsRequired
	}
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return DemoUser{}, ErrUserFieldsBlank
	}
	if strings.IndexFunc(name, unicode.IsDigit) >= 0 {
		return DemoUser{}, ErrUserNameDigits
	}

	u := DemoUser{ID: uuid.NewString(), Name: name, Email: email}
	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()
	return u, nil
}
