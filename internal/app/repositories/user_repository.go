package repositories

import "github.com/yigit/studyshare/internal/app/models"

// CreateUser stores a new user. Username and email uniqueness is the caller's job.
func (s *MemStorage) CreateUser(u models.NewUser) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentUserID++
	user := &models.User{
		ID:          s.currentUserID,
		Username:    u.Username,
		Password:    u.Password,
		DisplayName: u.DisplayName,
		Email:       u.Email,
	}
	s.users[user.ID] = user
	return copyUser(user)
}

// GetUser returns the user with the given id
func (s *MemStorage) GetUser(id int64) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, false
	}
	return copyUser(user), true
}

// GetUserByUsername returns the user with an exactly matching username
func (s *MemStorage) GetUserByUsername(username string) (*models.User, bool) {
	return s.findUser(func(u *models.User) bool { return u.Username == username })
}

// GetUserByEmail returns the user with an exactly matching email
func (s *MemStorage) GetUserByEmail(email string) (*models.User, bool) {
	return s.findUser(func(u *models.User) bool { return u.Email == email })
}

func (s *MemStorage) findUser(match func(*models.User) bool) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return copyUser(u), true
		}
	}
	return nil, false
}

func copyUser(u *models.User) *models.User {
	c := *u
	if u.ProfileImage != nil {
		img := *u.ProfileImage
		c.ProfileImage = &img
	}
	return &c
}
