package user

import "golang.org/x/crypto/bcrypt"

// ServiceInterface is the surface other packages (orders, checkout) consume.
type ServiceInterface interface {
	GetByID(id int) (User, error)
	GetVendor(id int) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// GetVendor returns the user only when it actually holds the vendor role, so
// callers cannot build orders against a customer or admin account.
func (s *Service) GetVendor(id int) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if !u.IsVendor() {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *Service) Update(id int, user User) (User, error) {
	if user.Password != "" && !looksLikeBcrypt(user.Password) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, err
		}
		user.Password = string(hashed)
	}
	return s.repo.Update(id, user)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) Register(user User) (User, error) {
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	if user.Role == "" {
		user.Role = RoleCustomer
	}
	return s.repo.Create(user)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// SetRole is an admin action; promoting a user to vendedor is how stores are
// onboarded.
func (s *Service) SetRole(id int, role string) (User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	u.Role = role
	return s.repo.Update(id, u)
}

// SetCommissionRate updates the percentage the platform keeps from each of the
// vendor's future orders. Existing orders keep their snapshotted rate.
func (s *Service) SetCommissionRate(id int, rate float64) (User, error) {
	u, err := s.GetVendor(id)
	if err != nil {
		return User{}, err
	}
	u.CommissionRate = rate
	return s.repo.Update(id, u)
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
