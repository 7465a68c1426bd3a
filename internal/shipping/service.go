package shipping

import "errors"

// ErrZoneUnavailable covers disabled zones and zones owned by a different
// vendor; checkout treats both like a forged zone id.
var ErrZoneUnavailable = errors.New("shipping zone unavailable")

// ServiceInterface is the surface the checkout pipeline consumes.
type ServiceInterface interface {
	Resolve(vendorID int, commune, region string) []Option
	ActiveZone(vendorID, zoneID int) (Zone, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the shipping options a vendor offers for a customer
// address: enabled zones whose criteria match, with pickup stores always
// included as an alternative. An empty result blocks checkout for that
// vendor.
func (s *Service) Resolve(vendorID int, commune, region string) []Option {
	options := make([]Option, 0)
	for _, z := range s.repo.ListByVendor(vendorID) {
		if !z.Enabled {
			continue
		}
		if !z.Matches(commune, region) {
			continue
		}
		options = append(options, z.option())
	}
	return options
}

// ActiveZone re-validates a client-supplied zone id at checkout time: the
// zone must exist, be enabled and belong to the vendor being charged for.
func (s *Service) ActiveZone(vendorID, zoneID int) (Zone, error) {
	z, err := s.repo.GetByID(zoneID)
	if err != nil {
		return Zone{}, err
	}
	if !z.Enabled || z.VendorID != vendorID {
		return Zone{}, ErrZoneUnavailable
	}
	return z, nil
}

func (s *Service) ListByVendor(vendorID int) []Zone {
	return s.repo.ListByVendor(vendorID)
}

func (s *Service) GetByID(id int) (Zone, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(z Zone) (Zone, error) {
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return s.repo.Create(z)
}

func (s *Service) Update(id int, z Zone) (Zone, error) {
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return s.repo.Update(id, z)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
