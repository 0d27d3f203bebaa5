package services

import (
	"fmt"
	"strings"

	"catering/entity"
	"catering/repository"
	"catering/rules"
)

// DirectoryService manages the reference records the dashboard forms pick
// from. Changes are reserved to administrators.
type DirectoryService struct {
	Clients *repository.ClientRepository
	Venues  *repository.VenueRepository
	Env     *RuleEnv
}

func NewDirectoryService(clients *repository.ClientRepository, venues *repository.VenueRepository, env *RuleEnv) *DirectoryService {
	return &DirectoryService{Clients: clients, Venues: venues, Env: env}
}

type ClientInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Address     string `json:"address" binding:"required"`
	// account the client belongs to; nil for walk-ins
	UserID *uint `json:"userId"`
}

func (in ClientInput) trimmed() ClientInput {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

type VenueInput struct {
	VenueName   string `json:"venueName" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"gte=1"`
}

func (s *DirectoryService) gate(c Caller, action rules.Action, kind rules.ResourceKind) error {
	_, now := s.Env.snapshot()
	return s.Env.decide(c, action, rules.Resource{Kind: kind}, now).Err()
}

// ListClients returns every client to administrators and only the caller's
// own client records to everyone else.
func (s *DirectoryService) ListClients(caller Caller) ([]entity.Client, error) {
	if err := s.gate(caller, rules.ActionView, rules.KindClient); err != nil {
		return nil, err
	}
	var (
		cs  []entity.Client
		err error
	)
	if caller.Role.AtLeast(rules.RoleAdmin) {
		cs, err = s.Clients.FindAll()
	} else {
		cs, err = s.Clients.FindByUser(caller.UserID)
	}
	if err != nil {
		return nil, s.Env.fetchFailed("clients", err)
	}
	return cs, nil
}

func (s *DirectoryService) GetClient(caller Caller, id uint) (*entity.Client, error) {
	if err := s.gate(caller, rules.ActionView, rules.KindClient); err != nil {
		return nil, err
	}
	c, err := s.Clients.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	if !caller.Role.AtLeast(rules.RoleAdmin) && clientOwner(*c) != caller.UserID {
		return nil, &rules.PermissionError{Reason: "not your client record"}
	}
	return c, nil
}

func (s *DirectoryService) CreateClient(caller Caller, in ClientInput) (*entity.Client, error) {
	if err := s.gate(caller, rules.ActionCreate, rules.KindClient); err != nil {
		return nil, err
	}
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c := entity.Client{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		UserID:      in.UserID,
	}
	if err := s.Clients.Create(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DirectoryService) UpdateClient(caller Caller, id uint, in ClientInput) (*entity.Client, error) {
	if err := s.gate(caller, rules.ActionEdit, rules.KindClient); err != nil {
		return nil, err
	}
	if _, err := s.Clients.FindByID(id); err != nil {
		return nil, notFound(err)
	}
	in = in.trimmed()
	if err := validateInput(in); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"first_name":   in.FirstName,
		"last_name":    in.LastName,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
		"address":      in.Address,
	}
	// an omitted account link is kept
	if in.UserID != nil {
		updates["user_id"] = *in.UserID
	}
	if err := s.Clients.Update(id, updates); err != nil {
		return nil, err
	}
	return s.Clients.FindByID(id)
}

// DeleteClient refuses while reservations still reference the client.
func (s *DirectoryService) DeleteClient(caller Caller, id uint) error {
	if err := s.gate(caller, rules.ActionDelete, rules.KindClient); err != nil {
		return err
	}
	if _, err := s.Clients.FindByID(id); err != nil {
		return notFound(err)
	}
	n, err := s.Clients.CountReservations(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &rules.ValidationError{Issues: []string{fmt.Sprintf("client has %d reservations", n)}}
	}
	if err := s.Clients.Delete(id); err != nil {
		return err
	}
	s.Env.Log.Info().Uint("clientId", id).Uint("by", caller.UserID).Msg("client deleted")
	return nil
}

func (s *DirectoryService) ListVenues(caller Caller) ([]entity.Venue, error) {
	if err := s.gate(caller, rules.ActionView, rules.KindVenue); err != nil {
		return nil, err
	}
	vs, err := s.Venues.FindAll()
	if err != nil {
		return nil, s.Env.fetchFailed("venues", err)
	}
	return vs, nil
}

func (s *DirectoryService) GetVenue(caller Caller, id uint) (*entity.Venue, error) {
	if err := s.gate(caller, rules.ActionView, rules.KindVenue); err != nil {
		return nil, err
	}
	v, err := s.Venues.FindByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (s *DirectoryService) CreateVenue(caller Caller, in VenueInput) (*entity.Venue, error) {
	if err := s.gate(caller, rules.ActionCreate, rules.KindVenue); err != nil {
		return nil, err
	}
	in.VenueName = strings.TrimSpace(in.VenueName)
	in.Address = strings.TrimSpace(in.Address)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	v := entity.Venue{VenueName: in.VenueName, Address: in.Address, Description: in.Description, Capacity: in.Capacity}
	if err := s.Venues.Create(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *DirectoryService) UpdateVenue(caller Caller, id uint, in VenueInput) (*entity.Venue, error) {
	if err := s.gate(caller, rules.ActionEdit, rules.KindVenue); err != nil {
		return nil, err
	}
	if _, err := s.Venues.FindByID(id); err != nil {
		return nil, notFound(err)
	}
	in.VenueName = strings.TrimSpace(in.VenueName)
	in.Address = strings.TrimSpace(in.Address)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	err := s.Venues.Update(id, map[string]any{
		"venue_name":  in.VenueName,
		"address":     in.Address,
		"description": in.Description,
		"capacity":    in.Capacity,
	})
	if err != nil {
		return nil, err
	}
	return s.Venues.FindByID(id)
}

// DeleteVenue refuses while reviews still reference the venue.
func (s *DirectoryService) DeleteVenue(caller Caller, id uint) error {
	if err := s.gate(caller, rules.ActionDelete, rules.KindVenue); err != nil {
		return err
	}
	if _, err := s.Venues.FindByID(id); err != nil {
		return notFound(err)
	}
	n, err := s.Venues.CountReviews(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &rules.ValidationError{Issues: []string{fmt.Sprintf("venue has %d reviews", n)}}
	}
	if err := s.Venues.Delete(id); err != nil {
		return err
	}
	s.Env.Log.Info().Uint("venueId", id).Uint("by", caller.UserID).Msg("venue deleted")
	return nil
}
