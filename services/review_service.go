package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"catering/entity"
	"catering/repository"
	"catering/rules"
)

type ReviewService struct {
	Repo    *repository.ReviewRepository
	Clients *repository.ClientRepository
	Venues  *repository.VenueRepository
	Env     *RuleEnv
}

func NewReviewService(
	repo *repository.ReviewRepository,
	clients *repository.ClientRepository,
	venues *repository.VenueRepository,
	env *RuleEnv,
) *ReviewService {
	return &ReviewService{Repo: repo, Clients: clients, Venues: venues, Env: env}
}

type ReviewView struct {
	ID         uint           `json:"id"`
	Rating     int            `json:"rating"`
	Comment    string         `json:"comment"`
	ClientID   uint           `json:"clientId"`
	ClientName string         `json:"clientName"`
	VenueID    uint           `json:"venueId"`
	VenueName  string         `json:"venueName"`
	CreatedAt  time.Time      `json:"createdAt"`
	CanEdit    rules.Decision `json:"canEdit"`
	CanDelete  rules.Decision `json:"canDelete"`
}

// ReviewFilter.Rating is high (>=4), medium (2-3), low (<2) or an exact
// star count.
type ReviewFilter struct {
	Query  string
	Rating string
	Sort   string
}

type ReviewInput struct {
	ClientID uint   `json:"clientId"`
	VenueID  uint   `json:"venueId"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func (in ReviewInput) validate(creating bool) error {
	var issues []string
	if in.Rating < 1 || in.Rating > 5 {
		issues = append(issues, "rating must be between 1 and 5")
	}
	if creating && (in.ClientID == 0 || in.VenueID == 0) {
		issues = append(issues, "client and venue are required")
	}
	if len(issues) > 0 {
		return &rules.ValidationError{Issues: issues}
	}
	return nil
}

func reviewResource(e entity.Review) rules.Resource {
	return rules.Resource{
		Kind:      rules.KindReview,
		OwnerID:   clientOwner(e.Client),
		Rating:    e.Rating,
		CreatedAt: e.CreatedAt,
	}
}

func (s *ReviewService) view(e entity.Review, caller Caller, now time.Time) ReviewView {
	res := reviewResource(e)
	return ReviewView{
		ID:         e.ID,
		Rating:     e.Rating,
		Comment:    e.Comment,
		ClientID:   e.ClientID,
		ClientName: e.Client.FullName(),
		VenueID:    e.VenueID,
		VenueName:  e.Venue.VenueName,
		CreatedAt:  e.CreatedAt,
		CanEdit:    s.Env.decide(caller, rules.ActionEdit, res, now),
		CanDelete:  s.Env.decide(caller, rules.ActionDelete, res, now),
	}
}

func (f ReviewFilter) match(v ReviewView) bool {
	if f.Query != "" && !containsFold(v.ClientName, f.Query) &&
		!containsFold(v.VenueName, f.Query) && !containsFold(v.Comment, f.Query) {
		return false
	}
	switch f.Rating {
	case "":
		return true
	case "high":
		return v.Rating >= 4
	case "medium":
		return v.Rating >= 2 && v.Rating < 4
	case "low":
		return v.Rating < 2
	}
	n, err := strconv.Atoi(f.Rating)
	return err == nil && v.Rating == n
}

func sortReviews(vs []ReviewView, by string) {
	less := func(a, b ReviewView) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch by {
	case "oldest":
		less = func(a, b ReviewView) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "rating_high":
		less = func(a, b ReviewView) bool { return a.Rating > b.Rating }
	case "rating_low":
		less = func(a, b ReviewView) bool { return a.Rating < b.Rating }
	case "client_name":
		less = func(a, b ReviewView) bool { return strings.ToLower(a.ClientName) < strings.ToLower(b.ClientName) }
	case "venue_name":
		less = func(a, b ReviewView) bool { return strings.ToLower(a.VenueName) < strings.ToLower(b.VenueName) }
	}
	sort.SliceStable(vs, func(i, j int) bool {
		if less(vs[i], vs[j]) {
			return true
		}
		if less(vs[j], vs[i]) {
			return false
		}
		return vs[i].ID < vs[j].ID
	})
}

func (s *ReviewService) List(caller Caller, f ReviewFilter) ([]ReviewView, error) {
	_, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindReview}, now).Err(); err != nil {
		return nil, err
	}
	rs, err := s.Repo.FindAll()
	if err != nil {
		return nil, s.Env.fetchFailed("reviews", err)
	}
	out := make([]ReviewView, 0, len(rs))
	for _, e := range rs {
		if v := s.view(e, caller, now); f.match(v) {
			out = append(out, v)
		}
	}
	sortReviews(out, f.Sort)
	return out, nil
}

func (s *ReviewService) Create(caller Caller, in ReviewInput) (ReviewView, error) {
	_, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionCreate, rules.Resource{Kind: rules.KindReview}, now).Err(); err != nil {
		return ReviewView{}, err
	}
	if err := in.validate(true); err != nil {
		return ReviewView{}, err
	}
	if err := s.checkRefs(caller, in); err != nil {
		return ReviewView{}, err
	}
	e := entity.Review{ClientID: in.ClientID, VenueID: in.VenueID, Rating: in.Rating, Comment: strings.TrimSpace(in.Comment)}
	if err := s.Repo.Create(&e); err != nil {
		return ReviewView{}, err
	}
	saved, err := s.Repo.FindByID(e.ID)
	if err != nil {
		return ReviewView{}, err
	}
	return s.view(*saved, caller, now), nil
}

// checkRefs verifies the client and venue exist, and that a client reviews
// only as themselves.
func (s *ReviewService) checkRefs(caller Caller, in ReviewInput) error {
	c, err := s.Clients.FindByID(in.ClientID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &rules.ValidationError{Issues: []string{"client does not exist"}}
		}
		return err
	}
	if !caller.Role.AtLeast(rules.RoleAdmin) && clientOwner(*c) != caller.UserID {
		return &rules.PermissionError{Reason: "clients can only review as themselves"}
	}
	if _, err := s.Venues.FindByID(in.VenueID); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return &rules.ValidationError{Issues: []string{"venue does not exist"}}
		}
		return err
	}
	return nil
}

// Update changes rating and comment only.
func (s *ReviewService) Update(caller Caller, id uint, in ReviewInput) (ReviewView, error) {
	_, now := s.Env.snapshot()
	e, err := s.Repo.FindByID(id)
	if err != nil {
		return ReviewView{}, notFound(err)
	}
	if err := s.Env.decide(caller, rules.ActionEdit, reviewResource(*e), now).Err(); err != nil {
		return ReviewView{}, err
	}
	if err := in.validate(false); err != nil {
		return ReviewView{}, err
	}
	comment := strings.TrimSpace(in.Comment)
	if err := s.Repo.Update(id, map[string]any{"rating": in.Rating, "comment": comment}); err != nil {
		return ReviewView{}, err
	}
	e.Rating, e.Comment = in.Rating, comment
	return s.view(*e, caller, now), nil
}

func (s *ReviewService) Delete(caller Caller, id uint) error {
	_, now := s.Env.snapshot()
	e, err := s.Repo.FindByID(id)
	if err != nil {
		return notFound(err)
	}
	if err := s.Env.decide(caller, rules.ActionDelete, reviewResource(*e), now).Err(); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
