package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// VenueService manages venues
type VenueService struct {
	venues VenueStore
}

// NewVenueService creates a new VenueService
func NewVenueService(venues VenueStore) *VenueService {
	return &VenueService{venues: venues}
}

// List returns venues, optionally only active ones
func (s *VenueService) List(ctx context.Context, activeOnly bool) ([]*models.Venue, error) {
	return s.venues.List(ctx, activeOnly)
}

// Get returns one venue
func (s *VenueService) Get(ctx context.Context, id int64) (*models.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

func applyVenue(v *models.Venue, req *dto.VenueRequest) {
	v.Name = strings.TrimSpace(req.Name)
	v.Address = req.Address
	v.Suburb = req.Suburb
	v.Postcode = req.Postcode
	v.Capacity = req.Capacity
	v.Notes = req.Notes
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
}

// Create adds a venue
func (s *VenueService) Create(ctx context.Context, req *dto.VenueRequest) (*models.Venue, error) {
	v := &models.Venue{IsActive: true}
	applyVenue(v, req)
	id, err := s.venues.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.venues.GetByID(ctx, id)
}

// Update replaces a venue
func (s *VenueService) Update(ctx context.Context, id int64, req *dto.VenueRequest) (*models.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyVenue(v, req)
	if err := s.venues.Update(ctx, v); err != nil {
		return nil, err
	}
	return s.venues.GetByID(ctx, id)
}

// Delete removes a venue no class uses
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	return s.venues.Delete(ctx, id)
}

// InstructorService manages instructors
type InstructorService struct {
	instructors InstructorStore
}

// NewInstructorService creates a new InstructorService
func NewInstructorService(instructors InstructorStore) *InstructorService {
	return &InstructorService{instructors: instructors}
}

// List returns instructors, optionally only active ones
func (s *InstructorService) List(ctx context.Context, activeOnly bool) ([]*models.Instructor, error) {
	return s.instructors.List(ctx, activeOnly)
}

// Get returns one instructor
func (s *InstructorService) Get(ctx context.Context, id int64) (*models.Instructor, error) {
	return s.instructors.GetByID(ctx, id)
}

func applyInstructor(i *models.Instructor, req *dto.InstructorRequest) {
	i.FirstName = strings.TrimSpace(req.FirstName)
	i.LastName = strings.TrimSpace(req.LastName)
	i.Email = normalizeEmail(req.Email)
	i.Phone = req.Phone
	i.Qualifications = req.Qualifications
	if req.IsActive != nil {
		i.IsActive = *req.IsActive
	}
}

// Create adds an instructor
func (s *InstructorService) Create(ctx context.Context, req *dto.InstructorRequest) (*models.Instructor, error) {
	i := &models.Instructor{IsActive: true}
	applyInstructor(i, req)
	id, err := s.instructors.Create(ctx, i)
	if err != nil {
		return nil, err
	}
	return s.instructors.GetByID(ctx, id)
}

// Update replaces an instructor
func (s *InstructorService) Update(ctx context.Context, id int64, req *dto.InstructorRequest) (*models.Instructor, error) {
	i, err := s.instructors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyInstructor(i, req)
	if err := s.instructors.Update(ctx, i); err != nil {
		return nil, err
	}
	return s.instructors.GetByID(ctx, id)
}

// Delete removes an instructor no class uses
func (s *InstructorService) Delete(ctx context.Context, id int64) error {
	return s.instructors.Delete(ctx, id)
}

// TermService manages terms
type TermService struct {
	terms    TermStore
	settings Settings
	now      func() time.Time
}

// NewTermService creates a new TermService
func NewTermService(terms TermStore, settings Settings) *TermService {
	return &TermService{terms: terms, settings: settings, now: time.Now}
}

// List returns every term
func (s *TermService) List(ctx context.Context) ([]*models.Term, error) {
	return s.terms.List(ctx, nil)
}

// ListOpen returns terms open for enrollment that have not ended
func (s *TermService) ListOpen(ctx context.Context) ([]*models.Term, error) {
	today := s.settings.Today(s.now())
	return s.terms.List(ctx, &today)
}

// Get returns one term
func (s *TermService) Get(ctx context.Context, id int64) (*models.Term, error) {
	return s.terms.GetByID(ctx, id)
}

func applyTerm(t *models.Term, req *dto.TermRequest) error {
	start, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}
	end, err := helpers.ParseDate(req.EndDate)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidationFailed, err.Error())
	}
	if end.Before(start) {
		return fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidationFailed)
	}
	t.Name = strings.TrimSpace(req.Name)
	t.StartDate = start
	t.EndDate = end
	t.EnrollmentOpen = req.EnrollmentOpen
	return nil
}

// Create adds a term
func (s *TermService) Create(ctx context.Context, req *dto.TermRequest) (*models.Term, error) {
	t := &models.Term{}
	if err := applyTerm(t, req); err != nil {
		return nil, err
	}
	id, err := s.terms.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	return s.terms.GetByID(ctx, id)
}

// Update replaces a term
func (s *TermService) Update(ctx context.Context, id int64, req *dto.TermRequest) (*models.Term, error) {
	t, err := s.terms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTerm(t, req); err != nil {
		return nil, err
	}
	if err := s.terms.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.terms.GetByID(ctx, id)
}

// Delete removes a term no class uses
func (s *TermService) Delete(ctx context.Context, id int64) error {
	return s.terms.Delete(ctx, id)
}
