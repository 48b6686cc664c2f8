package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/db"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/email"
	"github.com/sharecrm/share/internal/pkg/filestorage"
	"github.com/sharecrm/share/internal/pkg/helpers"
	"github.com/sharecrm/share/internal/pkg/payments"
)

// memDB is an in-memory stand-in for the Postgres repositories. Guarded
// updates fail the same way the SQL versions do.
type memDB struct {
	seq int64

	users         map[int64]*models.User
	tokens        map[string]*models.RefreshToken
	roles         map[int64]*models.Role
	customers     map[int64]*models.Customer
	ledger        []*models.CreditTransaction
	forms         map[int64]*models.PAQForm
	files         map[int64]*models.File
	venues        map[int64]*models.Venue
	instructors   map[int64]*models.Instructor
	terms         map[int64]*models.Term
	classes       map[int64]*models.Class
	sessions      map[int64]*models.Session
	enrollments   map[int64]*models.Enrollment
	bookings      map[int64]*models.Booking
	payments      map[int64]*models.Payment
	cancellations map[int64]*models.Cancellation
	attendance    map[int64]*models.Attendance
	enquiries     map[int64]*models.Enquiry

	transactions int
	locked       []int64
}

func newMemDB() *memDB {
	return &memDB{
		users:         map[int64]*models.User{},
		tokens:        map[string]*models.RefreshToken{},
		roles:         map[int64]*models.Role{},
		customers:     map[int64]*models.Customer{},
		forms:         map[int64]*models.PAQForm{},
		files:         map[int64]*models.File{},
		venues:        map[int64]*models.Venue{},
		instructors:   map[int64]*models.Instructor{},
		terms:         map[int64]*models.Term{},
		classes:       map[int64]*models.Class{},
		sessions:      map[int64]*models.Session{},
		enrollments:   map[int64]*models.Enrollment{},
		bookings:      map[int64]*models.Booking{},
		payments:      map[int64]*models.Payment{},
		cancellations: map[int64]*models.Cancellation{},
		attendance:    map[int64]*models.Attendance{},
		enquiries:     map[int64]*models.Enquiry{},
	}
}

func (m *memDB) id() int64 {
	m.seq++
	return m.seq
}

// WithTransaction runs fn directly; nothing is rolled back
func (m *memDB) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	m.transactions++
	return fn(ctx)
}

func sortedKeys[V any](in map[int64]V) []int64 {
	keys := make([]int64, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// users

type memUsers struct{ *memDB }

func (m memUsers) Create(_ context.Context, u *models.User) (int64, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	cp := *u
	cp.ID = m.id()
	m.users[cp.ID] = &cp
	return cp.ID, nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m memUsers) UpdateLastLogin(_ context.Context, userID int64, at time.Time) error {
	if u, ok := m.users[userID]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (m memUsers) UpdateRole(_ context.Context, userID, roleID int64) error {
	u, ok := m.users[userID]
	if !ok || u.RoleType != models.RoleStaff {
		return apperrors.ErrUserNotFound
	}
	u.RoleID = &roleID
	return nil
}

func (m memUsers) UpdateProfile(_ context.Context, userID int64, firstName, lastName, email string) error {
	u, ok := m.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.FirstName, u.LastName, u.Email = firstName, lastName, email
	return nil
}

func (m memUsers) CountByRole(_ context.Context, roleID int64) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.RoleID != nil && *u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (m memUsers) ListStaff(_ context.Context, _ dto.ListFilter) ([]*models.User, int64, error) {
	var out []*models.User
	for _, id := range sortedKeys(m.users) {
		if u := m.users[id]; u.RoleType != models.RoleCustomer {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

// refresh tokens

type memTokens struct{ *memDB }

func (m memTokens) CreateToken(_ context.Context, token string, userID int64, expiresAt time.Time) error {
	m.tokens[token] = &models.RefreshToken{ID: m.id(), UserID: userID, Token: token, ExpiresAt: expiresAt}
	return nil
}

func (m memTokens) GetActiveToken(_ context.Context, token string, now time.Time) (*models.RefreshToken, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	if t.IsRevoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if !t.ExpiresAt.After(now) {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

func (m memTokens) RevokeToken(_ context.Context, token string) error {
	t, ok := m.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.IsRevoked = true
	return nil
}

func (m memTokens) RevokeAllUserTokens(_ context.Context, userID int64) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.IsRevoked = true
		}
	}
	return nil
}

// roles

type memRoles struct{ *memDB }

func (m memRoles) List(_ context.Context) ([]*models.Role, error) {
	var out []*models.Role
	for _, id := range sortedKeys(m.roles) {
		out = append(out, m.roles[id])
	}
	return out, nil
}

func (m memRoles) GetByID(_ context.Context, id int64) (*models.Role, error) {
	r, ok := m.roles[id]
	if !ok {
		return nil, apperrors.ErrRoleNotFound
	}
	cp := *r
	return &cp, nil
}

func (m memRoles) GetByName(_ context.Context, name string) (*models.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperrors.ErrRoleNotFound
}

func (m memRoles) GetPermissions(_ context.Context, roleID int64) ([]string, error) {
	if r, ok := m.roles[roleID]; ok {
		return r.Permissions, nil
	}
	return nil, nil
}

func (m memRoles) Create(_ context.Context, role *models.Role) (int64, error) {
	for _, r := range m.roles {
		if r.Name == role.Name {
			return 0, apperrors.NewConflictError("role name already exists")
		}
	}
	cp := *role
	cp.ID = m.id()
	m.roles[cp.ID] = &cp
	return cp.ID, nil
}

func (m memRoles) Update(_ context.Context, role *models.Role) error {
	r, ok := m.roles[role.ID]
	if !ok {
		return apperrors.ErrRoleNotFound
	}
	r.Name, r.Description = role.Name, role.Description
	return nil
}

func (m memRoles) SetPermissions(_ context.Context, roleID int64, permissions []string) error {
	r, ok := m.roles[roleID]
	if !ok {
		return apperrors.ErrRoleNotFound
	}
	r.Permissions = append([]string(nil), permissions...)
	return nil
}

func (m memRoles) Delete(_ context.Context, id int64) error {
	if _, ok := m.roles[id]; !ok {
		return apperrors.ErrRoleNotFound
	}
	delete(m.roles, id)
	return nil
}

// customers and credit

type memCustomers struct{ *memDB }

func (m memCustomers) Create(_ context.Context, c *models.Customer) (int64, error) {
	cp := *c
	cp.ID = m.id()
	if cp.PAQStatus == "" {
		cp.PAQStatus = models.PAQStatusNone
	}
	m.customers[cp.ID] = &cp
	return cp.ID, nil
}

func (m memCustomers) GetByID(_ context.Context, id int64) (*models.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, apperrors.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (m memCustomers) GetByUserID(_ context.Context, userID int64) (*models.Customer, error) {
	for _, c := range m.customers {
		if c.UserID != nil && *c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCustomerNotFound
}

func (m memCustomers) Update(_ context.Context, c *models.Customer) error {
	existing, ok := m.customers[c.ID]
	if !ok {
		return apperrors.ErrCustomerNotFound
	}
	cp := *c
	cp.CreditCents = existing.CreditCents
	cp.PAQStatus, cp.PAQExpiresAt = existing.PAQStatus, existing.PAQExpiresAt
	m.customers[c.ID] = &cp
	return nil
}

func (m memCustomers) Delete(_ context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return apperrors.ErrCustomerNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m memCustomers) List(ctx context.Context, _ dto.CustomerFilter) ([]*models.Customer, int64, error) {
	all, _ := m.All(ctx)
	return all, int64(len(all)), nil
}

func (m memCustomers) All(_ context.Context) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, id := range sortedKeys(m.customers) {
		cp := *m.customers[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m memCustomers) SetBlocked(_ context.Context, id int64, blocked bool, reason *string) error {
	c, ok := m.customers[id]
	if !ok {
		return apperrors.ErrCustomerNotFound
	}
	c.IsBlocked, c.BlockedReason = blocked, reason
	return nil
}

func (m memCustomers) UpdatePAQStatus(_ context.Context, id int64, status models.PAQStatus, expiresAt *time.Time) error {
	c, ok := m.customers[id]
	if !ok {
		return apperrors.ErrCustomerNotFound
	}
	c.PAQStatus, c.PAQExpiresAt = status, expiresAt
	return nil
}

type memCredit struct{ *memDB }

func (m memCredit) Apply(_ context.Context, change models.CreditChange) (*models.CreditTransaction, error) {
	c, ok := m.customers[change.CustomerID]
	if !ok {
		return nil, apperrors.ErrCustomerNotFound
	}
	if c.CreditCents+change.AmountCents < 0 {
		return nil, apperrors.ErrInsufficientCredit
	}
	c.CreditCents += change.AmountCents
	tx := &models.CreditTransaction{
		ID:                m.id(),
		CustomerID:        change.CustomerID,
		AmountCents:       change.AmountCents,
		BalanceAfterCents: c.CreditCents,
		Reason:            change.Reason,
		Note:              change.Note,
		ReferenceID:       change.ReferenceID,
		CreatedBy:         change.CreatedBy,
	}
	m.ledger = append(m.ledger, tx)
	return tx, nil
}

func (m memCredit) Balance(_ context.Context, customerID int64) (int64, error) {
	c, ok := m.customers[customerID]
	if !ok {
		return 0, apperrors.ErrCustomerNotFound
	}
	return c.CreditCents, nil
}

func (m memCredit) ListByCustomer(_ context.Context, customerID int64, limit uint64) ([]*models.CreditTransaction, error) {
	var out []*models.CreditTransaction
	for i := len(m.ledger) - 1; i >= 0 && uint64(len(out)) < limit; i-- {
		if m.ledger[i].CustomerID == customerID {
			out = append(out, m.ledger[i])
		}
	}
	return out, nil
}

func (m *memDB) ledgerFor(customerID int64, reason models.CreditReason) []*models.CreditTransaction {
	var out []*models.CreditTransaction
	for _, tx := range m.ledger {
		if tx.CustomerID == customerID && tx.Reason == reason {
			out = append(out, tx)
		}
	}
	return out
}

// questionnaires and files

type memForms struct{ *memDB }

func (m memForms) Create(_ context.Context, f *models.PAQForm) (int64, error) {
	cp := *f
	cp.ID = m.id()
	m.forms[cp.ID] = &cp
	return cp.ID, nil
}

func (m memForms) GetByID(_ context.Context, id int64) (*models.PAQForm, error) {
	f, ok := m.forms[id]
	if !ok {
		return nil, apperrors.ErrPAQNotFound
	}
	cp := *f
	return &cp, nil
}

func (m memForms) GetLatestByCustomer(ctx context.Context, customerID int64) (*models.PAQForm, error) {
	ids := sortedKeys(m.forms)
	for i := len(ids) - 1; i >= 0; i-- {
		if m.forms[ids[i]].CustomerID == customerID {
			return m.GetByID(ctx, ids[i])
		}
	}
	return nil, apperrors.ErrPAQNotFound
}

func (m memForms) List(_ context.Context, filter dto.ListFilter) ([]*models.PAQForm, int64, error) {
	var out []*models.PAQForm
	for _, id := range sortedKeys(m.forms) {
		if f := m.forms[id]; filter.Status == "" || string(f.Status) == filter.Status {
			out = append(out, f)
		}
	}
	return out, int64(len(out)), nil
}

func (m memForms) AttachCertificate(_ context.Context, id, fileID int64) error {
	f, ok := m.forms[id]
	if !ok {
		return apperrors.ErrPAQNotFound
	}
	f.CertificateFileID = &fileID
	return nil
}

func (m memForms) Review(_ context.Context, id int64, status models.ReviewStatus, notes string, reviewer int64, reviewedAt time.Time, expiresAt *time.Time) error {
	f, ok := m.forms[id]
	if !ok {
		return apperrors.ErrPAQNotFound
	}
	if f.Status != models.ReviewPending {
		return apperrors.ErrAlreadyReviewed
	}
	f.Status, f.ReviewNotes, f.ReviewedBy, f.ReviewedAt, f.ExpiresAt = status, notes, &reviewer, &reviewedAt, expiresAt
	return nil
}

type memFiles struct{ *memDB }

func (m memFiles) Create(_ context.Context, f *models.File) (int64, error) {
	cp := *f
	cp.ID = m.id()
	m.files[cp.ID] = &cp
	return cp.ID, nil
}

func (m memFiles) GetByID(_ context.Context, id int64) (*models.File, error) {
	f, ok := m.files[id]
	if !ok {
		return nil, apperrors.ErrFileNotFound
	}
	return f, nil
}

func (m memFiles) Delete(_ context.Context, id int64) error {
	delete(m.files, id)
	return nil
}

// catalogue

type memVenues struct{ *memDB }

func (m memVenues) Create(_ context.Context, v *models.Venue) (int64, error) {
	cp := *v
	cp.ID = m.id()
	m.venues[cp.ID] = &cp
	return cp.ID, nil
}

func (m memVenues) GetByID(_ context.Context, id int64) (*models.Venue, error) {
	v, ok := m.venues[id]
	if !ok {
		return nil, apperrors.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (m memVenues) List(_ context.Context, activeOnly bool) ([]*models.Venue, error) {
	var out []*models.Venue
	for _, id := range sortedKeys(m.venues) {
		if v := m.venues[id]; !activeOnly || v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m memVenues) Update(_ context.Context, v *models.Venue) error {
	if _, ok := m.venues[v.ID]; !ok {
		return apperrors.ErrVenueNotFound
	}
	cp := *v
	m.venues[v.ID] = &cp
	return nil
}

func (m memVenues) Delete(_ context.Context, id int64) error {
	delete(m.venues, id)
	return nil
}

type memInstructors struct{ *memDB }

func (m memInstructors) Create(_ context.Context, i *models.Instructor) (int64, error) {
	cp := *i
	cp.ID = m.id()
	m.instructors[cp.ID] = &cp
	return cp.ID, nil
}

func (m memInstructors) GetByID(_ context.Context, id int64) (*models.Instructor, error) {
	i, ok := m.instructors[id]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	cp := *i
	return &cp, nil
}

func (m memInstructors) GetByUserID(_ context.Context, userID int64) (*models.Instructor, error) {
	for _, i := range m.instructors {
		if i.UserID != nil && *i.UserID == userID {
			cp := *i
			return &cp, nil
		}
	}
	return nil, apperrors.ErrInstructorNotFound
}

func (m memInstructors) List(_ context.Context, activeOnly bool) ([]*models.Instructor, error) {
	var out []*models.Instructor
	for _, id := range sortedKeys(m.instructors) {
		if i := m.instructors[id]; !activeOnly || i.IsActive {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m memInstructors) Update(_ context.Context, i *models.Instructor) error {
	if _, ok := m.instructors[i.ID]; !ok {
		return apperrors.ErrInstructorNotFound
	}
	cp := *i
	m.instructors[i.ID] = &cp
	return nil
}

func (m memInstructors) LinkUser(_ context.Context, instructorID, userID int64) error {
	i, ok := m.instructors[instructorID]
	if !ok {
		return apperrors.ErrInstructorNotFound
	}
	i.UserID = &userID
	return nil
}

func (m memInstructors) Delete(_ context.Context, id int64) error {
	delete(m.instructors, id)
	return nil
}

type memTerms struct{ *memDB }

func (m memTerms) Create(_ context.Context, t *models.Term) (int64, error) {
	cp := *t
	cp.ID = m.id()
	m.terms[cp.ID] = &cp
	return cp.ID, nil
}

func (m memTerms) GetByID(_ context.Context, id int64) (*models.Term, error) {
	t, ok := m.terms[id]
	if !ok {
		return nil, apperrors.ErrTermNotFound
	}
	cp := *t
	return &cp, nil
}

func (m memTerms) List(_ context.Context, openOn *time.Time) ([]*models.Term, error) {
	var out []*models.Term
	for _, id := range sortedKeys(m.terms) {
		t := m.terms[id]
		if openOn != nil && (!t.EnrollmentOpen || t.EndDate.Before(*openOn)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m memTerms) Update(_ context.Context, t *models.Term) error {
	if _, ok := m.terms[t.ID]; !ok {
		return apperrors.ErrTermNotFound
	}
	cp := *t
	m.terms[t.ID] = &cp
	return nil
}

func (m memTerms) Delete(_ context.Context, id int64) error {
	delete(m.terms, id)
	return nil
}

type memClasses struct{ *memDB }

func (m memClasses) Create(_ context.Context, c *models.Class) (int64, error) {
	cp := *c
	cp.ID = m.id()
	m.classes[cp.ID] = &cp
	return cp.ID, nil
}

func (m memClasses) GetByID(_ context.Context, id int64, _ time.Time) (*models.Class, error) {
	c, ok := m.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	cp := *c
	return &cp, nil
}

func (m memClasses) List(_ context.Context, filter dto.ClassFilter) ([]*models.Class, error) {
	var out []*models.Class
	for _, id := range sortedKeys(m.classes) {
		c := m.classes[id]
		if filter.InstructorID != 0 && (c.InstructorID == nil || *c.InstructorID != filter.InstructorID) {
			continue
		}
		if filter.TermID != 0 && c.TermID != filter.TermID {
			continue
		}
		if filter.ActiveOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m memClasses) LockForUpdate(ctx context.Context, ids []int64) ([]*models.Class, error) {
	var out []*models.Class
	for _, id := range ids {
		if c, err := m.GetByID(ctx, id, time.Time{}); err == nil {
			m.locked = append(m.locked, id)
			out = append(out, c)
		}
	}
	return out, nil
}

func (m memClasses) Update(_ context.Context, c *models.Class) error {
	if _, ok := m.classes[c.ID]; !ok {
		return apperrors.ErrClassNotFound
	}
	cp := *c
	m.classes[c.ID] = &cp
	return nil
}

func (m memClasses) Delete(_ context.Context, id int64) error {
	for _, b := range m.bookings {
		if b.ClassID == id {
			return apperrors.ErrResourceInUse
		}
	}
	delete(m.classes, id)
	return nil
}

// sessions

type memSessions struct{ *memDB }

func (m memSessions) CreateBatch(_ context.Context, classID int64, dates []time.Time) ([]*models.Session, error) {
	existing := map[string]bool{}
	for _, s := range m.sessions {
		if s.ClassID == classID {
			existing[s.SessionDate.Format(helpers.DateLayout)] = true
		}
	}
	var created []*models.Session
	for _, d := range dates {
		if existing[d.Format(helpers.DateLayout)] {
			continue
		}
		s := &models.Session{ID: m.id(), ClassID: classID, SessionDate: d, Status: models.SessionScheduled}
		m.sessions[s.ID] = s
		created = append(created, s)
	}
	return created, nil
}

func (m memSessions) GetByID(_ context.Context, id int64) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	cp := *s
	if c, ok := m.classes[s.ClassID]; ok {
		cp.ClassName, cp.StartTime, cp.EndTime = c.Name, c.StartTime, c.EndTime
	}
	return &cp, nil
}

func (m memSessions) List(ctx context.Context, filter dto.SessionFilter) ([]*models.Session, error) {
	var out []*models.Session
	for _, id := range sortedKeys(m.sessions) {
		s, _ := m.GetByID(ctx, id)
		c := m.classes[s.ClassID]
		if filter.ClassID != 0 && s.ClassID != filter.ClassID {
			continue
		}
		if filter.InstructorID != 0 && (c == nil || c.InstructorID == nil || *c.InstructorID != filter.InstructorID) {
			continue
		}
		if filter.From != nil && s.SessionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.SessionDate.After(*filter.To) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m memSessions) UpcomingByClass(_ context.Context, classIDs []int64, today time.Time) (map[int64][]*models.Session, error) {
	want := map[int64]bool{}
	for _, id := range classIDs {
		want[id] = true
	}
	out := map[int64][]*models.Session{}
	for _, id := range sortedKeys(m.sessions) {
		s := m.sessions[id]
		if want[s.ClassID] && s.Status == models.SessionScheduled && !s.SessionDate.Before(today) {
			out[s.ClassID] = append(out[s.ClassID], s)
		}
	}
	return out, nil
}

func (m memSessions) UpdateStatus(_ context.Context, id int64, from, to models.SessionStatus, notes *string) error {
	s, ok := m.sessions[id]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if s.Status != from {
		return apperrors.ErrInvalidStatus
	}
	s.Status = to
	if notes != nil {
		s.Notes = *notes
	}
	return nil
}

// enrollments, bookings and payments

type memEnrollments struct{ *memDB }

func (m memEnrollments) Create(_ context.Context, e *models.Enrollment) (int64, error) {
	cp := *e
	cp.ID = m.id()
	cp.Bookings, cp.Payments = nil, nil
	cp.CreatedAt = testNow
	m.enrollments[cp.ID] = &cp
	return cp.ID, nil
}

func (m memEnrollments) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := m.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	cp := *e
	return &cp, nil
}

func (m memEnrollments) List(_ context.Context, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	var out []*models.Enrollment
	for _, id := range sortedKeys(m.enrollments) {
		e := m.enrollments[id]
		if filter.CustomerID != 0 && e.CustomerID != filter.CustomerID {
			continue
		}
		if filter.TermID != 0 && e.TermID != filter.TermID {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m memEnrollments) UpdateStatus(_ context.Context, id int64, from, to models.EnrollmentStatus) error {
	e, ok := m.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	if e.Status != from {
		return apperrors.ErrInvalidStatus
	}
	e.Status = to
	return nil
}

type memBookings struct{ *memDB }

func (m memBookings) CreateBatch(_ context.Context, bookings []*models.Booking) error {
	for _, b := range bookings {
		b.ID = m.id()
		b.Status = models.BookingBooked
		cp := *b
		m.bookings[cp.ID] = &cp
	}
	return nil
}

func (m memBookings) ActiveSessionIDs(_ context.Context, customerID int64, sessionIDs []int64) ([]int64, error) {
	want := map[int64]bool{}
	for _, id := range sessionIDs {
		want[id] = true
	}
	var out []int64
	for _, id := range sortedKeys(m.bookings) {
		b := m.bookings[id]
		if b.CustomerID == customerID && b.Status == models.BookingBooked && want[b.SessionID] {
			out = append(out, b.SessionID)
		}
	}
	return out, nil
}

func (m memBookings) BookedCounts(_ context.Context, sessionIDs []int64) (map[int64]int, error) {
	want := map[int64]bool{}
	for _, id := range sessionIDs {
		want[id] = true
	}
	out := map[int64]int{}
	for _, b := range m.bookings {
		if b.Status == models.BookingBooked && want[b.SessionID] {
			out[b.SessionID]++
		}
	}
	return out, nil
}

func (m memBookings) GetByID(_ context.Context, id int64) (*models.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.ErrBookingNotFound
	}
	cp := *b
	if c, ok := m.classes[b.ClassID]; ok {
		cp.ClassName, cp.StartTime = c.Name, c.StartTime
	}
	if e, ok := m.enrollments[b.EnrollmentID]; ok {
		cp.EnrollmentStatus = e.Status
	}
	if s, ok := m.sessions[b.SessionID]; ok {
		cp.SessionDate = s.SessionDate
	}
	return &cp, nil
}

func (m memBookings) ListByEnrollment(ctx context.Context, enrollmentID int64) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, id := range sortedKeys(m.bookings) {
		if m.bookings[id].EnrollmentID == enrollmentID {
			b, _ := m.GetByID(ctx, id)
			out = append(out, b)
		}
	}
	return out, nil
}

func (m memBookings) Cancel(_ context.Context, id int64) error {
	b, ok := m.bookings[id]
	if !ok {
		return apperrors.ErrBookingNotFound
	}
	if b.Status != models.BookingBooked {
		return apperrors.ErrInvalidStatus
	}
	b.Status = models.BookingCancelled
	return nil
}

func (m memBookings) cancelWhere(match func(*models.Booking) bool) []*models.Booking {
	var out []*models.Booking
	for _, id := range sortedKeys(m.bookings) {
		b := m.bookings[id]
		if b.Status == models.BookingBooked && match(b) {
			b.Status = models.BookingCancelled
			cp := *b
			if e, ok := m.enrollments[b.EnrollmentID]; ok {
				cp.EnrollmentStatus = e.Status
			}
			out = append(out, &cp)
		}
	}
	return out
}

func (m memBookings) CancelByEnrollment(_ context.Context, enrollmentID int64) ([]*models.Booking, error) {
	return m.cancelWhere(func(b *models.Booking) bool { return b.EnrollmentID == enrollmentID }), nil
}

func (m memBookings) CancelBySession(_ context.Context, sessionID int64) ([]*models.Booking, error) {
	return m.cancelWhere(func(b *models.Booking) bool { return b.SessionID == sessionID }), nil
}

func (m memBookings) RecordRefund(_ context.Context, id, cents int64, issued bool) error {
	b, ok := m.bookings[id]
	if !ok || b.Status != models.BookingCancelled {
		return apperrors.ErrInvalidStatus
	}
	b.RefundCents = cents
	if issued {
		at := testNow
		b.RefundedAt = &at
	}
	return nil
}

func (m memBookings) SettleRefunds(_ context.Context, enrollmentID int64) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, id := range sortedKeys(m.bookings) {
		b := m.bookings[id]
		if b.EnrollmentID == enrollmentID && b.RefundCents > 0 && b.RefundedAt == nil {
			at := testNow
			b.RefundedAt = &at
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memBookings) RefundedCents(_ context.Context, enrollmentID int64) (int64, error) {
	var sum int64
	for _, b := range m.bookings {
		if b.EnrollmentID == enrollmentID && b.RefundedAt != nil {
			sum += b.RefundCents
		}
	}
	return sum, nil
}

func (m memBookings) Roster(_ context.Context, sessionID int64) ([]*models.RosterEntry, error) {
	var out []*models.RosterEntry
	for _, id := range sortedKeys(m.bookings) {
		b := m.bookings[id]
		if b.SessionID != sessionID || b.Status != models.BookingBooked {
			continue
		}
		entry := &models.RosterEntry{BookingID: b.ID, CustomerID: b.CustomerID}
		if c, ok := m.customers[b.CustomerID]; ok {
			entry.CustomerName = c.FullName()
			entry.Phone = c.Phone
		}
		if a, ok := m.attendance[b.ID]; ok {
			status := a.Status
			entry.Attendance = &status
		}
		out = append(out, entry)
	}
	return out, nil
}

type memPayments struct{ *memDB }

func (m memPayments) Create(_ context.Context, p *models.Payment) (int64, error) {
	cp := *p
	cp.ID = m.id()
	cp.ClientSecret = ""
	cp.CreatedAt = testNow
	m.payments[cp.ID] = &cp
	return cp.ID, nil
}

func (m memPayments) GetByID(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (m memPayments) ListByEnrollment(_ context.Context, enrollmentID int64) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, id := range sortedKeys(m.payments) {
		if p := m.payments[id]; p.EnrollmentID == enrollmentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memPayments) List(_ context.Context, _ dto.PaymentFilter) ([]*models.Payment, int64, error) {
	var out []*models.Payment
	for _, id := range sortedKeys(m.payments) {
		out = append(out, m.payments[id])
	}
	return out, int64(len(out)), nil
}

func (m memPayments) UpdateStatus(_ context.Context, id int64, from, to models.PaymentStatus, method *models.PaymentMethod) error {
	p, ok := m.payments[id]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	if p.Status != from {
		return apperrors.ErrInvalidStatus
	}
	p.Status = to
	if method != nil {
		p.Method = *method
	}
	return nil
}

func (m memPayments) SumSucceeded(_ context.Context, enrollmentID int64) (int64, error) {
	var sum int64
	for _, p := range m.payments {
		if p.EnrollmentID == enrollmentID && p.Status == models.PaymentSucceeded && p.Method != models.PaymentCredit {
			sum += p.AmountCents
		}
	}
	return sum, nil
}

// cancellations, attendance and enquiries

type memCancellations struct{ *memDB }

func (m memCancellations) Create(_ context.Context, x *models.Cancellation) (int64, error) {
	for _, existing := range m.cancellations {
		if existing.BookingID == x.BookingID && existing.Status == models.ReviewPending {
			return 0, apperrors.ErrCancellationPending
		}
	}
	cp := *x
	cp.ID = m.id()
	m.cancellations[cp.ID] = &cp
	return cp.ID, nil
}

func (m memCancellations) GetByID(_ context.Context, id int64) (*models.Cancellation, error) {
	x, ok := m.cancellations[id]
	if !ok {
		return nil, apperrors.ErrCancellationNotFound
	}
	cp := *x
	if b, ok := m.bookings[x.BookingID]; ok {
		if c, ok := m.classes[b.ClassID]; ok {
			cp.ClassName = c.Name
		}
		if s, ok := m.sessions[b.SessionID]; ok {
			cp.SessionDate = s.SessionDate
		}
	}
	if c, ok := m.customers[x.CustomerID]; ok {
		cp.CustomerName = c.FullName()
	}
	return &cp, nil
}

func (m memCancellations) List(ctx context.Context, filter dto.ListFilter, customerID int64) ([]*models.Cancellation, int64, error) {
	var out []*models.Cancellation
	for _, id := range sortedKeys(m.cancellations) {
		x, _ := m.GetByID(ctx, id)
		if customerID != 0 && x.CustomerID != customerID {
			continue
		}
		if filter.Status != "" && string(x.Status) != filter.Status {
			continue
		}
		out = append(out, x)
	}
	return out, int64(len(out)), nil
}

func (m memCancellations) Review(_ context.Context, id int64, status models.ReviewStatus, refundCents int64, notes string, reviewer int64, at time.Time) error {
	x, ok := m.cancellations[id]
	if !ok {
		return apperrors.ErrCancellationNotFound
	}
	if x.Status != models.ReviewPending {
		return apperrors.ErrAlreadyReviewed
	}
	x.Status, x.RefundCreditCents, x.ReviewNotes, x.ReviewedBy, x.ReviewedAt = status, refundCents, notes, &reviewer, &at
	return nil
}

func (m memCancellations) SetRefund(_ context.Context, id, refundCents int64) error {
	x, ok := m.cancellations[id]
	if !ok {
		return apperrors.ErrCancellationNotFound
	}
	x.RefundCreditCents = refundCents
	return nil
}

type memAttendance struct{ *memDB }

func (m memAttendance) Upsert(_ context.Context, records []*models.Attendance) error {
	for _, r := range records {
		cp := *r
		if existing, ok := m.attendance[r.BookingID]; ok {
			cp.ID = existing.ID
		} else {
			cp.ID = m.id()
		}
		m.attendance[r.BookingID] = &cp
	}
	return nil
}

func (m memAttendance) ListBySession(_ context.Context, sessionID int64) ([]*models.Attendance, error) {
	var out []*models.Attendance
	for _, id := range sortedKeys(m.attendance) {
		if a := m.attendance[id]; a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type memEnquiries struct{ *memDB }

func (m memEnquiries) Create(_ context.Context, e *models.Enquiry) (int64, error) {
	e.ID = m.id()
	e.Status = models.EnquiryOpen
	cp := *e
	m.enquiries[cp.ID] = &cp
	return cp.ID, nil
}

func (m memEnquiries) List(_ context.Context, filter dto.ListFilter) ([]*models.Enquiry, int64, error) {
	var out []*models.Enquiry
	for _, id := range sortedKeys(m.enquiries) {
		if e := m.enquiries[id]; filter.Status == "" || string(e.Status) == filter.Status {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (m memEnquiries) Resolve(_ context.Context, id, userID int64, at time.Time) error {
	e, ok := m.enquiries[id]
	if !ok || e.Status != models.EnquiryOpen {
		return apperrors.ErrEnquiryNotFound
	}
	e.Status, e.ResolvedBy, e.ResolvedAt = models.EnquiryResolved, &userID, &at
	return nil
}

type memReports struct{ *memDB }

// EnrollmentRows groups each enrollment's bookings by class
func (m memReports) EnrollmentRows(_ context.Context, termID int64) ([]*models.EnrollmentReportRow, error) {
	var out []*models.EnrollmentReportRow
	for _, id := range sortedKeys(m.enrollments) {
		e := m.enrollments[id]
		if e.TermID != termID {
			continue
		}
		c := m.customers[e.CustomerID]
		byClass := map[int64]*models.EnrollmentReportRow{}
		var classes []int64
		for _, bid := range sortedKeys(m.bookings) {
			b := m.bookings[bid]
			if b.EnrollmentID != e.ID {
				continue
			}
			row, ok := byClass[b.ClassID]
			if !ok {
				row = &models.EnrollmentReportRow{
					EnrollmentID:  e.ID,
					CustomerName:  c.FullName(),
					CustomerEmail: c.Email,
					ClassName:     m.classes[b.ClassID].Name,
					Status:        e.Status,
					TotalCents:    e.TotalCents,
					CreditCents:   e.CreditAppliedCents,
					CreatedAt:     e.CreatedAt,
				}
				byClass[b.ClassID] = row
				classes = append(classes, b.ClassID)
			}
			row.Sessions++
		}
		sort.Slice(classes, func(i, j int) bool { return byClass[classes[i]].ClassName < byClass[classes[j]].ClassName })
		for _, classID := range classes {
			out = append(out, byClass[classID])
		}
	}
	return out, nil
}

func (m memReports) AttendanceRows(_ context.Context, _ int64) ([]*models.AttendanceReportRow, error) {
	return nil, nil
}

func (m memReports) PaymentRows(_ context.Context, from, to *time.Time) ([]*models.PaymentReportRow, error) {
	var out []*models.PaymentReportRow
	for _, id := range sortedKeys(m.payments) {
		p := m.payments[id]
		if from != nil && p.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && !p.CreatedAt.Before(to.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, &models.PaymentReportRow{
			PaymentID:         p.ID,
			EnrollmentID:      p.EnrollmentID,
			CustomerName:      m.customers[p.CustomerID].FullName(),
			Method:            p.Method,
			Status:            p.Status,
			AmountCents:       p.AmountCents,
			ProviderReference: p.ProviderReference,
			CreatedAt:         p.CreatedAt,
		})
	}
	return out, nil
}

// collaborators

type fakePerms struct {
	users       memUsers
	roles       memRoles
	instructors memInstructors
	invalidated []int64
}

func (f *fakePerms) RolePermissions(ctx context.Context, roleID int64) ([]string, error) {
	return f.roles.GetPermissions(ctx, roleID)
}

func (f *fakePerms) HasPermission(ctx context.Context, userID int64, code string) (bool, error) {
	u, err := f.users.GetByID(ctx, userID)
	if err != nil || !u.IsActive || u.RoleType != models.RoleStaff || u.RoleID == nil {
		return false, nil
	}
	perms, _ := f.roles.GetPermissions(ctx, *u.RoleID)
	for _, p := range perms {
		if p == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePerms) InvalidateRole(_ context.Context, roleID int64) {
	f.invalidated = append(f.invalidated, roleID)
}

func (f *fakePerms) ValidateInstructor(ctx context.Context, roleType models.RoleType, userID int64) (*models.Instructor, error) {
	if roleType != models.RoleInstructor {
		return nil, apperrors.NewForbiddenError("instructor access required")
	}
	return f.instructors.GetByUserID(ctx, userID)
}

type broadcast struct {
	sessionID   int64
	messageType string
	payload     interface{}
}

type fakeHub struct{ sent []broadcast }

func (h *fakeHub) BroadcastToSession(sessionID int64, messageType string, payload interface{}) {
	h.sent = append(h.sent, broadcast{sessionID, messageType, payload})
}

type fakePublisher struct{ subjects []string }

func (p *fakePublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeMailer struct {
	confirmations []email.EnrollmentSummary
	decisions     []email.CancellationDecision
	outcomes      []email.PAQOutcome
}

func (f *fakeMailer) SendEnrollmentConfirmation(_, _ string, summary email.EnrollmentSummary) error {
	f.confirmations = append(f.confirmations, summary)
	return nil
}

func (f *fakeMailer) SendCancellationDecision(_, _ string, decision email.CancellationDecision) error {
	f.decisions = append(f.decisions, decision)
	return nil
}

func (f *fakeMailer) SendPAQOutcome(_, _ string, outcome email.PAQOutcome) error {
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

type memStorage struct{ objects map[string][]byte }

func newMemStorage() *memStorage { return &memStorage{objects: map[string][]byte{}} }

func (s *memStorage) Save(_ context.Context, dir, filename string, r io.Reader, _ int64, contentType string) (*filestorage.StoredObject, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/%d-%s", dir, len(s.objects)+1, filename)
	s.objects[key] = body
	return &filestorage.StoredObject{Key: key, Size: int64(len(body)), ContentType: contentType}, nil
}

func (s *memStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

func (s *memStorage) URL(_ context.Context, key string) (string, error) {
	return "https://files.test/" + key, nil
}

func pdfBody() io.Reader {
	return bytes.NewReader([]byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"))
}

// fixture wires every service to one memDB

var testNow = time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db        *memDB
	publisher *fakePublisher
	mailer    *fakeMailer
	storage   *memStorage
	hub       *fakeHub
	perms     *fakePerms
	settings  Settings
	logger    zerolog.Logger
}

func newFixture() *fixture {
	m := newMemDB()
	return &fixture{
		db:        m,
		publisher: &fakePublisher{},
		mailer:    &fakeMailer{},
		storage:   newMemStorage(),
		hub:       &fakeHub{},
		perms:     &fakePerms{users: memUsers{m}, roles: memRoles{m}, instructors: memInstructors{m}},
		settings:  DefaultSettings(),
		logger:    zerolog.Nop(),
	}
}

func (f *fixture) published(subject string) bool {
	for _, s := range f.publisher.subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// addCustomer creates a login and an approved customer with credit
func (f *fixture) addCustomer(name string, creditCents int64) (*models.User, *models.Customer) {
	u := &models.User{ID: f.db.id(), Email: strings.ToLower(name) + "@example.org", FirstName: name, LastName: "Citizen", RoleType: models.RoleCustomer, IsActive: true}
	f.db.users[u.ID] = u
	expires := testNow.AddDate(1, 0, 0)
	c := &models.Customer{
		ID:           f.db.id(),
		UserID:       &u.ID,
		FirstName:    name,
		LastName:     "Citizen",
		Email:        u.Email,
		CreditCents:  creditCents,
		PAQStatus:    models.PAQStatusApproved,
		PAQExpiresAt: &expires,
	}
	f.db.customers[c.ID] = c
	return u, c
}

func (f *fixture) addTerm() *models.Term {
	t := &models.Term{
		ID:             f.db.id(),
		Name:           "Term 1 2026",
		StartDate:      time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		EnrollmentOpen: true,
	}
	f.db.terms[t.ID] = t
	return t
}

// addClass creates an active class with the given number of weekly sessions from testNow
func (f *fixture) addClass(term *models.Term, name string, priceCents int64, capacity, sessions int) *models.Class {
	v := &models.Venue{ID: f.db.id(), Name: "Glebe Hall", IsActive: true}
	f.db.venues[v.ID] = v
	c := &models.Class{
		ID:                   f.db.id(),
		Name:                 name,
		TermID:               term.ID,
		VenueID:              v.ID,
		Weekday:              int(time.Tuesday),
		StartTime:            "10:00",
		EndTime:              "11:00",
		Capacity:             capacity,
		PricePerSessionCents: priceCents,
		IsActive:             true,
	}
	f.db.classes[c.ID] = c
	first := helpers.DateOnly(testNow, nil).AddDate(0, 0, 1)
	for i := 0; i < sessions; i++ {
		s := &models.Session{ID: f.db.id(), ClassID: c.ID, SessionDate: first.AddDate(0, 0, 7*i), Status: models.SessionScheduled}
		f.db.sessions[s.ID] = s
	}
	return c
}

func (f *fixture) sessionsOf(classID int64) []*models.Session {
	var out []*models.Session
	for _, id := range sortedKeys(f.db.sessions) {
		if s := f.db.sessions[id]; s.ClassID == classID {
			out = append(out, s)
		}
	}
	return out
}

// addInstructor creates an instructor with a linked INSTRUCTOR login
func (f *fixture) addInstructor() (*models.User, *models.Instructor) {
	u := &models.User{ID: f.db.id(), Email: "sam@share.test", FirstName: "Sam", LastName: "Lee", RoleType: models.RoleInstructor, IsActive: true}
	f.db.users[u.ID] = u
	i := &models.Instructor{ID: f.db.id(), UserID: &u.ID, FirstName: "Sam", LastName: "Lee", IsActive: true}
	f.db.instructors[i.ID] = i
	return u, i
}

func staffActor() Actor {
	return Actor{UserID: 1, RoleType: models.RoleStaff}
}

func customerActor(u *models.User) Actor {
	return Actor{UserID: u.ID, RoleType: models.RoleCustomer}
}

func (f *fixture) enrollmentService(gateway payments.Gateway) *EnrollmentService {
	m := f.db
	s := NewEnrollmentService(m, memCustomers{m}, memTerms{m}, memClasses{m}, memSessions{m}, memEnrollments{m},
		memBookings{m}, memPayments{m}, memCredit{m}, gateway, f.mailer, f.publisher, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) paymentService(gateway payments.Gateway) *PaymentService {
	m := f.db
	return NewPaymentService(m, memPayments{m}, memEnrollments{m}, memCustomers{m}, memBookings{m}, memCredit{m},
		gateway, f.publisher, f.logger)
}

func (f *fixture) cancellationService() *CancellationService {
	m := f.db
	s := NewCancellationService(m, memCancellations{m}, memBookings{m}, memClasses{m}, memCustomers{m}, memCredit{m},
		f.mailer, f.publisher, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) classService() *ClassService {
	m := f.db
	s := NewClassService(m, memClasses{m}, memSessions{m}, memTerms{m}, memVenues{m}, memInstructors{m},
		memBookings{m}, memCredit{m}, f.publisher, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) paqService() *PAQService {
	m := f.db
	s := NewPAQService(m, memForms{m}, memCustomers{m}, memFiles{m}, f.storage, f.mailer, f.publisher, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) reportService() *ReportService {
	m := f.db
	s := NewReportService(memReports{m}, memCustomers{m}, memTerms{m}, memClasses{m}, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}

func (f *fixture) attendanceService() *AttendanceService {
	m := f.db
	s := NewAttendanceService(memClasses{m}, memSessions{m}, memBookings{m}, memAttendance{m}, f.perms, f.hub,
		f.publisher, f.settings, f.logger)
	s.now = func() time.Time { return testNow }
	return s
}
