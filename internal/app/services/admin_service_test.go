package services

import (
	"context"
	"testing"

	"github.com/sharecrm/share/internal/app/auth"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) roleService() *RoleService {
	m := f.db
	return NewRoleService(m, memRoles{m}, memUsers{m}, f.perms, f.logger)
}

func (f *fixture) userService() *UserService {
	m := f.db
	return NewUserService(m, memUsers{m}, memRoles{m}, memInstructors{m}, f.logger)
}

func TestRoleLifecycle(t *testing.T) {
	f := newFixture()
	svc := f.roleService()

	role, err := svc.Create(context.Background(), &dto.RoleRequest{
		Name:        " Front desk ",
		Permissions: []string{auth.PermCustomersRead, auth.PermEnrollmentsWrite, auth.PermCustomersRead},
	})
	require.NoError(t, err)
	assert.Equal(t, "Front desk", role.Name)
	assert.Equal(t, []string{auth.PermCustomersRead, auth.PermEnrollmentsWrite}, role.Permissions)

	_, err = svc.Create(context.Background(), &dto.RoleRequest{Name: "Bad", Permissions: []string{"customers.fly"}})
	assert.ErrorIs(t, err, apperrors.ErrUnknownPermission)

	updated, err := svc.Update(context.Background(), role.ID, &dto.RoleRequest{Name: "Front desk", Permissions: []string{auth.PermCustomersRead}})
	require.NoError(t, err)
	assert.Equal(t, []string{auth.PermCustomersRead}, updated.Permissions)
	assert.Equal(t, []int64{role.ID}, f.perms.invalidated)

	holder := &models.User{ID: f.db.id(), Email: "desk@share.test", RoleType: models.RoleStaff, RoleID: &role.ID}
	f.db.users[holder.ID] = holder
	assert.ErrorIs(t, svc.Delete(context.Background(), role.ID), apperrors.ErrRoleInUse)

	delete(f.db.users, holder.ID)
	require.NoError(t, svc.Delete(context.Background(), role.ID))
	assert.Empty(t, f.db.roles)
}

func TestRole_SystemRoleIsFixed(t *testing.T) {
	f := newFixture()
	admin := &models.Role{ID: f.db.id(), Name: "Administrator", IsSystem: true, Permissions: auth.AllPermissionCodes()}
	f.db.roles[admin.ID] = admin
	svc := f.roleService()

	_, err := svc.Update(context.Background(), admin.ID, &dto.RoleRequest{Name: "Admin", Permissions: []string{auth.PermCustomersRead}})
	assert.ErrorIs(t, err, apperrors.ErrSystemRole)
	assert.ErrorIs(t, svc.Delete(context.Background(), admin.ID), apperrors.ErrSystemRole)
	assert.Len(t, svc.Permissions(), len(auth.AllPermissions()))
}

func TestUserCreate_StaffAndInstructor(t *testing.T) {
	f := newFixture()
	role := &models.Role{ID: f.db.id(), Name: "Front desk"}
	f.db.roles[role.ID] = role
	instructor := &models.Instructor{ID: f.db.id(), FirstName: "Sam", LastName: "Lee"}
	f.db.instructors[instructor.ID] = instructor
	svc := f.userService()

	staff, err := svc.Create(context.Background(), staffActor(), &dto.CreateUserRequest{
		Email: "Desk@Share.test", Password: "Passw0rd!", FirstName: "Dee", LastName: "Sk",
		RoleType: models.RoleStaff, RoleID: &role.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "desk@share.test", staff.Email)
	assert.Equal(t, role.ID, *staff.RoleID)

	login, err := svc.Create(context.Background(), staffActor(), &dto.CreateUserRequest{
		Email: "sam@share.test", Password: "Passw0rd!", FirstName: "Sam", LastName: "Lee",
		RoleType: models.RoleInstructor, InstructorID: &instructor.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, login.ID, *f.db.instructors[instructor.ID].UserID)

	_, err = svc.Create(context.Background(), staffActor(), &dto.CreateUserRequest{
		Email: "sam2@share.test", Password: "Passw0rd!", FirstName: "Sam", LastName: "Lee",
		RoleType: models.RoleInstructor, InstructorID: &instructor.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Create(context.Background(), staffActor(), &dto.CreateUserRequest{
		Email: "norole@share.test", Password: "Passw0rd!", FirstName: "N", LastName: "R", RoleType: models.RoleStaff,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUserAssignRole(t *testing.T) {
	f := newFixture()
	first := &models.Role{ID: f.db.id(), Name: "Front desk"}
	second := &models.Role{ID: f.db.id(), Name: "Coordinator"}
	f.db.roles[first.ID], f.db.roles[second.ID] = first, second
	staff := &models.User{ID: f.db.id(), Email: "desk@share.test", RoleType: models.RoleStaff, RoleID: &first.ID}
	f.db.users[staff.ID] = staff
	u, _ := f.addCustomer("Jo", 0)
	svc := f.userService()

	moved, err := svc.AssignRole(context.Background(), staff.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *moved.RoleID)

	_, err = svc.AssignRole(context.Background(), staff.ID, 9999)
	assert.ErrorIs(t, err, apperrors.ErrRoleNotFound)

	_, err = svc.AssignRole(context.Background(), u.ID, second.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound, "customers hold no role")
}

func TestEnquiries(t *testing.T) {
	f := newFixture()
	svc := NewEnquiryService(memEnquiries{f.db}, f.logger)

	e, err := svc.Submit(context.Background(), &dto.EnquiryRequest{Name: " Pat ", Email: "PAT@example.org", Message: "Classes in Marrickville?"})
	require.NoError(t, err)
	assert.Equal(t, models.EnquiryOpen, e.Status)
	assert.Equal(t, "pat@example.org", e.Email)

	require.NoError(t, svc.Resolve(context.Background(), staffActor(), e.ID))
	open, total, err := svc.List(context.Background(), dto.ListFilter{Status: string(models.EnquiryOpen)})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, open)

	assert.ErrorIs(t, svc.Resolve(context.Background(), staffActor(), e.ID), apperrors.ErrEnquiryNotFound)
}

func TestCreditAdjust(t *testing.T) {
	f := newFixture()
	u, c := f.addCustomer("Jo", 500)
	svc := NewCreditService(memCustomers{f.db}, memCredit{f.db}, f.publisher, f.logger)

	_, err := svc.Adjust(context.Background(), staffActor(), c.ID, &dto.CreditAdjustmentRequest{AmountCents: 0, Note: "noop"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Adjust(context.Background(), staffActor(), c.ID, &dto.CreditAdjustmentRequest{AmountCents: -600, Note: "too much"})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientCredit)

	tx, err := svc.Adjust(context.Background(), staffActor(), c.ID, &dto.CreditAdjustmentRequest{AmountCents: 1500, Note: " goodwill "})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), tx.BalanceAfterCents)
	assert.Equal(t, "goodwill", tx.Note)
	assert.Equal(t, models.CreditManualAdjustment, tx.Reason)

	summary, err := svc.SummaryForUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), summary.BalanceCents)
	assert.Len(t, summary.Transactions, 1)
}
