package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sharecrm/share/internal/app/auth"
	"github.com/sharecrm/share/internal/app/models"
	"github.com/sharecrm/share/internal/app/models/dto"
	"github.com/sharecrm/share/internal/pkg/apperrors"
	"github.com/sharecrm/share/internal/pkg/email"
	"github.com/sharecrm/share/internal/pkg/events"
	"github.com/sharecrm/share/internal/pkg/filestorage"
	"github.com/sharecrm/share/internal/pkg/helpers"
)

// paqQuestions is the screening catalogue. A "yes" to any question means
// the customer needs a medical clearance certificate.
var paqQuestions = []models.PAQQuestion{
	{Code: "heart_condition", Text: "Has your doctor ever told you that you have a heart condition or have you ever suffered a stroke?"},
	{Code: "chest_pain", Text: "Do you ever experience unexplained pains in your chest at rest or during physical activity?"},
	{Code: "dizziness", Text: "Do you ever feel faint or have spells of dizziness during physical activity that cause you to lose balance?"},
	{Code: "asthma_attack", Text: "Have you had an asthma attack requiring immediate medical attention at any time over the last 12 months?"},
	{Code: "diabetes_control", Text: "If you have diabetes, have you had trouble controlling your blood glucose in the last 3 months?"},
	{Code: "other_condition", Text: "Do you have any other medical condition that may make it dangerous for you to participate in physical activity?"},
	{Code: "musculoskeletal", Text: "Do you have a bone, joint or muscle problem that could be made worse by physical activity?"},
}

// PAQQuestions returns the screening catalogue
func PAQQuestions() []models.PAQQuestion {
	out := make([]models.PAQQuestion, len(paqQuestions))
	copy(out, paqQuestions)
	return out
}

// PAQService handles pre-activity questionnaires and their certificates
type PAQService struct {
	tx        Transactor
	forms     PAQStore
	customers CustomerStore
	files     FileStore
	storage   filestorage.Storage
	mailer    email.EmailService
	events    events.Publisher
	settings  Settings
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPAQService creates a new PAQService
func NewPAQService(
	tx Transactor,
	forms PAQStore,
	customers CustomerStore,
	files FileStore,
	storage filestorage.Storage,
	mailer email.EmailService,
	publisher events.Publisher,
	settings Settings,
	logger zerolog.Logger,
) *PAQService {
	return &PAQService{
		tx:        tx,
		forms:     forms,
		customers: customers,
		files:     files,
		storage:   storage,
		mailer:    mailer,
		events:    publisher,
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// validateAnswers requires exactly one answer per catalogue question
func validateAnswers(answers map[string]bool) (bool, error) {
	known := make(map[string]bool, len(paqQuestions))
	var missing []string
	requiresClearance := false
	for _, q := range paqQuestions {
		known[q.Code] = true
		yes, ok := answers[q.Code]
		if !ok {
			missing = append(missing, q.Code)
			continue
		}
		if yes {
			requiresClearance = true
		}
	}
	if len(missing) > 0 {
		return false, fmt.Errorf("%w: unanswered questions: %s", apperrors.ErrValidationFailed, strings.Join(missing, ", "))
	}

	var unknown []string
	for code := range answers {
		if !known[code] {
			unknown = append(unknown, code)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return false, fmt.Errorf("%w: unknown questions: %s", apperrors.ErrValidationFailed, strings.Join(unknown, ", "))
	}
	return requiresClearance, nil
}

// Submit records a new questionnaire; the customer's PAQ becomes PENDING
func (s *PAQService) Submit(ctx context.Context, userID int64, req *dto.SubmitPAQRequest) (*models.PAQForm, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	requiresClearance, err := validateAnswers(req.Answers)
	if err != nil {
		return nil, err
	}

	form := &models.PAQForm{
		CustomerID:        customer.ID,
		Answers:           req.Answers,
		RequiresClearance: requiresClearance,
		Status:            models.ReviewPending,
	}
	var formID int64
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.forms.Create(ctx, form)
		if err != nil {
			return err
		}
		formID = id
		return s.customers.UpdatePAQStatus(ctx, customer.ID, models.PAQStatusPending, nil)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customerID", customer.ID).Int64("paqID", formID).Bool("requiresClearance", requiresClearance).Msg("PAQ submitted")
	events.Emit(ctx, s.events, events.SubjectPAQSubmitted, map[string]interface{}{
		"paqId":             formID,
		"customerId":        customer.ID,
		"requiresClearance": requiresClearance,
	})
	return s.withCertificateURL(ctx, formID)
}

// Latest returns the customer's most recent questionnaire
func (s *PAQService) Latest(ctx context.Context, userID int64) (*models.PAQForm, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	form, err := s.forms.GetLatestByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return s.fillCertificateURL(ctx, form), nil
}

// UploadCertificate stores a medical clearance and links it to a pending form
func (s *PAQService) UploadCertificate(ctx context.Context, userID, formID int64, filename string, size int64, r io.Reader) (*models.PAQForm, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form.CustomerID != customer.ID {
		return nil, apperrors.ErrPAQNotFound
	}
	if form.Status != models.ReviewPending {
		return nil, apperrors.ErrAlreadyReviewed
	}
	if size > s.settings.MaxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", apperrors.ErrFileTooLarge, s.settings.MaxUploadBytes)
	}

	contentType, body, err := filestorage.DetectAndValidate(r, filestorage.DocumentTypes)
	if err != nil {
		return nil, err
	}

	obj, err := s.storage.Save(ctx, fmt.Sprintf("paq/%d", customer.ID), filename, body, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		fileID, err := s.files.Create(ctx, &models.File{
			StorageKey:  obj.Key,
			FileName:    filename,
			ContentType: contentType,
			SizeBytes:   obj.Size,
			UploadedBy:  &userID,
		})
		if err != nil {
			return err
		}
		return s.forms.AttachCertificate(ctx, formID, fileID)
	})
	if err != nil {
		if delErr := s.storage.Delete(ctx, obj.Key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", obj.Key).Msg("Failed to remove orphaned certificate")
		}
		return nil, err
	}

	s.logger.Info().Int64("paqID", formID).Str("key", obj.Key).Msg("Medical certificate uploaded")
	return s.withCertificateURL(ctx, formID)
}

// List returns questionnaires for review
func (s *PAQService) List(ctx context.Context, filter dto.ListFilter) ([]*models.PAQForm, int64, error) {
	return s.forms.List(ctx, filter)
}

// Get returns one questionnaire with its certificate link
func (s *PAQService) Get(ctx context.Context, id int64) (*models.PAQForm, error) {
	return s.withCertificateURL(ctx, id)
}

// Review approves or rejects a pending questionnaire. Approval of a form that
// needs clearance requires a certificate.
func (s *PAQService) Review(ctx context.Context, actor Actor, id int64, req *dto.ReviewPAQRequest) (*models.PAQForm, error) {
	if req.Approve == nil {
		return nil, fmt.Errorf("%w: approve is required", apperrors.ErrValidationFailed)
	}
	approve := *req.Approve

	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.Status != models.ReviewPending {
		return nil, apperrors.ErrAlreadyReviewed
	}
	if approve && form.RequiresClearance && form.CertificateFileID == nil {
		return nil, apperrors.ErrMedicalClearanceRequired
	}

	reviewedAt := s.now()
	status := models.ReviewRejected
	customerStatus := models.PAQStatusRejected
	var expiresAt *time.Time
	if approve {
		status = models.ReviewApproved
		customerStatus = models.PAQStatusApproved
		expiresAt = ptr(reviewedAt.Add(s.settings.PAQValidity))
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.forms.Review(ctx, id, status, strings.TrimSpace(req.Notes), actor.UserID, reviewedAt, expiresAt); err != nil {
			return err
		}
		return s.customers.UpdatePAQStatus(ctx, form.CustomerID, customerStatus, expiresAt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("paqID", id).Str("status", string(status)).Int64("by", actor.UserID).Msg("PAQ reviewed")
	events.Emit(ctx, s.events, events.SubjectPAQReviewed, map[string]interface{}{
		"paqId":      id,
		"customerId": form.CustomerID,
		"status":     status,
	})
	s.notifyOutcome(ctx, form.CustomerID, approve, expiresAt, req.Notes)

	return s.withCertificateURL(ctx, id)
}

func (s *PAQService) notifyOutcome(ctx context.Context, customerID int64, approved bool, expiresAt *time.Time, notes string) {
	if s.mailer == nil {
		return
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("customerID", customerID).Msg("Failed to load customer for PAQ email")
		return
	}
	outcome := email.PAQOutcome{Approved: approved, Notes: notes}
	if expiresAt != nil {
		outcome.ExpiresOn = helpers.DateOnly(*expiresAt, s.settings.Location).Format(helpers.DateLayout)
	}
	if err := s.mailer.SendPAQOutcome(customer.Email, customer.FullName(), outcome); err != nil {
		s.logger.Warn().Err(err).Int64("customerID", customerID).Msg("Failed to send PAQ outcome email")
	}
}

func (s *PAQService) withCertificateURL(ctx context.Context, id int64) (*models.PAQForm, error) {
	form, err := s.forms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.fillCertificateURL(ctx, form), nil
}

func (s *PAQService) fillCertificateURL(ctx context.Context, form *models.PAQForm) *models.PAQForm {
	if form.CertificateFileID == nil {
		return form
	}
	file, err := s.files.GetByID(ctx, *form.CertificateFileID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("fileID", *form.CertificateFileID).Msg("Certificate record missing")
		return form
	}
	url, err := s.storage.URL(ctx, file.StorageKey)
	if err != nil {
		s.logger.Warn().Err(err).Int64("fileID", file.ID).Msg("Failed to build certificate URL")
		return form
	}
	form.CertificateURL = url
	return form
}

// FileService hands out links to stored files
type FileService struct {
	files   FileStore
	storage filestorage.Storage
	perms   PermissionChecker
}

// NewFileService creates a new FileService
func NewFileService(files FileStore, storage filestorage.Storage, perms PermissionChecker) *FileService {
	return &FileService{files: files, storage: storage, perms: perms}
}

// URL returns a link to a file for its uploader or staff holding paq.read
func (s *FileService) URL(ctx context.Context, actor Actor, fileID int64) (*dto.FileURLResponse, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	owner := file.UploadedBy != nil && *file.UploadedBy == actor.UserID
	if !owner {
		ok, err := s.perms.HasPermission(ctx, actor.UserID, auth.PermPAQRead)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NewForbiddenError("not allowed to read this file")
		}
	}

	url, err := s.storage.URL(ctx, file.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExternalService, err)
	}
	return &dto.FileURLResponse{
		ID:          file.ID,
		FileName:    file.FileName,
		ContentType: file.ContentType,
		URL:         url,
	}, nil
}
