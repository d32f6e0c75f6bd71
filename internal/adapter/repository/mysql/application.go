package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	appDomain "lms-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) GetByAppID(ctx context.Context, appID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("app_id = ?", appID).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Order("created_at desc, id desc").Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByAssignee(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("assigned_to_user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListByClientOwner(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Joins("join clients c on c.client_id = loan_applications.client_id").
		Where("c.user_id = ?", userID).
		Order("loan_applications.created_at desc, loan_applications.id desc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListStale(ctx context.Context, cutoff time.Time) ([]appDomain.Application, error) {
	inFlight := []appDomain.Status{
		appDomain.StatusSubmitted,
		appDomain.StatusUnderReview,
		appDomain.StatusInfoRequested,
	}
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", inFlight, cutoff).
		Order("updated_at asc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) SecurityProjection(ctx context.Context, appID string) (*appDomain.SecurityProjection, error) {
	var row struct {
		AppID             string
		Status            string
		AssignedToUserID  string
		ClientOwnerUserID string
	}
	res := r.db.WithContext(ctx).Raw(`
		select la.app_id as app_id,
		       la.status as status,
		       la.assigned_to_user_id as assigned_to_user_id,
		       c.user_id as client_owner_user_id
		from loan_applications la
		join clients c on c.client_id = la.client_id
		where la.app_id = ?`, appID).Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	status, err := appDomain.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return &appDomain.SecurityProjection{
		AppID:             row.AppID,
		Status:            status,
		AssignedToUserID:  row.AssignedToUserID,
		ClientOwnerUserID: row.ClientOwnerUserID,
	}, nil
}

func (r *ApplicationRepository) AppendHistory(ctx context.Context, h *appDomain.StatusHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *ApplicationRepository) ListHistory(ctx context.Context, appID string) ([]appDomain.StatusHistory, error) {
	var out []appDomain.StatusHistory
	res := r.db.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("changed_at asc, id asc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) CreateNote(ctx context.Context, n *appDomain.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *ApplicationRepository) ListNotes(ctx context.Context, appID string) ([]appDomain.Note, error) {
	var out []appDomain.Note
	res := r.db.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("created_at desc, id desc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) CreateDocument(ctx context.Context, d *appDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ApplicationRepository) ListDocuments(ctx context.Context, appID string) ([]appDomain.Document, error) {
	var out []appDomain.Document
	res := r.db.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("uploaded_at desc, id desc").
		Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) GetDocument(ctx context.Context, appID, documentID string) (*appDomain.Document, error) {
	var out appDomain.Document
	res := r.db.WithContext(ctx).
		Where("app_id = ? AND document_id = ?", appID, documentID).
		First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) SaveDocument(ctx context.Context, d *appDomain.Document) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *ApplicationRepository) CreateRequirement(ctx context.Context, dr *appDomain.DocumentRequirement) error {
	return r.db.WithContext(ctx).Create(dr).Error
}

func (r *ApplicationRepository) ListRequirements(ctx context.Context) ([]appDomain.DocumentRequirement, error) {
	var out []appDomain.DocumentRequirement
	res := r.db.WithContext(ctx).
		Order("required_at_status asc, doc_type asc").
		Find(&out)
	return out, res.Error
}
