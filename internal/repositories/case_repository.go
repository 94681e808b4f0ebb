package repositories

import (
	"errors"
	"time"

	"piwork_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCaseNotFound = errors.New("case not found")

type CaseRepository interface {
	Create(c *models.Case) error
	FindByID(id string) (*models.Case, error)
	FindByIDWithMessages(id string) (*models.Case, error)
	FindByClient(clientID string, limit, offset int) ([]models.Case, int64, error)
	FindByInvestigator(investigatorID string, limit, offset int) ([]models.Case, int64, error)
	FindAll(limit, offset int) ([]models.Case, int64, error)
	Update(c *models.Case) error
	// Assign sets investigator_id, status=active and last_activity in a single
	// UPDATE so assignment and activation cannot be observed separately.
	Assign(caseID, investigatorID string, at time.Time) error
	TouchLastActivity(caseID string, at time.Time) error
	Delete(caseID string) error
	CountByStatus() (map[models.CaseStatus]int64, error)
}

type CaseRepositoryImpl struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &CaseRepositoryImpl{db: db}
}

func (r *CaseRepositoryImpl) Create(c *models.Case) error {
	return r.db.Create(c).Error
}

func (r *CaseRepositoryImpl) FindByID(id string) (*models.Case, error) {
	var kase models.Case
	err := r.db.First(&kase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &kase, nil
}

func (r *CaseRepositoryImpl) FindByIDWithMessages(id string) (*models.Case, error) {
	var kase models.Case
	err := r.db.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&kase, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}
	return &kase, nil
}

func (r *CaseRepositoryImpl) FindByClient(clientID string, limit, offset int) ([]models.Case, int64, error) {
	return r.findWhere("client_id = ?", clientID, limit, offset)
}

func (r *CaseRepositoryImpl) FindByInvestigator(investigatorID string, limit, offset int) ([]models.Case, int64, error) {
	return r.findWhere("investigator_id = ?", investigatorID, limit, offset)
}

func (r *CaseRepositoryImpl) FindAll(limit, offset int) ([]models.Case, int64, error) {
	var cases []models.Case
	var total int64

	if err := r.db.Model(&models.Case{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("last_activity DESC").
		Limit(limit).
		Offset(offset).
		Find(&cases).Error
	return cases, total, err
}

func (r *CaseRepositoryImpl) findWhere(cond string, arg interface{}, limit, offset int) ([]models.Case, int64, error) {
	var cases []models.Case
	var total int64

	query := r.db.Model(&models.Case{}).Where(cond, arg)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("last_activity DESC").
		Limit(limit).
		Offset(offset).
		Find(&cases).Error
	return cases, total, err
}

func (r *CaseRepositoryImpl) Update(c *models.Case) error {
	return r.db.Save(c).Error
}

func (r *CaseRepositoryImpl) Assign(caseID, investigatorID string, at time.Time) error {
	res := r.db.Model(&models.Case{}).
		Where("id = ?", caseID).
		Updates(map[string]interface{}{
			"investigator_id": investigatorID,
			"status":          models.CaseStatusActive,
			"last_activity":   at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) TouchLastActivity(caseID string, at time.Time) error {
	return r.db.Model(&models.Case{}).
		Where("id = ?", caseID).
		Update("last_activity", at).Error
}

func (r *CaseRepositoryImpl) Delete(caseID string) error {
	res := r.db.Delete(&models.Case{}, "id = ?", caseID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *CaseRepositoryImpl) CountByStatus() (map[models.CaseStatus]int64, error) {
	type row struct {
		Status models.CaseStatus
		Count  int64
	}

	var rows []row
	err := r.db.Model(&models.Case{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.CaseStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
