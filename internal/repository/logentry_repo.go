package repository

import (
	"time"

	"go-pharmacy-stock/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogEntryFilter narrows List for the audit UI. Zero values mean "any".
type LogEntryFilter struct {
	OperatorID *uuid.UUID
	Kind       model.ActionKind
	StoreID    *uuid.UUID
	From       *time.Time
	To         *time.Time
}

type LogEntryRepository interface {
	// Create writes the entry inside the caller's transaction so the log
	// row commits atomically with the mutation it records.
	Create(tx *gorm.DB, entry *model.MutationLogEntry) error
	FindByID(id uuid.UUID) (*model.MutationLogEntry, error)
	// LockByID loads the entry under FOR UPDATE inside tx.
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.MutationLogEntry, error)
	MarkRevoked(tx *gorm.DB, id uuid.UUID) error
	List(filter LogEntryFilter) ([]model.MutationLogEntry, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats() (*DashboardStats, error)
}

// StockMovementData untuk chart data
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats untuk overview stats
type DashboardStats struct {
	TotalProducts int64 `json:"total_products"`
	TotalStores   int64 `json:"total_stores"`
	PendingLogs   int64 `json:"pending_logs"`
	RevokedLogs   int64 `json:"revoked_logs"`
}

type logEntryRepo struct {
	db *gorm.DB
}

func NewLogEntryRepo(db *gorm.DB) LogEntryRepository {
	return &logEntryRepo{db}
}

func (r *logEntryRepo) Create(tx *gorm.DB, entry *model.MutationLogEntry) error {
	return tx.Create(entry).Error
}

func (r *logEntryRepo) FindByID(id uuid.UUID) (*model.MutationLogEntry, error) {
	var entry model.MutationLogEntry
	err := r.db.First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *logEntryRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.MutationLogEntry, error) {
	var entry model.MutationLogEntry
	err := tx.Set("gorm:query_option", "FOR UPDATE").First(&entry, "id = ?", id).Error
	return &entry, err
}

func (r *logEntryRepo) MarkRevoked(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.MutationLogEntry{}).Where("id = ?", id).
		Update("revoked", true).Error
}

func (r *logEntryRepo) List(filter LogEntryFilter) ([]model.MutationLogEntry, error) {
	q := r.db.Order("created_at DESC")
	if filter.OperatorID != nil {
		q = q.Where("operator_id = ?", *filter.OperatorID)
	}
	if filter.Kind != "" {
		q = q.Where("kind = ?", filter.Kind)
	}
	if filter.StoreID != nil {
		q = q.Where("store_id = ?", *filter.StoreID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at <= ?", *filter.To)
	}

	var entries []model.MutationLogEntry
	err := q.Find(&entries).Error
	return entries, err
}

func (r *logEntryRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// Query untuk aggregate log entries per hari
	rows, err := r.db.Model(&model.MutationLogEntry{}).
		Select(`
			DATE(created_at) as date,
			COALESCE(SUM(CASE WHEN kind = 'INBOUND' THEN 1 ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN kind = 'OUTBOUND' THEN 1 ELSE 0 END), 0) as outbound
		`).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *logEntryRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Store{}).Count(&stats.TotalStores)
	r.db.Model(&model.MutationLogEntry{}).Where("revoked = ?", false).Count(&stats.PendingLogs)
	r.db.Model(&model.MutationLogEntry{}).Where("revoked = ?", true).Count(&stats.RevokedLogs)

	return &stats, nil
}
