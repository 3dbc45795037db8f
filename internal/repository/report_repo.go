package repository

import (
	"sort"
	"time"

	"ppe-inventory-ws/internal/model"

	"gorm.io/gorm"
)

type ReportRepository interface {
	GetMovement(startDate, endDate time.Time) ([]MovementData, error)
}

// MovementData aggregates per-day dispensed vs received quantities for the
// movement report chart.
type MovementData struct {
	Date      string `json:"date"`
	Dispensed int    `json:"dispensed"`
	Received  int    `json:"received"`
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetMovement(startDate, endDate time.Time) ([]MovementData, error) {
	byDate := map[string]*MovementData{}

	// Dispensed: approved quantities, bucketed by approval date. Walk-ins are
	// approved and completed in one step, so they land here too.
	rows, err := r.db.Model(&model.RequestLine{}).
		Select(`DATE(dispense_requests.approval_date) as date, COALESCE(SUM(request_lines.approved_quantity), 0) as qty`).
		Joins("JOIN dispense_requests ON dispense_requests.id = request_lines.request_id").
		Where("dispense_requests.status IN ?", []model.RequestStatus{model.StatusApproved, model.StatusCompleted}).
		Where("dispense_requests.approval_date BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(dispense_requests.approval_date)").
		Rows()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var date string
		var qty int
		if err := rows.Scan(&date, &qty); err != nil {
			rows.Close()
			return nil, err
		}
		byDate[date] = &MovementData{Date: date, Dispensed: qty}
	}
	rows.Close()

	// Received: stock-in quantities, bucketed by log creation date.
	rows, err = r.db.Model(&model.ReceiveLine{}).
		Select(`DATE(receive_logs.created_at) as date, COALESCE(SUM(receive_lines.quantity), 0) as qty`).
		Joins("JOIN receive_logs ON receive_logs.id = receive_lines.receive_id").
		Where("receive_logs.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(receive_logs.created_at)").
		Rows()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var date string
		var qty int
		if err := rows.Scan(&date, &qty); err != nil {
			rows.Close()
			return nil, err
		}
		if entry, ok := byDate[date]; ok {
			entry.Received = qty
		} else {
			byDate[date] = &MovementData{Date: date, Received: qty}
		}
	}
	rows.Close()

	results := make([]MovementData, 0, len(byDate))
	for _, entry := range byDate {
		results = append(results, *entry)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}
