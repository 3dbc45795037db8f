package service

import (
	"errors"
	"fmt"
	"time"

	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/notify"
	"ppe-inventory-ws/internal/repository"
	"ppe-inventory-ws/internal/ws"
	"ppe-inventory-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrItemNotFound    = errors.New("item not found")
)

// WorkflowService is the workflow engine: it owns every request state
// transition and every stock mutation. Each operation that touches inventory
// runs as one database transaction with row locks, so concurrent approvals,
// receives and walk-ins against the same item serialize instead of losing
// updates.
type WorkflowService interface {
	SubmitRequest(in *SubmitInput, requesterEmail string) (*model.DispenseRequest, error)
	ApproveRequest(id uuid.UUID, lines []ApprovedLine, approver string) (*model.DispenseRequest, []string, error)
	RejectRequest(id uuid.UUID, reason, actor string) (*model.DispenseRequest, error)
	ConfirmPickup(id uuid.UUID, actor string) (*model.DispenseRequest, error)
	ReceiveStock(in *ReceiveInput, actor string) (*model.ReceiveLog, []string, error)
	WalkInDispense(in *WalkInInput, actor string) (*model.DispenseRequest, []string, error)
	AdjustStock(in *AdjustInput, actor string) (*model.InventoryItem, error)
	StockTake(counts []StockCount, actor string) ([]string, error)

	GetAllRequests() ([]model.DispenseRequest, error)
	GetRequestByID(id uuid.UUID) (*model.DispenseRequest, error)
	GetRequestsByStatus(status model.RequestStatus) ([]model.DispenseRequest, error)
	GetReceiveLogs() ([]model.ReceiveLog, error)
	GetAdjustLogs() ([]model.AdjustLog, error)
}

type SubmitLine struct {
	ItemCode string `json:"item_code" validate:"required"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type SubmitInput struct {
	RequestCode    string       `json:"request_code"`
	RequestDate    string       `json:"request_date"`
	Department     string       `json:"department" validate:"required"`
	RequesterName  string       `json:"requester_name" validate:"required"`
	Items          []SubmitLine `json:"items" validate:"required,min=1,dive"`
	SignatureImage string       `json:"signature_image"`
	AttachmentURL  string       `json:"attachment_url"`
}

type ApprovedLine struct {
	ItemCode string `json:"item_code" validate:"required"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity" validate:"gte=0"`
}

type ReceiveInput struct {
	ReceiveCode  string       `json:"receive_code"`
	ReceiveDate  string       `json:"receive_date"`
	ReceiverName string       `json:"receiver_name" validate:"required"`
	Items        []SubmitLine `json:"items" validate:"required,min=1,dive"`
}

type WalkInInput struct {
	Department     string       `json:"department" validate:"required"`
	RequesterName  string       `json:"requester_name" validate:"required"`
	Items          []SubmitLine `json:"items" validate:"required,min=1,dive"`
	SignatureImage string       `json:"signature_image"`
}

type AdjustInput struct {
	ItemCode string           `json:"item_code" validate:"required"`
	Mode     model.AdjustMode `json:"mode" validate:"required,oneof=set add"`
	Quantity int              `json:"quantity"`
	Reason   string           `json:"reason"`
}

type StockCount struct {
	ItemCode    string `json:"item_code" validate:"required"`
	NewQuantity int    `json:"new_quantity" validate:"gte=0"`
}

type workflowService struct {
	itemRepo       repository.InventoryRepository
	requestRepo    repository.RequestRepository
	receiveLogRepo repository.ReceiveLogRepository
	adjustLogRepo  repository.AdjustLogRepository
	db             *gorm.DB
	wsHub          *ws.Hub
	notifier       *notify.LineNotifier
}

func NewWorkflowService(
	itemRepo repository.InventoryRepository,
	requestRepo repository.RequestRepository,
	receiveLogRepo repository.ReceiveLogRepository,
	adjustLogRepo repository.AdjustLogRepository,
	db *gorm.DB,
	hub *ws.Hub,
	notifier *notify.LineNotifier,
) WorkflowService {
	return &workflowService{
		itemRepo:       itemRepo,
		requestRepo:    requestRepo,
		receiveLogRepo: receiveLogRepo,
		adjustLogRepo:  adjustLogRepo,
		db:             db,
		wsHub:          hub,
		notifier:       notifier,
	}
}

// lockItems locks the inventory rows for the given codes FOR UPDATE and
// returns them by code, plus a quantity view for the stock planners. Codes
// that match no catalog item are simply absent from both maps (catalog drift
// is handled by the planners).
func lockItems(tx *gorm.DB, codes []string) (map[string]*model.InventoryItem, map[string]int, error) {
	items := map[string]*model.InventoryItem{}
	view := map[string]int{}
	for _, code := range codes {
		if _, done := items[code]; done {
			continue
		}
		var item model.InventoryItem
		err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "code = ?", code).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		items[code] = &item
		view[code] = item.TotalQuantity
	}
	return items, view, nil
}

func (s *workflowService) applyUpdates(tx *gorm.DB, items map[string]*model.InventoryItem, updates map[string]int, actor string) error {
	for code, qty := range updates {
		if err := s.itemRepo.UpdateQuantity(tx, items[code].ID, qty, actor); err != nil {
			return err
		}
	}
	return nil
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

func submitLinesToStock(lines []SubmitLine) []stockLine {
	out := make([]stockLine, len(lines))
	for i, l := range lines {
		out[i] = stockLine{Code: l.ItemCode, Name: l.ItemName, Qty: l.Quantity}
	}
	return out
}

func submitLinesToRequest(lines []SubmitLine) []model.RequestLine {
	out := make([]model.RequestLine, len(lines))
	for i, l := range lines {
		out[i] = model.RequestLine{
			Position: i,
			ItemCode: l.ItemCode,
			ItemName: l.ItemName,
			Quantity: l.Quantity,
		}
	}
	return out
}

// SubmitRequest creates a Pending dispense request. No stock is touched until
// approval.
func (s *workflowService) SubmitRequest(in *SubmitInput, requesterEmail string) (*model.DispenseRequest, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, validationError(errs)
	}

	code := in.RequestCode
	if code == "" {
		code = fmt.Sprintf("REQ-%d", time.Now().UnixMilli())
	}
	requestDate := in.RequestDate
	if requestDate == "" {
		requestDate = time.Now().Format("2006-01-02")
	}

	req := &model.DispenseRequest{
		RequestCode:    code,
		RequestDate:    requestDate,
		Department:     in.Department,
		RequesterName:  in.RequesterName,
		RequesterEmail: requesterEmail,
		Lines:          submitLinesToRequest(in.Items),
		Status:         model.StatusPending,
		SignatureURL:   in.SignatureImage,
		AttachmentURL:  in.AttachmentURL,
	}
	req.ItemsString = model.LinesSummary(req.Lines)
	req.CreatedBy = requesterEmail
	req.UpdatedBy = requesterEmail

	if err := s.requestRepo.Create(nil, req); err != nil {
		return nil, err
	}

	go func() {
		s.notifier.Notify(fmt.Sprintf("📢 New dispense request\nFrom: %s\nDepartment: %s\nItems: %s",
			req.RequesterName, req.Department, req.ItemsString))
		s.wsHub.Publish("request_submitted", map[string]interface{}{
			"request_code": req.RequestCode,
			"requester":    req.RequesterName,
			"department":   req.Department,
			"items":        req.ItemsString,
		})
	}()

	return req, nil
}

// ApproveRequest moves Pending -> Approved and decrements stock for every
// approved line inside one transaction. Lines that no longer match a catalog
// item are skipped and returned to the caller as a warning; each decrement is
// clamped at zero.
func (s *workflowService) ApproveRequest(id uuid.UUID, lines []ApprovedLine, approver string) (*model.DispenseRequest, []string, error) {
	if len(lines) == 0 {
		return nil, nil, errors.New("approved items must not be empty")
	}
	for _, l := range lines {
		if l.Quantity < 0 {
			return nil, nil, errors.New("approved quantity cannot be negative")
		}
	}

	var skipped []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req model.DispenseRequest
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", id).Error; err != nil {
			return ErrRequestNotFound
		}
		if !req.Status.CanTransitionTo(model.StatusApproved) {
			return fmt.Errorf("cannot approve a %s request", req.Status)
		}

		stockLines := make([]stockLine, len(lines))
		codes := make([]string, len(lines))
		for i, l := range lines {
			stockLines[i] = stockLine{Code: l.ItemCode, Name: l.ItemName, Qty: l.Quantity}
			codes[i] = l.ItemCode
		}

		items, view, err := lockItems(tx, codes)
		if err != nil {
			return err
		}
		updates, planSkipped := planDecrement(view, stockLines)
		skipped = planSkipped
		if err := s.applyUpdates(tx, items, updates, approver); err != nil {
			return err
		}

		// Record the approved quantity on each matching line.
		for _, l := range lines {
			if err := tx.Model(&model.RequestLine{}).
				Where("request_id = ? AND item_code = ?", id, l.ItemCode).
				Update("approved_quantity", l.Quantity).Error; err != nil {
				return err
			}
		}

		approvedLines := make([]model.RequestLine, len(lines))
		for i, l := range lines {
			approvedLines[i] = model.RequestLine{ItemCode: l.ItemCode, ItemName: l.ItemName, Quantity: l.Quantity}
		}
		now := time.Now()
		return s.requestRepo.Transition(tx, id, model.StatusApproved, map[string]interface{}{
			"approved_items_string": model.LinesSummary(approvedLines),
			"approver":              approver,
			"approval_date":         now,
			"updated_by":            approver,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	req, err := s.requestRepo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		s.notifier.Notify(fmt.Sprintf("✅ Request approved\nCode: %s\nItems: %s",
			req.RequestCode, req.ApprovedItemsString))
		s.wsHub.Publish("request_approved", map[string]interface{}{
			"request_code": req.RequestCode,
			"approver":     approver,
			"items":        req.ApprovedItemsString,
		})
	}()

	return req, skipped, nil
}

// RejectRequest moves Pending -> Rejected. Stock is untouched.
func (s *workflowService) RejectRequest(id uuid.UUID, reason, actor string) (*model.DispenseRequest, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req model.DispenseRequest
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", id).Error; err != nil {
			return ErrRequestNotFound
		}
		if !req.Status.CanTransitionTo(model.StatusRejected) {
			return fmt.Errorf("cannot reject a %s request", req.Status)
		}
		return s.requestRepo.Transition(tx, id, model.StatusRejected, map[string]interface{}{
			"rejection_reason": reason,
			"updated_by":       actor,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.requestRepo.FindByID(id)
}

// ConfirmPickup moves Approved -> Completed. Stock was already decremented at
// approval time; this transition only closes the request.
func (s *workflowService) ConfirmPickup(id uuid.UUID, actor string) (*model.DispenseRequest, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req model.DispenseRequest
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&req, "id = ?", id).Error; err != nil {
			return ErrRequestNotFound
		}
		if !req.Status.CanTransitionTo(model.StatusCompleted) {
			return fmt.Errorf("cannot complete a %s request", req.Status)
		}
		return s.requestRepo.Transition(tx, id, model.StatusCompleted, map[string]interface{}{
			"updated_by": actor,
		})
	})
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	go func() {
		items := req.ApprovedItemsString
		if items == "" {
			items = req.ItemsString
		}
		s.notifier.Notify(fmt.Sprintf("📦 Picked up (Completed)\nCode: %s\nRequester: %s\nItems: %s",
			req.RequestCode, req.RequesterName, items))
		s.wsHub.Publish("request_completed", map[string]interface{}{
			"request_code": req.RequestCode,
		})
	}()

	return req, nil
}

// ReceiveStock increments stock for every line and appends one receive log,
// all in one transaction. Unknown codes are skipped and reported.
func (s *workflowService) ReceiveStock(in *ReceiveInput, actor string) (*model.ReceiveLog, []string, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, nil, validationError(errs)
	}

	code := in.ReceiveCode
	if code == "" {
		code = fmt.Sprintf("RCV-%d", time.Now().UnixMilli())
	}
	receiveDate := in.ReceiveDate
	if receiveDate == "" {
		receiveDate = time.Now().Format("2006-01-02")
	}

	logLines := make([]model.ReceiveLine, len(in.Items))
	for i, l := range in.Items {
		logLines[i] = model.ReceiveLine{Position: i, ItemCode: l.ItemCode, ItemName: l.ItemName, Quantity: l.Quantity}
	}
	logEntry := &model.ReceiveLog{
		ReceiveCode:  code,
		ReceiveDate:  receiveDate,
		ReceiverName: in.ReceiverName,
		Lines:        logLines,
		ItemsString:  model.ReceiveLinesSummary(logLines),
	}
	logEntry.CreatedBy = actor
	logEntry.UpdatedBy = actor

	var skipped []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		codes := make([]string, len(in.Items))
		for i, l := range in.Items {
			codes[i] = l.ItemCode
		}
		items, view, err := lockItems(tx, codes)
		if err != nil {
			return err
		}
		updates, planSkipped := planIncrement(view, submitLinesToStock(in.Items))
		skipped = planSkipped
		if err := s.applyUpdates(tx, items, updates, actor); err != nil {
			return err
		}
		return s.receiveLogRepo.Create(tx, logEntry)
	})
	if err != nil {
		return nil, nil, err
	}

	go func() {
		s.notifier.Notify(fmt.Sprintf("🚚 Stock in\nCode: %s\nReceiver: %s\nItems: %s",
			logEntry.ReceiveCode, logEntry.ReceiverName, logEntry.ItemsString))
		s.wsHub.Publish("stock_received", map[string]interface{}{
			"receive_code": logEntry.ReceiveCode,
			"items":        logEntry.ItemsString,
		})
	}()

	return logEntry, skipped, nil
}

// WalkInDispense is the admin fast path: it creates an already-Completed
// request and decrements stock in the same transaction. All-or-nothing — any
// line over current stock rolls the whole thing back.
func (s *workflowService) WalkInDispense(in *WalkInInput, actor string) (*model.DispenseRequest, []string, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, nil, validationError(errs)
	}

	now := time.Now()
	req := &model.DispenseRequest{
		RequestCode:    fmt.Sprintf("WALKIN-%d", now.UnixMilli()),
		RequestDate:    now.Format("2006-01-02"),
		Department:     in.Department,
		RequesterName:  in.RequesterName,
		RequesterEmail: actor,
		Lines:          submitLinesToRequest(in.Items),
		Status:         model.StatusCompleted,
		Approver:       actor,
		ApprovalDate:   &now,
		SignatureURL:   in.SignatureImage,
	}
	for i := range req.Lines {
		req.Lines[i].ApprovedQuantity = req.Lines[i].Quantity
	}
	req.ItemsString = model.LinesSummary(req.Lines)
	req.ApprovedItemsString = req.ItemsString
	req.CreatedBy = actor
	req.UpdatedBy = actor

	var skipped []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		codes := make([]string, len(in.Items))
		for i, l := range in.Items {
			codes[i] = l.ItemCode
		}
		items, view, err := lockItems(tx, codes)
		if err != nil {
			return err
		}
		updates, planSkipped, err := planStrictDecrement(view, submitLinesToStock(in.Items))
		if err != nil {
			return err
		}
		skipped = planSkipped
		if err := s.applyUpdates(tx, items, updates, actor); err != nil {
			return err
		}
		return s.requestRepo.Create(tx, req)
	})
	if err != nil {
		return nil, nil, err
	}

	go s.wsHub.Publish("walkin_dispensed", map[string]interface{}{
		"request_code": req.RequestCode,
		"items":        req.ItemsString,
	})

	return req, skipped, nil
}

// AdjustStock applies a single-item manual correction (absolute set or
// relative delta) and appends the adjust log in the same transaction. A
// result below zero aborts.
func (s *workflowService) AdjustStock(in *AdjustInput, actor string) (*model.InventoryItem, error) {
	if errs := validator.ValidateStruct(in); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var updated model.InventoryItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item model.InventoryItem
		err := tx.Set("gorm:query_option", "FOR UPDATE").First(&item, "code = ?", in.ItemCode).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		newQty, err := applyAdjustment(item.TotalQuantity, in.Mode == model.AdjustModeSet, in.Quantity)
		if err != nil {
			return err
		}
		if err := s.itemRepo.UpdateQuantity(tx, item.ID, newQty, actor); err != nil {
			return err
		}

		adjLog := &model.AdjustLog{
			Kind:           model.AdjustKindManual,
			ItemCode:       in.ItemCode,
			Mode:           in.Mode,
			QuantityChange: newQty - item.TotalQuantity,
			NewQuantity:    newQty,
			Reason:         in.Reason,
			AdminEmail:     actor,
		}
		adjLog.CreatedBy = actor
		adjLog.UpdatedBy = actor
		if err := s.adjustLogRepo.Create(tx, adjLog); err != nil {
			return err
		}

		item.TotalQuantity = newQty
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish("stock_adjusted", map[string]interface{}{
		"item_code":    updated.Code,
		"new_quantity": updated.TotalQuantity,
	})

	return &updated, nil
}

// StockTake sets each counted item to its physical count and appends one
// summary log, all in one transaction. Unknown codes are skipped and reported.
func (s *workflowService) StockTake(counts []StockCount, actor string) ([]string, error) {
	if len(counts) == 0 {
		return nil, errors.New("stock take must contain at least one count")
	}

	var skipped []string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines := make([]stockLine, len(counts))
		codes := make([]string, len(counts))
		for i, c := range counts {
			lines[i] = stockLine{Code: c.ItemCode, Qty: c.NewQuantity}
			codes[i] = c.ItemCode
		}
		items, view, err := lockItems(tx, codes)
		if err != nil {
			return err
		}
		updates, planSkipped, err := planAbsolute(view, lines)
		if err != nil {
			return err
		}
		skipped = planSkipped
		if err := s.applyUpdates(tx, items, updates, actor); err != nil {
			return err
		}

		adjLog := &model.AdjustLog{
			Kind:       model.AdjustKindStockTake,
			LineCount:  len(counts),
			AdminEmail: actor,
		}
		adjLog.CreatedBy = actor
		adjLog.UpdatedBy = actor
		return s.adjustLogRepo.Create(tx, adjLog)
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish("stock_take_completed", map[string]interface{}{
		"line_count": len(counts),
		"admin":      actor,
	})

	return skipped, nil
}

func (s *workflowService) GetAllRequests() ([]model.DispenseRequest, error) {
	return s.requestRepo.FindAll()
}

func (s *workflowService) GetRequestByID(id uuid.UUID) (*model.DispenseRequest, error) {
	return s.requestRepo.FindByID(id)
}

func (s *workflowService) GetRequestsByStatus(status model.RequestStatus) ([]model.DispenseRequest, error) {
	return s.requestRepo.FindByStatus(status)
}

func (s *workflowService) GetReceiveLogs() ([]model.ReceiveLog, error) {
	return s.receiveLogRepo.FindAll()
}

func (s *workflowService) GetAdjustLogs() ([]model.AdjustLog, error) {
	return s.adjustLogRepo.FindAll()
}
