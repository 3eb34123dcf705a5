package domain

import (
	"errors"
	"time"
)

type ResignationStatus string

const (
	ResignationStatusPending  ResignationStatus = "pending"
	ResignationStatusApproved ResignationStatus = "approved"
	ResignationStatusRejected ResignationStatus = "rejected"

	// 以下两个状态不会被持久化，只会由 OverallStatus 推导出来
	ResignationStatusInProgress ResignationStatus = "in-progress"
	ResignationStatusCompleted  ResignationStatus = "completed"
)

type ClearanceDepartment string

const (
	ClearanceDepartmentDesign    ClearanceDepartment = "design"
	ClearanceDepartmentOperation ClearanceDepartment = "operation"
)

// 新增交接部门时只需要在这里补充常量即可，数据库中按字符串存储
func AllClearanceDepartments() []ClearanceDepartment {
	return []ClearanceDepartment{
		ClearanceDepartmentDesign,
		ClearanceDepartmentOperation,
	}
}

type ClearanceStatus string

const (
	ClearanceStatusPending  ClearanceStatus = "pending"
	ClearanceStatusApproved ClearanceStatus = "approved"
	ClearanceStatusRejected ClearanceStatus = "rejected"
)

type FnfStatus string

const (
	FnfStatusPending    FnfStatus = "pending"
	FnfStatusProcessing FnfStatus = "processing"
	FnfStatusCompleted  FnfStatus = "completed"
)

type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in-progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusApproved   StepStatus = "approved"
	StepStatusRejected   StepStatus = "rejected"
	StepStatusComplied   StepStatus = "complied"
)

type Clearance struct {
	Department ClearanceDepartment `json:"department"`
	Status     ClearanceStatus     `json:"status"`
	ApprovedBy *int64              `json:"approvedBy"`
	ApprovedAt *time.Time          `json:"approvedAt"`
	Notes      string              `json:"notes"`
}

type Resignation struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userID"`
	ResignationDate time.Time         `json:"resignationDate"`
	Reason          string            `json:"reason"`
	Feedback        string            `json:"feedback"`
	Assets          []string          `json:"assets"`
	Status          ResignationStatus `json:"status"`

	NoticePeriodStartDate *time.Time `json:"noticePeriodStartDate"`
	NoticePeriodEndDate   *time.Time `json:"noticePeriodEndDate"`
	NoticePeriodComplied  bool       `json:"noticePeriodComplied"`

	KnowledgeTransferCompleted bool       `json:"knowledgeTransferCompleted"`
	HandoverNotes              string     `json:"handoverNotes"`
	HandoverCompletedDate      *time.Time `json:"handoverCompletedDate"`

	AssetsReturned    bool       `json:"assetsReturned"`
	AssetsReturnDate  *time.Time `json:"assetsReturnDate"`
	AssetsReturnNotes string     `json:"assetsReturnNotes"`

	Clearances []Clearance `json:"clearances"`

	ExitInterviewCompleted bool       `json:"exitInterviewCompleted"`
	ExitInterviewDate      *time.Time `json:"exitInterviewDate"`
	ExitInterviewFeedback  string     `json:"exitInterviewFeedback"`

	FnfStatus        FnfStatus  `json:"fnfStatus"`
	FnfAmount        *float64   `json:"fnfAmount"`
	FnfProcessedDate *time.Time `json:"fnfProcessedDate"`
	FnfNotes         string     `json:"fnfNotes"`

	ExperienceLetter    string     `json:"experienceLetter"`
	RelievingLetter     string     `json:"relievingLetter"`
	OtherDocuments      []string   `json:"otherDocuments"`
	DocumentsUploadedAt *time.Time `json:"documentsUploadedAt"`

	SystemAccessDeactivated     bool       `json:"systemAccessDeactivated"`
	SystemAccessDeactivatedDate *time.Time `json:"systemAccessDeactivatedDate"`

	ExitClosed     bool       `json:"exitClosed"`
	ExitClosedDate *time.Time `json:"exitClosedDate"`
	ExitClosedBy   *int64     `json:"exitClosedBy"`

	ApprovedBy      *int64     `json:"approvedBy"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectionReason string     `json:"rejectionReason"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int32     `json:"-"`
}

var (
	ErrResignationNotPending   = errors.New("只有待处理的离职申请才能进行审批")
	ErrRejectionReasonRequired = errors.New("驳回离职申请时必须填写驳回原因")
	ErrResignationNotApproved  = errors.New("离职申请尚未批准，不能更新离职流程")
)

// Approve 将待处理的离职申请标记为已批准，并记录审批人和审批时间
func (r *Resignation) Approve(actorID int64, now time.Time) error {
	if r.Status != ResignationStatusPending {
		return ErrResignationNotPending
	}

	r.Status = ResignationStatusApproved
	r.ApprovedBy = &actorID
	r.ApprovedAt = &now

	return nil
}

// Reject 将待处理的离职申请标记为已驳回，驳回原因不能为空
func (r *Resignation) Reject(reason string, now time.Time) error {
	if r.Status != ResignationStatusPending {
		return ErrResignationNotPending
	}
	if reason == "" {
		return ErrRejectionReasonRequired
	}

	r.Status = ResignationStatusRejected
	r.RejectionReason = reason

	return nil
}

// ClearanceOverallStatus 汇总各部门的交接审批状态：
// 所有部门都批准时为 approved，任何一个部门驳回时为 rejected，
// 否则根据离职申请本身是否已批准返回 in-progress 或 pending
func (r *Resignation) ClearanceOverallStatus() StepStatus {
	if len(r.Clearances) == 0 {
		if r.Status == ResignationStatusApproved {
			return StepStatusInProgress
		}
		return StepStatusPending
	}

	allApproved := true
	for _, c := range r.Clearances {
		switch c.Status {
		case ClearanceStatusRejected:
			return StepStatusRejected
		case ClearanceStatusApproved:
		default:
			allApproved = false
		}
	}

	if allApproved {
		return StepStatusApproved
	}
	if r.Status == ResignationStatusApproved {
		return StepStatusInProgress
	}
	return StepStatusPending
}

// NoticePeriodStatus 推导通知期状态
func (r *Resignation) NoticePeriodStatus() StepStatus {
	if r.NoticePeriodComplied {
		return StepStatusComplied
	}
	if r.Status == ResignationStatusApproved && r.NoticePeriodStartDate != nil && r.NoticePeriodEndDate != nil {
		return StepStatusInProgress
	}
	return StepStatusPending
}

// booleanStepStatus 是其余布尔类步骤共用的推导逻辑：
// 完成标志为真时为 completed，否则若申请已批准且该步骤已有记录则为 in-progress
func (r *Resignation) booleanStepStatus(completed bool, begun bool) StepStatus {
	if completed {
		return StepStatusCompleted
	}
	if r.Status == ResignationStatusApproved && begun {
		return StepStatusInProgress
	}
	return StepStatusPending
}

func (r *Resignation) KnowledgeTransferStatus() StepStatus {
	return r.booleanStepStatus(r.KnowledgeTransferCompleted, r.HandoverNotes != "" || r.HandoverCompletedDate != nil)
}

func (r *Resignation) AssetReturnStatus() StepStatus {
	return r.booleanStepStatus(r.AssetsReturned, r.AssetsReturnDate != nil || r.AssetsReturnNotes != "")
}

func (r *Resignation) ExitInterviewStatus() StepStatus {
	return r.booleanStepStatus(r.ExitInterviewCompleted, r.ExitInterviewDate != nil || r.ExitInterviewFeedback != "")
}

func (r *Resignation) SystemAccessStatus() StepStatus {
	return r.booleanStepStatus(r.SystemAccessDeactivated, r.SystemAccessDeactivatedDate != nil)
}

func (r *Resignation) ExitClosureStatus() StepStatus {
	return r.booleanStepStatus(r.ExitClosed, r.ExitClosedDate != nil)
}

// AnyStepBegun 判断是否已经有任何一个离职流程步骤被记录过
func (r *Resignation) AnyStepBegun() bool {
	if r.NoticePeriodComplied || r.NoticePeriodStartDate != nil || r.NoticePeriodEndDate != nil {
		return true
	}
	if r.KnowledgeTransferCompleted || r.HandoverNotes != "" || r.HandoverCompletedDate != nil {
		return true
	}
	if r.AssetsReturned || r.AssetsReturnDate != nil || r.AssetsReturnNotes != "" {
		return true
	}
	for _, c := range r.Clearances {
		if c.Status != ClearanceStatusPending {
			return true
		}
	}
	if r.ExitInterviewCompleted || r.ExitInterviewDate != nil || r.ExitInterviewFeedback != "" {
		return true
	}
	if r.FnfStatus != FnfStatusPending {
		return true
	}
	if r.ExperienceLetter != "" || r.RelievingLetter != "" || len(r.OtherDocuments) > 0 {
		return true
	}
	if r.SystemAccessDeactivated {
		return true
	}
	if r.ExitClosed {
		return true
	}
	return false
}

// OverallStatus 推导离职申请的总体状态。
// 数据库中只会持久化 pending/approved/rejected 三种状态，
// completed 和 in-progress 都是由离职流程的进展推导出来的展示状态
func (r *Resignation) OverallStatus() ResignationStatus {
	if r.Status != ResignationStatusApproved {
		return r.Status
	}
	if r.ExitClosed {
		return ResignationStatusCompleted
	}
	if r.AnyStepBegun() {
		return ResignationStatusInProgress
	}
	return ResignationStatusApproved
}
