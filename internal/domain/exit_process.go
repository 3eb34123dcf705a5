package domain

import (
	"fmt"
	"time"
)

// ExitStepUpdate 是九个离职流程步骤更新的统一抽象。
// 每个步骤都有自己的强类型载荷，Apply 只会修改属于该步骤的字段，
// 不同步骤之间互不影响，重复应用同一个载荷得到的结果也相同
type ExitStepUpdate interface {
	// Apply 将更新写入离职申请的内存副本，actorID 为操作人，now 为操作时间
	Apply(r *Resignation, actorID int64, now time.Time) error
}

type NoticePeriodUpdate struct {
	Complied  bool       `json:"complied"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func (u NoticePeriodUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	r.NoticePeriodComplied = u.Complied
	if u.StartDate != nil {
		r.NoticePeriodStartDate = u.StartDate
	}
	if u.EndDate != nil {
		r.NoticePeriodEndDate = u.EndDate
	}
	return nil
}

type KnowledgeTransferUpdate struct {
	Completed     bool       `json:"completed"`
	HandoverNotes *string    `json:"handoverNotes"`
	CompletedDate *time.Time `json:"completedDate"`
}

func (u KnowledgeTransferUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	r.KnowledgeTransferCompleted = u.Completed
	if u.HandoverNotes != nil {
		r.HandoverNotes = *u.HandoverNotes
	}
	if u.CompletedDate != nil {
		r.HandoverCompletedDate = u.CompletedDate
	}
	return nil
}

type AssetReturnUpdate struct {
	Returned bool       `json:"returned"`
	Date     *time.Time `json:"date"`
	Notes    *string    `json:"notes"`
}

func (u AssetReturnUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	r.AssetsReturned = u.Returned
	if u.Date != nil {
		r.AssetsReturnDate = u.Date
	}
	if u.Notes != nil {
		r.AssetsReturnNotes = *u.Notes
	}
	return nil
}

type ClearanceUpdate struct {
	Department ClearanceDepartment `json:"department"`
	Status     ClearanceStatus     `json:"status"`
	Notes      *string             `json:"notes"`
}

func (u ClearanceUpdate) Apply(r *Resignation, actorID int64, now time.Time) error {
	if u.Status != ClearanceStatusApproved && u.Status != ClearanceStatusRejected {
		return fmt.Errorf("无效的交接审批状态: %s", u.Status)
	}

	for i := range r.Clearances {
		if r.Clearances[i].Department != u.Department {
			continue
		}
		r.Clearances[i].Status = u.Status
		r.Clearances[i].ApprovedBy = &actorID
		r.Clearances[i].ApprovedAt = &now
		if u.Notes != nil {
			r.Clearances[i].Notes = *u.Notes
		}
		return nil
	}

	// 该部门还没有审批记录，新建一条
	c := Clearance{
		Department: u.Department,
		Status:     u.Status,
		ApprovedBy: &actorID,
		ApprovedAt: &now,
	}
	if u.Notes != nil {
		c.Notes = *u.Notes
	}
	r.Clearances = append(r.Clearances, c)

	return nil
}

type ExitInterviewUpdate struct {
	Completed bool       `json:"completed"`
	Date      *time.Time `json:"date"`
	Feedback  *string    `json:"feedback"`
}

func (u ExitInterviewUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	r.ExitInterviewCompleted = u.Completed
	if u.Date != nil {
		r.ExitInterviewDate = u.Date
	}
	if u.Feedback != nil {
		r.ExitInterviewFeedback = *u.Feedback
	}
	return nil
}

type FnfUpdate struct {
	Status        FnfStatus  `json:"status"`
	Amount        *float64   `json:"amount"`
	ProcessedDate *time.Time `json:"processedDate"`
	Notes         *string    `json:"notes"`
}

func (u FnfUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	// 允许不经过 processing 直接标记为 completed
	if u.Status != FnfStatusProcessing && u.Status != FnfStatusCompleted {
		return fmt.Errorf("无效的薪资结算状态: %s", u.Status)
	}

	r.FnfStatus = u.Status
	if u.Amount != nil {
		r.FnfAmount = u.Amount
	}
	if u.ProcessedDate != nil {
		r.FnfProcessedDate = u.ProcessedDate
	}
	if u.Notes != nil {
		r.FnfNotes = *u.Notes
	}
	return nil
}

type DocumentsUpdate struct {
	ExperienceLetter *string  `json:"experienceLetter"`
	RelievingLetter  *string  `json:"relievingLetter"`
	OtherDocuments   []string `json:"otherDocuments"`
}

func (u DocumentsUpdate) Apply(r *Resignation, _ int64, now time.Time) error {
	if u.ExperienceLetter != nil {
		r.ExperienceLetter = *u.ExperienceLetter
	}
	if u.RelievingLetter != nil {
		r.RelievingLetter = *u.RelievingLetter
	}
	if u.OtherDocuments != nil {
		r.OtherDocuments = u.OtherDocuments
	}
	r.DocumentsUploadedAt = &now
	return nil
}

type SystemAccessUpdate struct {
	Deactivated bool       `json:"deactivated"`
	Date        *time.Time `json:"date"`
}

func (u SystemAccessUpdate) Apply(r *Resignation, _ int64, _ time.Time) error {
	r.SystemAccessDeactivated = u.Deactivated
	if u.Date != nil {
		r.SystemAccessDeactivatedDate = u.Date
	}
	return nil
}

type ExitClosureUpdate struct {
	Closed bool       `json:"closed"`
	Date   *time.Time `json:"date"`
}

func (u ExitClosureUpdate) Apply(r *Resignation, actorID int64, now time.Time) error {
	r.ExitClosed = u.Closed
	if u.Date != nil {
		r.ExitClosedDate = u.Date
	} else if u.Closed {
		r.ExitClosedDate = &now
	}
	if u.Closed {
		r.ExitClosedBy = &actorID
	}
	return nil
}
