package domain

import (
	"errors"
	"testing"
	"time"
)

func approvedResignation() *Resignation {
	now := time.Now()
	actorID := int64(1)
	return &Resignation{
		ID:         1,
		UserID:     2,
		Status:     ResignationStatusApproved,
		ApprovedBy: &actorID,
		ApprovedAt: &now,
		Clearances: []Clearance{
			{Department: ClearanceDepartmentDesign, Status: ClearanceStatusPending},
			{Department: ClearanceDepartmentOperation, Status: ClearanceStatusPending},
		},
		FnfStatus: FnfStatusPending,
	}
}

func TestApprove(t *testing.T) {
	now := time.Now()

	rn := &Resignation{Status: ResignationStatusPending}
	if err := rn.Approve(1, now); err != nil {
		t.Fatalf("批准待处理的申请不应该失败: %v", err)
	}
	if rn.Status != ResignationStatusApproved {
		t.Errorf("状态应为 approved，实际为 %s", rn.Status)
	}
	if rn.ApprovedBy == nil || *rn.ApprovedBy != 1 {
		t.Error("应记录审批人")
	}
	if rn.ApprovedAt == nil || !rn.ApprovedAt.Equal(now) {
		t.Error("应记录审批时间")
	}

	// 重复审批应该失败
	if err := rn.Approve(1, now); !errors.Is(err, ErrResignationNotPending) {
		t.Errorf("重复审批应返回 ErrResignationNotPending，实际为 %v", err)
	}
}

func TestReject(t *testing.T) {
	now := time.Now()

	rn := &Resignation{Status: ResignationStatusPending}
	if err := rn.Reject("", now); !errors.Is(err, ErrRejectionReasonRequired) {
		t.Errorf("没有驳回原因时应返回 ErrRejectionReasonRequired，实际为 %v", err)
	}
	if rn.Status != ResignationStatusPending {
		t.Error("驳回失败时不应改变状态")
	}

	if err := rn.Reject("与部门沟通后决定挽留", now); err != nil {
		t.Fatalf("驳回待处理的申请不应该失败: %v", err)
	}
	if rn.Status != ResignationStatusRejected {
		t.Errorf("状态应为 rejected，实际为 %s", rn.Status)
	}
	if rn.RejectionReason == "" {
		t.Error("应记录驳回原因")
	}

	if err := rn.Reject("再次驳回", now); !errors.Is(err, ErrResignationNotPending) {
		t.Errorf("重复驳回应返回 ErrResignationNotPending，实际为 %v", err)
	}
}

func TestClearanceOverallStatus(t *testing.T) {
	now := time.Now()
	actorID := int64(1)

	rn := approvedResignation()
	if got := rn.ClearanceOverallStatus(); got != StepStatusInProgress {
		t.Errorf("已批准但未审批任何部门时应为 in-progress，实际为 %s", got)
	}

	rn.Clearances[0].Status = ClearanceStatusApproved
	rn.Clearances[0].ApprovedBy = &actorID
	rn.Clearances[0].ApprovedAt = &now
	if got := rn.ClearanceOverallStatus(); got != StepStatusInProgress {
		t.Errorf("部分部门批准时应为 in-progress，实际为 %s", got)
	}

	rn.Clearances[1].Status = ClearanceStatusApproved
	if got := rn.ClearanceOverallStatus(); got != StepStatusApproved {
		t.Errorf("所有部门批准后应为 approved，实际为 %s", got)
	}

	rn.Clearances[1].Status = ClearanceStatusRejected
	if got := rn.ClearanceOverallStatus(); got != StepStatusRejected {
		t.Errorf("任一部门驳回后应为 rejected，实际为 %s", got)
	}

	pending := &Resignation{Status: ResignationStatusPending}
	if got := pending.ClearanceOverallStatus(); got != StepStatusPending {
		t.Errorf("待处理的申请应为 pending，实际为 %s", got)
	}
}

func TestNoticePeriodStatus(t *testing.T) {
	rn := approvedResignation()
	if got := rn.NoticePeriodStatus(); got != StepStatusPending {
		t.Errorf("未记录通知期时应为 pending，实际为 %s", got)
	}

	start := time.Now()
	end := start.AddDate(0, 1, 0)
	rn.NoticePeriodStartDate = &start
	rn.NoticePeriodEndDate = &end
	if got := rn.NoticePeriodStatus(); got != StepStatusInProgress {
		t.Errorf("已记录起止日期时应为 in-progress，实际为 %s", got)
	}

	rn.NoticePeriodComplied = true
	if got := rn.NoticePeriodStatus(); got != StepStatusComplied {
		t.Errorf("已遵守通知期时应为 complied，实际为 %s", got)
	}
}

func TestOverallStatus(t *testing.T) {
	pending := &Resignation{Status: ResignationStatusPending}
	if got := pending.OverallStatus(); got != ResignationStatusPending {
		t.Errorf("待处理申请的总体状态应为 pending，实际为 %s", got)
	}

	rejected := &Resignation{Status: ResignationStatusRejected}
	if got := rejected.OverallStatus(); got != ResignationStatusRejected {
		t.Errorf("被驳回申请的总体状态应为 rejected，实际为 %s", got)
	}

	rn := approvedResignation()
	if got := rn.OverallStatus(); got != ResignationStatusApproved {
		t.Errorf("没有任何步骤开始时总体状态应为 approved，实际为 %s", got)
	}

	// 任何一个步骤开始后变为 in-progress
	rn.AssetsReturned = true
	if got := rn.OverallStatus(); got != ResignationStatusInProgress {
		t.Errorf("有步骤开始后总体状态应为 in-progress，实际为 %s", got)
	}

	// 办结后变为 completed
	rn.ExitClosed = true
	if got := rn.OverallStatus(); got != ResignationStatusCompleted {
		t.Errorf("办结后总体状态应为 completed，实际为 %s", got)
	}
}

func TestAnyStepBegun(t *testing.T) {
	rn := approvedResignation()
	if rn.AnyStepBegun() {
		t.Error("刚批准的申请不应有任何步骤开始")
	}

	rn.FnfStatus = FnfStatusProcessing
	if !rn.AnyStepBegun() {
		t.Error("薪资结算进入 processing 后应视为有步骤开始")
	}

	rn = approvedResignation()
	rn.Clearances[0].Status = ClearanceStatusApproved
	if !rn.AnyStepBegun() {
		t.Error("有部门审批后应视为有步骤开始")
	}
}
