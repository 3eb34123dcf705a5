package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestNoticePeriodUpdateOnlyTouchesOwnFields(t *testing.T) {
	rn := approvedResignation()
	rn.HandoverNotes = "已有的交接记录"
	rn.AssetsReturned = true
	before := *rn

	start := time.Now()
	end := start.AddDate(0, 1, 0)
	update := NoticePeriodUpdate{Complied: true, StartDate: &start, EndDate: &end}

	if err := update.Apply(rn, 1, time.Now()); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	if !rn.NoticePeriodComplied || rn.NoticePeriodStartDate == nil || rn.NoticePeriodEndDate == nil {
		t.Error("通知期字段应被更新")
	}
	if rn.HandoverNotes != before.HandoverNotes {
		t.Error("通知期更新不应影响工作交接字段")
	}
	if rn.AssetsReturned != before.AssetsReturned {
		t.Error("通知期更新不应影响资产归还字段")
	}
}

func TestKnowledgeTransferUpdateKeepsOmittedFields(t *testing.T) {
	rn := approvedResignation()
	rn.HandoverNotes = "原有备注"

	// 载荷中省略的字段不应被清空
	update := KnowledgeTransferUpdate{Completed: true}
	if err := update.Apply(rn, 1, time.Now()); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	if !rn.KnowledgeTransferCompleted {
		t.Error("完成标志应被更新")
	}
	if rn.HandoverNotes != "原有备注" {
		t.Errorf("省略的备注字段不应被清空，实际为 %q", rn.HandoverNotes)
	}
}

func TestExitStepUpdateIdempotent(t *testing.T) {
	rn := approvedResignation()

	date := time.Now()
	notes := "显示器有划痕"
	update := AssetReturnUpdate{Returned: true, Date: &date, Notes: &notes}

	if err := update.Apply(rn, 1, time.Now()); err != nil {
		t.Fatalf("第一次 Apply 不应该失败: %v", err)
	}
	first := *rn

	if err := update.Apply(rn, 1, time.Now()); err != nil {
		t.Fatalf("第二次 Apply 不应该失败: %v", err)
	}

	if !reflect.DeepEqual(first, *rn) {
		t.Error("重复应用同一个载荷应得到相同的结果")
	}
}

func TestClearanceUpdate(t *testing.T) {
	rn := approvedResignation()
	now := time.Now()

	update := ClearanceUpdate{Department: ClearanceDepartmentDesign, Status: ClearanceStatusApproved}
	if err := update.Apply(rn, 7, now); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	var design *Clearance
	for i := range rn.Clearances {
		if rn.Clearances[i].Department == ClearanceDepartmentDesign {
			design = &rn.Clearances[i]
		}
	}
	if design == nil {
		t.Fatal("设计部的交接记录不应丢失")
	}
	if design.Status != ClearanceStatusApproved {
		t.Errorf("设计部状态应为 approved，实际为 %s", design.Status)
	}
	if design.ApprovedBy == nil || *design.ApprovedBy != 7 {
		t.Error("应记录审批人")
	}
	if design.ApprovedAt == nil || !design.ApprovedAt.Equal(now) {
		t.Error("应记录审批时间")
	}

	// 其他部门不受影响
	for _, c := range rn.Clearances {
		if c.Department != ClearanceDepartmentDesign && c.Status != ClearanceStatusPending {
			t.Errorf("部门 %s 不应被更新", c.Department)
		}
	}

	// 非法状态应被拒绝
	bad := ClearanceUpdate{Department: ClearanceDepartmentDesign, Status: ClearanceStatusPending}
	if err := bad.Apply(rn, 7, now); err == nil {
		t.Error("将交接状态改回 pending 应该失败")
	}
}

func TestClearanceUpdateCreatesMissingDepartment(t *testing.T) {
	rn := approvedResignation()
	rn.Clearances = nil

	update := ClearanceUpdate{Department: ClearanceDepartmentOperation, Status: ClearanceStatusRejected}
	if err := update.Apply(rn, 3, time.Now()); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	if len(rn.Clearances) != 1 {
		t.Fatalf("应新建一条交接记录，实际有 %d 条", len(rn.Clearances))
	}
	if rn.Clearances[0].Status != ClearanceStatusRejected {
		t.Errorf("新建记录的状态应为 rejected，实际为 %s", rn.Clearances[0].Status)
	}
}

func TestFnfUpdate(t *testing.T) {
	rn := approvedResignation()

	// 允许跳过 processing 直接标记为 completed
	amount := 12345.67
	update := FnfUpdate{Status: FnfStatusCompleted, Amount: &amount}
	if err := update.Apply(rn, 1, time.Now()); err != nil {
		t.Fatalf("直接标记为 completed 不应该失败: %v", err)
	}
	if rn.FnfStatus != FnfStatusCompleted {
		t.Errorf("状态应为 completed，实际为 %s", rn.FnfStatus)
	}
	if rn.FnfAmount == nil || *rn.FnfAmount != amount {
		t.Error("应记录结算金额")
	}

	// 不允许改回 pending
	bad := FnfUpdate{Status: FnfStatusPending}
	if err := bad.Apply(rn, 1, time.Now()); err == nil {
		t.Error("将薪资结算状态改回 pending 应该失败")
	}
}

func TestDocumentsUpdateStampsUploadTime(t *testing.T) {
	rn := approvedResignation()
	now := time.Now()

	letter := "https://files.example.com/experience/2.pdf"
	update := DocumentsUpdate{ExperienceLetter: &letter, OtherDocuments: []string{"https://files.example.com/other/2.pdf"}}
	if err := update.Apply(rn, 1, now); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	if rn.ExperienceLetter != letter {
		t.Error("离职证明地址应被更新")
	}
	if len(rn.OtherDocuments) != 1 {
		t.Error("其他文档列表应被更新")
	}
	if rn.DocumentsUploadedAt == nil || !rn.DocumentsUploadedAt.Equal(now) {
		t.Error("应记录上传时间")
	}
}

func TestExitClosureUpdate(t *testing.T) {
	rn := approvedResignation()
	now := time.Now()

	update := ExitClosureUpdate{Closed: true}
	if err := update.Apply(rn, 9, now); err != nil {
		t.Fatalf("Apply 不应该失败: %v", err)
	}

	if !rn.ExitClosed {
		t.Error("申请应被办结")
	}
	if rn.ExitClosedDate == nil || !rn.ExitClosedDate.Equal(now) {
		t.Error("未提供日期时应默认使用当前时间")
	}
	if rn.ExitClosedBy == nil || *rn.ExitClosedBy != 9 {
		t.Error("应记录办结人")
	}

	if got := rn.OverallStatus(); got != ResignationStatusCompleted {
		t.Errorf("办结后总体状态应为 completed，实际为 %s", got)
	}
}
