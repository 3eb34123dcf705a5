package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"github.com/staffdesk-dev/hr-manager/backend/internal/repository"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"
)

// SeedDemoData 插入一套演示数据：若干员工、处于不同阶段的离职申请、
// 请假申请、公告和当月的工资草稿
func SeedDemoData(r *repository.Repository, password string, emailDomain string) {
	users := make([]*domain.User, 0)

	for i := 0; i < 10; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomain)
		if err != nil {
			slog.Error("无法生成随机用户", "error", err)
			continue
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("无法插入用户", "error", err)
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		slog.Error("没有成功插入任何用户，跳过后续数据")
		return
	}

	slog.Info("插入用户成功", "count", len(users))

	// 一部分员工提交离职申请，并让申请处于不同的流程阶段
	resignationCount := 0
	for _, user := range users[:len(users)/3+1] {
		rn := utils.GenerateRandomResignation(user.ID)
		if err := r.CreateResignation(rn); err != nil {
			slog.Error("无法插入离职申请", "error", err)
			continue
		}
		resignationCount++

		switch rand.Intn(3) {
		case 0:
			// 保持待处理
		case 1:
			if err := rn.Reject("与部门沟通后决定挽留", time.Now()); err == nil {
				if err := r.UpdateResignationStatus(rn); err != nil {
					slog.Error("无法驳回离职申请", "error", err)
				}
			}
		case 2:
			if err := rn.Approve(users[0].ID, time.Now()); err != nil {
				continue
			}
			if err := r.UpdateResignationStatus(rn); err != nil {
				slog.Error("无法批准离职申请", "error", err)
				continue
			}

			utils.RandomlyAdvanceExitProcess(rn, users[0].ID)
			if err := r.UpdateNoticePeriod(rn); err != nil {
				slog.Error("无法更新通知期", "error", err)
			}
			if err := r.UpdateKnowledgeTransfer(rn); err != nil {
				slog.Error("无法更新工作交接", "error", err)
			}
			if err := r.UpdateAssetReturn(rn); err != nil {
				slog.Error("无法更新资产归还", "error", err)
			}
		}
	}
	slog.Info("插入离职申请成功", "count", resignationCount)

	leaveCount := 0
	for _, user := range users {
		if rand.Intn(2) == 0 {
			continue
		}
		lr := utils.GenerateRandomLeaveRequest(user.ID)
		if err := r.CreateLeaveRequest(lr); err != nil {
			slog.Error("无法插入请假申请", "error", err)
			continue
		}
		leaveCount++
	}
	slog.Info("插入请假申请成功", "count", leaveCount)

	announcementCount := 0
	for i := 0; i < 5; i++ {
		a := utils.GenerateRandomAnnouncement(users[0].ID)
		if err := r.CreateAnnouncement(a); err != nil {
			slog.Error("无法插入公告", "error", err)
			continue
		}
		announcementCount++
	}
	slog.Info("插入公告成功", "count", announcementCount)

	// 为每个员工补上最近几个工作日的打卡记录
	attendanceCount := 0
	for _, user := range users {
		for day := 1; day <= 5; day++ {
			date := time.Now().AddDate(0, 0, -day)
			workDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

			clockIn := workDate.Add(8*time.Hour + time.Duration(rand.Intn(90))*time.Minute)
			record := &domain.AttendanceRecord{
				UserID:   user.ID,
				WorkDate: workDate,
				ClockIn:  &clockIn,
			}
			if err := r.ClockIn(record); err != nil {
				slog.Error("无法插入上班打卡记录", "error", err)
				continue
			}

			clockOut := workDate.Add(17*time.Hour + time.Duration(rand.Intn(120))*time.Minute)
			record.ClockOut = &clockOut
			if err := r.ClockOut(record); err != nil {
				slog.Error("无法插入下班打卡记录", "error", err)
				continue
			}
			attendanceCount++
		}
	}
	slog.Info("插入考勤记录成功", "count", attendanceCount)

	month := time.Now().Format("2006-01")
	payrollCount := 0
	for _, user := range users {
		p := utils.GenerateRandomPayroll(user.ID, month)
		if err := r.UpsertPayrollDraft(p); err != nil {
			slog.Error("无法插入工资草稿", "error", err)
			continue
		}
		payrollCount++
	}
	slog.Info("插入工资草稿成功", "count", payrollCount, "month", month)
}
