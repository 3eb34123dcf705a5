package utils

import (
	"fmt"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

// ParseClearanceDepartment 将字符串解析为已知的交接部门
func ParseClearanceDepartment(s string) (domain.ClearanceDepartment, error) {
	for _, dept := range domain.AllClearanceDepartments() {
		if string(dept) == s {
			return dept, nil
		}
	}
	return "", fmt.Errorf("未知的交接部门: %s", s)
}

// ValidateMonth 检查月份格式是否为 YYYY-MM
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return fmt.Errorf("月份格式应为 YYYY-MM")
	}
	return nil
}

// ParseLeaveDateRange 解析请假的起止日期并检查先后关系
func ParseLeaveDateRange(start string, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("请假开始日期格式应为 YYYY-MM-DD")
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("请假结束日期格式应为 YYYY-MM-DD")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("请假结束日期不能早于开始日期")
	}
	return startDate, endDate, nil
}

// ValidatePollOption 检查投票选项是否属于该投票
func ValidatePollOption(poll *domain.Poll, optionID int64) error {
	for _, option := range poll.Options {
		if option.ID == optionID {
			return nil
		}
	}
	return fmt.Errorf("选项 %d 不属于该投票", optionID)
}
