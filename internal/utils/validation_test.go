package utils

import (
	"testing"

	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
)

func TestParseClearanceDepartment(t *testing.T) {
	dept, err := ParseClearanceDepartment("design")
	if err != nil {
		t.Fatalf("解析已知部门不应该失败: %v", err)
	}
	if dept != domain.ClearanceDepartmentDesign {
		t.Errorf("期望 design，实际为 %s", dept)
	}

	if _, err := ParseClearanceDepartment("finance"); err == nil {
		t.Error("解析未知部门应该失败")
	}
}

func TestValidateMonth(t *testing.T) {
	if err := ValidateMonth("2026-08"); err != nil {
		t.Errorf("合法月份不应该报错: %v", err)
	}
	for _, month := range []string{"2026-13", "2026-8", "202608", "abc"} {
		if err := ValidateMonth(month); err == nil {
			t.Errorf("月份 %q 应该报错", month)
		}
	}
}

func TestParseLeaveDateRange(t *testing.T) {
	start, end, err := ParseLeaveDateRange("2026-09-01", "2026-09-03")
	if err != nil {
		t.Fatalf("合法日期范围不应该报错: %v", err)
	}
	if !end.After(start) {
		t.Error("结束日期应晚于开始日期")
	}

	// 起止同一天是允许的
	if _, _, err := ParseLeaveDateRange("2026-09-01", "2026-09-01"); err != nil {
		t.Errorf("请一天假不应该报错: %v", err)
	}

	if _, _, err := ParseLeaveDateRange("2026-09-03", "2026-09-01"); err == nil {
		t.Error("结束日期早于开始日期应该报错")
	}
	if _, _, err := ParseLeaveDateRange("2026/09/01", "2026-09-03"); err == nil {
		t.Error("日期格式错误应该报错")
	}
}

func TestValidatePollOption(t *testing.T) {
	poll := &domain.Poll{
		ID: 1,
		Options: []domain.PollOption{
			{ID: 10, Text: "选项1"},
			{ID: 11, Text: "选项2"},
		},
	}

	if err := ValidatePollOption(poll, 10); err != nil {
		t.Errorf("投票选项属于该投票时不应该报错: %v", err)
	}
	if err := ValidatePollOption(poll, 99); err == nil {
		t.Error("投票选项不属于该投票时应该报错")
	}
}

func TestGenerateUsernameFromChineseName(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := GenerateRandomChineseName()
		username := GenerateUsernameFromChineseName(name)
		if username == "" {
			t.Fatalf("姓名 %q 生成的用户名不应为空", name)
		}
		for _, r := range username {
			if r > 127 {
				t.Fatalf("用户名 %q 中不应包含非 ASCII 字符", username)
			}
		}
	}
}
