package domain

import "time"

type PayrollStatus string

const (
	PayrollStatusDraft  PayrollStatus = "草稿"
	PayrollStatusIssued PayrollStatus = "已发放"
)

type Payroll struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userID"`
	Month      string        `json:"month"` // 格式为 YYYY-MM
	BaseSalary float64       `json:"baseSalary"`
	Allowance  float64       `json:"allowance"`
	Deduction  float64       `json:"deduction"`
	Status     PayrollStatus `json:"status"`
	IssuedAt   *time.Time    `json:"issuedAt"`
	CreatedAt  time.Time     `json:"createdAt"`
	Version    int32         `json:"-"`
}

// NetSalary 实发工资由基本工资、补贴和扣款推导，不单独存储
func (p *Payroll) NetSalary() float64 {
	return p.BaseSalary + p.Allowance - p.Deduction
}
