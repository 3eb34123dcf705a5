package domain

import "time"

type LeaveType string

const (
	LeaveTypePersonal     LeaveType = "事假"
	LeaveTypeSick         LeaveType = "病假"
	LeaveTypeAnnual       LeaveType = "年假"
	LeaveTypeCompensatory LeaveType = "调休"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

type LeaveRequest struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"userID"`
	Type          LeaveType   `json:"type"`
	StartDate     time.Time   `json:"startDate"`
	EndDate       time.Time   `json:"endDate"`
	Reason        string      `json:"reason"`
	Status        LeaveStatus `json:"status"`
	ReviewedBy    *int64      `json:"reviewedBy"`
	ReviewedAt    *time.Time  `json:"reviewedAt"`
	ReviewComment string      `json:"reviewComment"`
	CreatedAt     time.Time   `json:"createdAt"`
	Version       int32       `json:"-"`
}
