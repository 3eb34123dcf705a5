package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ResignationResultMailData struct {
	FullName        string `json:"fullName"`
	Approved        bool   `json:"approved"`
	RejectionReason string `json:"rejectionReason"`
}

type LeaveResultMailData struct {
	FullName      string `json:"fullName"`
	LeaveType     string `json:"leaveType"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Approved      bool   `json:"approved"`
	ReviewComment string `json:"reviewComment"`
}
