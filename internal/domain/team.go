package domain

import "time"

type TeamMember struct {
	UserID   int64  `json:"userID"`
	FullName string `json:"fullName"`
}

type Team struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	LeaderID    int64        `json:"leaderID"`
	Members     []TeamMember `json:"members"`
	CreatedAt   time.Time    `json:"createdAt"`
	Version     int32        `json:"-"`
}
