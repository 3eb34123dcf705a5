package domain

import "time"

type PollOption struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Votes int64  `json:"votes"`
}

type Poll struct {
	ID       int64        `json:"id"`
	Question string       `json:"question"`
	Options  []PollOption `json:"options"`
	// MyOptionID 是当前用户投过的选项，没有投票时为 nil，不参与持久化
	MyOptionID *int64 `json:"myOptionID,omitempty"`
}

type Announcement struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorID"`
	IsPinned  bool      `json:"isPinned"`
	Poll      *Poll     `json:"poll"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
