package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mozillazg/go-pinyin"
	"github.com/staffdesk-dev/hr-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣", "悦",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var departments = []string{"研发部", "设计部", "运营部", "市场部", "财务部"}

func GenerateRandomDepartment() string {
	return departments[rand.Intn(len(departments))]
}

// 随机角色以普通员工为主
var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleEmployee,
	domain.RoleEmployee,
	domain.RoleHR,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hireDate := time.Now().AddDate(0, -rand.Intn(60), -rand.Intn(28))

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Department:   GenerateRandomDepartment(),
		Role:         GenerateRandomRole(),
		HireDate:     &hireDate,
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var resignationReasons = []string{
	"个人职业发展原因",
	"家庭原因需要回老家",
	"对目前的工作内容不感兴趣",
	"找到了更合适的机会",
	"身体原因需要休养",
}

var assetTags = []string{"笔记本电脑", "显示器", "门禁卡", "工牌", "机械键盘"}

// GenerateRandomResignation 随机生成一份离职申请，不同申请会处于不同的流程阶段
func GenerateRandomResignation(userID int64) *domain.Resignation {
	rn := &domain.Resignation{
		UserID:          userID,
		ResignationDate: time.Now().AddDate(0, 0, rand.Intn(60)+30),
		Reason:          resignationReasons[rand.Intn(len(resignationReasons))],
	}

	assetsNum := rand.Intn(3) + 1
	for i := 0; i < assetsNum; i++ {
		rn.Assets = append(rn.Assets, assetTags[rand.Intn(len(assetTags))])
	}

	return rn
}

// RandomlyAdvanceExitProcess 随机推进离职流程的前几个步骤，用于生成处于中间状态的数据
func RandomlyAdvanceExitProcess(rn *domain.Resignation, actorID int64) {
	now := time.Now()

	if rand.Intn(2) == 0 {
		start := now.AddDate(0, 0, -30)
		end := now.AddDate(0, 0, rand.Intn(30))
		_ = domain.NoticePeriodUpdate{
			Complied:  rand.Intn(2) == 0,
			StartDate: &start,
			EndDate:   &end,
		}.Apply(rn, actorID, now)
	}

	if rand.Intn(2) == 0 {
		notes := "交接文档已整理至内部 wiki"
		_ = domain.KnowledgeTransferUpdate{
			Completed:     rand.Intn(2) == 0,
			HandoverNotes: &notes,
		}.Apply(rn, actorID, now)
	}

	if rand.Intn(2) == 0 {
		_ = domain.AssetReturnUpdate{
			Returned: rand.Intn(2) == 0,
			Date:     &now,
		}.Apply(rn, actorID, now)
	}
}

var leaveTypes = []domain.LeaveType{
	domain.LeaveTypePersonal,
	domain.LeaveTypeSick,
	domain.LeaveTypeAnnual,
	domain.LeaveTypeCompensatory,
}

func GenerateRandomLeaveRequest(userID int64) *domain.LeaveRequest {
	startDate := time.Now().AddDate(0, 0, rand.Intn(30))
	endDate := startDate.AddDate(0, 0, rand.Intn(5))

	return &domain.LeaveRequest{
		UserID:    userID,
		Type:      leaveTypes[rand.Intn(len(leaveTypes))],
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    "有事需要请假" + GenerateRandomOTP(),
	}
}

func GenerateRandomAnnouncement(authorID int64) *domain.Announcement {
	a := &domain.Announcement{
		Title:    "公告" + GenerateRandomOTP(),
		Content:  "公告内容" + GenerateRandomOTP(),
		AuthorID: authorID,
		IsPinned: rand.Intn(5) == 0,
	}

	// 一部分公告附带投票
	if rand.Intn(3) == 0 {
		optionsNum := rand.Intn(3) + 2
		options := make([]domain.PollOption, 0, optionsNum)
		for i := 0; i < optionsNum; i++ {
			options = append(options, domain.PollOption{
				Text: fmt.Sprintf("选项%d", i+1),
			})
		}
		a.Poll = &domain.Poll{
			Question: "投票问题" + GenerateRandomOTP(),
			Options:  options,
		}
	}

	return a
}

func GenerateRandomPayroll(userID int64, month string) *domain.Payroll {
	return &domain.Payroll{
		UserID:     userID,
		Month:      month,
		BaseSalary: float64(rand.Intn(20000) + 8000),
		Allowance:  float64(rand.Intn(3000)),
		Deduction:  float64(rand.Intn(1000)),
	}
}
