package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/staffdesk-dev/hr-manager/backend/internal/config"
	"github.com/staffdesk-dev/hr-manager/backend/internal/repository"
	"github.com/staffdesk-dev/hr-manager/backend/internal/seed"
	"github.com/staffdesk-dev/hr-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机离职申请, 3: 插入随机请假申请, 4: 插入随机公告, 5: 插入工资草稿, 6: 插入整套演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "插入工资草稿的月份 (YYYY-MM)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机用户", slog.String("error", err.Error()))
				continue
			}
			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入用户成功", slog.Int("count", cnt))
	case 2:
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("数据库中没有用户，请先插入用户")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user := users[rand.Intn(len(users))]

			hasOpen, err := repo.CheckUserHasOpenResignation(user.ID)
			if err != nil {
				slog.Error("无法检查离职申请", slog.String("error", err.Error()))
				continue
			}
			if hasOpen {
				continue
			}

			rn := utils.GenerateRandomResignation(user.ID)
			if err := repo.CreateResignation(rn); err != nil {
				slog.Error("无法插入离职申请", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入离职申请成功", slog.Int("count", cnt))
	case 3:
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("数据库中没有用户，请先插入用户")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user := users[rand.Intn(len(users))]
			lr := utils.GenerateRandomLeaveRequest(user.ID)
			if err := repo.CreateLeaveRequest(lr); err != nil {
				slog.Error("无法插入请假申请", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入请假申请成功", slog.Int("count", cnt))
	case 4:
		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}
		if len(users) == 0 {
			slog.Error("数据库中没有用户，请先插入用户")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			author := users[rand.Intn(len(users))]
			a := utils.GenerateRandomAnnouncement(author.ID)
			if err := repo.CreateAnnouncement(a); err != nil {
				slog.Error("无法插入公告", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入公告成功", slog.Int("count", cnt))
	case 5:
		if err := utils.ValidateMonth(month); err != nil {
			slog.Error("月份格式错误", slog.String("month", month))
			return
		}

		users, err := repo.GetAllUsers()
		if err != nil {
			slog.Error("无法获取所有用户", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for _, user := range users {
			p := utils.GenerateRandomPayroll(user.ID, month)
			if err := repo.UpsertPayrollDraft(p); err != nil {
				slog.Error("无法插入工资草稿", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("插入工资草稿成功", slog.Int("count", cnt), slog.String("month", month))
	case 6:
		seed.SeedDemoData(repo, cfg.Seed.User.Password, cfg.Email.UserDomain)
	default:
		slog.Error("指定的操作非法")
	}
}
