// Command seed 写入演示数据
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"issue-tracker/internal/core/config"
	"issue-tracker/internal/core/database"
	"issue-tracker/internal/core/logger"
	"issue-tracker/internal/repo"
	"issue-tracker/internal/seed"
	"issue-tracker/internal/service"
)

func main() {
	def := seed.DefaultOptions()
	users := flag.Int("users", def.Users, "number of users to create")
	projects := flag.Int("projects", def.Projects, "number of projects to create")
	issues := flag.Int("issues", def.IssuesPerProject, "issues per project")
	comments := flag.Int("comments", def.CommentsPerIssue, "comments per issue")
	reset := flag.Bool("reset", true, "delete existing data before seeding")
	password := flag.String("password", def.Password, "password for every seeded user")
	randSeed := flag.Int64("seed", 0, "faker seed, 0 = random")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(logger.FromConfig(cfg.Log, "seed", cfg.App.Env))
	defer cleanup()

	db, err := database.NewGorm(database.FromConfig(cfg.DB, logger.ToWriter(log.Named("gorm"), zap.WarnLevel)))
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := repo.Migrate(db); err != nil {
		log.Fatal("automigrate failed", zap.Error(err))
	}

	svc := service.New(repo.NewStore(db), log)
	sum, err := seed.Run(context.Background(), svc, seed.Options{
		Users:            *users,
		Projects:         *projects,
		IssuesPerProject: *issues,
		CommentsPerIssue: *comments,
		Reset:            *reset,
		Password:         *password,
		Seed:             *randSeed,
	}, log.Named("seed"))
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("database seeded",
		zap.Int("users", sum.Users),
		zap.Int("projects", sum.Projects),
		zap.Int("issues", sum.Issues),
		zap.Int("comments", sum.Comments),
	)
}
