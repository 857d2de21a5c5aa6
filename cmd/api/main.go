package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskapp/internal/config"
	"taskapp/internal/handler"
	"taskapp/internal/infra/db"
	"taskapp/internal/infra/mail"
	infraRepo "taskapp/internal/infra/repository"
	"taskapp/internal/infra/security"
	"taskapp/internal/logging"
	"taskapp/internal/server"
	"taskapp/internal/usecase"
	auth "taskapp/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

// 時刻は常にUTC
type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

const usage = `usage: api [serve|migrate|cleanup]
  serve    migrate then start the HTTP server (default)
  migrate  create or update tables and exit
  cleanup  delete expired refresh tokens and expired/used reset tokens`

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.IsProduction())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cmd, cfg, log); err != nil {
		log.Error(ctx, "command failed", "cmd", cmd, "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, cfg config.Config, log logging.Logger) error {
	switch cmd {
	case "serve", "migrate", "cleanup":
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() { _ = db.Close(gormDB) }()

	switch cmd {
	case "migrate":
		if err := db.Migrate(gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info(ctx, "migration completed", "driver", cfg.DBDriver)
		return nil
	case "cleanup":
		return cleanup(ctx, gormDB, log)
	}

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return serve(ctx, cfg, gormDB, log)
}

// 期限切れのrefresh tokenと、期限切れ・使用済みのreset tokenを消す
func cleanup(ctx context.Context, gormDB *gorm.DB, log logging.Logger) error {
	now := (&realClock{}).Now()

	refreshN, err := infraRepo.NewRefreshTokenRepository(gormDB).DeleteExpired(ctx, now)
	if err != nil {
		return fmt.Errorf("cleanup refresh tokens: %w", err)
	}
	resetN, err := infraRepo.NewPasswordResetTokenRepository(gormDB).DeleteExpiredOrUsed(ctx, now)
	if err != nil {
		return fmt.Errorf("cleanup reset tokens: %w", err)
	}

	log.Info(ctx, "cleanup completed", "refresh_tokens", refreshN, "reset_tokens", resetN)
	return nil
}

func serve(ctx context.Context, cfg config.Config, gormDB *gorm.DB, log logging.Logger) error {
	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	prRepo := infraRepo.NewPasswordResetTokenRepository(gormDB)
	taskRepo := infraRepo.NewTaskGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	tokenGen := security.NewTokenGenerator()

	//bcrypt（会員登録・リセット：Hash / ログイン・退会：Verify）
	hasher := security.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := security.NewBcryptPasswordVerifier()

	//JWT
	codec := security.NewJWTCodec(cfg.JWTSecret, auth.ParseExpiryWithDefault(cfg.JWTAccessExpiry, 15*time.Minute))
	ttl := auth.SessionTTL{
		Standard: auth.ParseExpiry(cfg.JWTRefreshExpiryStandard),
		Remember: auth.ParseExpiry(cfg.JWTRefreshExpiryRemember),
	}

	//メール
	dispatcher, err := newDispatcher(ctx, cfg, log)
	if err != nil {
		return err
	}
	mailer := mail.NewPasswordResetMailer(dispatcher, cfg.FrontendURL)

	//Usecase生成
	refreshStore := auth.NewRefreshTokenStore(rtRepo, tokenGen, idGen, clock)
	resetStore := auth.NewResetTokenStore(prRepo, txm, tokenGen, idGen, clock)
	authUC := auth.NewAuthUsecase(userRepo, txm, refreshStore, hasher, verifier, codec, idGen, clock, ttl)
	resetUC := auth.NewPasswordResetUsecase(userRepo, txm, resetStore, refreshStore, hasher, mailer, clock)
	accountUC := usecase.NewAccountUsecase(userRepo, txm, auditRepo, verifier, clock)
	taskUC := usecase.NewTaskUsecase(taskRepo, idGen, clock)

	//Handler生成
	e := server.New(cfg, server.Deps{
		Auth:     handler.NewAuthHandler(authUC, resetUC, clock, cfg.CookieSecure, log),
		Account:  handler.NewAccountHandler(accountUC, cfg.CookieSecure, log),
		Tasks:    handler.NewTaskHandler(taskUC, log),
		Verifier: codec,
		Users:    userRepo,
	}, server.DefaultRateRules(), log)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Start(ctx, e, addr, log)
}

// MAIL_DRIVERで送信手段を選ぶ
func newDispatcher(ctx context.Context, cfg config.Config, log logging.Logger) (mail.Dispatcher, error) {
	switch cfg.MailDriver {
	case "smtp":
		return mail.NewSMTPDispatcher(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.EmailFrom,
		}), nil
	case "ses":
		d, err := mail.NewSESDispatcher(ctx, mail.SESConfig{
			Region:          cfg.AWSRegion,
			From:            cfg.EmailFrom,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
			Endpoint:        cfg.SESEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("ses: %w", err)
		}
		return d, nil
	default:
		log.Warn(ctx, "MAIL_DRIVER=log: password reset emails are not delivered")
		return mail.NewLogDispatcher(log), nil
	}
}
