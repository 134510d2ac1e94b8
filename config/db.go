package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"enrollment/domain"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPgx    = "pgx"
	DriverPq     = "pq"
	DriverSQLite = "sqlite"
)

type DBConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// GetDatabaseURL builds the database connection string.
func GetDatabaseURL() string {
	if getEnv("DB_DRIVER", DriverPgx) == DriverSQLite {
		return getEnv("DB_DATABASE", "enrollment.db") + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"), getEnv("DB_PORT", "5432"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"), getEnv("DB_SSLMODE", "disable"))
}

func GetDBConfig() DBConfig {
	return DBConfig{
		Driver:          getEnv("DB_DRIVER", DriverPgx),
		DSN:             GetDatabaseURL(),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		PingTimeout:     getEnvDuration("DB_PING_TIMEOUT", 5*time.Second),
	}
}

// BootDB opens the pool described by the environment.
func BootDB() (*gorm.DB, error) {
	return OpenDB(GetDBConfig())
}

// OpenDB opens a bounded connection pool and verifies it with a ping.
func OpenDB(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Driver) {
	case DriverPq:
		conn, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open database connection: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: conn})
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPgx, "":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(gormWriter{log: GetLogrusInstance()}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	GetLogrusInstance().WithField("driver", cfg.Driver).Info("DB initialized")
	return db, nil
}

// CloseDB drains the pool. Called by the entry point on shutdown.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates the schema. Tables without foreign keys go first.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Program{},
		&domain.RoomType{},
		&domain.PaymentPlan{},
		&domain.Guardian{},
	); err != nil {
		return fmt.Errorf("failed to migrate base tables: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.EnrollmentPlan{},
		&domain.Child{},
		&domain.ChildGuardian{},
		&domain.MedicalContact{},
		&domain.CareFacility{},
		&domain.Registration{},
	); err != nil {
		return fmt.Errorf("failed to migrate relational tables: %w", err)
	}

	// One primary guardian per child.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_child_guardians_one_primary
		ON child_guardians (child_id) WHERE is_primary`).Error; err != nil {
		return fmt.Errorf("failed to create primary guardian index: %w", err)
	}

	return seedAdmin(db)
}

func seedAdmin(db *gorm.DB) error {
	adminEmail := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existingAdmin domain.User
	err := db.Where("role_id = ?", domain.RoleAdmin).First(&existingAdmin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("could not look up admin account: %w", err)
	}

	GetLogrusInstance().Info("Creating default admin account....")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	admin := domain.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		RoleID:   domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	GetLogrusInstance().Info("Admin account created")
	return nil
}
