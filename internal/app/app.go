package app

import (
	"os"

	"github.com/Ayabe1990/management-pro-project-sub001/internal/payroll"
	"github.com/Ayabe1990/management-pro-project-sub001/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// Statutory tables are loaded once; a malformed file is a startup
	// failure, never a half-configured payroll.
	settings, err := payroll.LoadSettings(os.Getenv("PAYROLL_SETTINGS_FILE"))
	if err != nil {
		return err
	}
	zap.L().Info("payroll settings loaded",
		zap.Int("sss_brackets", len(settings.SSSTable)),
		zap.Int("tax_brackets", len(settings.TaxTable)),
	)

	return registerModules(router, sqlDB, gormDB, redisClient, settings)
}
