package config

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

func GetFiberListenAddress() string {
	return fmt.Sprintf("%s:%s", GetFiberHttpHost(), GetFiberHttpPort())
}

func GetFiberConfig() fiber.Config {
	return fiber.Config{
		DisableStartupMessage: false,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		Prefork:               false,
		ServerHeader:          GetAppName(),
		AppName:               GetAppName(),
		ReadTimeout:           time.Second * 60,
		WriteTimeout:          time.Second * 60,
		IdleTimeout:           time.Second * 90,
		CaseSensitive:         true,
	}
}

func GetAppName() string {
	return getEnv("APP_NAME", "ENROLLMENT")
}

func GetFiberHttpHost() string {
	return getEnv("HTTP_HOST", "0.0.0.0")
}

func GetFiberHttpPort() string {
	return getEnv("HTTP_PORT", "8000")
}
