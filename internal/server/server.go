package server

import (
	"app/internal/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Start(cfg config.Config, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// アップロード画像の静的配信
	e.Static("/uploads", cfg.UploadDir)

	RegisterRoutes(e, cfg, h)

	return e.Start(":" + cfg.Port)
}
