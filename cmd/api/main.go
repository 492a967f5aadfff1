package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/upload"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもいい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.RailwayStation{},
		&model.Store{},
		&model.Order{},
		&model.OrderItem{},
		&model.AddressDelivery{},
		&model.StationDelivery{},
		&model.PickupDelivery{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	stationRepo := infraRepo.NewStationGormRepository(gormDB)
	storeRepo := infraRepo.NewStoreGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//受け取り店舗は1件固定。無ければ作る。
	if err := storeRepo.EnsureDefault(context.Background(), model.Store{
		Name:         "Store in Nyon",
		Address:      "Chemin de Pre-Fleuri, 5",
		City:         "Nyon",
		WorkingHours: "daily 9:00-20:00",
	}); err != nil {
		panic(err)
	}

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := newJWTIssuer(cfg.JWTSecret)
	storage := upload.NewStorage(cfg.UploadDir)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(productRepo, cfg.BaseURL)
	stationUC := usecase.NewStationUsecase(stationRepo, cfg.BaseURL)
	storeUC := usecase.NewStoreUsecase(storeRepo)
	orderUC := usecase.NewOrderUsecase(txManager, stationRepo, storeRepo, hasher, issuer, clock)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC),
		Product:    handler.NewProductHandler(productUC, storage),
		Station:    handler.NewStationHandler(stationUC, storeUC, storage),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:  handler.NewAdminUserHandler(adminUserUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		panic(err)
	}
}
