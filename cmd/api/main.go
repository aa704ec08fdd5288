package main

import (
	"log"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/catalog"
	"app/internal/infra/db"
	"app/internal/infra/events"
	infraRepo "app/internal/infra/repository"
	"app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	// .envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load("../.env")
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(&infraRepo.CartEntry{}); err != nil {
		panic(err)
	}

	//Repository生成
	store := infraRepo.NewCartStoreGorm(gormDB)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	//会計イベント発行（RabbitMQ未設定・接続不可なら発行なしで起動する）
	var publisher repository.CheckoutEventPublisher = events.NewNoopPublisher()
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, checkout events disabled: %v", err)
		} else if p, err := events.NewRabbitPublisher(conn); err != nil {
			log.Printf("rabbitmq channel failed, checkout events disabled: %v", err)
		} else {
			publisher = p
		}
	}

	//Usecase生成
	cartUC := usecase.NewCartUsecase(store, publisher, &uuidGenerator{})
	catalogUC := usecase.NewCatalogUsecase(catalogClient)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	catalogH := handler.NewCatalogHandler(catalogUC)

	//Server起動
	addr := ":8080"
	if v := cfg.Port; v != "" {
		if v[0] != ':' {
			addr = ":" + v
		} else {
			addr = v
		}
	}

	e := server.New(cfg, cartH, catalogH)
	if err := e.Start(addr); err != nil {
		panic(err)
	}
}
