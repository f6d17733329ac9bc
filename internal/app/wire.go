//go:build wireinject
// +build wireinject

package app

import (
	"math/rand"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shopstock/shopstock/internal/analysis/cache"
	analysishttp "github.com/shopstock/shopstock/internal/analysis/delivery/http"
	"github.com/shopstock/shopstock/internal/analysis/llm"
	analysisquery "github.com/shopstock/shopstock/internal/analysis/usecase/query"
	inventoryhttp "github.com/shopstock/shopstock/internal/inventory/delivery/http"
	inventorydomain "github.com/shopstock/shopstock/internal/inventory/domain"
	inventoryrepository "github.com/shopstock/shopstock/internal/inventory/repository"
	inventorycommand "github.com/shopstock/shopstock/internal/inventory/usecase/command"
	inventoryquery "github.com/shopstock/shopstock/internal/inventory/usecase/query"
	saleshttp "github.com/shopstock/shopstock/internal/sales/delivery/http"
	salesdomain "github.com/shopstock/shopstock/internal/sales/domain"
	salesrepository "github.com/shopstock/shopstock/internal/sales/repository"
	salescommand "github.com/shopstock/shopstock/internal/sales/usecase/command"
	salesquery "github.com/shopstock/shopstock/internal/sales/usecase/query"
	"github.com/shopstock/shopstock/internal/seed"
	"github.com/shopstock/shopstock/internal/store"
	userhttp "github.com/shopstock/shopstock/internal/user/delivery/http"
	userdomain "github.com/shopstock/shopstock/internal/user/domain"
	userrepository "github.com/shopstock/shopstock/internal/user/repository"
	usercommand "github.com/shopstock/shopstock/internal/user/usecase/command"
	userquery "github.com/shopstock/shopstock/internal/user/usecase/query"
)

// Handlers bundles everything the HTTP server mounts
type Handlers struct {
	User     *userhttp.UserHandler
	Product  *inventoryhttp.ProductHandler
	Sale     *saleshttp.SaleHandler
	Analysis *analysishttp.AnalysisHandler
	Stores   *store.Manager
}

// Repository providers

func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepository.NewGormUserRepository(db)
}

func ProvideProductRepository(db *gorm.DB) inventorydomain.ProductRepository {
	return inventoryrepository.NewGormProductRepositoryWithTracing(db)
}

func ProvideSaleRepository(db *gorm.DB) salesdomain.SaleRepository {
	return salesrepository.NewGormSaleRepository(db)
}

// Store providers

func ProvideRemote(products inventorydomain.ProductRepository, sales salesdomain.SaleRepository) store.Remote {
	return store.NewRepositoryRemote(products, sales)
}

func ProvideStoreManager(remote store.Remote) *store.Manager {
	return store.NewManager(remote)
}

// Seeding providers

func ProvideSeeder(users userdomain.UserRepository, products inventorydomain.ProductRepository, sales salesdomain.SaleRepository) *seed.Seeder {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return seed.NewSeeder(users, products, sales, rng)
}

// Analysis providers

func ProvideModelClient() (llm.Client, error) {
	return llm.NewOpenAIClient()
}

func ProvideAnalysisCache(client *redis.Client) *cache.Cache {
	return cache.New(client, 0)
}

var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideProductRepository,
	ProvideSaleRepository,
)

var StoreSet = wire.NewSet(
	ProvideRemote,
	ProvideStoreManager,
	ProvideSeeder,
)

var UserSet = wire.NewSet(
	usercommand.NewRegisterUserHandler,
	usercommand.NewLoginUserHandler,
	usercommand.NewLogoutUserHandler,
	usercommand.NewUpdateProfileHandler,
	userquery.NewGetUserHandler,
	userhttp.NewUserHandler,
)

var InventorySet = wire.NewSet(
	inventorycommand.NewAddProductHandler,
	inventorycommand.NewUpdateProductHandler,
	inventorycommand.NewDeleteProductHandler,
	inventorycommand.NewDecreaseStockHandler,
	inventoryquery.NewGetProductHandler,
	inventoryquery.NewListProductsHandler,
	inventoryquery.NewListLowStockHandler,
	inventoryquery.NewGetStatsHandler,
	inventoryhttp.NewProductHandler,
)

var SalesSet = wire.NewSet(
	salescommand.NewRecordSaleHandler,
	salesquery.NewListSalesHandler,
	salesquery.NewGetSaleHandler,
	saleshttp.NewSaleHandler,
)

var AnalysisSet = wire.NewSet(
	ProvideModelClient,
	ProvideAnalysisCache,
	analysisquery.NewOptimalStockHandler,
	analysisquery.NewSalesTrendsHandler,
	analysisquery.NewMarketTrendsHandler,
	analysisquery.NewGenerateReportHandler,
	analysishttp.NewAnalysisHandler,
)

// InitializeHandlers assembles the full handler graph
func InitializeHandlers(db *gorm.DB, redisClient *redis.Client) (*Handlers, error) {
	wire.Build(
		RepositorySet,
		StoreSet,
		UserSet,
		InventorySet,
		SalesSet,
		AnalysisSet,
		wire.Struct(new(Handlers), "*"),
	)
	return nil, nil
}
